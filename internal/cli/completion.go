package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
)

// completionCtx provides lightweight reference access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This loads just the reference table.
type completionCtx struct {
	once  sync.Once
	table *model.Table
	err   error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		paths := config.DefaultPaths()
		cfg, err := store.NewConfigStore(paths).Load()
		if err != nil {
			// Graceful degradation: fall back to defaults if config is broken
			cfg = model.DefaultConfig()
		}
		config.ApplyEnv(cfg)
		if ref := referenceFromArgs(os.Args); ref != "" {
			cfg.Reference = ref
		}

		compCtx.table, compCtx.err = store.NewReferenceStore(resolveReference(paths, cfg.Reference)).Load()
	})
}

// completeReferences returns reference identifiers matching the given prefix.
func completeReferences(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}
	return matchingIDs(compCtx.table.Entries(), toComplete), ra.CompletionDirectiveNoFileComp
}

// matchingIDs returns the identifiers of entries starting with prefix.
func matchingIDs(entries []model.Entry, prefix string) []string {
	var result []string
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			result = append(result, e.ID)
		}
	}
	return result
}

// referenceFromArgs scans the argument list for an explicit --reference flag value.
func referenceFromArgs(args []string) string {
	for i, arg := range args {
		// --reference=value (skip empty values so fallback logic runs)
		if strings.HasPrefix(arg, "--reference=") {
			if v := strings.TrimPrefix(arg, "--reference="); v != "" {
				return v
			}
		}
		// --reference value
		if arg == "--reference" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// registerCompletion adds the "swatch completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
