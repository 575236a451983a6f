package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/sampler"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
	"github.com/dustin/go-humanize"
)

func registerBuild(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("build")
	cmd.SetDescription("Build a reference colour map from a directory of 16x16 textures")

	ctx.BuildDir, _ = ra.NewString("dir").
		SetUsage("Directory of .png textures").
		Register(cmd)

	ctx.BuildOutput, _ = ra.NewString("output").
		SetShort("o").
		SetOptional(true).
		SetDefault("").
		SetFlagOnly(true).
		SetUsage("Colour map to write (default: the configured reference)").
		Register(cmd)

	ctx.BuildWorkers, _ = ra.NewInt("jobs").
		SetShort("j").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Textures decoded in parallel (default: number of CPUs)").
		Register(cmd)

	ctx.BuildForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing colour map without asking").
		Register(cmd)

	ctx.BuildJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.BuildUsed, _ = parent.RegisterCmd(cmd)
}

func runBuild(dir, reference, output string, workers int, force, jsonOutput, interactive bool) {
	app, err := NewApp(interactive, reference)
	if err != nil {
		Fatal(err)
	}

	var out store.ReferenceStore = app.ReferenceStore
	if output != "" {
		out = store.NewReferenceStore(app.Paths.Resolve(output))
	}

	if out.Exists() && !force {
		ok, err := app.Prompter.Confirm(fmt.Sprintf("Overwrite %s?", out.Path()), false)
		if err != nil {
			if errors.Is(err, prompt.ErrNonInteractive) {
				Fatal(fmt.Errorf("%s already exists (use --force to overwrite)", out.Path()))
			}
			Fatal(err)
		}
		if !ok {
			PrintInfo("Aborted")
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	builder := app.Builder
	if workers > 0 {
		builder = service.NewBuildService(workers)
	}

	res, err := builder.Build(ctx, dir, out)
	if err != nil {
		if res != nil {
			printSkipped(res)
		}
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewBuildOutput(out.Path(), res)); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Wrote %s colours to %s", humanize.Comma(int64(len(res.Entries))), out.Path())
	printSkipped(res)
}

func printSkipped(res *sampler.Result) {
	if len(res.Skipped) == 0 {
		return
	}
	PrintWarning("Skipped %s of %s textures",
		humanize.Comma(int64(len(res.Skipped))), humanize.Comma(int64(res.Scanned)))
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "  %s %s\n", s.File, RenderMuted(s.Reason))
	}
}
