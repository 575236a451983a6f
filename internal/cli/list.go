package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/util"
	"github.com/dustin/go-humanize"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List reference colours")

	ctx.ListFilter, _ = ra.NewString("filter").
		SetOptional(true).
		SetDefault("").
		SetUsage("Only show identifiers containing this text").
		Register(cmd)

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(reference, filter string, jsonOutput, interactive bool) {
	app, err := NewApp(interactive, reference)
	if err != nil {
		Fatal(err)
	}

	if err := app.LoadReference(true); err != nil {
		Fatal(err)
	}

	entries := filterEntries(app.Palettes.Table().Entries(), filter)

	if jsonOutput {
		if err := printJson(NewReferenceOutput(app.Palettes.ReferencePath(), entries)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(entries) == 0 {
		PrintInfo("No reference colours found")
		return
	}

	for _, e := range entries {
		fmt.Printf("  %s %s  %s %s\n", ColorSwatch(e.Hex), e.Hex, RenderID(e.ID), RenderMuted(util.DisplayName(e.ID)))
	}
	fmt.Printf("\n%s\n", RenderMuted(fmt.Sprintf("%s colours from %s", humanize.Comma(int64(len(entries))), app.Palettes.ReferencePath())))
}

// filterEntries keeps entries whose identifier contains filter.
func filterEntries(entries []model.Entry, filter string) []model.Entry {
	if filter == "" {
		return entries
	}
	filter = strings.ToLower(filter)
	var out []model.Entry
	for _, e := range entries {
		if strings.Contains(e.ID, filter) {
			out = append(out, e)
		}
	}
	return out
}
