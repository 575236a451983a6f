package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/util"
)

func registerMatch(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("match")
	cmd.SetDescription("Find the reference colours nearest to a colour")

	ctx.MatchColour, _ = ra.NewString("colour").
		SetUsage("Hex colour (#rrggbb) or reference identifier").
		SetCompletionFunc(completeReferences).
		Register(cmd)

	ctx.MatchCount, _ = ra.NewInt("count").
		SetShort("n").
		SetOptional(true).
		SetDefault(5).
		SetFlagOnly(true).
		SetUsage("Number of matches to show").
		Register(cmd)

	ctx.MatchJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.MatchUsed, _ = parent.RegisterCmd(cmd)
}

func runMatch(input, reference string, count int, jsonOutput, interactive bool) {
	app, err := NewApp(interactive, reference)
	if err != nil {
		Fatal(err)
	}

	if err := app.LoadReference(true); err != nil {
		Fatal(err)
	}

	hex, err := app.Palettes.Resolve(input)
	if err != nil {
		Fatal(err)
	}

	matches, err := app.Palettes.Match(hex, count)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewMatchOutput(hex, matches)); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Printf("%s %s\n\n", ColorSwatch(hex), RenderBold(hex))
	for i, m := range matches {
		fmt.Printf("  %s %s  %s  %s %s\n",
			RenderMuted(fmt.Sprintf("%d.", i+1)),
			ColorSwatch(m.Hex),
			m.Hex,
			RenderID(m.ID),
			RenderMuted(fmt.Sprintf("(%s, d=%.4f)", util.DisplayName(m.ID), m.Distance)))
	}
}
