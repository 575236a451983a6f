package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/service"
)

// shapeGlyphs mirror the wheel marker shapes in the terminal legend.
var shapeGlyphs = map[palette.Shape]string{
	palette.ShapeCircle:       "●",
	palette.ShapeSquare:       "■",
	palette.ShapeTriangleUp:   "▲",
	palette.ShapeTriangleDown: "▼",
	palette.ShapeDiamond:      "◆",
	palette.ShapePentagon:     "⬟",
	palette.ShapeHexagon:      "⬢",
}

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Display the palettes for a colour")

	ctx.ShowColour, _ = ra.NewString("colour").
		SetUsage("Hex colour (#rrggbb) or reference identifier").
		SetCompletionFunc(completeReferences).
		Register(cmd)

	ctx.ShowRestrict, _ = ra.NewBool("restrict").
		SetShort("r").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Snap every colour to its nearest reference colour").
		Register(cmd)

	ctx.ShowJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(input, reference string, restrict, jsonOutput, interactive bool) {
	app, err := NewApp(interactive, reference)
	if err != nil {
		Fatal(err)
	}

	restrict = restrict || app.Config.Restrict
	if err := app.LoadReference(restrict); err != nil {
		Fatal(err)
	}

	hex, err := app.Palettes.Resolve(input)
	if err != nil {
		Fatal(err)
	}

	res, err := app.Palettes.Build(hex, restrict)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewPaletteOutput(res)); err != nil {
			Fatal(err)
		}
		return
	}

	printPalette(res)
}

func printPalette(res *service.PaletteResult) {
	title := res.Primary.Hex
	if res.Primary.Match != nil {
		title = fmt.Sprintf("%s  %s", res.Primary.Hex, res.Primary.Match.Name)
	}
	fmt.Println(TitleBox(title))
	if res.Restricted {
		fmt.Println(RenderMuted("Restricted to reference colours"))
	}

	for _, s := range res.Schemes {
		header := fmt.Sprintf("%s %s", shapeGlyphs[s.Shape], s.Name)
		fmt.Printf("\n%s\n", RenderBold(header))
		for _, c := range s.Colors {
			printSwatchLine(c)
		}
	}
}

func printSwatchLine(c service.SwatchColour) {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(ColorChip(c.Hex, c.Hex, c.HLS.L < 0.5))
	if c.Match != nil {
		b.WriteString("  ")
		b.WriteString(RenderID(c.Match.ID))
		if c.Match.Hex != c.Hex {
			b.WriteString(" ")
			b.WriteString(RenderMuted(c.Match.Hex))
		}
	}
	if c.Generated != c.Hex {
		b.WriteString(RenderMuted(fmt.Sprintf("  (from %s)", c.Generated)))
	}
	fmt.Println(b.String())
}
