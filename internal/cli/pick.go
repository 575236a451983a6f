package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/service"
	"github.com/charmbracelet/huh"
)

// pickFromPalette is the input that opens a picker over the shown colours.
const pickFromPalette = "."

func registerPick(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("pick")
	cmd.SetDescription("Interactively explore palettes")

	ctx.PickRestrict, _ = ra.NewBool("restrict").
		SetShort("r").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Snap every colour to its nearest reference colour").
		Register(cmd)

	ctx.PickUsed, _ = parent.RegisterCmd(cmd)
}

func runPick(reference string, restrict, interactive bool) {
	if !interactive {
		Fatal(prompt.ErrNonInteractive)
	}

	app, err := NewApp(interactive, reference)
	if err != nil {
		Fatal(err)
	}

	restrict = restrict || app.Config.Restrict
	if err := app.LoadReference(restrict); err != nil {
		Fatal(err)
	}

	current, err := app.Palettes.Resolve(app.Config.DefaultColour)
	if err != nil {
		PrintWarning("Ignoring default colour %q", app.Config.DefaultColour)
		current = model.DefaultColour
	}

	res, err := app.Palettes.Build(current, restrict)
	if err != nil {
		Fatal(err)
	}
	printPalette(res)

	for {
		input, err := app.Prompter.Input(
			fmt.Sprintf("Colour (hex or identifier, %q to pick from palette, empty to quit)", pickFromPalette),
			res.Primary.Hex,
		)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return
			}
			Fatal(err)
		}

		next, ok := nextPick(app, res, strings.TrimSpace(input))
		if !ok {
			return
		}
		if next == "" {
			continue
		}

		updated, err := app.Palettes.Build(next, restrict)
		if err != nil {
			continue
		}
		res = updated
		fmt.Println()
		printPalette(res)
	}
}

// nextPick maps one line of input to the next primary colour. ok is false
// when the loop should end; an empty hex means the input is ignored.
func nextPick(app *App, res *service.PaletteResult, input string) (hex string, ok bool) {
	switch input {
	case "":
		return "", false
	case pickFromPalette:
		chosen, err := app.Prompter.Select("Pick a colour", paletteOptions(res))
		if err != nil {
			return "", true
		}
		return chosen, true
	}

	hex, err := app.Palettes.Resolve(input)
	if err != nil {
		return "", true
	}
	return hex, true
}

// paletteOptions lists each distinct colour of a palette once, in scheme
// order.
func paletteOptions(res *service.PaletteResult) []prompt.Option {
	seen := make(map[string]bool)
	var opts []prompt.Option
	for _, s := range res.Schemes {
		for _, c := range s.Colors {
			if seen[c.Hex] {
				continue
			}
			seen[c.Hex] = true
			label := fmt.Sprintf("%s  %s", c.Hex, s.Name)
			if c.Match != nil {
				label = fmt.Sprintf("%s  %s (%s)", c.Hex, s.Name, c.Match.Name)
			}
			opts = append(opts, prompt.Option{Label: label, Value: c.Hex})
		}
	}
	return opts
}
