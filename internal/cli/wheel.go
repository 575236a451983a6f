package cli

import (
	"fmt"
	"os"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/wheel"
	"github.com/dustin/go-humanize"
)

func registerWheel(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("wheel")
	cmd.SetDescription("Render the colour wheel for a colour as PNG")

	ctx.WheelColour, _ = ra.NewString("colour").
		SetUsage("Hex colour (#rrggbb) or reference identifier").
		SetCompletionFunc(completeReferences).
		Register(cmd)

	ctx.WheelOutput, _ = ra.NewString("output").
		SetShort("o").
		SetOptional(true).
		SetDefault("wheel.png").
		SetFlagOnly(true).
		SetUsage("File to write").
		Register(cmd)

	ctx.WheelSize, _ = ra.NewInt("size").
		SetShort("s").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage(fmt.Sprintf("Edge length in pixels, %d-%d (default from config)", wheel.MinSize, wheel.MaxSize)).
		Register(cmd)

	ctx.WheelRestrict, _ = ra.NewBool("restrict").
		SetShort("r").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Snap every colour to its nearest reference colour").
		Register(cmd)

	ctx.WheelUsed, _ = parent.RegisterCmd(cmd)
}

func runWheel(input, reference, output string, size int, restrict, interactive bool) {
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

	if size <= 0 {
		size = app.Config.WheelSize
	}
	geom := wheel.NewGeometry(size)
	if geom.Size != size {
		PrintWarning("Size %d adjusted to %d", size, geom.Size)
	}

	f, err := os.Create(output)
	if err != nil {
		Fatal(err)
	}
	if err := app.Palettes.RenderWheel(f, res, geom.Size); err != nil {
		f.Close()
		Fatal(err)
	}
	if err := f.Close(); err != nil {
		Fatal(err)
	}

	written := ""
	if info, err := os.Stat(output); err == nil {
		written = RenderMuted(fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size()))))
	}
	PrintSuccess("Wrote %dx%d wheel for %s to %s%s", geom.Size, geom.Size, res.Primary.Hex, output, written)
}
