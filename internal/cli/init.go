package cli

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/colour"
	"github.com/amterp/swatch/internal/editor"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Create the user config file")

	ctx.InitReference, _ = ra.NewString("reference-path").
		SetOptional(true).
		SetDefault("").
		SetFlagOnly(true).
		SetUsage("Reference colour map to use by default").
		Register(cmd)

	ctx.InitColour, _ = ra.NewString("colour").
		SetShort("c").
		SetOptional(true).
		SetDefault("").
		SetFlagOnly(true).
		SetUsage("Default colour for pick and serve").
		Register(cmd)

	ctx.InitRestrict, _ = ra.NewBool("restrict").
		SetShort("r").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Restrict palettes to reference colours by default").
		Register(cmd)

	ctx.InitEdit, _ = ra.NewBool("edit").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Open the config in your editor after writing it").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(reference, defaultColour string, restrict, edit, interactive bool) {
	app, err := NewApp(interactive, "")
	if err != nil {
		Fatal(err)
	}

	if app.Paths.ConfigPath() == "" {
		Fatal(fmt.Errorf("cannot determine home directory for config"))
	}

	if err := app.ConfigStore.EnsureExists(); err != nil {
		Fatal(err)
	}

	cfg, err := app.ConfigStore.Load()
	if err != nil {
		Fatal(err)
	}

	if reference != "" {
		cfg.Reference = reference
	}
	if defaultColour != "" {
		c, ok := colour.ParseHex(defaultColour)
		if !ok {
			Fatal(fmt.Errorf("invalid colour %q (expected #rrggbb)", defaultColour))
		}
		cfg.DefaultColour = c.Hex()
	}
	if restrict {
		cfg.Restrict = true
	}

	if err := app.ConfigStore.Save(cfg); err != nil {
		Fatal(err)
	}

	if edit {
		if !interactive {
			Fatal(prompt.ErrNonInteractive)
		}
		if cfg, err = editConfig(cfg); err != nil {
			Fatal(err)
		}
		if err := app.ConfigStore.Save(cfg); err != nil {
			Fatal(err)
		}
	}

	PrintSuccess("Wrote config to %s", app.Paths.ConfigPath())
}

// editConfig round-trips cfg through the user's editor. The edited text must
// still decode and name a valid default colour.
func editConfig(cfg *model.Config) (*model.Config, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}

	edited, err := editor.NewEditor(cfg.Editor).Edit(buf.String(), ".toml")
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}

	var out model.Config
	if _, err := toml.Decode(edited, &out); err != nil {
		return nil, swerr.InvalidField("config", err.Error())
	}
	out.ApplyDefaults()
	if _, ok := colour.ParseHex(out.DefaultColour); !ok {
		return nil, swerr.InvalidHex(out.DefaultColour)
	}
	return &out, nil
}
