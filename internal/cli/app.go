package cli

import (
	"os"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/discovery"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Paths          *config.Paths
	ConfigStore    store.ConfigStore
	Config         *model.Config
	ReferenceStore store.ReferenceStore
	Prompter       prompt.Prompter
	Palettes       *service.PaletteService
	Builder        *service.BuildService
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
// reference overrides the configured reference path when non-empty.
func NewApp(interactive bool, reference string) (*App, error) {
	return newAppWithPaths(config.DefaultPaths(), interactive, reference)
}

func newAppWithPaths(paths *config.Paths, interactive bool, reference string) (*App, error) {
	// .env first so SWATCH_* variables from it apply below
	if err := config.LoadDotEnv(paths.EnvPath()); err != nil {
		PrintWarning("failed to load %s: %v", paths.EnvPath(), err)
	}

	configStore := store.NewConfigStore(paths)
	cfg, err := configStore.Load()
	if err != nil {
		return nil, err
	}
	return assembleApp(paths, configStore, cfg, interactive, reference), nil
}

// newDoctorApp wires an App on default config, for diagnosing a config file
// that fails to load.
func newDoctorApp(reference string) (*App, error) {
	paths := config.DefaultPaths()
	if err := config.LoadDotEnv(paths.EnvPath()); err != nil {
		return nil, err
	}
	return assembleApp(paths, store.NewConfigStore(paths), model.DefaultConfig(), false, reference), nil
}

func assembleApp(paths *config.Paths, configStore store.ConfigStore, cfg *model.Config, interactive bool, reference string) *App {
	config.ApplyEnv(cfg)
	if reference != "" {
		cfg.Reference = reference
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	refStore := store.NewReferenceStore(resolveReference(paths, cfg.Reference))

	return &App{
		Paths:          paths,
		ConfigStore:    configStore,
		Config:         cfg,
		ReferenceStore: refStore,
		Prompter:       prompter,
		Palettes:       service.NewPaletteService(refStore),
		Builder:        service.NewBuildService(0),
	}
}

// resolveReference finds a relative reference in the working directory or
// its nearest ancestor. A reference found nowhere resolves against the
// working directory so build writes it there.
func resolveReference(paths *config.Paths, reference string) string {
	if found, err := discovery.FindReferenceFrom(paths.WorkDir(), reference); err == nil && found != "" {
		return found
	}
	return paths.Resolve(reference)
}

// LoadReference reads the reference table. A missing table is only an error
// when required; otherwise palettes are shown without matches.
func (a *App) LoadReference(required bool) error {
	_, err := a.Palettes.Reload()
	if err == nil {
		return nil
	}
	if swerr.IsNotFound(err) && !required {
		PrintWarning("No reference table at %s, colours won't be matched", a.ReferenceStore.Path())
		return nil
	}
	return err
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
