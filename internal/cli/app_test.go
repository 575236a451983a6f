package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/testutil"
)

func setupTestApp(t *testing.T, reference string) (*App, string) {
	t.Helper()
	for _, k := range []string{config.EnvReference, config.EnvDefaultColour, config.EnvRestrict, config.EnvWheelSize, config.EnvPort} {
		t.Setenv(k, "")
	}

	workDir := t.TempDir()
	paths := config.NewPaths(filepath.Join(t.TempDir(), "config"), workDir)
	app, err := newAppWithPaths(paths, false, reference)
	if err != nil {
		t.Fatalf("newAppWithPaths failed: %v", err)
	}
	return app, workDir
}

func TestNewApp_Defaults(t *testing.T) {
	app, workDir := setupTestApp(t, "")

	if _, ok := app.Prompter.(*prompt.NoopPrompter); !ok {
		t.Errorf("Expected NoopPrompter for non-interactive app, got %T", app.Prompter)
	}
	want := filepath.Join(workDir, "colormap.json")
	if app.ReferenceStore.Path() != want {
		t.Errorf("Expected reference %q, got %q", want, app.ReferenceStore.Path())
	}
	if app.Config.DefaultColour != "#cccccc" {
		t.Errorf("Expected default colour #cccccc, got %q", app.Config.DefaultColour)
	}
}

func TestNewApp_ReferenceOverride(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "wool.json")
	app, _ := setupTestApp(t, abs)

	if app.ReferenceStore.Path() != abs {
		t.Errorf("Expected reference %q, got %q", abs, app.ReferenceStore.Path())
	}
	if app.Palettes.ReferencePath() != abs {
		t.Errorf("Expected palette service to read %q, got %q", abs, app.Palettes.ReferencePath())
	}
}

func TestNewApp_DotEnv(t *testing.T) {
	for _, k := range []string{config.EnvReference, config.EnvDefaultColour, config.EnvRestrict, config.EnvWheelSize, config.EnvPort} {
		t.Setenv(k, "")
	}
	// godotenv does not override set variables, so unset the one under test
	os.Unsetenv(config.EnvWheelSize)

	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, ".env"), []byte("SWATCH_WHEEL_SIZE=480\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	paths := config.NewPaths(t.TempDir(), workDir)
	app, err := newAppWithPaths(paths, false, "")
	if err != nil {
		t.Fatalf("newAppWithPaths failed: %v", err)
	}
	if app.Config.WheelSize != 480 {
		t.Errorf("Expected wheel size 480 from .env, got %d", app.Config.WheelSize)
	}
}

func TestApp_LoadReference(t *testing.T) {
	app, workDir := setupTestApp(t, "")

	// Missing table is only fatal when required
	if err := app.LoadReference(false); err != nil {
		t.Errorf("Expected no error for optional missing table, got %v", err)
	}
	if err := app.LoadReference(true); err == nil {
		t.Error("Expected error for required missing table")
	}

	testutil.WriteColormap(t, workDir, testutil.WoolColours())
	if err := app.LoadReference(true); err != nil {
		t.Fatalf("LoadReference failed: %v", err)
	}
	if app.Palettes.Table().Len() != len(testutil.WoolColours()) {
		t.Errorf("Expected %d entries, got %d", len(testutil.WoolColours()), app.Palettes.Table().Len())
	}
}

func TestApp_LoadReference_CorruptIsFatal(t *testing.T) {
	app, workDir := setupTestApp(t, "")
	if err := os.WriteFile(filepath.Join(workDir, "colormap.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := app.LoadReference(false); err == nil {
		t.Error("Expected error for corrupt table even when optional")
	}
}

func TestNewApp_FindsReferenceInParent(t *testing.T) {
	for _, k := range []string{config.EnvReference, config.EnvDefaultColour, config.EnvRestrict, config.EnvWheelSize, config.EnvPort} {
		t.Setenv(k, "")
	}

	root := t.TempDir()
	want := testutil.WriteColormap(t, root, testutil.WoolColours())
	workDir := filepath.Join(root, "textures")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	app, err := newAppWithPaths(config.NewPaths(t.TempDir(), workDir), false, "")
	if err != nil {
		t.Fatalf("newAppWithPaths failed: %v", err)
	}
	if app.ReferenceStore.Path() != want {
		t.Errorf("Expected reference from parent %q, got %q", want, app.ReferenceStore.Path())
	}
}
