package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
)

func setupDoctor(t *testing.T) (*DoctorService, *store.FileConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	cfgStore := store.NewConfigStore(config.NewPaths(filepath.Join(dir, "config"), dir))
	refPath := filepath.Join(dir, "colormap.json")
	return NewDoctorService(cfgStore, store.NewReferenceStore(refPath)), cfgStore, refPath
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func findIssue(report *DiagnosticReport, code string) *Issue {
	for i := range report.Issues {
		if report.Issues[i].Code == code {
			return &report.Issues[i]
		}
	}
	return nil
}

func TestDoctor_Healthy(t *testing.T) {
	svc, _, refPath := setupDoctor(t)
	testutil.WriteColormap(t, filepath.Dir(refPath), testutil.WoolColours())

	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Expected no issues, got %+v", report.Issues)
	}
	if !report.Reference.Exists || report.Reference.Entries != 6 || report.Reference.Valid != 6 {
		t.Errorf("Unexpected reference stats: %+v", report.Reference)
	}
}

func TestDoctor_MissingReference(t *testing.T) {
	svc, _, _ := setupDoctor(t)

	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	issue := findIssue(report, CodeMissingReference)
	if issue == nil || issue.Severity != SeverityWarning {
		t.Fatalf("Expected missing reference warning, got %+v", report.Issues)
	}
	if report.HasErrors() {
		t.Error("Missing reference should not be an error")
	}
}

func TestDoctor_MalformedReference(t *testing.T) {
	svc, _, refPath := setupDoctor(t)
	writeRaw(t, refPath, "{oops")

	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if findIssue(report, CodeMalformedReference) == nil {
		t.Errorf("Expected malformed reference issue, got %+v", report.Issues)
	}
	if !report.HasErrors() {
		t.Error("Expected errors")
	}
}

func TestDoctor_EntryIssues(t *testing.T) {
	svc, _, refPath := setupDoctor(t)
	writeRaw(t, refPath, `{
		"red_wool": "#a02722",
		"red_concrete": "A02722",
		"lime_wool": "#70b919",
		"broken": "#12345"
	}`)

	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	invalid := findIssue(report, CodeInvalidEntry)
	if invalid == nil || invalid.Entry != "broken" || !invalid.Fixable {
		t.Errorf("Expected fixable invalid entry for 'broken', got %+v", invalid)
	}
	canon := findIssue(report, CodeNonCanonicalHex)
	if canon == nil || canon.Entry != "red_concrete" {
		t.Errorf("Expected non-canonical hex for 'red_concrete', got %+v", canon)
	}
	dup := findIssue(report, CodeDuplicateColour)
	if dup == nil || dup.Entry != "red_concrete" || dup.Fixable {
		t.Errorf("Expected unfixable duplicate led by 'red_concrete', got %+v", dup)
	}

	if report.Summary.Errors != 1 || report.Summary.Warnings != 2 {
		t.Errorf("Expected 1 error and 2 warnings, got %+v", report.Summary)
	}
	if report.Reference.Entries != 4 || report.Reference.Valid != 3 {
		t.Errorf("Unexpected reference stats: %+v", report.Reference)
	}
}

func TestDoctor_Fix(t *testing.T) {
	svc, _, refPath := setupDoctor(t)
	writeRaw(t, refPath, `{"red_wool": "A02722", "broken": "nope", "lime_wool": "#70b919"}`)

	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	fixed, err := svc.Fix(report)
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if fixed.Summary.Fixed != 2 {
		t.Errorf("Expected 2 fixed, got %d", fixed.Summary.Fixed)
	}
	if len(fixed.Issues) != 0 {
		t.Errorf("Expected no remaining issues, got %+v", fixed.Issues)
	}

	table, err := store.NewReferenceStore(refPath).Load()
	if err != nil {
		t.Fatalf("Load after fix failed: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Expected 2 entries after fix, got %d", table.Len())
	}
	if e, _ := table.Get("red_wool"); e.Hex != "#a02722" {
		t.Errorf("Expected red_wool canonicalised, got %q", e.Hex)
	}
}

func TestDoctor_FixNothingToDo(t *testing.T) {
	svc, _, refPath := setupDoctor(t)
	testutil.WriteColormap(t, filepath.Dir(refPath), testutil.WoolColours())
	before, _ := os.ReadFile(refPath)

	report, _ := svc.Diagnose()
	after, err := svc.Fix(report)
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if after.Summary.Fixed != 0 {
		t.Errorf("Expected nothing fixed, got %d", after.Summary.Fixed)
	}
	now, _ := os.ReadFile(refPath)
	if string(before) != string(now) {
		t.Error("Expected reference file untouched")
	}
}

func TestDoctor_ConfigIssues(t *testing.T) {
	svc, cfgStore, _ := setupDoctor(t)

	cfg := model.DefaultConfig()
	cfg.DefaultColour = "teal"
	cfg.WheelSize = 5000
	if err := cfgStore.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if findIssue(report, CodeInvalidDefaultColour) == nil {
		t.Errorf("Expected invalid default colour, got %+v", report.Issues)
	}
	if findIssue(report, CodeWheelSizeClamped) == nil {
		t.Errorf("Expected clamped wheel size, got %+v", report.Issues)
	}
}

func TestDoctor_MalformedConfig(t *testing.T) {
	dir := t.TempDir()
	paths := config.NewPaths(dir, dir)
	writeRaw(t, paths.ConfigPath(), "port = = 1")

	svc := NewDoctorService(store.NewConfigStore(paths), store.NewReferenceStore(filepath.Join(dir, "colormap.json")))
	report, err := svc.Diagnose()
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if findIssue(report, CodeMalformedConfig) == nil {
		t.Errorf("Expected malformed config, got %+v", report.Issues)
	}
}
