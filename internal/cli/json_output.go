package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/sampler"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/util"
)

// PaletteOutput wraps a palette result for JSON output.
type PaletteOutput struct {
	Palette *service.PaletteResult `json:"palette"`
}

// NewPaletteOutput creates a PaletteOutput from a palette result.
func NewPaletteOutput(res *service.PaletteResult) PaletteOutput {
	return PaletteOutput{Palette: res}
}

// entryJson is a reference entry with its display name for JSON output.
type entryJson struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Hex      string   `json:"hex"`
	Distance *float64 `json:"distance,omitempty"`
}

func entryToJson(e model.Entry) entryJson {
	return entryJson{ID: e.ID, Name: util.DisplayName(e.ID), Hex: e.Hex}
}

// MatchOutput wraps the nearest reference entries for JSON output.
type MatchOutput struct {
	Hex     string      `json:"hex"`
	Matches []entryJson `json:"matches"`
}

// NewMatchOutput creates a MatchOutput from ranked entries.
// Always returns an empty array (not null) when there are no matches.
func NewMatchOutput(hex string, ranked []model.Ranked) MatchOutput {
	matches := make([]entryJson, 0, len(ranked))
	for _, r := range ranked {
		e := entryToJson(r.Entry)
		d := r.Distance
		e.Distance = &d
		matches = append(matches, e)
	}
	return MatchOutput{Hex: hex, Matches: matches}
}

// ReferenceOutput wraps reference entries for JSON output.
type ReferenceOutput struct {
	Path    string      `json:"path"`
	Count   int         `json:"count"`
	Entries []entryJson `json:"entries"`
}

// NewReferenceOutput creates a ReferenceOutput from table entries.
// Always returns an empty array (not null) when there are no entries.
func NewReferenceOutput(path string, entries []model.Entry) ReferenceOutput {
	out := make([]entryJson, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToJson(e))
	}
	return ReferenceOutput{Path: path, Count: len(out), Entries: out}
}

// BuildOutput summarises a build for JSON output.
type BuildOutput struct {
	Path    string         `json:"path"`
	Scanned int            `json:"scanned"`
	Written int            `json:"written"`
	Skipped []sampler.Skip `json:"skipped"`
}

// NewBuildOutput creates a BuildOutput from a sampling result.
// Always returns an empty array (not null) when nothing was skipped.
func NewBuildOutput(path string, res *sampler.Result) BuildOutput {
	skipped := res.Skipped
	if skipped == nil {
		skipped = []sampler.Skip{}
	}
	return BuildOutput{
		Path:    path,
		Scanned: res.Scanned,
		Written: len(res.Entries),
		Skipped: skipped,
	}
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
