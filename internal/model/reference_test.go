package model

import (
	"testing"

	"github.com/amterp/swatch/internal/colour"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/palette"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(map[string]string{
		"red_wool":    "#a02722",
		"blue_wool":   "#35399d",
		"lime_wool":   "#70b919",
		"white_wool":  "#e9ecec",
		"black_wool":  "#141519",
		"orange_wool": "#f07613",
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table
}

func TestNewTable_SortedAndNormalised(t *testing.T) {
	table, err := NewTable(map[string]string{
		"b": "ABCDEF",
		"a": "#123456",
		"c": "#FfFfFf",
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	entries := table.Entries()
	wantIDs := []string{"a", "b", "c"}
	wantHex := []string{"#123456", "#abcdef", "#ffffff"}
	for i := range wantIDs {
		if entries[i].ID != wantIDs[i] {
			t.Errorf("entry %d ID = %q, want %q", i, entries[i].ID, wantIDs[i])
		}
		if entries[i].Hex != wantHex[i] {
			t.Errorf("entry %d Hex = %q, want %q", i, entries[i].Hex, wantHex[i])
		}
	}
}

func TestNewTable_InvalidHex(t *testing.T) {
	_, err := NewTable(map[string]string{"stone": "#7d7d7d", "broken": "#12345"})
	if err == nil {
		t.Fatal("expected error for invalid hex")
	}
	if !swerr.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestNewTable_EmptyID(t *testing.T) {
	if _, err := NewTable(map[string]string{"": "#000000"}); err == nil {
		t.Fatal("expected error for empty identifier")
	}
}

func TestTable_Nearest_ExactMatch(t *testing.T) {
	table := testTable(t)
	for _, e := range table.Entries() {
		got, ok := table.Nearest(e.Color)
		if !ok {
			t.Fatalf("Nearest(%s) returned no result", e.ID)
		}
		if got.ID != e.ID {
			t.Errorf("Nearest(%s colour) = %s", e.ID, got.ID)
		}
	}
}

func TestTable_Nearest_Approximate(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		hex  string
		want string
	}{
		{"#b02020", "red_wool"},
		{"#3030a0", "blue_wool"},
		{"#70c020", "lime_wool"},
		{"#e0e8e8", "white_wool"},
		{"#181820", "black_wool"},
		{"#ff8800", "orange_wool"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, ok := table.Nearest(colour.MustParseHex(tt.hex))
			if !ok {
				t.Fatal("no result")
			}
			if got.ID != tt.want {
				t.Errorf("Nearest(%s) = %s, want %s", tt.hex, got.ID, tt.want)
			}
		})
	}
}

func TestTable_Nearest_TieGoesToFirstID(t *testing.T) {
	table, err := NewTable(map[string]string{
		"zeta":  "#808080",
		"alpha": "#808080",
		"mid":   "#808080",
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	got, _ := table.Nearest(colour.MustParseHex("#808080"))
	if got.ID != "alpha" {
		t.Errorf("tie resolved to %q, want %q", got.ID, "alpha")
	}
}

func TestTable_Nearest_HueWrapsAround(t *testing.T) {
	// A hue of 0.98 is closer to 0.01 than to 0.9 on the circle.
	table, err := NewTable(map[string]string{
		"just_past_red": colour.HLS{H: 0.01, L: 0.5, S: 1}.Hex(),
		"magenta":       colour.HLS{H: 0.9, L: 0.5, S: 1}.Hex(),
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	got, _ := table.Nearest(colour.HLS{H: 0.98, L: 0.5, S: 1})
	if got.ID != "just_past_red" {
		t.Errorf("Nearest = %s, want just_past_red", got.ID)
	}
}

func TestTable_Nearest_Empty(t *testing.T) {
	if _, ok := EmptyTable().Nearest(colour.HLS{}); ok {
		t.Error("expected no result on empty table")
	}
}

func TestTable_NearestN(t *testing.T) {
	table := testTable(t)
	target := colour.MustParseHex("#b02020")

	got := table.NearestN(target, 3)
	if len(got) != 3 {
		t.Fatalf("NearestN returned %d entries, want 3", len(got))
	}
	if got[0].ID != "red_wool" {
		t.Errorf("first = %s, want red_wool", got[0].ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Errorf("results not sorted at %d: %v < %v", i, got[i].Distance, got[i-1].Distance)
		}
	}

	if all := table.NearestN(target, 100); len(all) != table.Len() {
		t.Errorf("NearestN(100) returned %d, want %d", len(all), table.Len())
	}
	if none := table.NearestN(target, 0); len(none) != 0 {
		t.Errorf("NearestN(0) returned %d entries", len(none))
	}
}

func TestTable_GetAndRaw(t *testing.T) {
	table := testTable(t)

	e, ok := table.Get("lime_wool")
	if !ok || e.Hex != "#70b919" {
		t.Errorf("Get(lime_wool) = %+v, %v", e, ok)
	}
	if _, ok := table.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}

	raw := table.Raw()
	if len(raw) != table.Len() || raw["black_wool"] != "#141519" {
		t.Errorf("Raw() = %v", raw)
	}
}

func TestTable_MatchPalettes(t *testing.T) {
	table := testTable(t)
	palettes := palette.Generate(colour.MustParseHex("#a02722"))

	matched, ok := table.MatchPalettes(palettes)
	if !ok {
		t.Fatal("MatchPalettes returned no result")
	}
	if len(matched) != len(palettes) {
		t.Fatalf("got %d palettes, want %d", len(matched), len(palettes))
	}
	for i, p := range palettes {
		if len(matched[i]) != len(p.Colors) {
			t.Errorf("palette %d: %d matches for %d colours", i, len(matched[i]), len(p.Colors))
		}
		for j, c := range p.Colors {
			want, _ := table.Nearest(c)
			if matched[i][j].ID != want.ID {
				t.Errorf("palette %d colour %d = %s, want %s", i, j, matched[i][j].ID, want.ID)
			}
		}
	}

	// The primary is an exact table colour.
	if matched[0][0].ID != "red_wool" {
		t.Errorf("primary matched %s, want red_wool", matched[0][0].ID)
	}

	if _, ok := EmptyTable().MatchPalettes(palettes); ok {
		t.Error("expected no result on empty table")
	}
}
