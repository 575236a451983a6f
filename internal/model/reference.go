package model

import (
	"math"
	"sort"

	"github.com/amterp/swatch/internal/colour"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/palette"
)

// Entry is one colour of the reference table.
type Entry struct {
	ID    string     `json:"id"`
	Hex   string     `json:"hex"`
	Color colour.HLS `json:"hls"`
}

// Ranked pairs an entry with its distance from a match target.
type Ranked struct {
	Entry
	Distance float64 `json:"distance"`
}

// Table is the read-only reference table used for nearest-colour matching.
// Entries are held sorted by ID so iteration, and therefore tie-breaking, is
// deterministic.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable builds a table from an identifier -> hex colour map.
// Every value must be a valid 6-digit hex colour.
func NewTable(raw map[string]string) (*Table, error) {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t := &Table{
		entries: make([]Entry, 0, len(ids)),
		index:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		if id == "" {
			return nil, swerr.InvalidField("reference entry", "identifier must not be empty")
		}
		c, ok := colour.ParseHex(raw[id])
		if !ok {
			return nil, swerr.InvalidField("reference entry "+id, "value "+raw[id]+" is not a 6-digit hex colour")
		}
		t.index[id] = len(t.entries)
		t.entries = append(t.entries, Entry{ID: id, Hex: c.Hex(), Color: c})
	}
	return t, nil
}

// EmptyTable returns a table with no entries. Nearest always fails on it.
func EmptyTable() *Table {
	return &Table{index: map[string]int{}}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of all entries, sorted by ID.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Get looks up an entry by ID.
func (t *Table) Get(id string) (Entry, bool) {
	i, ok := t.index[id]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Raw returns the table in its on-disk form.
func (t *Table) Raw() map[string]string {
	out := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		out[e.ID] = e.Hex
	}
	return out
}

// Nearest returns the entry closest to target under colour.Distance.
// On equal distances the entry with the smaller ID wins.
func (t *Table) Nearest(target colour.HLS) (Entry, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range t.entries {
		d := colour.Distance(target, e.Color)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	return t.entries[best], true
}

// NearestN returns up to n entries ordered by increasing distance from target.
func (t *Table) NearestN(target colour.HLS, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}

	ranked := make([]Ranked, len(t.entries))
	for i, e := range t.entries {
		ranked[i] = Ranked{Entry: e, Distance: colour.Distance(target, e.Color)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// MatchPalettes maps every colour of every palette to its nearest entry,
// keeping the palette layout. Returns false on an empty table.
func (t *Table) MatchPalettes(palettes []palette.Palette) ([][]Entry, bool) {
	if len(t.entries) == 0 {
		return nil, false
	}

	out := make([][]Entry, len(palettes))
	for i, p := range palettes {
		out[i] = make([]Entry, len(p.Colors))
		for j, c := range p.Colors {
			out[i][j], _ = t.Nearest(c)
		}
	}
	return out, true
}
