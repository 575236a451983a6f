package service

import (
	"io"
	"sync"

	"github.com/amterp/swatch/internal/colour"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/internal/util"
	"github.com/amterp/swatch/internal/wheel"
)

// ColourMatch is the reference entry a palette colour snapped to.
type ColourMatch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// SwatchColour is one colour as shown to the user. In restricted mode Hex
// and HLS are the matched reference colour rather than the generated one.
type SwatchColour struct {
	Hex       string       `json:"hex"`
	HLS       colour.HLS   `json:"hls"`
	Generated string       `json:"generated"`
	Match     *ColourMatch `json:"match,omitempty"`
}

// SchemeResult is one palette with its legend data.
type SchemeResult struct {
	Name   string         `json:"name"`
	Shape  palette.Shape  `json:"shape"`
	Colors []SwatchColour `json:"colors"`
}

// PaletteResult is the full palette view for one primary colour.
type PaletteResult struct {
	Primary    SwatchColour   `json:"primary"`
	Restricted bool           `json:"restricted"`
	Schemes    []SchemeResult `json:"schemes"`
}

// Markers returns the wheel markers for every displayed colour.
func (r *PaletteResult) Markers() []wheel.Marker {
	var out []wheel.Marker
	for _, s := range r.Schemes {
		for _, c := range s.Colors {
			out = append(out, wheel.Marker{Color: c.HLS, Shape: s.Shape})
		}
	}
	return out
}

// Count returns the number of colours across all schemes.
func (r *PaletteResult) Count() int {
	n := 0
	for _, s := range r.Schemes {
		n += len(s.Colors)
	}
	return n
}

// PaletteService generates palettes and matches them against the reference
// table. The table can be swapped at runtime by Reload.
type PaletteService struct {
	refStore store.ReferenceStore
	wheels   *wheel.Cache

	mu    sync.RWMutex
	table *model.Table
}

// NewPaletteService creates a service with an empty table. Call Reload to
// read the reference store.
func NewPaletteService(refStore store.ReferenceStore) *PaletteService {
	return &PaletteService{
		refStore: refStore,
		wheels:   wheel.NewCache(),
		table:    model.EmptyTable(),
	}
}

// Reload reads the reference store and swaps in the new table. On error the
// current table is kept.
func (s *PaletteService) Reload() (int, error) {
	table, err := s.refStore.Load()
	if err != nil {
		return 0, err
	}
	s.SetTable(table)
	return table.Len(), nil
}

// SetTable replaces the reference table.
func (s *PaletteService) SetTable(table *model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// Table returns the current reference table.
func (s *PaletteService) Table() *model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// ReferencePath returns where the reference table is read from.
func (s *PaletteService) ReferencePath() string {
	return s.refStore.Path()
}

// Resolve turns user input into a hex colour. Input is either a hex colour,
// with or without '#', or the identifier of a reference entry.
func (s *PaletteService) Resolve(input string) (string, error) {
	if c, ok := colour.ParseHex(input); ok {
		return c.Hex(), nil
	}
	if e, ok := s.Table().Get(input); ok {
		return e.Hex, nil
	}
	return "", swerr.InvalidHex(input)
}

// Build generates all schemes for hex. Colours are matched whenever the
// table has entries. With restrict, matched colours replace generated ones.
func (s *PaletteService) Build(hex string, restrict bool) (*PaletteResult, error) {
	primary, ok := colour.ParseHex(hex)
	if !ok {
		return nil, swerr.InvalidHex(hex)
	}

	table := s.Table()
	if restrict && table.Len() == 0 {
		return nil, swerr.InvalidField("restrict", "no reference colours loaded from "+s.refStore.Path())
	}

	palettes := palette.Generate(primary)
	matched, hasMatches := table.MatchPalettes(palettes)

	res := &PaletteResult{
		Restricted: restrict,
		Schemes:    make([]SchemeResult, len(palettes)),
	}
	for i, p := range palettes {
		sr := SchemeResult{
			Name:   p.Scheme.Name,
			Shape:  p.Scheme.Shape,
			Colors: make([]SwatchColour, len(p.Colors)),
		}
		for j, c := range p.Colors {
			sc := SwatchColour{Hex: c.Hex(), HLS: c, Generated: c.Hex()}
			if hasMatches {
				e := matched[i][j]
				sc.Match = toColourMatch(e)
				if restrict {
					sc.Hex = e.Hex
					sc.HLS = e.Color
				}
			}
			sr.Colors[j] = sc
		}
		res.Schemes[i] = sr
	}

	// Complementary leads with the primary.
	res.Primary = res.Schemes[0].Colors[0]
	return res, nil
}

// Match returns the n reference entries closest to hex.
func (s *PaletteService) Match(hex string, n int) ([]model.Ranked, error) {
	target, ok := colour.ParseHex(hex)
	if !ok {
		return nil, swerr.InvalidHex(hex)
	}
	if n <= 0 {
		return nil, swerr.InvalidField("n", "must be positive")
	}
	return s.Table().NearestN(target, n), nil
}

// RenderWheel writes the wheel PNG for a palette result.
func (s *PaletteService) RenderWheel(w io.Writer, res *PaletteResult, size int) error {
	r, err := s.wheels.Get(size)
	if err != nil {
		return err
	}
	return r.WritePNG(w, res.Primary.HLS, res.Markers())
}

func toColourMatch(e model.Entry) *ColourMatch {
	return &ColourMatch{ID: e.ID, Name: util.DisplayName(e.ID), Hex: e.Hex}
}

// Legend describes each scheme's marker shape.
type Legend struct {
	Name   string        `json:"name"`
	Shape  palette.Shape `json:"shape"`
	Colors int           `json:"colors"`
}

// Legends returns the scheme legend in display order.
func Legends() []Legend {
	layout := palette.Layout()
	out := make([]Legend, len(palette.Schemes))
	for i, s := range palette.Schemes {
		out[i] = Legend{Name: s.Name, Shape: s.Shape, Colors: layout[i]}
	}
	return out
}
