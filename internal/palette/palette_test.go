package palette

import (
	"math"
	"testing"

	"github.com/amterp/swatch/internal/colour"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGenerate_Layout(t *testing.T) {
	want := []int{2, 2, 3, 3, 3, 4, 4}
	got := Layout()
	if len(got) != len(want) {
		t.Fatalf("Layout() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scheme %d (%s): %d colours, want %d", i, Schemes[i].Name, got[i], want[i])
		}
	}

	palettes := Generate(colour.HLS{H: 0.3, L: 0.5, S: 0.5})
	if n := len(Flatten(palettes)); n != 21 {
		t.Errorf("Flatten() returned %d colours, want 21", n)
	}
}

func TestGenerate_ContainsPrimary(t *testing.T) {
	p := colour.HLS{H: 0.42, L: 0.37, S: 0.81}
	for _, pal := range Generate(p) {
		found := false
		for _, c := range pal.Colors {
			if c == p {
				found = true
			}
		}
		if !found {
			t.Errorf("%s does not contain the primary colour", pal.Scheme.Name)
		}
	}
}

func TestGenerate_Offsets(t *testing.T) {
	p := colour.HLS{H: 0.1, L: 0.5, S: 0.6}
	palettes := Generate(p)

	tests := []struct {
		scheme string
		hues   []float64
	}{
		{"Complementary", []float64{0.1, 0.6}},
		{"Monochromatic", []float64{0.1, 0.1}},
		{"Analogous", []float64{0.1 - 0.0833, 0.1, 0.1 + 0.0833}},
		{"Triadic", []float64{0.1 + 0.333, 0.1, 0.1 + 0.666}},
		{"Split Comp.", []float64{0.1 + 0.5 - 0.0833, 0.1, 0.1 + 0.5 + 0.0833}},
		{"Square", []float64{0.1, 0.35, 0.6, 0.85}},
		{"Rectangle", []float64{0.1, 0.1 + 0.1666, 0.1 + 0.4998, 0.1 + 0.6664}},
	}

	for i, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			pal := palettes[i]
			if pal.Scheme.Name != tt.scheme {
				t.Fatalf("scheme %d = %q, want %q", i, pal.Scheme.Name, tt.scheme)
			}
			if len(pal.Colors) != len(tt.hues) {
				t.Fatalf("got %d colours, want %d", len(pal.Colors), len(tt.hues))
			}
			for j, h := range tt.hues {
				if !near(pal.Colors[j].H, colour.WrapHue(h)) {
					t.Errorf("colour %d hue = %v, want %v", j, pal.Colors[j].H, colour.WrapHue(h))
				}
			}
		})
	}
}

func TestGenerate_HuesWrapIntoUnitRange(t *testing.T) {
	for _, h := range []float64{0, 0.01, 0.5, 0.92, 0.9999} {
		for _, pal := range Generate(colour.HLS{H: h, L: 0.5, S: 1}) {
			for _, c := range pal.Colors {
				if c.H < 0 || c.H >= 1 {
					t.Errorf("h=%v %s produced hue %v outside [0,1)", h, pal.Scheme.Name, c.H)
				}
			}
		}
	}
}

func TestMonochromatic_ClampsLightness(t *testing.T) {
	tests := []struct {
		l, want float64
	}{
		{0.2, 0.3},
		{0.95, 1.0},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		got := Generate(colour.HLS{H: 0.5, L: tt.l, S: 0.5})[1].Colors[1]
		if !near(got.L, tt.want) {
			t.Errorf("L=%v: lifted lightness = %v, want %v", tt.l, got.L, tt.want)
		}
	}
}

func TestComplement_TwiceIsIdentity(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := colour.HLS{H: float64(i) / 100, L: 0.5, S: 0.5}
		back := Complement(Complement(c))
		if colour.HueDistance(back.H, c.H) > 1e-9 {
			t.Errorf("Complement twice: %v -> %v", c.H, back.H)
		}
	}
}

func TestSchemes_UniqueShapes(t *testing.T) {
	seen := map[Shape]string{}
	for _, s := range Schemes {
		if other, ok := seen[s.Shape]; ok {
			t.Errorf("shape %q used by both %s and %s", s.Shape, other, s.Name)
		}
		seen[s.Shape] = s.Name
	}
}
