package wheel

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/amterp/swatch/internal/colour"
	"github.com/amterp/swatch/internal/palette"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func closeColor(t *testing.T, name string, got color.Color, want color.RGBA, tolerance int) {
	t.Helper()
	r, g, b, a := got.RGBA()
	gr, gg, gb, ga := int(r>>8), int(g>>8), int(b>>8), int(a>>8)
	diff := func(x int, y uint8) bool {
		d := x - int(y)
		return d > tolerance || d < -tolerance
	}
	if diff(gr, want.R) || diff(gg, want.G) || diff(gb, want.B) || diff(ga, want.A) {
		t.Errorf("%s = (%d,%d,%d,%d), want %v", name, gr, gg, gb, ga, want)
	}
}

func TestNewGeometry_Base(t *testing.T) {
	g := NewGeometry(300)

	if g.Size != 300 || g.Center != 150 || g.Radius != 140 {
		t.Errorf("size/center/radius = %d/%v/%v", g.Size, g.Center, g.Radius)
	}
	if g.MarkerSize != 7 || g.MarkerOutline != 2 {
		t.Errorf("marker = %d/%d", g.MarkerSize, g.MarkerOutline)
	}
	if g.PrimarySize != 11 || g.PrimaryOutline != 3 {
		t.Errorf("primary = %d/%d", g.PrimarySize, g.PrimaryOutline)
	}
	if g.LabelHalfW != 30 || g.LabelHalfH != 9 || g.LabelOffset != 22 || g.FontSize != 8 {
		t.Errorf("label = %d/%d/%d/%d", g.LabelHalfW, g.LabelHalfH, g.LabelOffset, g.FontSize)
	}
}

func TestNewGeometry_Scaled(t *testing.T) {
	g := NewGeometry(600)
	if g.Radius != 280 {
		t.Errorf("radius = %v, want 280", g.Radius)
	}
	if g.MarkerSize != 14 || g.PrimarySize != 22 {
		t.Errorf("marker/primary = %d/%d", g.MarkerSize, g.PrimarySize)
	}
}

func TestNewGeometry_Clamped(t *testing.T) {
	small := NewGeometry(10)
	if small.Size != MinSize {
		t.Errorf("small size = %d, want %d", small.Size, MinSize)
	}
	if small.Radius != 20 || small.MarkerSize != 2 || small.PrimarySize != 3 || small.LabelHalfW != 10 {
		t.Errorf("small minimums not applied: %+v", small)
	}

	if big := NewGeometry(5000); big.Size != MaxSize {
		t.Errorf("big size = %d, want %d", big.Size, MaxSize)
	}
	if odd := NewGeometry(301); odd.Size != 300 {
		t.Errorf("odd size = %d, want 300", odd.Size)
	}
}

func TestGeometry_Position(t *testing.T) {
	g := NewGeometry(300)

	tests := []struct {
		c      colour.HLS
		wx, wy float64
	}{
		{colour.HLS{H: 0, S: 1}, 290, 150},
		{colour.HLS{H: 0.25, S: 1}, 150, 10},
		{colour.HLS{H: 0.5, S: 0.5}, 80, 150},
		{colour.HLS{H: 0.75, S: 1}, 150, 290},
		{colour.HLS{H: 0.3, S: 0}, 150, 150},
	}
	for _, tt := range tests {
		x, y := g.Position(tt.c)
		if math.Abs(x-tt.wx) > 1e-6 || math.Abs(y-tt.wy) > 1e-6 {
			t.Errorf("Position(%+v) = (%v, %v), want (%v, %v)", tt.c, x, y, tt.wx, tt.wy)
		}
	}
}

func TestGeometry_AtInvertsPosition(t *testing.T) {
	g := NewGeometry(300)
	for _, c := range []colour.HLS{{H: 0.1, S: 0.8}, {H: 0.6, S: 0.3}, {H: 0.95, S: 1}} {
		x, y := g.Position(c)
		h, s, ok := g.At(x, y)
		if !ok {
			t.Fatalf("At(%v, %v) outside disc", x, y)
		}
		if math.Abs(h-c.H) > 1e-9 || math.Abs(s-c.S) > 1e-9 {
			t.Errorf("At(Position(%+v)) = (%v, %v)", c, h, s)
		}
	}

	if _, _, ok := g.At(0, 0); ok {
		t.Error("corner should be outside the disc")
	}
}

func TestGeometry_LabelCenter(t *testing.T) {
	g := NewGeometry(300)

	if _, y := g.LabelCenter(150, 40); !approx(y, 62) {
		t.Errorf("top half label y = %v, want 62", y)
	}
	if _, y := g.LabelCenter(150, 260); !approx(y, 238) {
		t.Errorf("bottom half label y = %v, want 238", y)
	}
	if x, _ := g.LabelCenter(5, 150); !approx(x, 32) {
		t.Errorf("left clamp x = %v, want 32", x)
	}
	if x, _ := g.LabelCenter(298, 150); !approx(x, 268) {
		t.Errorf("right clamp x = %v, want 268", x)
	}
}

func TestShapePoints(t *testing.T) {
	counts := map[palette.Shape]int{
		palette.ShapeCircle:       circleSegments,
		palette.ShapeSquare:       4,
		palette.ShapeTriangleUp:   3,
		palette.ShapeTriangleDown: 3,
		palette.ShapeDiamond:      4,
		palette.ShapePentagon:     5,
		palette.ShapeHexagon:      6,
	}
	for shape, want := range counts {
		if got := len(ShapePoints(shape, 0, 0, 5)); got != want {
			t.Errorf("%s has %d points, want %d", shape, got, want)
		}
	}

	up := ShapePoints(palette.ShapeTriangleUp, 10, 10, 4)
	if up[0] != [2]float64{10, 6} {
		t.Errorf("triangle_up apex = %v, want [10 6]", up[0])
	}
	down := ShapePoints(palette.ShapeTriangleDown, 10, 10, 4)
	if down[0] != [2]float64{10, 14} {
		t.Errorf("triangle_down apex = %v, want [10 14]", down[0])
	}

	pent := ShapePoints(palette.ShapePentagon, 0, 0, 1)
	if math.Abs(pent[0][0]) > 1e-9 || math.Abs(pent[0][1]+1) > 1e-9 {
		t.Errorf("pentagon first vertex = %v, want top", pent[0])
	}
}

func TestRender_Disc(t *testing.T) {
	r, err := NewRenderer(300)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	img := r.Render(colour.HLS{H: 0.25, L: 0.5, S: 0.9}, nil)

	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Fatalf("bounds = %v", b)
	}

	closeColor(t, "centre", img.At(150, 150), color.RGBA{128, 128, 128, 255}, 1)
	closeColor(t, "corner", img.At(0, 0), color.RGBA{}, 0)

	// Right of centre is red, left is cyan.
	r0, g0, b0, _ := img.At(270, 150).RGBA()
	if r0 < g0 || r0 < b0 {
		t.Errorf("hue 0 pixel not red: %d %d %d", r0>>8, g0>>8, b0>>8)
	}
	r1, g1, b1, _ := img.At(30, 150).RGBA()
	if r1 > g1 || r1 > b1 {
		t.Errorf("hue 0.5 pixel not cyan: %d %d %d", r1>>8, g1>>8, b1>>8)
	}
}

func TestRender_MarkersAndLabel(t *testing.T) {
	r, err := NewRenderer(300)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	g := r.Geometry()

	primary := colour.HLS{H: 0, L: 0.3, S: 0}
	marker := colour.HLS{H: 0.6, L: 0.5, S: 0.8}
	img := r.Render(primary, []Marker{{Color: marker, Shape: palette.ShapeSquare}})

	mx, my := g.Position(marker)
	closeColor(t, "marker", img.At(int(mx), int(my)), marker.RGBA(), 0)

	closeColor(t, "primary", img.At(150, 150), primary.RGBA(), 0)

	// Primary sits on the centre line, so the label goes above it.
	closeColor(t, "label border", img.At(120, 119), LabelBorder, 0)
	closeColor(t, "label fill", img.At(121, 120), LabelFill, 0)
}

func TestWritePNG(t *testing.T) {
	r, err := NewRenderer(120)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	primary := colour.MustParseHex("#3366cc")

	var buf bytes.Buffer
	if err := r.WritePNG(&buf, primary, MarkersFor(palette.Generate(primary))); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Errorf("bounds = %v", b)
	}
}

func TestMarkersFor(t *testing.T) {
	palettes := palette.Generate(colour.MustParseHex("#cc3333"))
	markers := MarkersFor(palettes)

	if len(markers) != len(palette.Flatten(palettes)) {
		t.Fatalf("got %d markers, want %d", len(markers), len(palette.Flatten(palettes)))
	}
	if markers[0].Shape != palettes[0].Scheme.Shape {
		t.Errorf("first marker shape = %s", markers[0].Shape)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()

	a, err := c.Get(300)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	b, _ := c.Get(301)
	if a != b {
		t.Error("sizes that clamp to the same geometry should share a renderer")
	}
	if _, err := c.Get(200); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
