package wheel

import (
	"math"

	"github.com/amterp/swatch/internal/colour"
)

// Base dimensions at scale 1.0. Everything else scales from BaseSize.
const (
	BaseSize           = 300
	BasePadding        = 10
	BaseMarkerSize     = 7
	BasePrimarySize    = 11
	BaseMarkerOutline  = 2
	BasePrimaryOutline = 3
	BaseLabelHalfW     = 30
	BaseLabelHalfH     = 9
	BaseLabelOffset    = 22
	BaseFontSize       = 8

	MinSize = 40
	MaxSize = 1200
)

// Geometry holds the pixel measurements for a wheel of a given size.
type Geometry struct {
	Size   int     // Edge length of the square image
	Center float64 // Centre coordinate on both axes
	Radius float64 // Disc radius
	Scale  float64 // Size relative to BaseSize

	MarkerSize     int
	MarkerOutline  int
	PrimarySize    int
	PrimaryOutline int
	LabelHalfW     int
	LabelHalfH     int
	LabelOffset    int
	FontSize       int
}

// NewGeometry computes measurements for the requested edge length, clamped
// to [MinSize, MaxSize].
func NewGeometry(size int) Geometry {
	size = max(MinSize, min(MaxSize, size))
	scale := float64(size) / BaseSize

	center := size / 2
	padding := max(1, int(BasePadding*scale))
	radius := max(20, (center*2-2*padding)/2)

	return Geometry{
		Size:           center * 2,
		Center:         float64(center),
		Radius:         float64(radius),
		Scale:          scale,
		MarkerSize:     max(2, int(BaseMarkerSize*scale)),
		MarkerOutline:  max(1, int(BaseMarkerOutline*scale)),
		PrimarySize:    max(3, int(BasePrimarySize*scale)),
		PrimaryOutline: max(1, int(BasePrimaryOutline*scale)),
		LabelHalfW:     max(10, int(BaseLabelHalfW*scale)),
		LabelHalfH:     max(4, int(BaseLabelHalfH*scale)),
		LabelOffset:    max(8, int(BaseLabelOffset*scale)),
		FontSize:       max(1, int(BaseFontSize*scale)),
	}
}

// Position maps a colour to wheel coordinates. Hue is the angle
// (counter-clockwise from +x) and saturation the distance from the centre.
// Lightness is not represented.
func (g Geometry) Position(c colour.HLS) (x, y float64) {
	angle := c.H * 2 * math.Pi
	dist := c.S * g.Radius
	return g.Center + dist*math.Cos(angle), g.Center - dist*math.Sin(angle)
}

// At maps wheel coordinates back to hue and saturation. ok is false outside
// the disc.
func (g Geometry) At(x, y float64) (h, s float64, ok bool) {
	dx := x - g.Center
	dy := y - g.Center
	dist := math.Hypot(dx, dy)
	if dist > g.Radius {
		return 0, 0, false
	}
	h = colour.WrapHue(math.Atan2(-dy, dx) / (2 * math.Pi))
	return h, dist / g.Radius, true
}

// LabelCenter returns where the hex label for a primary marker at (px, py)
// goes: below the marker in the top half, above it otherwise, clamped inside
// the image.
func (g Geometry) LabelCenter(px, py float64) (x, y float64) {
	y = py - float64(g.LabelOffset)
	if py < g.Center {
		y = py + float64(g.LabelOffset)
	}

	clampY := float64(max(4, int(12*g.Scale)))
	clampX := float64(g.LabelHalfW + 2)
	size := float64(g.Size)

	y = math.Max(clampY, math.Min(size-clampY, y))
	x = math.Max(clampX, math.Min(size-clampX, px))
	return x, y
}
