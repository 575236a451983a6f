package palette

import (
	"math"

	"github.com/amterp/swatch/internal/colour"
)

// Hue offsets, as fractions of a full turn.
const (
	Step30  = 0.0833
	Step60  = Step30 * 2
	Step90  = 0.25
	Step120 = 0.333
	Step180 = 0.5
	Step240 = 0.666

	// MonochromaticLift is the lightness added for the monochromatic variant.
	MonochromaticLift = 0.1
)

// Shape is the marker shape used to draw a scheme on the colour wheel.
type Shape string

const (
	ShapeCircle       Shape = "circle"
	ShapeSquare       Shape = "square"
	ShapeTriangleUp   Shape = "triangle_up"
	ShapeTriangleDown Shape = "triangle_down"
	ShapeDiamond      Shape = "diamond"
	ShapePentagon     Shape = "pentagon"
	ShapeHexagon      Shape = "hexagon"
)

// Rule derives a scheme's colours from a primary colour.
type Rule func(p colour.HLS) []colour.HLS

// Scheme is a named palette rule with its legend shape.
type Scheme struct {
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
	Rule  Rule   `json:"-"`
}

// Palette is the output of one scheme applied to a primary colour.
type Palette struct {
	Scheme Scheme
	Colors []colour.HLS
}

// hues returns p followed by p shifted by each offset.
func hues(offsets ...float64) Rule {
	return func(p colour.HLS) []colour.HLS {
		out := make([]colour.HLS, 0, len(offsets)+1)
		out = append(out, p)
		for _, o := range offsets {
			out = append(out, p.WithHue(o))
		}
		return out
	}
}

// around returns p flanked by p+center-spread and p+center+spread.
func around(center, spread float64) Rule {
	return func(p colour.HLS) []colour.HLS {
		return []colour.HLS{
			p.WithHue(center - spread),
			p,
			p.WithHue(center + spread),
		}
	}
}

func monochromatic(p colour.HLS) []colour.HLS {
	lifted := p
	lifted.L = math.Min(p.L+MonochromaticLift, 1.0)
	return []colour.HLS{p, lifted}
}

func triadic(p colour.HLS) []colour.HLS {
	return []colour.HLS{p.WithHue(Step120), p, p.WithHue(Step240)}
}

// Schemes is the fixed, ordered set of palette rules.
var Schemes = []Scheme{
	{Name: "Complementary", Shape: ShapeCircle, Rule: hues(Step180)},
	{Name: "Monochromatic", Shape: ShapeSquare, Rule: monochromatic},
	{Name: "Analogous", Shape: ShapeTriangleUp, Rule: around(0, Step30)},
	{Name: "Triadic", Shape: ShapeTriangleDown, Rule: triadic},
	{Name: "Split Comp.", Shape: ShapeDiamond, Rule: around(Step180, Step30)},
	{Name: "Square", Shape: ShapePentagon, Rule: hues(Step90, Step180, Step90*3)},
	{Name: "Rectangle", Shape: ShapeHexagon, Rule: hues(Step60, Step30*6, Step30*8)},
}

// Generate applies every scheme to the primary colour, in scheme order.
func Generate(primary colour.HLS) []Palette {
	out := make([]Palette, len(Schemes))
	for i, s := range Schemes {
		out[i] = Palette{Scheme: s, Colors: s.Rule(primary)}
	}
	return out
}

// Complement returns the colour opposite c on the hue circle.
func Complement(c colour.HLS) colour.HLS {
	return c.WithHue(Step180)
}

// Flatten returns every colour of every palette in order.
func Flatten(palettes []Palette) []colour.HLS {
	var out []colour.HLS
	for _, p := range palettes {
		out = append(out, p.Colors...)
	}
	return out
}

// Layout returns the number of colours each scheme produces, in order.
func Layout() []int {
	probe := colour.HLS{}
	out := make([]int, len(Schemes))
	for i, s := range Schemes {
		out[i] = len(s.Rule(probe))
	}
	return out
}
