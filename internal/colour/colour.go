package colour

import (
	"image/color"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// LightnessWeight scales the lightness term of Distance. Lightness differences
// matter less than hue and saturation when snapping to a reference colour.
const LightnessWeight = 0.25

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// HLS is a colour in hue/lightness/saturation space. All components are in [0,1].
type HLS struct {
	H float64 `json:"h"`
	L float64 `json:"l"`
	S float64 `json:"s"`
}

// ParseHex parses a 6-digit hex colour with an optional leading '#'.
// Returns false for anything else; it never panics.
func ParseHex(s string) (HLS, bool) {
	if s == "" {
		return HLS{}, false
	}
	s = strings.TrimPrefix(s, "#")
	if !hexPattern.MatchString(s) {
		return HLS{}, false
	}

	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return HLS{}, false
	}
	return fromColorful(c), true
}

// MustParseHex is ParseHex for compile-time constants. Panics on bad input.
func MustParseHex(s string) HLS {
	c, ok := ParseHex(s)
	if !ok {
		panic("colour: invalid hex " + s)
	}
	return c
}

// FromColor converts any color.Color to HLS, ignoring alpha.
func FromColor(c color.Color) HLS {
	r, g, b, _ := c.RGBA()
	return fromColorful(colorful.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
	})
}

func fromColorful(c colorful.Color) HLS {
	h, s, l := c.Hsl()
	return HLS{H: WrapHue(h / 360), L: l, S: s}
}

// Colorful returns the colour in go-colorful's RGB representation.
func (c HLS) Colorful() colorful.Color {
	return colorful.Hsl(WrapHue(c.H)*360, clamp01(c.S), clamp01(c.L)).Clamped()
}

// RGBA returns the colour as an opaque 8-bit RGBA value for drawing.
func (c HLS) RGBA() color.RGBA {
	r, g, b := c.Colorful().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats the colour as lowercase #rrggbb.
func (c HLS) Hex() string {
	return c.Colorful().Hex()
}

// String implements fmt.Stringer.
func (c HLS) String() string {
	return c.Hex()
}

// WithHue returns a copy with the hue shifted by delta, wrapped into [0,1).
func (c HLS) WithHue(delta float64) HLS {
	c.H = WrapHue(c.H + delta)
	return c
}

// WrapHue maps any hue into [0,1).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}

// HueDistance is the circular distance between two hues, in [0, 0.5].
func HueDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	return math.Min(d, 1-d)
}

// Distance is the weighted distance used for nearest-colour matching.
func Distance(a, b HLS) float64 {
	dh := HueDistance(a.H, b.H)
	dl := a.L - b.L
	ds := a.S - b.S
	return math.Sqrt(dh*dh + LightnessWeight*dl*dl + ds*ds)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
