package wheel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/amterp/swatch/internal/colour"
	"github.com/amterp/swatch/internal/palette"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	discLightness  = 0.5
	circleSegments = 48
	labelFontDPI   = 96
)

var (
	RimColor       = color.RGBA{0x88, 0x88, 0x88, 0xff}
	OutlineColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	LabelFill      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	LabelBorder    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	LabelTextColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

var parsedLabelFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Marker is one palette colour plotted on the wheel.
type Marker struct {
	Color colour.HLS
	Shape palette.Shape
}

// MarkersFor plots every colour of every palette with its scheme's shape.
func MarkersFor(palettes []palette.Palette) []Marker {
	var out []Marker
	for _, p := range palettes {
		for _, c := range p.Colors {
			out = append(out, Marker{Color: c, Shape: p.Scheme.Shape})
		}
	}
	return out
}

// Renderer draws colour wheels of one size. The hue/saturation disc is
// rendered once and reused. Safe for concurrent use.
type Renderer struct {
	geom Geometry
	disc *image.NRGBA
	face font.Face
	mu   sync.Mutex // guards face
}

// NewRenderer prepares a renderer for the given edge length.
func NewRenderer(size int) (*Renderer, error) {
	g := NewGeometry(size)

	f, err := parsedLabelFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(g.FontSize),
		DPI:     labelFontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label face: %w", err)
	}

	return &Renderer{geom: g, disc: renderDisc(g), face: face}, nil
}

// Geometry returns the measurements used by this renderer.
func (r *Renderer) Geometry() Geometry {
	return r.geom
}

// Render draws the disc, the rim, every marker and finally the primary
// marker with its hex label.
func (r *Renderer) Render(primary colour.HLS, markers []Marker) *image.RGBA {
	g := r.geom
	img := image.NewRGBA(image.Rect(0, 0, g.Size, g.Size))
	draw.Draw(img, img.Bounds(), r.disc, image.Point{}, draw.Over)

	drawRing(img, g.Center, g.Center, g.Radius+1, 1, RimColor)

	for _, m := range markers {
		x, y := g.Position(m.Color)
		drawShape(img, m.Shape, x, y, float64(g.MarkerSize), float64(g.MarkerOutline), m.Color.RGBA())
	}

	px, py := g.Position(primary)
	drawShape(img, palette.ShapeCircle, px, py, float64(g.PrimarySize), float64(g.PrimaryOutline), primary.RGBA())

	r.drawLabel(img, primary.Hex(), px, py)
	return img
}

// WritePNG renders and encodes the wheel as PNG.
func (r *Renderer) WritePNG(w io.Writer, primary colour.HLS, markers []Marker) error {
	return png.Encode(w, r.Render(primary, markers))
}

func (r *Renderer) drawLabel(img *image.RGBA, text string, px, py float64) {
	g := r.geom
	cx, cy := g.LabelCenter(px, py)

	box := image.Rect(
		int(math.Round(cx))-g.LabelHalfW, int(math.Round(cy))-g.LabelHalfH,
		int(math.Round(cx))+g.LabelHalfW, int(math.Round(cy))+g.LabelHalfH,
	)
	draw.Draw(img, box, image.NewUniform(LabelBorder), image.Point{}, draw.Src)
	draw.Draw(img, box.Inset(1), image.NewUniform(LabelFill), image.Point{}, draw.Src)

	r.mu.Lock()
	defer r.mu.Unlock()

	d := font.Drawer{Dst: img, Src: image.NewUniform(LabelTextColor), Face: r.face}
	width := d.MeasureString(text)
	m := r.face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(cx))) - width/2,
		Y: fixed.I(int(math.Round(cy))) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// renderDisc paints the hue/saturation disc at fixed lightness. Pixels
// within 1.5px outside the radius fade out so the edge is anti-aliased.
func renderDisc(g Geometry) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Size, g.Size))
	edge := g.Radius + 1.5

	for py := 0; py < g.Size; py++ {
		for px := 0; px < g.Size; px++ {
			dx := float64(px) - g.Center
			dy := float64(py) - g.Center
			dist := math.Hypot(dx, dy)
			if dist > edge {
				continue
			}

			hue := colour.WrapHue(math.Atan2(-dy, dx) / (2 * math.Pi))
			sat := math.Min(1, dist/g.Radius)
			c := colour.HLS{H: hue, L: discLightness, S: sat}.RGBA()

			alpha := 255.0
			if dist > g.Radius-1.5 {
				alpha = math.Max(0, math.Min(255, 255*(g.Radius-dist+1.5)))
			}
			c.A = uint8(alpha)
			img.SetNRGBA(px, py, color.NRGBA(c))
		}
	}
	return img
}

// ShapePoints returns the polygon vertices for a marker shape centred on
// (x, y) with half-extent s. Circles are approximated by a regular polygon.
func ShapePoints(shape palette.Shape, x, y, s float64) [][2]float64 {
	switch shape {
	case palette.ShapeSquare:
		return [][2]float64{{x - s, y - s}, {x + s, y - s}, {x + s, y + s}, {x - s, y + s}}
	case palette.ShapeTriangleUp:
		return [][2]float64{{x, y - s}, {x - s, y + s}, {x + s, y + s}}
	case palette.ShapeTriangleDown:
		return [][2]float64{{x, y + s}, {x - s, y - s}, {x + s, y - s}}
	case palette.ShapeDiamond:
		return [][2]float64{{x, y - s}, {x + s, y}, {x, y + s}, {x - s, y}}
	case palette.ShapePentagon:
		return regular(x, y, s, 5, math.Pi/2)
	case palette.ShapeHexagon:
		return regular(x, y, s, 6, 0)
	default:
		return regular(x, y, s, circleSegments, 0)
	}
}

func regular(x, y, s float64, n int, start float64) [][2]float64 {
	pts := make([][2]float64, n)
	for i := range n {
		a := start + float64(i)*2*math.Pi/float64(n)
		pts[i] = [2]float64{x + s*math.Cos(a), y - s*math.Sin(a)}
	}
	return pts
}

// drawShape fills the shape in the outline colour at s+w/2, then in fill at
// s-w/2, giving an outline of width w centred on the shape edge.
func drawShape(img *image.RGBA, shape palette.Shape, x, y, s, w float64, fill color.Color) {
	fillPolygon(img, ShapePoints(shape, x, y, s+w/2), OutlineColor)
	fillPolygon(img, ShapePoints(shape, x, y, math.Max(0.5, s-w/2)), fill)
}

func fillPolygon(img *image.RGBA, pts [][2]float64, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	tracePath(z, pts, false)
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

// drawRing strokes a circle of radius r and width w. The inner path runs in
// the opposite direction so its area cancels out.
func drawRing(img *image.RGBA, x, y, r, w float64, c color.Color) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	tracePath(z, regular(x, y, r+w/2, circleSegments*2, 0), false)
	tracePath(z, regular(x, y, r-w/2, circleSegments*2, 0), true)
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

func tracePath(z *vector.Rasterizer, pts [][2]float64, reverse bool) {
	at := func(i int) [2]float64 {
		if reverse {
			return pts[len(pts)-1-i]
		}
		return pts[i]
	}
	first := at(0)
	z.MoveTo(float32(first[0]), float32(first[1]))
	for i := 1; i < len(pts); i++ {
		p := at(i)
		z.LineTo(float32(p[0]), float32(p[1]))
	}
	z.ClosePath()
}
