package sampler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"github.com/remeh/sizedwaitgroup"
)

const (
	// TextureSize is the only accepted texture edge length.
	TextureSize = 16
	// SampleSize is the edge length textures are resampled to before averaging.
	SampleSize = 2
	// Extension selects which files in a directory are sampled.
	Extension = ".png"
)

var (
	ErrWrongSize   = errors.New("texture is not 16x16")
	ErrTransparent = errors.New("texture has transparency")
)

// Skip records a file that was not sampled.
type Skip struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Result is the outcome of sampling a directory.
type Result struct {
	Entries map[string]string // identifier -> #rrggbb
	Skipped []Skip
	Scanned int
}

// Options tunes SampleDir.
type Options struct {
	Workers int // Max concurrent decodes; <= 0 means GOMAXPROCS
}

// SampleDir samples every .png file directly inside dir. Files that fail to
// decode or are rejected by Average are reported in Result.Skipped.
func SampleDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), Extension) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type outcome struct {
		hex string
		err error
	}
	results := make([]outcome, len(files))

	swg := sizedwaitgroup.New(workers)
	for i, name := range files {
		if err := ctx.Err(); err != nil {
			swg.Wait()
			return nil, err
		}
		if err := swg.AddWithContext(ctx); err != nil {
			swg.Wait()
			return nil, err
		}
		go func(i int, path string) {
			defer swg.Done()
			c, err := SampleFile(path)
			if err != nil {
				results[i] = outcome{err: err}
				return
			}
			results[i] = outcome{hex: Hex(c)}
		}(i, filepath.Join(dir, name))
	}
	swg.Wait()

	res := &Result{
		Entries: make(map[string]string, len(files)),
		Scanned: len(files),
	}
	for i, name := range files {
		if results[i].err != nil {
			res.Skipped = append(res.Skipped, Skip{File: name, Reason: results[i].err.Error()})
			continue
		}
		res.Entries[strings.TrimSuffix(name, Extension)] = results[i].hex
	}
	return res, nil
}

// SampleFile decodes a PNG and returns its average colour.
func SampleFile(path string) (color.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return color.RGBA{}, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("decode: %w", err)
	}
	return Average(img)
}

// Average resamples a 16x16 fully opaque texture to 2x2 with a Lanczos
// filter and returns the mean of the four resulting pixels.
func Average(img image.Image) (color.RGBA, error) {
	b := img.Bounds()
	if b.Dx() != TextureSize || b.Dy() != TextureSize {
		return color.RGBA{}, ErrWrongSize
	}
	if hasTransparency(img) {
		return color.RGBA{}, ErrTransparent
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	small := resize.Resize(SampleSize, SampleSize, rgba, resize.Lanczos3)

	var sr, sg, sb float64
	out := small.Bounds()
	for y := out.Min.Y; y < out.Max.Y; y++ {
		for x := out.Min.X; x < out.Max.X; x++ {
			c := color.RGBAModel.Convert(small.At(x, y)).(color.RGBA)
			sr += float64(c.R)
			sg += float64(c.G)
			sb += float64(c.B)
		}
	}
	n := float64(out.Dx() * out.Dy())

	return color.RGBA{
		R: uint8(math.RoundToEven(sr / n)),
		G: uint8(math.RoundToEven(sg / n)),
		B: uint8(math.RoundToEven(sb / n)),
		A: 0xff,
	}, nil
}

// Hex formats an opaque colour as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// hasTransparency reports whether any pixel is not fully opaque. A paletted
// image with any translucent palette entry counts, even if unused.
func hasTransparency(img image.Image) bool {
	if p, ok := img.(*image.Paletted); ok {
		for _, c := range p.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
