package testutil

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/swatch/internal/model"
)

// WoolColours is a small reference table with well-separated hues.
func WoolColours() map[string]string {
	return map[string]string{
		"red_wool":    "#a02722",
		"blue_wool":   "#35399d",
		"lime_wool":   "#70b919",
		"white_wool":  "#e9ecec",
		"black_wool":  "#141519",
		"orange_wool": "#f07613",
	}
}

// TestTable returns a model.Table built from WoolColours.
func TestTable(t *testing.T) *model.Table {
	t.Helper()
	table, err := model.NewTable(WoolColours())
	if err != nil {
		t.Fatalf("failed to build test table: %v", err)
	}
	return table
}

// WriteColormap writes entries as a colour map JSON file in dir and returns its path.
func WriteColormap(t *testing.T, dir string, entries map[string]string) string {
	t.Helper()

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		t.Fatalf("failed to marshal colour map: %v", err)
	}
	path := filepath.Join(dir, "colormap.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write colour map: %v", err)
	}
	return path
}

// SolidImage returns a size x size image filled with c.
func SolidImage(size int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WritePNG encodes img as PNG to dir/name.
func WritePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}
