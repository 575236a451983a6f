package api

import (
	"fmt"
	"net/http"

	"github.com/amterp/swatch/internal/colour"
	"github.com/amterp/swatch/internal/palette"
)

// DefaultFaviconColour is used when no valid colour is configured.
const DefaultFaviconColour = "#3b82f6"

// GenerateFaviconSVG draws the primary colour and its complement as two
// halves of a rounded square.
func GenerateFaviconSVG(primary colour.HLS) string {
	comp := palette.Complement(primary)
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">`+
			`<clipPath id="r"><rect width="32" height="32" rx="6"/></clipPath>`+
			`<g clip-path="url(#r)"><rect width="32" height="32" fill="%s"/>`+
			`<polygon points="32,0 32,32 0,32" fill="%s"/></g></svg>`,
		primary.Hex(), comp.Hex(),
	)
}

// GetFavicon serves the favicon for ?hex=, falling back to the default colour.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	primary, ok := colour.ParseHex(r.URL.Query().Get("hex"))
	if !ok {
		primary, ok = colour.ParseHex(h.defaults.Colour)
		if !ok {
			primary = colour.MustParseHex(DefaultFaviconColour)
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(GenerateFaviconSVG(primary)))
}
