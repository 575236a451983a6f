package api

import (
	"net/http"
	"strconv"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/util"
	"github.com/amterp/swatch/internal/version"
	"github.com/amterp/swatch/internal/wheel"
)

// DefaultMatchCount is how many entries /match returns without ?n=.
const DefaultMatchCount = 5

// Defaults are the values used when a request leaves a parameter out.
type Defaults struct {
	Colour    string `json:"colour"`
	Restrict  bool   `json:"restrict"`
	WheelSize int    `json:"wheel_size"`
}

// Handler contains all HTTP handlers for the API.
//
// Design: single-user, single-session. The palette service and its reference
// table are shared by all requests; the table is swapped on reload.
type Handler struct {
	palettes *service.PaletteService
	defaults Defaults
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(palettes *service.PaletteService, defaults Defaults) *Handler {
	return &Handler{
		palettes: palettes,
		defaults: defaults,
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/config", h.GetConfig)
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Palette routes
	mux.HandleFunc("GET /api/v1/palette", h.GetPalette)
	mux.HandleFunc("GET /api/v1/wheel.png", h.GetWheel)
	mux.HandleFunc("GET /api/v1/schemes", h.ListSchemes)

	// Reference routes
	mux.HandleFunc("GET /api/v1/match", h.Match)
	mux.HandleFunc("GET /api/v1/reference", h.ListReference)
	mux.HandleFunc("GET /api/v1/reference/{id}", h.GetReferenceEntry)

	// Static files (frontend)
	mux.Handle("/", h.StaticHandler())
}

// --- Config Handlers ---

// ConfigResponse is the JSON response for the UI's initial state.
type ConfigResponse struct {
	Version       string   `json:"version"`
	Defaults      Defaults `json:"defaults"`
	ReferencePath string   `json:"reference_path"`
	Entries       int      `json:"entries"`
}

// GetConfig returns request defaults and reference table info.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, ConfigResponse{
		Version:       version.Version,
		Defaults:      h.defaults,
		ReferencePath: h.palettes.ReferencePath(),
		Entries:       h.palettes.Table().Len(),
	})
}

// --- Palette Handlers ---

// GetPalette returns every scheme for ?hex=, matched against the table.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	res, ok := h.buildPalette(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, res)
}

// GetWheel renders the colour wheel PNG for ?hex= at ?size=.
func (h *Handler) GetWheel(w http.ResponseWriter, r *http.Request) {
	size, err := intParam(r, "size", h.defaults.WheelSize)
	if err != nil {
		Error(w, err)
		return
	}

	res, ok := h.buildPalette(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.palettes.RenderWheel(w, res, size); err != nil {
		Error(w, err)
		return
	}
	MetricWheelRenders.Inc()
}

// ListSchemes returns the scheme legend.
func (h *Handler) ListSchemes(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"schemes":  service.Legends(),
		"min_size": wheel.MinSize,
		"max_size": wheel.MaxSize,
	})
}

func (h *Handler) buildPalette(w http.ResponseWriter, r *http.Request) (*service.PaletteResult, bool) {
	hex := r.URL.Query().Get("hex")
	if hex == "" {
		hex = h.defaults.Colour
	}
	restrict, err := boolParam(r, "restrict", h.defaults.Restrict)
	if err != nil {
		Error(w, err)
		return nil, false
	}

	res, err := h.palettes.Build(hex, restrict)
	if err != nil {
		Error(w, err)
		return nil, false
	}
	MetricPaletteRequests.WithLabelValues(strconv.FormatBool(restrict)).Inc()
	return res, true
}

// --- Reference Handlers ---

// EntryResponse is a reference entry with its display name.
type EntryResponse struct {
	model.Entry
	Name     string   `json:"name"`
	Distance *float64 `json:"distance,omitempty"`
}

func toEntryResponse(e model.Entry) EntryResponse {
	return EntryResponse{Entry: e, Name: util.DisplayName(e.ID)}
}

// Match returns the ?n= reference entries nearest to ?hex=.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", DefaultMatchCount)
	if err != nil {
		Error(w, err)
		return
	}

	ranked, err := h.palettes.Match(r.URL.Query().Get("hex"), n)
	if err != nil {
		Error(w, err)
		return
	}

	out := make([]EntryResponse, len(ranked))
	for i, m := range ranked {
		resp := toEntryResponse(m.Entry)
		d := m.Distance
		resp.Distance = &d
		out[i] = resp
	}
	JSON(w, http.StatusOK, map[string]any{"matches": out})
}

// ListReference returns every reference entry.
func (h *Handler) ListReference(w http.ResponseWriter, r *http.Request) {
	entries := h.palettes.Table().Entries()
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	JSON(w, http.StatusOK, map[string]any{
		"path":    h.palettes.ReferencePath(),
		"count":   len(out),
		"entries": out,
	})
}

// GetReferenceEntry returns a single reference entry by identifier.
func (h *Handler) GetReferenceEntry(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")
	e, ok := h.palettes.Table().Get(entryID)
	if !ok {
		Error(w, swerr.EntryNotFound(entryID))
		return
	}
	JSON(w, http.StatusOK, toEntryResponse(e))
}

// --- Query helpers ---

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, swerr.InvalidField(name, "must be an integer")
	}
	return v, nil
}

func boolParam(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, swerr.InvalidField(name, "must be true or false")
	}
	return v, nil
}
