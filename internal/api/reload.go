package api

import (
	"log"

	"github.com/amterp/swatch/internal/service"
)

// ReferenceReloader reloads the reference table when its file changes and
// tells connected clients about it.
type ReferenceReloader struct {
	palettes *service.PaletteService
	hub      *WebSocketHub
}

// NewReferenceReloader creates a reloader. hub may be nil.
func NewReferenceReloader(palettes *service.PaletteService, hub *WebSocketHub) *ReferenceReloader {
	return &ReferenceReloader{palettes: palettes, hub: hub}
}

// Handle is a ChangeHandler. A removed file keeps the loaded table.
func (rr *ReferenceReloader) Handle(change FileChange) {
	if change.Op == ChangeRemoved {
		log.Printf("Reference %s removed, keeping %d loaded entries", change.Path, rr.palettes.Table().Len())
		return
	}

	n, err := rr.palettes.Reload()
	if err != nil {
		MetricReloads.WithLabelValues("error").Inc()
		log.Printf("Failed to reload reference %s: %v", change.Path, err)
		rr.broadcast(MessageReferenceError, map[string]any{
			"path":  change.Path,
			"error": err.Error(),
		})
		return
	}

	MetricReloads.WithLabelValues("ok").Inc()
	MetricReferenceEntries.Set(float64(n))
	log.Printf("Reloaded %d reference entries from %s", n, change.Path)
	rr.broadcast(MessageReferenceReloaded, map[string]any{
		"path":    change.Path,
		"entries": n,
	})
}

func (rr *ReferenceReloader) broadcast(msgType string, data any) {
	if rr.hub != nil {
		rr.hub.Broadcast(msgType, data)
	}
}
