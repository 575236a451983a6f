//go:build dev

package api

import (
	"net/http"
	"os"
	"strings"
)

// DevDistEnv points the dev build at a UI directory on disk.
const DevDistEnv = "SWATCH_DEV_DIST"

// StaticHandler serves the UI from disk so edits show up on refresh.
func (h *Handler) StaticHandler() http.Handler {
	dir := os.Getenv(DevDistEnv)
	if dir == "" {
		dir = "internal/api/dist"
	}
	fileServer := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && !strings.Contains(r.URL.Path, ".") {
			r.URL.Path = "/"
		}
		w.Header().Set("Cache-Control", "no-store")
		fileServer.ServeHTTP(w, r)
	})
}
