package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/amterp/swatch/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wraps the HTTP server for the web frontend.
type Server struct {
	httpServer *http.Server
	watcher    *FileWatcher
	wsHub      *WebSocketHub
}

// NewServer creates a new server on the given port. The reference file of
// palettes is watched and reloaded on change.
func NewServer(handler *Handler, palettes *service.PaletteService, port int) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub()
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	mux.Handle("GET /metrics", promhttp.Handler())

	MetricReferenceEntries.Set(float64(palettes.Table().Len()))

	watcher, err := NewFileWatcher(palettes.ReferencePath())
	if err != nil {
		log.Printf("Warning: failed to create file watcher: %v", err)
	} else {
		watcher.OnChange(NewReferenceReloader(palettes, wsHub).Handle)
	}

	wrapped := chain(mux, Logging, Recover, Cors)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
	}
}

// Start listens on the configured port. Blocks until shutdown.
func (s *Server) Start() error {
	s.startWatcher()
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln. Blocks until shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.startWatcher()
	return s.httpServer.Serve(ln)
}

func (s *Server) startWatcher() {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Start(); err != nil {
		log.Printf("Warning: failed to start file watcher: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
