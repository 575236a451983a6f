package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/api"
	"github.com/dustin/go-humanize"
	"github.com/pkg/browser"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start web interface")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on; the next free port is used if taken (default from config)").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open browser automatically").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

// portAttempts bounds how far past the requested port serve will look.
const portAttempts = 100

func runServe(reference string, port int, noOpen bool) {
	app, err := NewApp(false, reference)
	if err != nil {
		Fatal(err)
	}
	if err := app.LoadReference(false); err != nil {
		Fatal(err)
	}

	defaultColour, err := app.Palettes.Resolve(app.Config.DefaultColour)
	if err != nil {
		Fatal(err)
	}

	if port <= 0 {
		port = app.Config.Port
	}
	ln, err := listenFrom(port, portAttempts)
	if err != nil {
		Fatal(err)
	}
	actualPort := ln.Addr().(*net.TCPAddr).Port

	handler := api.NewHandler(app.Palettes, api.Defaults{
		Colour:    defaultColour,
		Restrict:  app.Config.Restrict,
		WheelSize: app.Config.WheelSize,
	})
	server := api.NewServer(handler, app.Palettes, actualPort)

	url := fmt.Sprintf("http://localhost:%d", actualPort)
	if actualPort != port {
		PrintWarning("Port %d is in use", port)
	}
	fmt.Printf("Swatch web server running at %s\n", RenderURL(url))
	fmt.Println(RenderMuted(fmt.Sprintf("Reference: %s (%s colours)",
		app.Palettes.ReferencePath(), humanize.Comma(int64(app.Palettes.Table().Len())))))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() { served <- server.Serve(ln) }()

	if !noOpen {
		openBrowser(url)
	}

	select {
	case err := <-served:
		if !errors.Is(err, http.ErrServerClosed) {
			Fatal(err)
		}
	case <-ctx.Done():
		fmt.Println()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			PrintWarning("Shutdown: %v", err)
		}
		PrintInfo("Server stopped")
	}
}

// listenFrom binds the first free port in [start, start+attempts).
func listenFrom(start, attempts int) (net.Listener, error) {
	var lastErr error
	for port := start; port < start+attempts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return ln, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", start, start+attempts-1, lastErr)
}

func openBrowser(url string) {
	// Silence the launcher's own output
	browser.Stdout = nil
	browser.Stderr = nil
	if err := browser.OpenURL(url); err != nil {
		PrintWarning("Could not open browser: %v", err)
	}
}
