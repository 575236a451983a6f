package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricPaletteRequests counts palette builds by restrict mode
	MetricPaletteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swatch_palette_requests_total",
		Help: "Total palette requests by restrict mode",
	}, []string{"restrict"})

	// MetricWheelRenders counts rendered wheel images
	MetricWheelRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swatch_wheel_renders_total",
		Help: "Total colour wheel images rendered",
	})

	// MetricReferenceEntries tracks the size of the loaded reference table
	MetricReferenceEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swatch_reference_entries",
		Help: "Entries in the loaded reference table",
	})

	// MetricReloads counts reference reloads by outcome
	MetricReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swatch_reference_reloads_total",
		Help: "Reference table reloads by outcome",
	}, []string{"result"})

	// MetricWSClients tracks connected WebSocket clients
	MetricWSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swatch_websocket_clients",
		Help: "Currently connected WebSocket clients",
	})

	// MetricDuration tracks API request duration
	MetricDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swatch_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "status"})
)
