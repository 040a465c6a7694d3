package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/instrumentation"
)

// DefaultMetricsAddr is the default listen address for the metrics server.
const DefaultMetricsAddr = ":9090"

// MetricsServerConfig holds configuration for the standalone metrics server.
type MetricsServerConfig struct {
	// Addr is the listen address (default: DefaultMetricsAddr)
	Addr string

	// InstrumentationProvider supplies the Prometheus endpoint path and
	// must be non-nil.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer serves Prometheus metrics on a dedicated HTTP listener,
// separate from the MCP transport. This keeps metrics scrapable even when
// the server runs on the stdio transport.
type MetricsServer struct {
	addr   string
	server *http.Server

	mu      sync.Mutex
	started bool
}

// NewMetricsServer creates a metrics server from the given configuration.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.InstrumentationProvider == nil {
		return nil, fmt.Errorf("instrumentation provider is required")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	mux := http.NewServeMux()
	// The OpenTelemetry prometheus exporter registers against the default
	// registry, which promhttp.Handler serves.
	mux.Handle(config.InstrumentationProvider.PrometheusEndpoint(), promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &MetricsServer{
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Addr returns the configured listen address.
func (m *MetricsServer) Addr() string {
	return m.addr
}

// Start runs the metrics server. It blocks until the server stops and
// returns http.ErrServerClosed after a clean shutdown.
func (m *MetricsServer) Start() error {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	return m.server.ListenAndServe()
}

// Shutdown gracefully stops the metrics server. Calling Shutdown before
// Start is a no-op.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	if !started {
		return nil
	}

	if err := m.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
