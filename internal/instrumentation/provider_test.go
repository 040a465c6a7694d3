package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.False(t, provider.Enabled())
	require.NotNil(t, provider.Metrics(), "disabled provider still hands out a recorder")

	// Recording through the no-op recorder must be safe.
	provider.Metrics().RecordToolInvocation(context.Background(), "get_cluster_capacity", StatusSuccess, time.Millisecond)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderStdoutExporters(t *testing.T) {
	cfg := Config{
		ServiceName:     "insights-test",
		ServiceVersion:  "0.0.0-test",
		Enabled:         true,
		MetricsExporter: "stdout",
		TracingExporter: "stdout",
	}

	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestNewProviderPrometheus(t *testing.T) {
	cfg := Config{
		ServiceName:        "insights-test",
		ServiceVersion:     "0.0.0-test",
		Enabled:            true,
		MetricsExporter:    "prometheus",
		TracingExporter:    "none",
		PrometheusEndpoint: "/metrics",
	}

	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "/metrics", provider.PrometheusEndpoint())

	provider.Metrics().RecordSnapshotList(context.Background(), "nodes", StatusSuccess, 2*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestNewProviderUnknownMetricsExporter(t *testing.T) {
	cfg := Config{
		Enabled:         true,
		MetricsExporter: "statsd",
	}

	_, err := NewProvider(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd")
}

func TestShutdownIsIdempotentOnNilProviders(t *testing.T) {
	var p Provider
	assert.NoError(t, p.Shutdown(context.Background()))
}
