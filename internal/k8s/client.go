package k8s

import (
	"context"
	"log/slog"
	"time"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/capacity"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/instrumentation"
)

// Client is the read-only cluster inventory interface. It satisfies
// capacity.Lister and adds a health probe for readiness checks.
type Client interface {
	capacity.Lister

	// GetClusterHealth summarizes node readiness, used by the readiness
	// endpoint to verify API server connectivity.
	GetClusterHealth(ctx context.Context) (*ClusterHealth, error)
}

// ClusterHealth summarizes node readiness.
type ClusterHealth struct {
	TotalNodes int    `json:"total_nodes"`
	ReadyNodes int    `json:"ready_nodes"`
	Status     string `json:"status"`
}

// ClientConfig holds configuration for the Kubernetes client.
type ClientConfig struct {
	// Kubeconfig settings
	KubeconfigPath string
	Context        string

	// InCluster selects service account authentication instead of
	// kubeconfig.
	InCluster bool

	// Performance settings
	QPSLimit   float32
	BurstLimit int
	Timeout    time.Duration

	// Logging
	Logger *slog.Logger

	// Metrics, when set, records list counts and latencies for every
	// inventory request issued by the client.
	Metrics *instrumentation.Metrics
}
