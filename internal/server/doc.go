// Package server provides the ServerContext pattern and related infrastructure
// for the cluster insights MCP server.
//
// This package implements the core server architecture patterns including:
//
//   - ServerContext: Encapsulates all server dependencies and lifecycle management
//   - Functional Options: Clean dependency injection and configuration
//   - HealthChecker: Liveness and readiness endpoints for Kubernetes probes
//   - MetricsServer: Dedicated Prometheus metrics listener
//
// The ServerContext Pattern:
//
// The ServerContext struct follows the context pattern commonly used in Go
// applications to encapsulate dependencies and provide clean separation of
// concerns. It includes:
//
//   - Kubernetes client interface
//   - Capacity analysis engine
//   - Structured logger
//   - Configuration settings
//   - Context for cancellation and timeouts
//   - Lifecycle management (shutdown, cleanup)
//
// All dependencies are injected using functional options, making the code
// highly testable and modular.
//
// Example usage:
//
//	// Create a server context with custom configuration
//	ctx := context.Background()
//	serverCtx, err := NewServerContext(ctx,
//		WithK8sClient(k8sClient),
//		WithLogger(customLogger),
//		WithServerName("cluster-insights-mcp"),
//		WithLogLevel("debug"),
//	)
//	if err != nil {
//		return err
//	}
//	defer serverCtx.Shutdown()
//
//	// Use the context in MCP tools
//	engine := serverCtx.Engine()
//	logger := serverCtx.Logger()
//	config := serverCtx.Config()
//
//	// Check if server is shutting down
//	if serverCtx.IsShutdown() {
//		return ErrServerShutdown
//	}
//
// The capacity engine is derived from the injected Kubernetes client unless
// a prebuilt engine is supplied with WithEngine, which tests use to inject
// synthetic cluster inventories.
//
// Health Checking:
//
// HealthChecker serves /healthz (liveness), /readyz (readiness) and
// /healthz/detailed. The detailed endpoint additionally queries the cluster
// for node readiness and reports the server mode (local or in-cluster), so
// it is intended for operators rather than kubelet probes.
package server
