// Package instrumentation provides OpenTelemetry instrumentation for the
// cluster-insights-mcp server.
//
// It enables observability through:
//   - OpenTelemetry metrics for HTTP requests, tool invocations, and
//     cluster snapshot fetches
//   - Distributed tracing for tool invocations and inventory list calls
//   - Prometheus metrics export via the /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Server/HTTP metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Tool metrics:
//   - tool_invocations_total: Counter of MCP tool invocations by tool and status
//   - tool_invocation_duration_seconds: Histogram of tool invocation durations
//
// Snapshot metrics:
//   - cluster_snapshot_lists_total: Counter of inventory list requests by resource and status
//   - cluster_snapshot_list_duration_seconds: Histogram of list durations
//
// All metric labels are drawn from small fixed sets (tool names, resource
// kinds, statuses), so cardinality stays bounded regardless of cluster size.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: cluster-insights-mcp)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordToolInvocation(ctx, "get_cluster_capacity", instrumentation.StatusSuccess, time.Since(start))
package instrumentation
