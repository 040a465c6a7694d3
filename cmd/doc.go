// Package cmd implements the command-line interface for the
// cluster-insights-mcp server.
//
// The CLI is built with Cobra and exposes three commands:
//
//   - serve: starts the MCP server (the default when no subcommand is given)
//   - version: prints the binary version
//   - self-update: replaces the binary with the latest GitHub release
//
// The serve command supports three MCP transports selected with --transport:
//
//   - stdio: JSON-RPC over standard input/output, for local MCP clients
//   - sse: Server-Sent Events over HTTP
//   - streamable-http: Streamable HTTP transport with health endpoints
//
// Cluster access is configured with --kubeconfig and --kube-context, or
// --in-cluster when running inside a pod. API client throughput is bounded
// by --qps-limit and --burst-limit.
//
// Examples:
//
//	cluster-insights-mcp serve
//	cluster-insights-mcp serve --transport streamable-http --http-addr :8080
//	cluster-insights-mcp serve --kubeconfig ~/.kube/config --kube-context prod
//	cluster-insights-mcp serve --in-cluster --enable-metrics-server
//
// Prometheus metrics, when enabled via instrumentation environment
// variables and --enable-metrics-server, are served on a dedicated
// listener (--metrics-addr) separate from the MCP transport.
package cmd
