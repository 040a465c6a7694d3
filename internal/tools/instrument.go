// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/instrumentation"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/logging"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithInstrumentation wraps a tool handler with structured logging,
// metrics, and tracing. The wrapper automatically captures:
//   - Tool invocation timing
//   - Success/error status, including MCP errors returned in the result
//   - An OpenTelemetry span per invocation for trace correlation
//
// Metrics recording is a no-op when no instrumentation provider is
// configured; logging always happens.
func WrapWithInstrumentation(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.WithTool(sc.Logger(), toolName)

		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		start := time.Now()
		result, err := handler(ctx, request, sc)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, err)
			logger.Error("tool invocation failed",
				logging.Duration(duration),
				logging.Err(err),
			)
		case result != nil && result.IsError:
			// MCP tool errors are returned in the result, not as Go errors.
			status = instrumentation.StatusError
			logger.Warn("tool returned error result",
				logging.Duration(duration),
				logging.Status(logging.StatusError),
			)
		default:
			instrumentation.SetSpanSuccess(span)
			logger.Debug("tool invocation completed",
				logging.Duration(duration),
				logging.Status(logging.StatusSuccess),
			)
		}

		if provider := sc.InstrumentationProvider(); provider != nil {
			provider.Metrics().RecordToolInvocation(ctx, toolName, status, duration)
		}

		return result, err
	}
}
