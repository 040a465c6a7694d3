package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/server"
)

// handleGetClusterCapacity returns cluster-wide totals, allocation, and headroom.
func handleGetClusterCapacity(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	result, err := sc.Engine().ClusterCapacity(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get cluster capacity: %v", err)), nil
	}

	return marshalResult(result)
}

// handleCheckResourceFit checks whether a CPU/memory quantity fits in the
// cluster's available resources.
func handleCheckResourceFit(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	cpuCores, ok := args["cpu_cores"].(float64)
	if !ok {
		return mcp.NewToolResultError("cpu_cores parameter is required and must be a number"), nil
	}

	memoryGB, ok := args["memory_gb"].(float64)
	if !ok {
		return mcp.NewToolResultError("memory_gb parameter is required and must be a number"), nil
	}

	result, err := sc.Engine().CheckResourceFit(ctx, cpuCores, memoryGB)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check resource fit: %v", err)), nil
	}

	return marshalResult(result)
}

// handleGetNodeBreakdown returns per-node capacity, allocation, and pod counts.
func handleGetNodeBreakdown(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	result, err := sc.Engine().NodeBreakdown(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get node breakdown: %v", err)), nil
	}

	return marshalResult(result)
}

// handleGetNamespaceUsage returns per-namespace requests, limits, and pod counts.
func handleGetNamespaceUsage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	result, err := sc.Engine().NamespaceUsageStats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get namespace usage: %v", err)), nil
	}

	return marshalResult(result)
}

// handleGetPodResourceStats returns the top pods ranked by CPU requests.
func handleGetPodResourceStats(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	result, err := sc.Engine().PodResourceStats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get pod resource stats: %v", err)), nil
	}

	return marshalResult(result)
}

// handleCheckReplicaCapacity checks whether additional replicas of an
// application fit in the cluster, using a live pod as the cost reference.
func handleCheckReplicaCapacity(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	appName, ok := args["app_name"].(string)
	if !ok {
		return mcp.NewToolResultError("app_name parameter is required and must be a string"), nil
	}

	namespace, ok := args["namespace"].(string)
	if !ok {
		return mcp.NewToolResultError("namespace parameter is required and must be a string"), nil
	}

	replicaCountRaw, ok := args["replica_count"].(float64)
	if !ok {
		return mcp.NewToolResultError("replica_count parameter is required and must be a number"), nil
	}
	if replicaCountRaw != math.Trunc(replicaCountRaw) {
		return mcp.NewToolResultError("replica_count must be an integer"), nil
	}

	result, err := sc.Engine().CheckReplicaCapacity(ctx, appName, namespace, int(replicaCountRaw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check replica capacity: %v", err)), nil
	}

	return marshalResult(result)
}

// marshalResult renders an engine result as pretty-printed JSON tool output.
func marshalResult(result any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error serializing response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
