package insights

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/server"
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/tools"
)

// RegisterInsightsTools registers all cluster capacity analysis tools with
// the MCP server.
func RegisterInsightsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_cluster_capacity tool
	clusterCapacityTool := mcp.NewTool("get_cluster_capacity",
		mcp.WithDescription("Get total cluster capacity, allocated resources (requests), and available resources. "+
			"Returns detailed information about CPU cores and memory in GB across all nodes. "+
			"Example: Returns total 24 CPU cores, 96 GB memory, with 12 cores and 48 GB allocated."),
	)
	s.AddTool(clusterCapacityTool, tools.WrapWithInstrumentation("get_cluster_capacity", handleGetClusterCapacity, sc))

	// check_resource_fit tool
	resourceFitTool := mcp.NewTool("check_resource_fit",
		mcp.WithDescription("Check if specified CPU and memory resources can fit in the cluster. "+
			"Parameters: cpu_cores (float), memory_gb (float). "+
			"Returns whether resources fit, available resources, and utilization percentages. "+
			"Example: cpu_cores=4, memory_gb=16 → checks if 4 cores and 16GB available."),
		mcp.WithNumber("cpu_cores",
			mcp.Required(),
			mcp.Description("Required CPU in cores"),
		),
		mcp.WithNumber("memory_gb",
			mcp.Required(),
			mcp.Description("Required memory in GB"),
		),
	)
	s.AddTool(resourceFitTool, tools.WrapWithInstrumentation("check_resource_fit", handleCheckResourceFit, sc))

	// get_node_breakdown tool
	nodeBreakdownTool := mcp.NewTool("get_node_breakdown",
		mcp.WithDescription("Get detailed breakdown of each node in the cluster. "+
			"Lists each node with its total capacity, allocated resources (requests), "+
			"available resources, and pod count. "+
			"Example: Returns list of nodes with their CPU/memory capacity and usage."),
	)
	s.AddTool(nodeBreakdownTool, tools.WrapWithInstrumentation("get_node_breakdown", handleGetNodeBreakdown, sc))

	// get_namespace_usage tool
	namespaceUsageTool := mcp.NewTool("get_namespace_usage",
		mcp.WithDescription("Get resource usage per namespace. "+
			"Returns CPU/memory requests and limits for each namespace, along with pod count. "+
			"Results are sorted by CPU requests (descending). "+
			"Example: Returns namespaces with their total CPU/memory consumption."),
	)
	s.AddTool(namespaceUsageTool, tools.WrapWithInstrumentation("get_namespace_usage", handleGetNamespaceUsage, sc))

	// get_pod_resource_stats tool
	podStatsTool := mcp.NewTool("get_pod_resource_stats",
		mcp.WithDescription("Get top pods by resource consumption. "+
			"Returns the top 20 pods sorted by CPU requests, showing CPU/memory requests and limits. "+
			"Includes namespace, node assignment, and resource metrics in millicores and MB. "+
			"Example: Returns top resource-consuming pods across the cluster."),
	)
	s.AddTool(podStatsTool, tools.WrapWithInstrumentation("get_pod_resource_stats", handleGetPodResourceStats, sc))

	// check_replica_capacity tool
	replicaCapacityTool := mcp.NewTool("check_replica_capacity",
		mcp.WithDescription("Check if cluster has capacity to add more replicas of an application. "+
			"Finds an existing pod matching the app name in the specified namespace, "+
			"calculates its resource requirements, and checks if the cluster can accommodate "+
			"the requested number of additional replicas. "+
			"Parameters: app_name (string) - name or pattern to match pods, "+
			"namespace (string) - Kubernetes namespace, "+
			"replica_count (int) - number of additional replicas needed. "+
			"Returns detailed capacity analysis including per-replica requirements, total needs, "+
			"cluster availability, and projected utilization. "+
			"Example: app_name='my-application', namespace='default', replica_count=10"),
		mcp.WithString("app_name",
			mcp.Required(),
			mcp.Description("Application or pod name pattern to find"),
		),
		mcp.WithString("namespace",
			mcp.Required(),
			mcp.Description("Namespace to search in"),
		),
		mcp.WithNumber("replica_count",
			mcp.Required(),
			mcp.Description("Number of additional replicas needed"),
		),
	)
	s.AddTool(replicaCapacityTool, tools.WrapWithInstrumentation("check_replica_capacity", handleCheckReplicaCapacity, sc))

	return nil
}
