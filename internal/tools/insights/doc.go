// Package insights provides the MCP tools for cluster capacity analysis.
//
// Six read-only tools are registered:
//
//   - get_cluster_capacity: cluster-wide totals, allocation, and headroom
//   - check_resource_fit: whether a CPU/memory quantity fits the cluster
//   - get_node_breakdown: per-node capacity, allocation, and pod counts
//   - get_namespace_usage: per-namespace requests, limits, and pod counts
//   - get_pod_resource_stats: top pods ranked by CPU requests
//   - check_replica_capacity: whether additional application replicas fit
//
// Every tool takes a fresh snapshot of the cluster inventory on invocation;
// no state is cached between calls. Results are returned as pretty-printed
// JSON in the tool result text.
//
// # Usage Examples
//
// Check if a workload fits:
//
//	{
//	  "cpu_cores": 4,
//	  "memory_gb": 16
//	}
//
// Check if ten more replicas of an application fit:
//
//	{
//	  "app_name": "my-application",
//	  "namespace": "default",
//	  "replica_count": 10
//	}
package insights
