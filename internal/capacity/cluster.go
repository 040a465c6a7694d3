package capacity

import (
	"context"
	"fmt"
)

// ClusterCapacityResult describes cluster-wide totals, allocation, and
// availability. Numeric fields are in human units, derived from the
// internal integer base units at this boundary only.
type ClusterCapacityResult struct {
	TotalCPUCores     float64 `json:"total_cpu_cores"`
	TotalMemoryGB     float64 `json:"total_memory_gb"`
	AllocatedCPUCores float64 `json:"allocated_cpu_cores"`
	AllocatedMemoryGB float64 `json:"allocated_memory_gb"`
	AvailableCPUCores float64 `json:"available_cpu_cores"`
	AvailableMemoryGB float64 `json:"available_memory_gb"`
	NodeCount         int     `json:"node_count"`
	Explanation       string  `json:"explanation"`
}

// NodeCapacityInfo describes a single node's totals, allocation, and
// availability together with the number of pods assigned to it.
type NodeCapacityInfo struct {
	Name              string  `json:"name"`
	TotalCPUCores     float64 `json:"total_cpu_cores"`
	TotalMemoryGB     float64 `json:"total_memory_gb"`
	AllocatedCPUCores float64 `json:"allocated_cpu_cores"`
	AllocatedMemoryGB float64 `json:"allocated_memory_gb"`
	AvailableCPUCores float64 `json:"available_cpu_cores"`
	AvailableMemoryGB float64 `json:"available_memory_gb"`
	PodCount          int     `json:"pod_count"`
}

// NodeBreakdownResult lists every node with its capacity figures.
type NodeBreakdownResult struct {
	Nodes       []NodeCapacityInfo `json:"nodes"`
	TotalNodes  int                `json:"total_nodes"`
	Explanation string             `json:"explanation"`
}

// clusterTotals is the integer-domain aggregate every capacity-derived
// operation starts from. Totals use node allocatable, not raw machine
// capacity, since allocatable already excludes platform reservations.
// Available may be negative when the cluster is over-committed.
type clusterTotals struct {
	total     ResourcePair
	allocated ResourcePair
	nodeCount int
}

func (t clusterTotals) availableCPU() int64 {
	return int64(t.total.CPU) - int64(t.allocated.CPU)
}

func (t clusterTotals) availableMemory() int64 {
	return int64(t.total.Memory) - int64(t.allocated.Memory)
}

// aggregateCluster sums allocatable across nodes and requests across
// non-terminal pods. Terminal pods no longer hold resources and are
// excluded.
func aggregateCluster(snap *Snapshot) clusterTotals {
	totals := clusterTotals{nodeCount: len(snap.Nodes)}
	for _, node := range snap.Nodes {
		totals.total = totals.total.add(node.Allocatable)
	}
	for _, pod := range snap.Pods {
		if pod.Terminal() {
			continue
		}
		totals.allocated = totals.allocated.add(pod.Requests)
	}
	return totals
}

// utilization returns allocated/total as a percentage. Values above 100
// are reported verbatim; over-commitment is a valid state, not an error.
func utilization(allocated, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(allocated) / float64(total) * 100
}

// computeClusterCapacity derives the cluster-wide capacity result from a
// snapshot.
func computeClusterCapacity(snap *Snapshot) *ClusterCapacityResult {
	totals := aggregateCluster(snap)

	result := &ClusterCapacityResult{
		TotalCPUCores:     totals.total.CPU.Cores(),
		TotalMemoryGB:     totals.total.Memory.GB(),
		AllocatedCPUCores: totals.allocated.CPU.Cores(),
		AllocatedMemoryGB: totals.allocated.Memory.GB(),
		AvailableCPUCores: Quantity(totals.availableCPU()).Cores(),
		AvailableMemoryGB: Quantity(totals.availableMemory()).GB(),
		NodeCount:         totals.nodeCount,
	}
	result.Explanation = fmt.Sprintf(
		"Cluster has %d nodes. Total capacity: %.2f CPU cores, %.2f GB memory. "+
			"Allocated (requests): %.2f CPU cores (%.1f%%), %.2f GB memory (%.1f%%). "+
			"Available: %.2f CPU cores, %.2f GB memory.",
		result.NodeCount,
		result.TotalCPUCores, result.TotalMemoryGB,
		result.AllocatedCPUCores, utilization(int64(totals.allocated.CPU), int64(totals.total.CPU)),
		result.AllocatedMemoryGB, utilization(int64(totals.allocated.Memory), int64(totals.total.Memory)),
		result.AvailableCPUCores, result.AvailableMemoryGB,
	)
	return result
}

// computeNodeBreakdown derives per-node capacity figures. Allocation per
// node sums requests of non-terminal pods assigned to that node; pods that
// are unscheduled contribute to no node.
func computeNodeBreakdown(snap *Snapshot) *NodeBreakdownResult {
	allocatedPerNode := make(map[string]ResourcePair, len(snap.Nodes))
	for _, pod := range snap.Pods {
		if pod.Terminal() || pod.Node == "" {
			continue
		}
		allocatedPerNode[pod.Node] = allocatedPerNode[pod.Node].add(pod.Requests)
	}

	infos := make([]NodeCapacityInfo, 0, len(snap.Nodes))
	for _, node := range snap.Nodes {
		allocated := allocatedPerNode[node.Name]
		infos = append(infos, NodeCapacityInfo{
			Name:              node.Name,
			TotalCPUCores:     node.Allocatable.CPU.Cores(),
			TotalMemoryGB:     node.Allocatable.Memory.GB(),
			AllocatedCPUCores: allocated.CPU.Cores(),
			AllocatedMemoryGB: allocated.Memory.GB(),
			AvailableCPUCores: Quantity(int64(node.Allocatable.CPU) - int64(allocated.CPU)).Cores(),
			AvailableMemoryGB: Quantity(int64(node.Allocatable.Memory) - int64(allocated.Memory)).GB(),
			PodCount:          node.PodCount,
		})
	}

	return &NodeBreakdownResult{
		Nodes:      infos,
		TotalNodes: len(infos),
		Explanation: fmt.Sprintf(
			"Cluster has %d nodes. Each node shows total capacity, allocated resources (requests), "+
				"available resources, and pod count.",
			len(infos)),
	}
}

// ClusterCapacity reports cluster-wide totals, allocated requests, and
// remaining availability across all nodes.
func (e *Engine) ClusterCapacity(ctx context.Context) (*ClusterCapacityResult, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computeClusterCapacity(snap), nil
}

// NodeBreakdown reports per-node capacity, allocation, availability, and
// pod counts.
func (e *Engine) NodeBreakdown(ctx context.Context) (*NodeBreakdownResult, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computeNodeBreakdown(snap), nil
}
