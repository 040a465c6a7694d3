package capacity

import (
	"context"
	"fmt"
	"sort"
)

// NamespaceUsage is one namespace's summed requests, limits, and pod count.
// Limits are summed independently of requests; an unset limit contributes
// zero rather than falling back to the request.
type NamespaceUsage struct {
	Namespace        string  `json:"namespace"`
	CPURequestsCores float64 `json:"cpu_requests_cores"`
	MemoryRequestsGB float64 `json:"memory_requests_gb"`
	CPULimitsCores   float64 `json:"cpu_limits_cores"`
	MemoryLimitsGB   float64 `json:"memory_limits_gb"`
	PodCount         int     `json:"pod_count"`
}

// NamespaceUsageResult lists per-namespace usage sorted by descending CPU
// requests, ties broken by namespace name ascending.
type NamespaceUsageResult struct {
	Namespaces      []NamespaceUsage `json:"namespaces"`
	TotalNamespaces int              `json:"total_namespaces"`
	Explanation     string           `json:"explanation"`
}

// namespaceAggregate accumulates in the integer domain before conversion
// to display units.
type namespaceAggregate struct {
	requests ResourcePair
	limits   ResourcePair
	podCount int
}

// computeNamespaceUsage groups non-terminal pods by namespace. Namespaces
// from the cluster inventory appear even when empty; a pod in a namespace
// absent from the inventory still gets an entry.
func computeNamespaceUsage(snap *Snapshot) *NamespaceUsageResult {
	aggregates := make(map[string]*namespaceAggregate, len(snap.Namespaces))
	for _, name := range snap.Namespaces {
		aggregates[name] = &namespaceAggregate{}
	}

	for _, pod := range snap.Pods {
		if pod.Terminal() {
			continue
		}
		agg, ok := aggregates[pod.Namespace]
		if !ok {
			agg = &namespaceAggregate{}
			aggregates[pod.Namespace] = agg
		}
		agg.podCount++
		agg.requests = agg.requests.add(pod.Requests)
		agg.limits = agg.limits.add(pod.Limits)
	}

	usages := make([]NamespaceUsage, 0, len(aggregates))
	for name, agg := range aggregates {
		usages = append(usages, NamespaceUsage{
			Namespace:        name,
			CPURequestsCores: agg.requests.CPU.Cores(),
			MemoryRequestsGB: agg.requests.Memory.GB(),
			CPULimitsCores:   agg.limits.CPU.Cores(),
			MemoryLimitsGB:   agg.limits.Memory.GB(),
			PodCount:         agg.podCount,
		})
	}

	sort.Slice(usages, func(i, j int) bool {
		if usages[i].CPURequestsCores != usages[j].CPURequestsCores {
			return usages[i].CPURequestsCores > usages[j].CPURequestsCores
		}
		return usages[i].Namespace < usages[j].Namespace
	})

	return &NamespaceUsageResult{
		Namespaces:      usages,
		TotalNamespaces: len(usages),
		Explanation: fmt.Sprintf(
			"Cluster has %d namespaces. Resource usage shows CPU/memory requests and limits for each namespace, "+
				"sorted by CPU requests (descending).",
			len(usages)),
	}
}

// NamespaceUsageStats reports per-namespace request and limit sums sorted
// by descending CPU requests.
func (e *Engine) NamespaceUsageStats(ctx context.Context) (*NamespaceUsageResult, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computeNamespaceUsage(snap), nil
}
