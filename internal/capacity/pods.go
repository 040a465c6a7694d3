package capacity

import (
	"context"
	"fmt"
	"sort"
)

// topPodCount is the fixed N for the pod ranker.
const topPodCount = 20

const podSortCriterion = "CPU requests (descending)"

// PodResourceInfo is one pod's requests and limits in millicores and MB,
// with its node assignment.
type PodResourceInfo struct {
	Name              string `json:"name"`
	Namespace         string `json:"namespace"`
	CPURequestsMillis int64  `json:"cpu_requests_millicores"`
	MemoryRequestsMB  int64  `json:"memory_requests_mb"`
	CPULimitsMillis   int64  `json:"cpu_limits_millicores"`
	MemoryLimitsMB    int64  `json:"memory_limits_mb"`
	Node              string `json:"node"`
}

// PodResourceStatsResult lists the top pods by CPU request. TotalPods
// counts every pod in the snapshot, terminal ones included, so callers can
// distinguish shown from total.
type PodResourceStatsResult struct {
	TopPods     []PodResourceInfo `json:"top_pods"`
	TotalPods   int               `json:"total_pods"`
	SortedBy    string            `json:"sorted_by"`
	Explanation string            `json:"explanation"`
}

// computePodResourceStats ranks non-terminal pods by CPU request
// descending, ties broken by pod name ascending, and keeps the top 20.
func computePodResourceStats(snap *Snapshot) *PodResourceStatsResult {
	infos := make([]PodResourceInfo, 0, len(snap.Pods))
	for _, pod := range snap.Pods {
		if pod.Terminal() {
			continue
		}
		node := pod.Node
		if node == "" {
			node = "unscheduled"
		}
		infos = append(infos, PodResourceInfo{
			Name:              pod.Name,
			Namespace:         pod.Namespace,
			CPURequestsMillis: int64(pod.Requests.CPU),
			MemoryRequestsMB:  pod.Requests.Memory.MB(),
			CPULimitsMillis:   int64(pod.Limits.CPU),
			MemoryLimitsMB:    pod.Limits.Memory.MB(),
			Node:              node,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CPURequestsMillis != infos[j].CPURequestsMillis {
			return infos[i].CPURequestsMillis > infos[j].CPURequestsMillis
		}
		return infos[i].Name < infos[j].Name
	})

	if len(infos) > topPodCount {
		infos = infos[:topPodCount]
	}

	totalPods := len(snap.Pods)
	return &PodResourceStatsResult{
		TopPods:   infos,
		TotalPods: totalPods,
		SortedBy:  podSortCriterion,
		Explanation: fmt.Sprintf(
			"Showing top %d pods (out of %d) by CPU requests. Each pod shows CPU/memory requests and limits, "+
				"along with the node it's scheduled on.",
			len(infos), totalPods),
	}
}

// PodResourceStats reports the top 20 pods by CPU request across the
// cluster.
func (e *Engine) PodResourceStats(ctx context.Context) (*PodResourceStatsResult, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computePodResourceStats(snap), nil
}
