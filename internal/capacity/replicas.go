package capacity

import (
	"context"
	"fmt"
	"strings"
)

// ReplicaCapacityResult reports whether the cluster can absorb additional
// replicas of an application, costed from a reference pod's requests.
type ReplicaCapacityResult struct {
	Fits                           bool    `json:"fits"`
	ReferencePod                   string  `json:"reference_pod"`
	CPUPerReplicaCores             float64 `json:"cpu_per_replica_cores"`
	MemoryPerReplicaGB             float64 `json:"memory_per_replica_gb"`
	TotalCPURequiredCores          float64 `json:"total_cpu_required_cores"`
	TotalMemoryRequiredGB          float64 `json:"total_memory_required_gb"`
	AvailableCPUCores              float64 `json:"available_cpu_cores"`
	AvailableMemoryGB              float64 `json:"available_memory_gb"`
	CurrentPodCount                int     `json:"current_pod_count"`
	ProjectedCPUUtilizationPercent float64 `json:"projected_cpu_utilization_percent"`
	ProjectedMemUtilizationPercent float64 `json:"projected_memory_utilization_percent"`
	Explanation                    string  `json:"explanation"`
}

// findReferencePod selects the reference pod among non-terminal pods in the
// namespace whose name contains the fragment. Selection is deterministic:
// the lexicographically smallest matching name wins, since snapshot order
// is not guaranteed stable.
func findReferencePod(snap *Snapshot, appName, namespace string) (*PodRecord, int) {
	var reference *PodRecord
	matches := 0
	for i := range snap.Pods {
		pod := &snap.Pods[i]
		if pod.Terminal() || pod.Namespace != namespace || !strings.Contains(pod.Name, appName) {
			continue
		}
		matches++
		if reference == nil || pod.Name < reference.Name {
			reference = pod
		}
	}
	return reference, matches
}

// maxReplicasFor returns how many replicas of the given per-replica cost
// fit in the available amount. Zero-cost dimensions fit any count; that
// case never reaches here because a zero cost cannot be the binding
// constraint.
func maxReplicasFor(available, cost int64) int64 {
	if cost <= 0 || available < 0 {
		return 0
	}
	return available / cost
}

// computeReplicaCapacity projects whether `replicas` additional copies of
// the reference pod fit cluster-wide availability. Total required cost is
// exact integer arithmetic; no rounding during accumulation.
func computeReplicaCapacity(snap *Snapshot, appName, namespace string, replicas int64) (*ReplicaCapacityResult, error) {
	reference, matches := findReferencePod(snap, appName, namespace)
	if reference == nil {
		return nil, &ReferencePodNotFoundError{AppName: appName, Namespace: namespace}
	}

	cost := reference.Requests
	requiredCPU := int64(cost.CPU) * replicas
	requiredMemory := int64(cost.Memory) * replicas

	totals := aggregateCluster(snap)
	availableCPU := totals.availableCPU()
	availableMemory := totals.availableMemory()
	fits := requiredCPU <= availableCPU && requiredMemory <= availableMemory

	result := &ReplicaCapacityResult{
		Fits:                           fits,
		ReferencePod:                   reference.Name,
		CPUPerReplicaCores:             cost.CPU.Cores(),
		MemoryPerReplicaGB:             cost.Memory.GB(),
		TotalCPURequiredCores:          Quantity(requiredCPU).Cores(),
		TotalMemoryRequiredGB:          Quantity(requiredMemory).GB(),
		AvailableCPUCores:              Quantity(availableCPU).Cores(),
		AvailableMemoryGB:              Quantity(availableMemory).GB(),
		CurrentPodCount:                matches,
		ProjectedCPUUtilizationPercent: utilization(int64(totals.allocated.CPU)+requiredCPU, int64(totals.total.CPU)),
		ProjectedMemUtilizationPercent: utilization(int64(totals.allocated.Memory)+requiredMemory, int64(totals.total.Memory)),
	}

	if fits {
		result.Explanation = passedExplanation(result, totals, appName, namespace, replicas, cost, availableCPU, availableMemory)
	} else {
		result.Explanation = failedExplanation(result, appName, namespace, replicas, cost, availableCPU, availableMemory, requiredCPU, requiredMemory)
	}
	if note := zeroCostNote(cost); note != "" {
		result.Explanation += "\n\n" + note
	}
	return result, nil
}

func passedExplanation(r *ReplicaCapacityResult, totals clusterTotals, appName, namespace string, replicas int64, cost ResourcePair, availableCPU, availableMemory int64) string {
	return fmt.Sprintf(
		"✓ Capacity CHECK PASSED: You can add %d more replicas of '%s' in namespace '%s'.\n"+
			"\n"+
			"Reference pod: %s\n"+
			"- CPU per replica: %.3f cores\n"+
			"- Memory per replica: %.3f GB\n"+
			"\n"+
			"Total required for %d replicas:\n"+
			"- CPU: %.3f cores\n"+
			"- Memory: %.3f GB\n"+
			"\n"+
			"Cluster availability:\n"+
			"- Available CPU: %.3f cores (enough for %d replicas)\n"+
			"- Available Memory: %.3f GB (enough for %d replicas)\n"+
			"\n"+
			"Projected utilization after adding replicas:\n"+
			"- CPU: %.1f%% (current: %.1f%%)\n"+
			"- Memory: %.1f%% (current: %.1f%%)\n"+
			"\n"+
			"Current pods matching '%s': %d",
		replicas, appName, namespace,
		r.ReferencePod,
		r.CPUPerReplicaCores,
		r.MemoryPerReplicaGB,
		replicas,
		r.TotalCPURequiredCores,
		r.TotalMemoryRequiredGB,
		r.AvailableCPUCores,
		maxReplicasFor(availableCPU, int64(cost.CPU)),
		r.AvailableMemoryGB,
		maxReplicasFor(availableMemory, int64(cost.Memory)),
		r.ProjectedCPUUtilizationPercent,
		utilization(int64(totals.allocated.CPU), int64(totals.total.CPU)),
		r.ProjectedMemUtilizationPercent,
		utilization(int64(totals.allocated.Memory), int64(totals.total.Memory)),
		appName, r.CurrentPodCount,
	)
}

func failedExplanation(r *ReplicaCapacityResult, appName, namespace string, replicas int64, cost ResourcePair, availableCPU, availableMemory, requiredCPU, requiredMemory int64) string {
	var issues []string
	if requiredCPU > availableCPU {
		issues = append(issues, fmt.Sprintf(
			"CPU shortage: Need %.3f cores but only %.3f available (shortfall: %.3f cores). "+
				"Maximum possible replicas based on CPU: %d",
			r.TotalCPURequiredCores, r.AvailableCPUCores,
			Quantity(requiredCPU-availableCPU).Cores(),
			maxReplicasFor(availableCPU, int64(cost.CPU))))
	}
	if requiredMemory > availableMemory {
		issues = append(issues, fmt.Sprintf(
			"Memory shortage: Need %.3f GB but only %.3f GB available (shortfall: %.3f GB). "+
				"Maximum possible replicas based on memory: %d",
			r.TotalMemoryRequiredGB, r.AvailableMemoryGB,
			Quantity(requiredMemory-availableMemory).GB(),
			maxReplicasFor(availableMemory, int64(cost.Memory))))
	}
	return fmt.Sprintf(
		"✗ Capacity CHECK FAILED: Cannot add %d replicas of '%s' in namespace '%s'.\n"+
			"\n"+
			"Reference pod: %s\n"+
			"- CPU per replica: %.3f cores\n"+
			"- Memory per replica: %.3f GB\n"+
			"\n"+
			"Total required for %d replicas:\n"+
			"- CPU: %.3f cores\n"+
			"- Memory: %.3f GB\n"+
			"\n"+
			"Issues:\n%s\n"+
			"\n"+
			"Current pods matching '%s': %d",
		replicas, appName, namespace,
		r.ReferencePod,
		r.CPUPerReplicaCores,
		r.MemoryPerReplicaGB,
		replicas,
		r.TotalCPURequiredCores,
		r.TotalMemoryRequiredGB,
		strings.Join(issues, "\n"),
		appName, r.CurrentPodCount,
	)
}

// zeroCostNote surfaces dimensions the reference pod declares no request
// for. Such a dimension costs nothing per replica and trivially fits any
// count, which callers should see rather than infer.
func zeroCostNote(cost ResourcePair) string {
	var notes []string
	if cost.CPU == 0 {
		notes = append(notes, "the reference pod declares no CPU request, so CPU adds no load per replica")
	}
	if cost.Memory == 0 {
		notes = append(notes, "the reference pod declares no memory request, so memory adds no load per replica")
	}
	if len(notes) == 0 {
		return ""
	}
	return "Note: " + strings.Join(notes, "; ") + "."
}

// CheckReplicaCapacity reports whether the cluster can absorb
// additionalReplicas more copies of the application identified by appName
// in the given namespace. Parameters are validated before any snapshot
// fetch; a missing reference pod is a ReferencePodNotFoundError, not a
// fits=false result.
func (e *Engine) CheckReplicaCapacity(ctx context.Context, appName, namespace string, additionalReplicas int) (*ReplicaCapacityResult, error) {
	if additionalReplicas < 1 {
		return nil, &InvalidParameterError{Parameter: "replica_count", Reason: "must be at least 1"}
	}
	if appName == "" {
		return nil, &InvalidParameterError{Parameter: "app_name", Reason: "must not be empty"}
	}
	if namespace == "" {
		return nil, &InvalidParameterError{Parameter: "namespace", Reason: "must not be empty"}
	}

	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computeReplicaCapacity(snap, appName, namespace, int64(additionalReplicas))
}
