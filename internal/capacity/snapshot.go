package capacity

import "fmt"

// Pod phases as reported by the cluster. Succeeded and Failed are terminal:
// the cluster no longer holds resources for those pods.
const (
	PhaseRunning   = "Running"
	PhasePending   = "Pending"
	PhaseSucceeded = "Succeeded"
	PhaseFailed    = "Failed"
	PhaseUnknown   = "Unknown"
)

// NodeData is the raw node inventory supplied by the cluster-access
// collaborator. Quantity fields are Kubernetes quantity strings; an empty
// string means the value was absent and maps to zero.
type NodeData struct {
	Name              string
	CapacityCPU       string
	CapacityMemory    string
	AllocatableCPU    string
	AllocatableMemory string
}

// PodData is the raw pod inventory supplied by the cluster-access
// collaborator. Node is empty for unscheduled pods. Quantity fields follow
// the same empty-means-zero convention as NodeData.
type PodData struct {
	Name           string
	Namespace      string
	Node           string
	Phase          string
	RequestsCPU    string
	RequestsMemory string
	LimitsCPU      string
	LimitsMemory   string
}

// ResourcePair holds a CPU and memory quantity that travel together.
type ResourcePair struct {
	CPU    Quantity
	Memory Quantity
}

// add returns the componentwise sum of two pairs.
func (r ResourcePair) add(other ResourcePair) ResourcePair {
	return ResourcePair{CPU: r.CPU + other.CPU, Memory: r.Memory + other.Memory}
}

// NodeRecord is a node after quantity normalization. Immutable once the
// snapshot is built.
type NodeRecord struct {
	Name        string
	Capacity    ResourcePair
	Allocatable ResourcePair
	PodCount    int
}

// PodRecord is a pod after quantity normalization. Limits may be zero,
// meaning unset; the engine does not require limits >= requests.
type PodRecord struct {
	Name      string
	Namespace string
	Node      string
	Phase     string
	Requests  ResourcePair
	Limits    ResourcePair
}

// Terminal reports whether the pod no longer holds cluster resources.
func (p PodRecord) Terminal() bool {
	return p.Phase == PhaseSucceeded || p.Phase == PhaseFailed
}

// Snapshot is the in-memory cluster model every analysis call computes
// from. It is rebuilt from fresh list data on each call and never mutated.
type Snapshot struct {
	Nodes      []NodeRecord
	Pods       []PodRecord
	Namespaces []string
}

// BuildSnapshot parses the raw inventory into a Snapshot, normalizing every
// quantity into integer base units. A single malformed quantity aborts the
// whole build; missing quantities contribute zero.
func BuildSnapshot(nodes []NodeData, pods []PodData, namespaces []string) (*Snapshot, error) {
	snap := &Snapshot{
		Nodes:      make([]NodeRecord, 0, len(nodes)),
		Pods:       make([]PodRecord, 0, len(pods)),
		Namespaces: namespaces,
	}

	podsPerNode := make(map[string]int)

	for _, pod := range pods {
		requests, err := parsePair(pod.RequestsCPU, pod.RequestsMemory, fmt.Sprintf("pod %s/%s requests", pod.Namespace, pod.Name))
		if err != nil {
			return nil, err
		}
		limits, err := parsePair(pod.LimitsCPU, pod.LimitsMemory, fmt.Sprintf("pod %s/%s limits", pod.Namespace, pod.Name))
		if err != nil {
			return nil, err
		}
		if pod.Node != "" {
			podsPerNode[pod.Node]++
		}
		snap.Pods = append(snap.Pods, PodRecord{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			Node:      pod.Node,
			Phase:     pod.Phase,
			Requests:  requests,
			Limits:    limits,
		})
	}

	for _, node := range nodes {
		capacity, err := parsePair(node.CapacityCPU, node.CapacityMemory, fmt.Sprintf("node %s capacity", node.Name))
		if err != nil {
			return nil, err
		}
		alloc, err := parsePair(node.AllocatableCPU, node.AllocatableMemory, fmt.Sprintf("node %s allocatable", node.Name))
		if err != nil {
			return nil, err
		}
		snap.Nodes = append(snap.Nodes, NodeRecord{
			Name:        node.Name,
			Capacity:    capacity,
			Allocatable: alloc,
			PodCount:    podsPerNode[node.Name],
		})
	}

	return snap, nil
}

// parsePair parses a cpu/memory string pair, mapping absent values to zero.
func parsePair(cpu, memory, field string) (ResourcePair, error) {
	var pair ResourcePair
	if cpu != "" {
		q, err := ParseCPU(cpu)
		if err != nil {
			return ResourcePair{}, annotate(err, field+" cpu")
		}
		pair.CPU = q
	}
	if memory != "" {
		q, err := ParseMemory(memory)
		if err != nil {
			return ResourcePair{}, annotate(err, field+" memory")
		}
		pair.Memory = q
	}
	return pair, nil
}

// annotate attaches the originating field to a parse error.
func annotate(err error, field string) error {
	if mq, ok := err.(*MalformedQuantityError); ok {
		return &MalformedQuantityError{Field: field, Value: mq.Value, Reason: mq.Reason}
	}
	return err
}
