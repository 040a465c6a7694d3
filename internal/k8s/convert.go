package k8s

import (
	"strconv"

	corev1 "k8s.io/api/core/v1"

	"github.com/alpha-hack-program/cluster-insights-mcp/internal/capacity"
)

// toNodeData converts a node into the plain inventory record the engine
// consumes. Quantity strings pass through in the API server's canonical
// form; absent resources stay empty and map to zero downstream.
func toNodeData(node *corev1.Node) capacity.NodeData {
	data := capacity.NodeData{Name: node.Name}
	if cpu, ok := node.Status.Capacity[corev1.ResourceCPU]; ok {
		data.CapacityCPU = cpu.String()
	}
	if mem, ok := node.Status.Capacity[corev1.ResourceMemory]; ok {
		data.CapacityMemory = mem.String()
	}
	if cpu, ok := node.Status.Allocatable[corev1.ResourceCPU]; ok {
		data.AllocatableCPU = cpu.String()
	}
	if mem, ok := node.Status.Allocatable[corev1.ResourceMemory]; ok {
		data.AllocatableMemory = mem.String()
	}
	return data
}

// toPodData converts a pod, summing requests and limits across its
// containers. A pod's cost is the sum of its container declarations; init
// containers run before the steady state and are not counted.
func toPodData(pod *corev1.Pod) capacity.PodData {
	data := capacity.PodData{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		Node:      pod.Spec.NodeName,
		Phase:     string(pod.Status.Phase),
	}

	var reqCPU, reqMem, limCPU, limMem containerSum
	for _, container := range pod.Spec.Containers {
		if cpu, ok := container.Resources.Requests[corev1.ResourceCPU]; ok {
			reqCPU.addMillis(cpu.MilliValue())
		}
		if mem, ok := container.Resources.Requests[corev1.ResourceMemory]; ok {
			reqMem.addBytes(mem.Value())
		}
		if cpu, ok := container.Resources.Limits[corev1.ResourceCPU]; ok {
			limCPU.addMillis(cpu.MilliValue())
		}
		if mem, ok := container.Resources.Limits[corev1.ResourceMemory]; ok {
			limMem.addBytes(mem.Value())
		}
	}

	data.RequestsCPU = reqCPU.cpuString()
	data.RequestsMemory = reqMem.memoryString()
	data.LimitsCPU = limCPU.cpuString()
	data.LimitsMemory = limMem.memoryString()
	return data
}

// containerSum accumulates quantities across containers, remembering
// whether any container declared the resource at all so that "declared as
// zero" and "not declared" stay distinguishable.
type containerSum struct {
	value    int64
	declared bool
}

func (s *containerSum) addMillis(millis int64) {
	s.value += millis
	s.declared = true
}

func (s *containerSum) addBytes(bytes int64) {
	s.value += bytes
	s.declared = true
}

// cpuString renders the sum in millicores, or empty when never declared.
func (s containerSum) cpuString() string {
	if !s.declared {
		return ""
	}
	return strconv.FormatInt(s.value, 10) + "m"
}

// memoryString renders the sum in bytes, or empty when never declared.
func (s containerSum) memoryString() string {
	if !s.declared {
		return ""
	}
	return strconv.FormatInt(s.value, 10)
}
