package capacity

import (
	"context"
	"fmt"
)

// FitResult reports whether a hypothetical resource ask fits cluster-wide
// availability, together with projected utilization after the allocation.
type FitResult struct {
	Fits                     bool    `json:"fits"`
	AvailableCPUCores        float64 `json:"available_cpu_cores"`
	AvailableMemoryGB        float64 `json:"available_memory_gb"`
	CPUUtilizationPercent    float64 `json:"cpu_utilization_percent"`
	MemoryUtilizationPercent float64 `json:"memory_utilization_percent"`
	Explanation              string  `json:"explanation"`
}

// computeResourceFit compares the request against availability on both
// dimensions independently. A zero request on a dimension always satisfies
// that dimension. Projected utilization is computed regardless of outcome
// so callers can see how close a failing request was.
func computeResourceFit(snap *Snapshot, cpu, memory Quantity) *FitResult {
	totals := aggregateCluster(snap)

	availableCPU := totals.availableCPU()
	availableMemory := totals.availableMemory()
	fits := int64(cpu) <= availableCPU && int64(memory) <= availableMemory

	result := &FitResult{
		Fits:                     fits,
		AvailableCPUCores:        Quantity(availableCPU).Cores(),
		AvailableMemoryGB:        Quantity(availableMemory).GB(),
		CPUUtilizationPercent:    utilization(int64(totals.allocated.CPU)+int64(cpu), int64(totals.total.CPU)),
		MemoryUtilizationPercent: utilization(int64(totals.allocated.Memory)+int64(memory), int64(totals.total.Memory)),
	}

	if fits {
		result.Explanation = fmt.Sprintf(
			"Resources FIT in cluster. Requested: %.2f CPU cores, %.2f GB memory. "+
				"Available: %.2f CPU cores, %.2f GB memory. "+
				"After allocation, cluster would be at %.1f%% CPU and %.1f%% memory utilization.",
			cpu.Cores(), memory.GB(),
			result.AvailableCPUCores, result.AvailableMemoryGB,
			result.CPUUtilizationPercent, result.MemoryUtilizationPercent,
		)
		return result
	}

	var cpuShortage, memoryShortage string
	if int64(cpu) > availableCPU {
		cpuShortage = fmt.Sprintf("CPU shortage: %.2f cores needed but only %.2f available. ",
			Quantity(int64(cpu)-availableCPU).Cores(), result.AvailableCPUCores)
	}
	if int64(memory) > availableMemory {
		memoryShortage = fmt.Sprintf("Memory shortage: %.2f GB needed but only %.2f GB available.",
			Quantity(int64(memory)-availableMemory).GB(), result.AvailableMemoryGB)
	}
	result.Explanation = fmt.Sprintf(
		"Resources DO NOT FIT in cluster. Requested: %.2f CPU cores, %.2f GB memory. "+
			"Available: %.2f CPU cores, %.2f GB memory. %s%s",
		cpu.Cores(), memory.GB(),
		result.AvailableCPUCores, result.AvailableMemoryGB,
		cpuShortage, memoryShortage,
	)
	return result
}

// CheckResourceFit reports whether cpuCores and memoryGB of additional
// resources fit in current cluster-wide availability. Negative or
// non-finite parameters are rejected before any snapshot fetch.
func (e *Engine) CheckResourceFit(ctx context.Context, cpuCores, memoryGB float64) (*FitResult, error) {
	if !validNumber(cpuCores) || cpuCores < 0 {
		return nil, &InvalidParameterError{Parameter: "cpu_cores", Reason: "must be a non-negative number"}
	}
	if !validNumber(memoryGB) || memoryGB < 0 {
		return nil, &InvalidParameterError{Parameter: "memory_gb", Reason: "must be a non-negative number"}
	}

	cpu, ok := quantityFromCores(cpuCores)
	if !ok {
		return nil, &InvalidParameterError{Parameter: "cpu_cores", Reason: "value out of range"}
	}
	memory, ok := quantityFromGB(memoryGB)
	if !ok {
		return nil, &InvalidParameterError{Parameter: "memory_gb", Reason: "value out of range"}
	}

	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return computeResourceFit(snap, cpu, memory), nil
}
