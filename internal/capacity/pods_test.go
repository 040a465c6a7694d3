package capacity

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPodResourceStats(t *testing.T) {
	engine := NewEngine(testCluster())

	result, err := engine.PodResourceStats(context.Background())
	require.NoError(t, err)

	// 6 pods in the snapshot; the completed job is excluded from the
	// ranking but still counted in the total.
	assert.Equal(t, 6, result.TotalPods)
	require.Len(t, result.TopPods, 5)
	assert.Equal(t, "CPU requests (descending)", result.SortedBy)

	top := result.TopPods[0]
	assert.Equal(t, "web-7f8b5c9d6-abc12", top.Name)
	assert.Equal(t, int64(4000), top.CPURequestsMillis)
	assert.Equal(t, int64(16*1024), top.MemoryRequestsMB)
	assert.Equal(t, int64(4000), top.CPULimitsMillis)

	// Equal CPU requests break ties by name ascending.
	assert.Equal(t, "web-7f8b5c9d6-def34", result.TopPods[1].Name)
	assert.Equal(t, "api-6d9f7b54c-ghi56", result.TopPods[2].Name)
	assert.Equal(t, "api-6d9f7b54c-jkl78", result.TopPods[3].Name)
	assert.Equal(t, "cache-0", result.TopPods[4].Name)
}

func TestPodResourceStatsTruncatesToTwenty(t *testing.T) {
	lister := &fakeLister{}
	for i := 0; i < 30; i++ {
		lister.pods = append(lister.pods, PodData{
			Name:        fmt.Sprintf("worker-%02d", i),
			Namespace:   "batch",
			Node:        "node-a",
			Phase:       PhaseRunning,
			RequestsCPU: fmt.Sprintf("%dm", 100+i*10),
		})
	}
	engine := NewEngine(lister)

	result, err := engine.PodResourceStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, result.TotalPods)
	require.Len(t, result.TopPods, topPodCount)
	assert.True(t, sort.SliceIsSorted(result.TopPods, func(i, j int) bool {
		return result.TopPods[i].CPURequestsMillis > result.TopPods[j].CPURequestsMillis
	}))
	// Highest request first, lowest shown is the 20th largest.
	assert.Equal(t, "worker-29", result.TopPods[0].Name)
	assert.Equal(t, int64(200), result.TopPods[topPodCount-1].CPURequestsMillis)
}

func TestPodResourceStatsUnscheduledPod(t *testing.T) {
	lister := &fakeLister{
		pods: []PodData{
			{Name: "queued-1", Namespace: "default", Phase: PhasePending, RequestsCPU: "250m"},
		},
	}
	engine := NewEngine(lister)

	result, err := engine.PodResourceStats(context.Background())
	require.NoError(t, err)

	require.Len(t, result.TopPods, 1)
	assert.Equal(t, "unscheduled", result.TopPods[0].Node)
}
