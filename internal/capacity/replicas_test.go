package capacity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReplicaCapacityFits(t *testing.T) {
	engine := NewEngine(testCluster())

	result, err := engine.CheckReplicaCapacity(context.Background(), "api", "backend", 3)
	require.NoError(t, err)

	assert.True(t, result.Fits)
	// Deterministic reference selection: lexicographically smallest match.
	assert.Equal(t, "api-6d9f7b54c-ghi56", result.ReferencePod)
	assert.Equal(t, 2.0, result.CPUPerReplicaCores)
	assert.Equal(t, 4.0, result.MemoryPerReplicaGB)
	assert.Equal(t, 6.0, result.TotalCPURequiredCores)
	assert.Equal(t, 12.0, result.TotalMemoryRequiredGB)
	assert.Equal(t, 2, result.CurrentPodCount)
	assert.InDelta(t, 77.08, result.ProjectedCPUUtilizationPercent, 0.01)
	assert.Contains(t, result.Explanation, "Capacity CHECK PASSED")
	assert.Contains(t, result.Explanation, "Current pods matching 'api': 2")
}

func TestCheckReplicaCapacityShortage(t *testing.T) {
	engine := NewEngine(testCluster())

	// 10 replicas at 2 cores each need 20 cores against 11.5 available.
	result, err := engine.CheckReplicaCapacity(context.Background(), "api", "backend", 10)
	require.NoError(t, err)

	assert.False(t, result.Fits)
	assert.Equal(t, 20.0, result.TotalCPURequiredCores)
	assert.Equal(t, 40.0, result.TotalMemoryRequiredGB)
	assert.Equal(t, 11.5, result.AvailableCPUCores)
	assert.Contains(t, result.Explanation, "Capacity CHECK FAILED")
	assert.Contains(t, result.Explanation, "Maximum possible replicas based on CPU: 5")
	// Memory still fits, so CPU is the only reported constraint.
	assert.NotContains(t, result.Explanation, "Memory shortage")
}

func TestCheckReplicaCapacityReferenceNotFound(t *testing.T) {
	engine := NewEngine(testCluster())

	_, err := engine.CheckReplicaCapacity(context.Background(), "missing-app", "backend", 2)
	require.Error(t, err)
	var notFound *ReferencePodNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing-app", notFound.AppName)
	assert.Equal(t, "backend", notFound.Namespace)
}

func TestCheckReplicaCapacityIgnoresOtherNamespaces(t *testing.T) {
	engine := NewEngine(testCluster())

	// "web" pods exist, but only in the frontend namespace.
	_, err := engine.CheckReplicaCapacity(context.Background(), "web", "backend", 1)
	var notFound *ReferencePodNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCheckReplicaCapacityIgnoresTerminalPods(t *testing.T) {
	engine := NewEngine(testCluster())

	// The only pod matching "migrate" is a completed job.
	_, err := engine.CheckReplicaCapacity(context.Background(), "migrate", "backend", 1)
	var notFound *ReferencePodNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCheckReplicaCapacityZeroCostDimension(t *testing.T) {
	lister := testCluster()
	lister.pods = append(lister.pods, PodData{
		Name: "sidecar-0", Namespace: "backend", Node: "node-a", Phase: PhaseRunning,
		RequestsMemory: "1Gi",
	})
	engine := NewEngine(lister)

	result, err := engine.CheckReplicaCapacity(context.Background(), "sidecar", "backend", 100)
	require.NoError(t, err)

	assert.True(t, result.Fits)
	assert.Equal(t, 0.0, result.CPUPerReplicaCores)
	assert.Contains(t, result.Explanation, "declares no CPU request")
}

func TestCheckReplicaCapacityInvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		appName   string
		namespace string
		replicas  int
		param     string
	}{
		{name: "zero replicas", appName: "api", namespace: "backend", replicas: 0, param: "replica_count"},
		{name: "negative replicas", appName: "api", namespace: "backend", replicas: -5, param: "replica_count"},
		{name: "empty app name", appName: "", namespace: "backend", replicas: 1, param: "app_name"},
		{name: "empty namespace", appName: "api", namespace: "", replicas: 1, param: "namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := testCluster()
			engine := NewEngine(lister)

			_, err := engine.CheckReplicaCapacity(context.Background(), tt.appName, tt.namespace, tt.replicas)
			require.Error(t, err)
			var invalid *InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.param, invalid.Parameter)
			assert.Zero(t, lister.calls)
		})
	}
}
