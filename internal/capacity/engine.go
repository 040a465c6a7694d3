package capacity

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Lister supplies the raw cluster inventory a snapshot is built from.
// Implementations fetch live data; tests supply synthetic inventories.
type Lister interface {
	ListNodes(ctx context.Context) ([]NodeData, error)
	ListPods(ctx context.Context) ([]PodData, error)
	ListNamespaces(ctx context.Context) ([]string, error)
}

// Engine exposes the capacity-analysis operations. It holds no state
// beyond the injected Lister and is safe for concurrent use.
type Engine struct {
	lister Lister
}

// NewEngine creates an Engine backed by the given cluster-access Lister.
func NewEngine(lister Lister) *Engine {
	return &Engine{lister: lister}
}

// snapshot fetches the three inventory lists concurrently, joins them, and
// builds the normalized snapshot. The lists are not transactionally
// coupled; a pod created or deleted between fetches may be double-counted
// or missed, which is an accepted staleness window.
func (e *Engine) snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		nodes      []NodeData
		pods       []PodData
		namespaces []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if nodes, err = e.lister.ListNodes(gctx); err != nil {
			return &ClusterUnavailableError{Resource: "nodes", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pods, err = e.lister.ListPods(gctx); err != nil {
			return &ClusterUnavailableError{Resource: "pods", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if namespaces, err = e.lister.ListNamespaces(gctx); err != nil {
			return &ClusterUnavailableError{Resource: "namespaces", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildSnapshot(nodes, pods, namespaces)
}
