// Package topologystore defines the interface for storing the structure of
// the workflow graph that stages contribute jobs and files to.
//
// The graph is owned by the caller of a stage. A stage only adds nodes and
// edges; it never removes or rewrites what other stages put there. Executing
// the graph is the business of the batch system the graph is handed to.
package topologystore

import (
	"context"

	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
)

// Store is the interface for managing the topology of a directed acyclic
// workflow graph.
//
// Implementations must be safe for concurrent reads and writes.
type Store interface {
	// AddNode registers a node. Adding a node whose ID is already present is
	// a no-op, so file nodes shared by several jobs can be added by each.
	AddNode(ctx context.Context, n *node.Node) error

	// AddDependency records that 'to' depends on 'from'. Both nodes must
	// already exist.
	AddDependency(ctx context.Context, from, to nodeid.Address) error

	// GetNode retrieves a single node by its address.
	GetNode(ctx context.Context, id nodeid.Address) (*node.Node, bool)

	// AllNodes returns a snapshot of every node in insertion order.
	AllNodes(ctx context.Context) []*node.Node

	// DependenciesOf returns the nodes 'id' directly depends on, sorted by
	// address. It fails when 'id' is not in the graph.
	DependenciesOf(ctx context.Context, id nodeid.Address) ([]nodeid.Address, error)
}
