package inmemorytopology

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
	"github.com/vk/tmpltbank/internal/topologystore"
)

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu    sync.RWMutex
	order []string
	nodes map[string]*node.Node
	deps  map[string]map[string]nodeid.Address // Key: node ID, Value: dependencies by ID
}

var _ topologystore.Store = (*Store)(nil)

// New creates a new, empty in-memory topology store.
func New() *Store {
	return &Store{
		nodes: make(map[string]*node.Node),
		deps:  make(map[string]map[string]nodeid.Address),
	}
}

// AddNode adds a new node to the store.
func (s *Store) AddNode(ctx context.Context, n *node.Node) error {
	if n == nil {
		return fmt.Errorf("cannot add nil node to topology")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := n.ID.String()
	if key == "" {
		return fmt.Errorf("cannot add node without an address to topology")
	}
	if _, exists := s.nodes[key]; exists {
		return nil
	}
	s.nodes[key] = n
	s.order = append(s.order, key)
	return nil
}

// AddDependency creates a dependency link from one node to another.
func (s *Store) AddDependency(ctx context.Context, from, to nodeid.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromKey := from.String()
	toKey := to.String()

	if _, exists := s.nodes[fromKey]; !exists {
		return fmt.Errorf("dependency source node '%s' not found in topology", fromKey)
	}
	if _, exists := s.nodes[toKey]; !exists {
		return fmt.Errorf("dependency target node '%s' not found in topology", toKey)
	}
	if fromKey == toKey {
		return fmt.Errorf("node '%s' cannot depend on itself", toKey)
	}

	if s.deps[toKey] == nil {
		s.deps[toKey] = make(map[string]nodeid.Address)
	}
	s.deps[toKey][fromKey] = from
	return nil
}

// GetNode retrieves a single node by its address.
func (s *Store) GetNode(ctx context.Context, id nodeid.Address) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id.String()]
	return n, ok
}

// AllNodes returns all nodes in the order they were first added.
func (s *Store) AllNodes(ctx context.Context) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*node.Node, 0, len(s.order))
	for _, key := range s.order {
		nodes = append(nodes, s.nodes[key])
	}
	return nodes
}

// DependenciesOf returns the addresses of all nodes that the given node depends on.
func (s *Store) DependenciesOf(ctx context.Context, id nodeid.Address) ([]nodeid.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := id.String()
	if _, exists := s.nodes[key]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", key)
	}

	depSet := s.deps[key]
	keys := make([]string, 0, len(depSet))
	for depKey := range depSet {
		keys = append(keys, depKey)
	}
	sort.Strings(keys)

	deps := make([]nodeid.Address, 0, len(keys))
	for _, depKey := range keys {
		deps = append(deps, depSet[depKey])
	}
	return deps, nil
}
