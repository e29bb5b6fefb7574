package inmemorytopology

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
)

func jobNode(ifo string, index int64) *node.Node {
	return &node.Node{ID: nodeid.Job("tmpltbank", ifo, index), Type: node.JobNode}
}

func TestAddAndGetNode(t *testing.T) {
	s := New()
	ctx := context.Background()
	n := jobNode("H1", 0)

	require.NoError(t, s.AddNode(ctx, n))

	retrieved, ok := s.GetNode(ctx, nodeid.Job("tmpltbank", "H1", 0))
	require.True(t, ok)
	assert.Same(t, n, retrieved)

	_, ok = s.GetNode(ctx, nodeid.Job("tmpltbank", "L1", 0))
	assert.False(t, ok)
}

func TestAddNode_Idempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	first := &node.Node{ID: nodeid.File("H1", "abc"), Type: node.FileNode}
	second := &node.Node{ID: nodeid.File("H1", "abc"), Type: node.FileNode}

	require.NoError(t, s.AddNode(ctx, first))
	require.NoError(t, s.AddNode(ctx, second))

	all := s.AllNodes(ctx)
	require.Len(t, all, 1)
	assert.Same(t, first, all[0])
}

func TestAddNode_Rejects(t *testing.T) {
	s := New()
	ctx := context.Background()
	assert.Error(t, s.AddNode(ctx, nil))
	assert.Error(t, s.AddNode(ctx, &node.Node{}))
}

func TestDependencies(t *testing.T) {
	s := New()
	ctx := context.Background()
	fileA := &node.Node{ID: nodeid.File("H1", "b"), Type: node.FileNode}
	fileB := &node.Node{ID: nodeid.File("H1", "a"), Type: node.FileNode}
	job := jobNode("H1", 0)

	for _, n := range []*node.Node{fileA, fileB, job} {
		require.NoError(t, s.AddNode(ctx, n))
	}
	require.NoError(t, s.AddDependency(ctx, fileA.ID, job.ID))
	require.NoError(t, s.AddDependency(ctx, fileB.ID, job.ID))
	require.NoError(t, s.AddDependency(ctx, fileB.ID, job.ID))

	deps, err := s.DependenciesOf(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "file.H1.a", deps[0].String())
	assert.Equal(t, "file.H1.b", deps[1].String())

	deps, err = s.DependenciesOf(ctx, fileA.ID)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestDependencies_Errors(t *testing.T) {
	s := New()
	ctx := context.Background()
	job := jobNode("H1", 0)
	require.NoError(t, s.AddNode(ctx, job))

	missing := nodeid.File("H1", "missing")
	assert.Error(t, s.AddDependency(ctx, missing, job.ID))
	assert.Error(t, s.AddDependency(ctx, job.ID, missing))
	assert.Error(t, s.AddDependency(ctx, job.ID, job.ID))

	_, err := s.DependenciesOf(ctx, missing)
	assert.Error(t, err)
}

func TestAllNodes_InsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, idx := range []int64{30, 10, 20} {
		require.NoError(t, s.AddNode(ctx, jobNode("H1", idx)))
	}

	var ids []string
	for _, n := range s.AllNodes(ctx) {
		ids = append(ids, n.ID.String())
	}
	assert.Equal(t, []string{"tmpltbank.H1.main[30]", "tmpltbank.H1.main[10]", "tmpltbank.H1.main[20]"}, ids)
}

func TestConcurrentAdds(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ifo := fmt.Sprintf("X%d", i%5)
			assert.NoError(t, s.AddNode(ctx, jobNode(ifo, int64(i))))
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.AllNodes(ctx), 50)
}
