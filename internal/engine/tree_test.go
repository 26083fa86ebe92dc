package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, edges map[string]string) *TreeIndex {
	t.Helper()
	idx := NewTreeIndex()
	for child := range edges {
		if idx.Node(child) == nil {
			require.NoError(t, idx.Insert(&TreeNode{ID: child, Kind: KindGroup}))
		}
	}
	for _, parent := range edges {
		if parent != "" && idx.Node(parent) == nil {
			require.NoError(t, idx.Insert(&TreeNode{ID: parent, Kind: KindGroup}))
		}
	}
	for child, parent := range edges {
		if parent != "" {
			require.NoError(t, idx.Attach(child, parent, -1))
		}
	}
	return idx
}

func TestFindRoot(t *testing.T) {
	idx := buildTree(t, map[string]string{
		"a": "root",
		"b": "a",
		"c": "a",
	})

	for _, id := range []string{"root", "a", "b", "c"} {
		node, err := idx.FindRoot(id)
		require.NoError(t, err)
		assert.Equal(t, "root", node.ID)
	}
}

func TestFindRootUnknownNode(t *testing.T) {
	idx := NewTreeIndex()
	_, err := idx.FindRoot("missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestFindRootDeepChain(t *testing.T) {
	idx := NewTreeIndex()
	require.NoError(t, idx.Insert(&TreeNode{ID: "node0", Kind: KindProject}))

	const depth = 500
	for i := 1; i <= depth; i++ {
		id := fmt.Sprintf("node%d", i)
		require.NoError(t, idx.Insert(&TreeNode{ID: id, Kind: KindGroup}))
		require.NoError(t, idx.Attach(id, fmt.Sprintf("node%d", i-1), -1))
	}

	root, err := idx.FindRoot(fmt.Sprintf("node%d", depth))
	require.NoError(t, err)
	assert.Equal(t, "node0", root.ID)
}

func TestWalkOrder(t *testing.T) {
	idx := NewTreeIndex()
	for _, id := range []string{"root", "a", "a1", "a2", "b"} {
		require.NoError(t, idx.Insert(&TreeNode{ID: id, Kind: KindGroup}))
	}
	require.NoError(t, idx.Attach("a", "root", -1))
	require.NoError(t, idx.Attach("b", "root", -1))
	require.NoError(t, idx.Attach("a1", "a", -1))
	require.NoError(t, idx.Attach("a2", "a", -1))

	var order []string
	idx.Walk("root", func(n *TreeNode) bool {
		order = append(order, n.ID)
		return true
	})

	// Depth-first, parent before children, children in attach order.
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b"}, order)
}

func TestWalkEarlyStop(t *testing.T) {
	idx := buildTree(t, map[string]string{"a": "root", "b": "root"})

	var visited int
	idx.Walk("root", func(n *TreeNode) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestWalkDeepChain(t *testing.T) {
	idx := NewTreeIndex()
	require.NoError(t, idx.Insert(&TreeNode{ID: "node0", Kind: KindProject}))
	const depth = 500
	for i := 1; i <= depth; i++ {
		id := fmt.Sprintf("node%d", i)
		require.NoError(t, idx.Insert(&TreeNode{ID: id, Kind: KindGroup}))
		require.NoError(t, idx.Attach(id, fmt.Sprintf("node%d", i-1), -1))
	}

	var visited int
	idx.Walk("node0", func(n *TreeNode) bool {
		visited++
		return true
	})
	assert.Equal(t, depth+1, visited)
}

func TestAttachRejectsCycles(t *testing.T) {
	idx := buildTree(t, map[string]string{"a": "root", "b": "a"})

	assert.ErrorIs(t, idx.Attach("root", "b", -1), ErrTreeCycle)
	assert.ErrorIs(t, idx.Attach("a", "b", -1), ErrTreeCycle)
	assert.ErrorIs(t, idx.Attach("a", "a", -1), ErrTreeCycle)

	// The failed attaches left the hierarchy intact.
	root, err := idx.FindRoot("b")
	require.NoError(t, err)
	assert.Equal(t, "root", root.ID)
}

func TestAttachIndexPlacement(t *testing.T) {
	idx := NewTreeIndex()
	for _, id := range []string{"root", "a", "b", "c"} {
		require.NoError(t, idx.Insert(&TreeNode{ID: id, Kind: KindGroup}))
	}
	require.NoError(t, idx.Attach("a", "root", -1))
	require.NoError(t, idx.Attach("b", "root", -1))
	require.NoError(t, idx.Attach("c", "root", 0))

	assert.Equal(t, []string{"c", "a", "b"}, idx.Node("root").Children)

	// Out-of-range indexes clamp to append.
	require.NoError(t, idx.Attach("c", "root", 99))
	assert.Equal(t, []string{"a", "b", "c"}, idx.Node("root").Children)
}

func TestAttachMovesBetweenParents(t *testing.T) {
	idx := buildTree(t, map[string]string{"a": "root", "b": "root", "x": "a"})

	require.NoError(t, idx.Attach("x", "b", -1))
	assert.Empty(t, idx.Node("a").Children)
	assert.Equal(t, []string{"x"}, idx.Node("b").Children)
	assert.Equal(t, "b", idx.Node("x").Parent)
}

func TestRemoveDeletesSubtree(t *testing.T) {
	idx := buildTree(t, map[string]string{"a": "root", "a1": "a", "a2": "a", "b": "root"})

	idx.Remove("a")

	assert.Nil(t, idx.Node("a"))
	assert.Nil(t, idx.Node("a1"))
	assert.Nil(t, idx.Node("a2"))
	assert.NotNil(t, idx.Node("b"))
	assert.Equal(t, []string{"b"}, idx.Node("root").Children)
}

func TestInsertDuplicateID(t *testing.T) {
	idx := NewTreeIndex()
	require.NoError(t, idx.Insert(&TreeNode{ID: "a"}))
	assert.Error(t, idx.Insert(&TreeNode{ID: "a"}))
	assert.Error(t, idx.Insert(&TreeNode{}))
}
