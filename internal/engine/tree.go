package engine

import (
	"errors"
	"fmt"
)

// NodeKind classifies project tree nodes.
type NodeKind string

const (
	KindProject NodeKind = "project"
	KindGroup   NodeKind = "group"
	KindPolygon NodeKind = "polygon"
)

// TreeNode is one entry in the project hierarchy. Parent is a non-owning
// back-reference by id, used only for upward traversal; children order is
// the draw order of the subtree (back to front).
type TreeNode struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children"`

	// PolygonID links polygon nodes to their vertex data.
	PolygonID string `json:"polygonId,omitempty"`
}

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrTreeCycle    = errors.New("attach would create a cycle")
)

// TreeIndex is a flat index over tree nodes keyed by id. Hierarchy is
// expressed through parent-id fields and children-id slices, never through
// mutually owning pointers, so acyclicity only has to be enforced at
// attach time.
type TreeIndex struct {
	nodes map[string]*TreeNode
}

func NewTreeIndex() *TreeIndex {
	return &TreeIndex{nodes: make(map[string]*TreeNode)}
}

// Node returns the node with the given id, or nil.
func (t *TreeIndex) Node(id string) *TreeNode {
	return t.nodes[id]
}

// Len returns the number of indexed nodes.
func (t *TreeIndex) Len() int {
	return len(t.nodes)
}

// Insert adds a detached node to the index. The node's Parent and Children
// fields are reset; use Attach to place it in the hierarchy.
func (t *TreeIndex) Insert(node *TreeNode) error {
	if node == nil || node.ID == "" {
		return errors.New("node must have an id")
	}
	if _, exists := t.nodes[node.ID]; exists {
		return fmt.Errorf("duplicate node id %q", node.ID)
	}
	node.Parent = ""
	node.Children = nil
	t.nodes[node.ID] = node
	return nil
}

// Attach makes childID a child of parentID at the given position (clamped
// to the children slice). It refuses to attach a node under itself or any
// of its descendants: cycles are a construction-time invariant violation,
// not a runtime condition traversal has to detect.
func (t *TreeIndex) Attach(childID, parentID string, index int) error {
	child, ok := t.nodes[childID]
	if !ok {
		return fmt.Errorf("child %q: %w", childID, ErrNodeNotFound)
	}
	parent, ok := t.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent %q: %w", parentID, ErrNodeNotFound)
	}
	if childID == parentID || t.isDescendant(parentID, childID) {
		return ErrTreeCycle
	}

	t.Detach(childID)

	if index < 0 || index > len(parent.Children) {
		index = len(parent.Children)
	}
	parent.Children = append(parent.Children, "")
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = childID
	child.Parent = parentID
	return nil
}

// Detach removes a node from its parent's children, leaving it as a root.
func (t *TreeIndex) Detach(id string) {
	node, ok := t.nodes[id]
	if !ok || node.Parent == "" {
		return
	}
	parent := t.nodes[node.Parent]
	if parent != nil {
		for i, c := range parent.Children {
			if c == id {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
	}
	node.Parent = ""
}

// Remove deletes a node and its entire subtree from the index.
func (t *TreeIndex) Remove(id string) {
	node, ok := t.nodes[id]
	if !ok {
		return
	}
	t.Detach(id)
	t.Walk(id, func(n *TreeNode) bool {
		delete(t.nodes, n.ID)
		return true
	})
	delete(t.nodes, node.ID)
}

// FindRoot follows parent references from id until a node with no parent
// remains. The walk is iterative, O(depth) with no recursion, so deep
// hierarchies cost the same per level as shallow ones.
func (t *TreeIndex) FindRoot(id string) (*TreeNode, error) {
	node, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %q: %w", id, ErrNodeNotFound)
	}
	for node.Parent != "" {
		parent, ok := t.nodes[node.Parent]
		if !ok {
			break
		}
		node = parent
	}
	return node, nil
}

// Walk visits the subtree rooted at id depth-first, parent before children,
// children in draw order. Returning false from visit stops the walk. Each
// call runs a fresh traversal over an explicit stack, so tree depth never
// translates into call-stack depth.
func (t *TreeIndex) Walk(id string, visit func(*TreeNode) bool) {
	start, ok := t.nodes[id]
	if !ok {
		return
	}
	stack := []*TreeNode{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			return
		}
		// Push children reversed so the first child is visited first.
		for i := len(node.Children) - 1; i >= 0; i-- {
			if child, ok := t.nodes[node.Children[i]]; ok {
				stack = append(stack, child)
			}
		}
	}
}

// Roots returns every ancestor-less node in the index.
func (t *TreeIndex) Roots() []*TreeNode {
	var roots []*TreeNode
	for _, n := range t.nodes {
		if n.Parent == "" {
			roots = append(roots, n)
		}
	}
	return roots
}

// isDescendant reports whether id lies in the subtree below ancestorID,
// walking upward from id along parent links.
func (t *TreeIndex) isDescendant(id, ancestorID string) bool {
	node := t.nodes[id]
	for node != nil && node.Parent != "" {
		if node.Parent == ancestorID {
			return true
		}
		node = t.nodes[node.Parent]
	}
	return false
}
