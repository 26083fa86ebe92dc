package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/regenesis/regenesis/backend-go/internal/document"
)

// ErrNoDocument is returned by edit commands invoked before a document is
// loaded. The wasm bindings expose every command on the global object from
// startup, so an early call must fail cleanly instead of taking down the
// runtime.
var ErrNoDocument = errors.New("no document loaded")

// Config carries the geometry tunables the engine reads. It is populated
// once from the user's preferences; the engine never does dynamic
// dotted-path lookups itself.
type Config struct {
	ZoomBounds      ZoomBounds
	DragThresholdPx float64
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		ZoomBounds:      DefaultZoomBounds(),
		DragThresholdPx: DefaultDragThresholdPx,
	}
}

// Engine owns the plot document, the tree index over it and the viewport
// state, and answers the geometry queries the editor shell needs. All
// methods run synchronously on the caller's goroutine; mutations are
// visible to the next read with no caching in between.
type Engine struct {
	doc  *document.PlotDocument
	tree *TreeIndex
	view ViewState
	cfg  Config

	// Selected node ids (backend owns selection state).
	selection []string
}

// NewEngine creates an engine with no document loaded.
func NewEngine(cfg Config) *Engine {
	if cfg.ZoomBounds.Min <= 0 || cfg.ZoomBounds.Max <= 0 {
		cfg.ZoomBounds = DefaultZoomBounds()
	}
	if cfg.DragThresholdPx <= 0 {
		cfg.DragThresholdPx = DefaultDragThresholdPx
	}
	return &Engine{
		tree: NewTreeIndex(),
		view: NewViewState(cfg.ZoomBounds),
		cfg:  cfg,
	}
}

// --- Document commands ---

// LoadDocument loads a plot document from JSON and rebuilds the tree index.
func (e *Engine) LoadDocument(jsonData []byte) error {
	var doc document.PlotDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	e.SetDocument(&doc)
	return nil
}

// SetDocument installs an already-parsed document.
func (e *Engine) SetDocument(doc *document.PlotDocument) {
	e.doc = doc
	e.selection = nil
	e.view = NewViewState(e.cfg.ZoomBounds)
	e.rebuildTree()
}

// Document returns the engine's document, or nil if none is loaded.
func (e *Engine) Document() *document.PlotDocument {
	return e.doc
}

// Tree returns the index over the document's node hierarchy.
func (e *Engine) Tree() *TreeIndex {
	return e.tree
}

// Config returns the geometry tunables the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) rebuildTree() {
	e.tree = NewTreeIndex()
	if e.doc == nil {
		return
	}
	for _, n := range e.doc.Nodes {
		node := n
		e.tree.nodes[n.ID] = &TreeNode{
			ID:        node.ID,
			Kind:      NodeKind(node.Kind),
			Name:      node.Name,
			Parent:    node.Parent,
			Children:  append([]string(nil), node.Children...),
			PolygonID: node.PolygonID,
		}
	}
}

// syncNode writes one index node back into the document map.
func (e *Engine) syncNode(id string) {
	n := e.tree.Node(id)
	if n == nil {
		delete(e.doc.Nodes, id)
		return
	}
	e.doc.Nodes[id] = document.Node{
		ID:        n.ID,
		Kind:      document.NodeKind(n.Kind),
		Name:      n.Name,
		Parent:    n.Parent,
		Children:  append([]string(nil), n.Children...),
		PolygonID: n.PolygonID,
	}
}

func (e *Engine) touch() {
	e.doc.Project.Version++
	e.doc.Project.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// --- View commands ---

// View returns the current viewport state.
func (e *Engine) View() ViewState {
	return e.view
}

// SetView replaces the viewport state, re-clamping zoom to the engine's
// bounds so a synced view from another client can never be invalid here.
func (e *Engine) SetView(v ViewState) ViewState {
	e.view = NewViewState(e.cfg.ZoomBounds)
	e.view.Pan = v.Pan
	e.view.SetZoom(v.Zoom)
	return e.view
}

// SetZoom clamps and applies a zoom request, returning the applied value.
func (e *Engine) SetZoom(requested float64) float64 {
	return e.view.SetZoom(requested)
}

// PanBy pans the viewport by a screen-pixel delta.
func (e *Engine) PanBy(dx, dy float64) {
	e.view.PanBy(dx, dy)
}

// --- Selection ---

func (e *Engine) SetSelection(nodeIDs []string) {
	e.selection = nodeIDs
}

func (e *Engine) Selection() []string {
	return e.selection
}

// --- Geometry queries ---

// VertexHit identifies one polygon vertex under the pointer.
type VertexHit struct {
	NodeID      string `json:"nodeId"`
	PolygonID   string `json:"polygonId"`
	VertexIndex int    `json:"vertexIndex"`
}

// HitTestVertex finds the topmost polygon vertex within handle radius of a
// screen point. Later siblings draw on top, so candidates are examined in
// reverse draw order.
func (e *Engine) HitTestVertex(x, y float64) (VertexHit, bool) {
	if e.doc == nil {
		return VertexHit{}, false
	}
	screenPt := Point{X: x, Y: y}

	var polygonNodes []*TreeNode
	e.tree.Walk(e.doc.Project.Root, func(n *TreeNode) bool {
		if n.Kind == KindPolygon && n.PolygonID != "" {
			polygonNodes = append(polygonNodes, n)
		}
		return true
	})

	for i := len(polygonNodes) - 1; i >= 0; i-- {
		node := polygonNodes[i]
		poly, ok := e.doc.Polygons[node.PolygonID]
		if !ok {
			continue
		}
		if idx, ok := NearestVertex(screenPt, vertexPoints(poly.Vertices), e.view); ok {
			return VertexHit{NodeID: node.ID, PolygonID: poly.ID, VertexIndex: idx}, true
		}
	}
	return VertexHit{}, false
}

// IsDrag classifies a pointer-down/move pair against the configured drag
// threshold.
func (e *Engine) IsDrag(startX, startY, currentX, currentY float64) bool {
	return ExceedsDragThreshold(
		Point{X: startX, Y: startY},
		Point{X: currentX, Y: currentY},
		e.cfg.DragThresholdPx,
	)
}

// NodeBounds returns the world-space bounds of all polygons in the subtree
// under nodeID.
func (e *Engine) NodeBounds(nodeID string) Rect {
	var bounds Rect
	e.tree.Walk(nodeID, func(n *TreeNode) bool {
		if n.Kind == KindPolygon && n.PolygonID != "" {
			if poly, ok := e.doc.Polygons[n.PolygonID]; ok {
				bounds = bounds.Union(BoundsOf(vertexPoints(poly.Vertices)))
			}
		}
		return true
	})
	return bounds
}

// SelectionBounds returns the combined world bounds of the selection.
func (e *Engine) SelectionBounds() Rect {
	var bounds Rect
	for _, id := range e.selection {
		bounds = bounds.Union(e.NodeBounds(id))
	}
	return bounds
}

// --- Auto-zoom commands ---

// FitNode reframes the viewport onto a node's subtree with the given
// margin. Falls back to FitAll when the subtree has no polygons.
func (e *Engine) FitNode(nodeID string, viewportW, viewportH, margin float64) ViewState {
	bounds := e.NodeBounds(nodeID)
	if bounds.IsEmpty() {
		return e.FitAll(viewportW, viewportH, margin)
	}
	e.view = Fit(bounds, viewportW, viewportH, margin, e.cfg.ZoomBounds)
	return e.view
}

// FitSelection reframes onto the current selection, or the whole plot when
// nothing is selected.
func (e *Engine) FitSelection(viewportW, viewportH, margin float64) ViewState {
	bounds := e.SelectionBounds()
	if bounds.IsEmpty() {
		return e.FitAll(viewportW, viewportH, margin)
	}
	e.view = Fit(bounds, viewportW, viewportH, margin, e.cfg.ZoomBounds)
	return e.view
}

// FitAll reframes onto the project's plot rectangle. Without a document the
// view is left as it is.
func (e *Engine) FitAll(viewportW, viewportH, margin float64) ViewState {
	if e.doc == nil {
		return e.view
	}
	rect := Rect{MaxX: e.doc.Project.PlotWidth, MaxY: e.doc.Project.PlotHeight}
	e.view = Fit(rect, viewportW, viewportH, margin, e.cfg.ZoomBounds)
	return e.view
}

// --- Edit commands ---

// CreateRegion adds a polygon node under a parent. Vertices must satisfy
// the minimum-vertex invariant or nothing is committed.
func (e *Engine) CreateRegion(parentID, nodeID, polygonID, name string, vertices []document.Vertex, fill, stroke string) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if e.tree.Node(parentID) == nil {
		return fmt.Errorf("parent %q: %w", parentID, ErrNodeNotFound)
	}
	if err := e.doc.AddPolygon(polygonID, vertices, fill, stroke); err != nil {
		return err
	}
	node := &TreeNode{ID: nodeID, Kind: KindPolygon, Name: name, PolygonID: polygonID}
	if err := e.tree.Insert(node); err != nil {
		delete(e.doc.Polygons, polygonID)
		return err
	}
	if err := e.tree.Attach(nodeID, parentID, -1); err != nil {
		delete(e.doc.Polygons, polygonID)
		delete(e.tree.nodes, nodeID)
		return err
	}
	e.syncNode(nodeID)
	e.syncNode(parentID)
	e.touch()
	return nil
}

// MoveVertex moves one polygon vertex to a new world position.
func (e *Engine) MoveVertex(polygonID string, index int, x, y float64) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if err := e.doc.MoveVertex(polygonID, index, x, y); err != nil {
		return err
	}
	e.touch()
	return nil
}

// InsertVertex inserts a vertex into a polygon outline.
func (e *Engine) InsertVertex(polygonID string, index int, x, y float64) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if err := e.doc.InsertVertex(polygonID, index, x, y); err != nil {
		return err
	}
	e.touch()
	return nil
}

// RemoveVertex removes a vertex, honoring the minimum-vertex invariant.
func (e *Engine) RemoveVertex(polygonID string, index int) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if err := e.doc.RemoveVertex(polygonID, index); err != nil {
		return err
	}
	e.touch()
	return nil
}

// AddPlacement puts a plant at a world position inside a region node.
func (e *Engine) AddPlacement(placementID, plantID, nodeID string, x, y float64) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if e.tree.Node(nodeID) == nil {
		return fmt.Errorf("node %q: %w", nodeID, ErrNodeNotFound)
	}
	e.doc.Placements[placementID] = document.Placement{
		ID:      placementID,
		PlantID: plantID,
		NodeID:  nodeID,
		X:       x,
		Y:       y,
	}
	e.touch()
	return nil
}

// RemovePlacement deletes a plant placement. Removing an unknown id is a
// no-op.
func (e *Engine) RemovePlacement(placementID string) {
	if e.doc == nil {
		return
	}
	if _, ok := e.doc.Placements[placementID]; !ok {
		return
	}
	delete(e.doc.Placements, placementID)
	e.touch()
}

// RenameNode renames a tree node.
func (e *Engine) RenameNode(nodeID, name string) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	node := e.tree.Node(nodeID)
	if node == nil {
		return fmt.Errorf("node %q: %w", nodeID, ErrNodeNotFound)
	}
	node.Name = name
	e.syncNode(nodeID)
	e.touch()
	return nil
}

// ReparentNode moves a node (and its subtree) under a new parent at the
// given child index. Cycle-creating moves are rejected by the index.
func (e *Engine) ReparentNode(nodeID, newParentID string, index int) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	node := e.tree.Node(nodeID)
	if node == nil {
		return fmt.Errorf("node %q: %w", nodeID, ErrNodeNotFound)
	}
	oldParent := node.Parent
	if err := e.tree.Attach(nodeID, newParentID, index); err != nil {
		return err
	}
	e.syncNode(nodeID)
	e.syncNode(newParentID)
	if oldParent != "" && oldParent != newParentID {
		e.syncNode(oldParent)
	}
	e.touch()
	return nil
}

// --- Render query ---

// Render compiles the current document and view into draw commands and
// returns them as JSON. Returns "[]" when no document is loaded.
func (e *Engine) Render() string {
	if e.doc == nil {
		return "[]"
	}
	commands := CompileDrawCommands(e.doc, e.tree, e.view, e.selection)
	out, _ := DrawCommandsToJSON(commands)
	return out
}

func vertexPoints(vs []document.Vertex) []Point {
	pts := make([]Point, len(vs))
	for i, v := range vs {
		pts[i] = Point{X: v.X, Y: v.Y}
	}
	return pts
}
