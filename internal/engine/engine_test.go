package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenesis/regenesis/backend-go/internal/document"
)

// testDocument builds a 40x30 plot with one triangular region under the root.
func testDocument(t *testing.T) *document.PlotDocument {
	t.Helper()

	doc := document.NewEmptyDocument("proj_test", "Test Plot", "node_root")
	require.NoError(t, doc.AddPolygon("poly_1", []document.Vertex{
		{X: 2, Y: 2}, {X: 10, Y: 2}, {X: 6, Y: 8},
	}, "#a8d5a2", "#2f6b2f"))

	doc.Nodes["node_region"] = document.Node{
		ID:        "node_region",
		Kind:      document.NodeKindPolygon,
		Name:      "Bed",
		Parent:    "node_root",
		Children:  []string{},
		PolygonID: "poly_1",
	}
	root := doc.Nodes["node_root"]
	root.Children = append(root.Children, "node_region")
	doc.Nodes["node_root"] = root
	return doc
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng := NewEngine(DefaultConfig())
	eng.SetDocument(testDocument(t))
	return eng
}

func TestLoadDocumentRebuildsTree(t *testing.T) {
	doc := testDocument(t)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	eng := NewEngine(DefaultConfig())
	require.NoError(t, eng.LoadDocument(data))

	assert.Equal(t, 2, eng.Tree().Len())
	root, err := eng.Tree().FindRoot("node_region")
	require.NoError(t, err)
	assert.Equal(t, "node_root", root.ID)
}

func TestLoadDocumentInvalidJSON(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	assert.Error(t, eng.LoadDocument([]byte("{not json")))
	assert.Nil(t, eng.Document())
}

func TestHitTestVertex(t *testing.T) {
	eng := newTestEngine(t)

	// Default view: zoom 1, pan (0,0), handle radius 10. Vertex (2,2) is
	// within reach of a click at (5,2).
	hit, ok := eng.HitTestVertex(5, 2)
	require.True(t, ok)
	assert.Equal(t, "node_region", hit.NodeID)
	assert.Equal(t, "poly_1", hit.PolygonID)
	assert.Equal(t, 0, hit.VertexIndex)

	// Far from every vertex: no hit.
	_, ok = eng.HitTestVertex(200, 200)
	assert.False(t, ok)
}

func TestHitTestVertexTopmostWins(t *testing.T) {
	eng := newTestEngine(t)
	doc := eng.Document()

	// Overlay a second region whose first vertex coincides with poly_1's.
	require.NoError(t, eng.CreateRegion("node_root", "node_top", "poly_top", "Overlay",
		[]document.Vertex{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 3, Y: 4}}, "", ""))
	require.Contains(t, doc.Polygons, "poly_top")

	// The later sibling draws on top, so it wins the hit.
	hit, ok := eng.HitTestVertex(2, 2)
	require.True(t, ok)
	assert.Equal(t, "node_top", hit.NodeID)
}

func TestCreateRegionRejectsBadInput(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.CreateRegion("node_root", "node_new", "poly_new", "Bad",
		[]document.Vertex{{X: 0, Y: 0}, {X: 1, Y: 1}}, "", "")
	assert.ErrorIs(t, err, document.ErrInvalidPolygon)

	// Nothing was committed.
	assert.NotContains(t, eng.Document().Polygons, "poly_new")
	assert.Nil(t, eng.Tree().Node("node_new"))

	err = eng.CreateRegion("node_missing", "node_new", "poly_new", "Orphan",
		[]document.Vertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, "", "")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.NotContains(t, eng.Document().Polygons, "poly_new")
}

func TestCreateRegionBumpsVersion(t *testing.T) {
	eng := newTestEngine(t)
	before := eng.Document().Project.Version

	require.NoError(t, eng.CreateRegion("node_root", "node_new", "poly_new", "Bed 2",
		[]document.Vertex{{X: 20, Y: 20}, {X: 25, Y: 20}, {X: 22, Y: 25}}, "", ""))

	assert.Equal(t, before+1, eng.Document().Project.Version)
	assert.Contains(t, eng.Document().Nodes["node_root"].Children, "node_new")
}

func TestIsDragUsesConfiguredThreshold(t *testing.T) {
	eng := NewEngine(Config{ZoomBounds: DefaultZoomBounds(), DragThresholdPx: 8})
	eng.SetDocument(testDocument(t))

	assert.False(t, eng.IsDrag(0, 0, 8, 0))
	assert.True(t, eng.IsDrag(0, 0, 8.5, 0))
}

func TestNodeBounds(t *testing.T) {
	eng := newTestEngine(t)

	bounds := eng.NodeBounds("node_root")
	assert.Equal(t, Rect{MinX: 2, MinY: 2, MaxX: 10, MaxY: 8}, bounds)

	// A group with no polygons has empty bounds.
	assert.True(t, eng.NodeBounds("node_missing").IsEmpty())
}

func TestFitAll(t *testing.T) {
	eng := newTestEngine(t)

	// min(800/40, 600/30) * 0.9 = 18, clamped to the zoom ceiling.
	view := eng.FitAll(800, 600, 0.1)
	assert.Equal(t, DefaultMaxZoom, view.Zoom)
	assert.Equal(t, view, eng.View())
}

func TestFitSelectionFallsBackToPlot(t *testing.T) {
	eng := newTestEngine(t)

	eng.SetSelection(nil)
	whole := eng.FitSelection(800, 600, 0.1)
	assert.Equal(t, eng.FitAll(800, 600, 0.1), whole)

	eng.SetSelection([]string{"node_region"})
	view := eng.FitSelection(800, 600, 0.1)
	center := WorldToScreen(Point{X: 6, Y: 5}, view)
	assert.InDelta(t, 400, center.X, 1e-9)
	assert.InDelta(t, 300, center.Y, 1e-9)
}

func TestVertexEditsFlowThroughDocument(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.MoveVertex("poly_1", 0, 3, 3))
	assert.Equal(t, document.Vertex{X: 3, Y: 3}, eng.Document().Polygons["poly_1"].Vertices[0])

	require.NoError(t, eng.InsertVertex("poly_1", 1, 5, 2))
	assert.Len(t, eng.Document().Polygons["poly_1"].Vertices, 4)

	require.NoError(t, eng.RemoveVertex("poly_1", 1))
	assert.Len(t, eng.Document().Polygons["poly_1"].Vertices, 3)

	// At the minimum vertex count, removal is refused.
	err := eng.RemoveVertex("poly_1", 0)
	assert.ErrorIs(t, err, document.ErrMinimumVertex)
	assert.Len(t, eng.Document().Polygons["poly_1"].Vertices, 3)
}

func TestPlacements(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.AddPlacement("place_1", "plant_1", "node_region", 6, 5))
	assert.Contains(t, eng.Document().Placements, "place_1")

	err := eng.AddPlacement("place_2", "plant_1", "node_missing", 0, 0)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	eng.RemovePlacement("place_1")
	assert.NotContains(t, eng.Document().Placements, "place_1")

	// Removing an unknown placement is a no-op, not a version bump.
	before := eng.Document().Project.Version
	eng.RemovePlacement("place_never")
	assert.Equal(t, before, eng.Document().Project.Version)
}

func TestReparentNode(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateRegion("node_root", "node_b", "poly_b", "Bed B",
		[]document.Vertex{{X: 20, Y: 20}, {X: 25, Y: 20}, {X: 22, Y: 25}}, "", ""))

	require.NoError(t, eng.ReparentNode("node_region", "node_b", -1))

	// Both the index and the document mirror reflect the move.
	assert.Equal(t, "node_b", eng.Tree().Node("node_region").Parent)
	assert.Equal(t, "node_b", eng.Document().Nodes["node_region"].Parent)
	assert.Contains(t, eng.Document().Nodes["node_b"].Children, "node_region")
	assert.NotContains(t, eng.Document().Nodes["node_root"].Children, "node_region")
}

func TestRenameNode(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.RenameNode("node_region", "Shade Bed"))
	assert.Equal(t, "Shade Bed", eng.Document().Nodes["node_region"].Name)

	assert.ErrorIs(t, eng.RenameNode("node_missing", "x"), ErrNodeNotFound)
}

func TestRenderProducesCommandBuffer(t *testing.T) {
	eng := newTestEngine(t)
	eng.SetSelection([]string{"node_region"})

	var commands []DrawCommand
	require.NoError(t, json.Unmarshal([]byte(eng.Render()), &commands))
	require.NotEmpty(t, commands)

	assert.Equal(t, "view", commands[0].Op)
	assert.Len(t, commands[0].Transform, 6)

	var ops []string
	for _, c := range commands {
		ops = append(ops, c.Op)
	}
	assert.Contains(t, ops, "polygon")
	assert.Contains(t, ops, "handles")
}

func TestRenderWithoutDocument(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	assert.Equal(t, "[]", eng.Render())
}

func TestEditsWithoutDocument(t *testing.T) {
	eng := NewEngine(DefaultConfig())

	// Every edit command must fail cleanly before a document is loaded;
	// the wasm bindings expose them all from startup.
	assert.ErrorIs(t, eng.MoveVertex("poly_1", 0, 1, 1), ErrNoDocument)
	assert.ErrorIs(t, eng.InsertVertex("poly_1", 0, 1, 1), ErrNoDocument)
	assert.ErrorIs(t, eng.RemoveVertex("poly_1", 0), ErrNoDocument)
	assert.ErrorIs(t, eng.AddPlacement("place_1", "plant_1", "node_1", 0, 0), ErrNoDocument)
	assert.ErrorIs(t, eng.RenameNode("node_1", "x"), ErrNoDocument)
	assert.ErrorIs(t, eng.ReparentNode("node_1", "node_2", -1), ErrNoDocument)
	assert.ErrorIs(t, eng.CreateRegion("node_1", "node_2", "poly_1", "Bed",
		[]document.Vertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, "", ""), ErrNoDocument)
	assert.NotPanics(t, func() { eng.RemovePlacement("place_1") })
}

func TestFitWithoutDocument(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	before := eng.View()

	assert.Equal(t, before, eng.FitAll(800, 600, 0.1))
	assert.Equal(t, before, eng.FitSelection(800, 600, 0.1))
	assert.Equal(t, before, eng.FitNode("node_1", 800, 600, 0.1))
	assert.Equal(t, before, eng.View())
}

func TestFitNodeFallsBackToPlot(t *testing.T) {
	eng := newTestEngine(t)
	whole := eng.FitAll(800, 600, 0.1)

	// A subtree without polygons (or an unknown node) has empty bounds;
	// fitting it reframes onto the whole plot instead of a point.
	assert.Equal(t, whole, eng.FitNode("node_missing", 800, 600, 0.1))
}
