package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenesis/regenesis/backend-go/internal/document"
	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

func newOpsEngine(t *testing.T) *engine.Engine {
	t.Helper()

	doc := document.NewEmptyDocument("proj_1", "Plot", "node_root")
	require.NoError(t, doc.AddPolygon("poly_1", []document.Vertex{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8},
	}, "", ""))
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

	eng := engine.NewEngine(engine.DefaultConfig())
	eng.SetDocument(doc)
	return eng
}

func TestApplyRegionCreateGeneratesIDs(t *testing.T) {
	eng := newOpsEngine(t)

	op := Operation{
		Type:     OpRegionCreate,
		ParentID: "node_root",
		Name:     "New Bed",
		Vertices: []document.Vertex{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 25, Y: 28}},
	}
	require.NoError(t, ApplyOperation(eng, &op))

	// Generated ids are written back so the broadcast carries them.
	assert.NotEmpty(t, op.NodeID)
	assert.NotEmpty(t, op.PolygonID)
	assert.Contains(t, eng.Document().Polygons, op.PolygonID)
	assert.Equal(t, "New Bed", eng.Document().Nodes[op.NodeID].Name)
}

func TestApplyRegionCreateInvalid(t *testing.T) {
	eng := newOpsEngine(t)

	op := Operation{Type: OpRegionCreate, ParentID: "node_root"}
	assert.Error(t, ApplyOperation(eng, &op))

	op = Operation{
		Type:     OpRegionCreate,
		ParentID: "node_root",
		Vertices: []document.Vertex{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}
	assert.ErrorIs(t, ApplyOperation(eng, &op), document.ErrInvalidPolygon)
}

func TestApplyVertexOps(t *testing.T) {
	eng := newOpsEngine(t)

	require.NoError(t, ApplyOperation(eng, &Operation{
		Type: OpVertexMove, PolygonID: "poly_1", VertexIndex: 0, X: 1, Y: 1,
	}))
	assert.Equal(t, document.Vertex{X: 1, Y: 1}, eng.Document().Polygons["poly_1"].Vertices[0])

	require.NoError(t, ApplyOperation(eng, &Operation{
		Type: OpVertexInsert, PolygonID: "poly_1", VertexIndex: 1, X: 6, Y: 0,
	}))
	assert.Len(t, eng.Document().Polygons["poly_1"].Vertices, 4)

	require.NoError(t, ApplyOperation(eng, &Operation{
		Type: OpVertexRemove, PolygonID: "poly_1", VertexIndex: 1,
	}))
	assert.Len(t, eng.Document().Polygons["poly_1"].Vertices, 3)
}

func TestApplyVertexRemoveAtMinimumFails(t *testing.T) {
	eng := newOpsEngine(t)

	err := ApplyOperation(eng, &Operation{
		Type: OpVertexRemove, PolygonID: "poly_1", VertexIndex: 0,
	})
	assert.ErrorIs(t, err, document.ErrMinimumVertex)
	assert.Len(t, eng.Document().Polygons["poly_1"].Vertices, 3)
}

func TestApplyPlacementOps(t *testing.T) {
	eng := newOpsEngine(t)

	op := Operation{Type: OpPlacementAdd, PlantID: "plant_1", NodeID: "node_region", X: 5, Y: 5}
	require.NoError(t, ApplyOperation(eng, &op))
	require.NotEmpty(t, op.PlacementID)
	assert.Contains(t, eng.Document().Placements, op.PlacementID)

	require.NoError(t, ApplyOperation(eng, &Operation{
		Type: OpPlacementRemove, PlacementID: op.PlacementID,
	}))
	assert.NotContains(t, eng.Document().Placements, op.PlacementID)
}

func TestApplyNodeOps(t *testing.T) {
	eng := newOpsEngine(t)

	require.NoError(t, ApplyOperation(eng, &Operation{
		Type: OpNodeRename, NodeID: "node_region", Name: "Rain Garden",
	}))
	assert.Equal(t, "Rain Garden", eng.Document().Nodes["node_region"].Name)

	// Reparenting the root under its descendant must be refused.
	err := ApplyOperation(eng, &Operation{
		Type: OpNodeReparent, NodeID: "node_root", NewParentID: "node_region",
	})
	assert.ErrorIs(t, err, engine.ErrTreeCycle)
}

func TestApplyUnknownOperation(t *testing.T) {
	eng := newOpsEngine(t)
	assert.Error(t, ApplyOperation(eng, &Operation{Type: "polygon.explode"}))
}
