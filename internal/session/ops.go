package session

import (
	"fmt"

	"github.com/regenesis/regenesis/backend-go/internal/engine"
	"github.com/regenesis/regenesis/backend-go/internal/typeid"
)

// ApplyOperation executes one edit operation against a room's engine.
// Generated ids (new regions, placements) are written back into op so the
// broadcast carries them to every client. A returned error means nothing
// was committed; the hub turns it into a nack.
func ApplyOperation(eng *engine.Engine, op *Operation) error {
	switch op.Type {
	case OpRegionCreate:
		if len(op.Vertices) == 0 {
			return fmt.Errorf("region.create: no vertices")
		}
		if op.NodeID == "" {
			op.NodeID = typeid.NewNodeID()
		}
		if op.PolygonID == "" {
			op.PolygonID = typeid.NewPolygonID()
		}
		return eng.CreateRegion(op.ParentID, op.NodeID, op.PolygonID, op.Name, op.Vertices, op.Fill, op.Stroke)

	case OpVertexMove:
		return eng.MoveVertex(op.PolygonID, op.VertexIndex, op.X, op.Y)

	case OpVertexInsert:
		return eng.InsertVertex(op.PolygonID, op.VertexIndex, op.X, op.Y)

	case OpVertexRemove:
		return eng.RemoveVertex(op.PolygonID, op.VertexIndex)

	case OpNodeRename:
		return eng.RenameNode(op.NodeID, op.Name)

	case OpNodeReparent:
		return eng.ReparentNode(op.NodeID, op.NewParentID, op.NewIndex)

	case OpPlacementAdd:
		if op.PlacementID == "" {
			op.PlacementID = typeid.New("place")
		}
		return eng.AddPlacement(op.PlacementID, op.PlantID, op.NodeID, op.X, op.Y)

	case OpPlacementRemove:
		eng.RemovePlacement(op.PlacementID)
		return nil

	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}
