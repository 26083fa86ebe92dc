package engine

import (
	"encoding/json"
	"sort"

	"github.com/regenesis/regenesis/backend-go/internal/document"
)

// DrawCommand is a single drawing operation the frontend replays onto its
// Canvas2D context.
type DrawCommand struct {
	Op         string    `json:"op"`                   // "view", "polygon", "marker", "handles"
	NodeID     string    `json:"nodeId,omitempty"`     // for hit correlation
	Transform  []float64 `json:"transform,omitempty"`  // [a, b, c, d, e, f] affine matrix
	Points     []float64 `json:"points,omitempty"`     // flattened screen coords [x0,y0,x1,y1,...]
	Fill       string    `json:"fill,omitempty"`       // fill color
	Stroke     string    `json:"stroke,omitempty"`     // stroke color
	HandleSize float64   `json:"handleSize,omitempty"` // vertex handle radius in px
	Label      string    `json:"label,omitempty"`      // marker label (plant name)
	X          float64   `json:"x,omitempty"`          // marker screen position
	Y          float64   `json:"y,omitempty"`
}

// CompileDrawCommands generates a draw command buffer for the plot.
// Polygons are emitted in painter's order (tree walk order, back to front),
// then plant markers, then vertex handles for selected polygon nodes so
// handles always draw on top.
func CompileDrawCommands(doc *document.PlotDocument, tree *TreeIndex, view ViewState, selection []string) []DrawCommand {
	if doc == nil {
		return nil
	}

	commands := []DrawCommand{{
		Op:        "view",
		Transform: view.Matrix().ToSlice(),
	}}

	tree.Walk(doc.Project.Root, func(n *TreeNode) bool {
		if n.Kind != KindPolygon || n.PolygonID == "" {
			return true
		}
		poly, ok := doc.Polygons[n.PolygonID]
		if !ok {
			return true
		}
		commands = append(commands, DrawCommand{
			Op:     "polygon",
			NodeID: n.ID,
			Points: FlattenForRender(vertexPoints(poly.Vertices), view),
			Fill:   poly.Fill,
			Stroke: poly.Stroke,
		})
		return true
	})

	placements := make([]document.Placement, 0, len(doc.Placements))
	for _, p := range doc.Placements {
		placements = append(placements, p)
	}
	sort.Slice(placements, func(i, j int) bool { return placements[i].ID < placements[j].ID })

	for _, placement := range placements {
		plant, ok := doc.Plants[placement.PlantID]
		if !ok {
			continue
		}
		s := WorldToScreen(Point{X: placement.X, Y: placement.Y}, view)
		commands = append(commands, DrawCommand{
			Op:     "marker",
			NodeID: placement.NodeID,
			X:      s.X,
			Y:      s.Y,
			Fill:   plant.Color,
			Label:  plant.Name,
		})
	}

	size := HandleSize(view.Zoom)
	for _, id := range selection {
		node := tree.Node(id)
		if node == nil || node.Kind != KindPolygon || node.PolygonID == "" {
			continue
		}
		poly, ok := doc.Polygons[node.PolygonID]
		if !ok {
			continue
		}
		commands = append(commands, DrawCommand{
			Op:         "handles",
			NodeID:     node.ID,
			Points:     FlattenForRender(vertexPoints(poly.Vertices), view),
			HandleSize: size,
		})
	}

	return commands
}

// DrawCommandsToJSON serializes a command buffer.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
