package document

import (
	"time"

	"github.com/regenesis/regenesis/backend-go/internal/typeid"
)

// nativePlants is the starter catalog of common native species.
type nativePlant struct {
	name   string
	height int
	color  string
}

var nativePlants = []nativePlant{
	{"Purple Coneflower", 3, "purple"},
	{"Black-Eyed Susan", 2, "yellow"},
	{"Wild Bergamot", 3, "purple"},
	{"Butterfly Weed", 2, "yellow"},
	{"New England Aster", 4, "purple"},
	{"Joe Pye Weed", 4, "pink"},
	{"Wild Columbine", 1, "pink"},
	{"Goldenrod", 3, "yellow"},
	{"Blazing Star", 2, "white"},
}

// NewSampleDocument creates a starter plot: a 40x30 ft project with one
// sunny-border region polygon, the native plant catalog and a couple of
// placements, so a fresh project opens onto something editable.
func NewSampleDocument(projectID string) *PlotDocument {
	now := time.Now().UTC().Format(time.RFC3339)

	rootID := typeid.NewNodeID()
	borderNodeID := typeid.NewNodeID()
	borderPolyID := typeid.NewPolygonID()

	doc := &PlotDocument{
		Project: Project{
			ID:         projectID,
			Name:       "Untitled Plot",
			Version:    1,
			PlotWidth:  40,
			PlotHeight: 30,
			CreatedAt:  now,
			UpdatedAt:  now,
			Root:       rootID,
		},
		Nodes: map[string]Node{
			rootID: {
				ID:       rootID,
				Kind:     NodeKindProject,
				Name:     "Untitled Plot",
				Children: []string{borderNodeID},
			},
			borderNodeID: {
				ID:        borderNodeID,
				Kind:      NodeKindPolygon,
				Name:      "Sunny Border",
				Parent:    rootID,
				Children:  []string{},
				PolygonID: borderPolyID,
			},
		},
		Polygons: map[string]Polygon{
			borderPolyID: {
				ID: borderPolyID,
				Vertices: []Vertex{
					{X: 2, Y: 2},
					{X: 18, Y: 2},
					{X: 18, Y: 10},
					{X: 10, Y: 14},
					{X: 2, Y: 10},
				},
				Fill:   "#a8d5a2",
				Stroke: "#2f6b2f",
			},
		},
		Plants:     map[string]Plant{},
		Placements: map[string]Placement{},
	}

	var plantIDs []string
	for _, p := range nativePlants {
		id := typeid.NewPlantID()
		doc.Plants[id] = Plant{ID: id, Name: p.name, Height: p.height, Color: p.color}
		plantIDs = append(plantIDs, id)
	}

	// Two starter placements inside the border region.
	first := Placement{ID: typeid.New("place"), PlantID: plantIDs[0], NodeID: borderNodeID, X: 6, Y: 6}
	second := Placement{ID: typeid.New("place"), PlantID: plantIDs[1], NodeID: borderNodeID, X: 12, Y: 7}
	doc.Placements[first.ID] = first
	doc.Placements[second.ID] = second

	return doc
}
