package document

// PlotDocument is the full persisted state of one garden plot project:
// project metadata, the region hierarchy, polygon vertex data, the plant
// catalog selection and plant placements. It serializes to JSON for
// snapshots and websocket sync.
type PlotDocument struct {
	Project    Project              `json:"project"`
	Nodes      map[string]Node      `json:"nodes"`
	Polygons   map[string]Polygon   `json:"polygons"`
	Plants     map[string]Plant     `json:"plants"`
	Placements map[string]Placement `json:"placements"`
}

type Project struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Version    int     `json:"version"`
	PlotWidth  float64 `json:"plotWidth"`  // feet
	PlotHeight float64 `json:"plotHeight"` // feet
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
	Root       string  `json:"root"`
}

type NodeKind string

const (
	NodeKindProject NodeKind = "project"
	NodeKindGroup   NodeKind = "group"
	NodeKindPolygon NodeKind = "polygon"
)

// Node is one entry of the project tree. Parent is an id back-reference
// used only for upward traversal; Children order is draw order.
type Node struct {
	ID        string   `json:"id"`
	Kind      NodeKind `json:"kind"`
	Name      string   `json:"name"`
	Parent    string   `json:"parent,omitempty"`
	Children  []string `json:"children"`
	PolygonID string   `json:"polygonId,omitempty"`
}

// Vertex is a polygon corner in world space (feet).
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is an ordered ring of world-space vertices outlining a planting
// region. Invariant: at least MinVertices vertices at all times.
type Polygon struct {
	ID       string   `json:"id"`
	Vertices []Vertex `json:"vertices"`
	Fill     string   `json:"fill"`
	Stroke   string   `json:"stroke"`
}

// Plant is a native plant species available for placement.
type Plant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Height       int    `json:"height"` // feet
	Color        string `json:"color"`
	PhotoAssetID string `json:"photoAssetId,omitempty"`
}

// Placement positions one plant inside a region polygon.
type Placement struct {
	ID      string  `json:"id"`
	PlantID string  `json:"plantId"`
	NodeID  string  `json:"nodeId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// NewEmptyDocument creates a document with a bare project root node.
// Timestamps are set by the caller.
func NewEmptyDocument(projectID, projectName, rootNodeID string) *PlotDocument {
	return &PlotDocument{
		Project: Project{
			ID:         projectID,
			Name:       projectName,
			Version:    1,
			PlotWidth:  40,
			PlotHeight: 30,
			Root:       rootNodeID,
		},
		Nodes: map[string]Node{
			rootNodeID: {
				ID:       rootNodeID,
				Kind:     NodeKindProject,
				Name:     projectName,
				Children: []string{},
			},
		},
		Polygons:   map[string]Polygon{},
		Plants:     map[string]Plant{},
		Placements: map[string]Placement{},
	}
}

// Clone returns a deep copy of the document. Snapshots that cross a
// goroutine boundary (save, export) must be cloned, not shared.
func (d *PlotDocument) Clone() *PlotDocument {
	out := &PlotDocument{
		Project:    d.Project,
		Nodes:      make(map[string]Node, len(d.Nodes)),
		Polygons:   make(map[string]Polygon, len(d.Polygons)),
		Plants:     make(map[string]Plant, len(d.Plants)),
		Placements: make(map[string]Placement, len(d.Placements)),
	}
	for id, n := range d.Nodes {
		n.Children = append([]string(nil), n.Children...)
		out.Nodes[id] = n
	}
	for id, p := range d.Polygons {
		p.Vertices = append([]Vertex(nil), p.Vertices...)
		out.Polygons[id] = p
	}
	for id, p := range d.Plants {
		out.Plants[id] = p
	}
	for id, p := range d.Placements {
		out.Placements[id] = p
	}
	return out
}
