package document

import (
	"errors"
	"fmt"
)

// MinVertices is the smallest vertex count a polygon may hold. Edits that
// would drop below it are rejected outright, never silently truncated.
const MinVertices = 3

var (
	ErrInvalidPolygon  = errors.New("polygon requires at least 3 vertices")
	ErrMinimumVertex   = errors.New("removal would drop polygon below 3 vertices")
	ErrPolygonNotFound = errors.New("polygon not found")
	ErrVertexIndex     = errors.New("vertex index out of range")
)

// AddPolygon stores a new polygon. The vertex slice is copied so later
// caller mutation cannot bypass the invariants.
func (d *PlotDocument) AddPolygon(id string, vertices []Vertex, fill, stroke string) error {
	if len(vertices) < MinVertices {
		return ErrInvalidPolygon
	}
	d.Polygons[id] = Polygon{
		ID:       id,
		Vertices: append([]Vertex(nil), vertices...),
		Fill:     fill,
		Stroke:   stroke,
	}
	return nil
}

// MoveVertex replaces one vertex of a polygon. Always legal for a valid
// index since the vertex count does not change.
func (d *PlotDocument) MoveVertex(polygonID string, index int, x, y float64) error {
	poly, ok := d.Polygons[polygonID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPolygonNotFound, polygonID)
	}
	if index < 0 || index >= len(poly.Vertices) {
		return fmt.Errorf("%w: %d of %d", ErrVertexIndex, index, len(poly.Vertices))
	}
	poly.Vertices[index] = Vertex{X: x, Y: y}
	d.Polygons[polygonID] = poly
	return nil
}

// InsertVertex inserts a vertex at index, shifting subsequent vertices.
// index == len(vertices) appends.
func (d *PlotDocument) InsertVertex(polygonID string, index int, x, y float64) error {
	poly, ok := d.Polygons[polygonID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPolygonNotFound, polygonID)
	}
	if index < 0 || index > len(poly.Vertices) {
		return fmt.Errorf("%w: %d of %d", ErrVertexIndex, index, len(poly.Vertices))
	}
	verts := append([]Vertex(nil), poly.Vertices[:index]...)
	verts = append(verts, Vertex{X: x, Y: y})
	verts = append(verts, poly.Vertices[index:]...)
	poly.Vertices = verts
	d.Polygons[polygonID] = poly
	return nil
}

// RemoveVertex removes the vertex at index, preserving the relative order
// of the remaining vertices. Fails with ErrMinimumVertex if the polygon
// would drop below MinVertices; the polygon is left unchanged on any error.
func (d *PlotDocument) RemoveVertex(polygonID string, index int) error {
	poly, ok := d.Polygons[polygonID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPolygonNotFound, polygonID)
	}
	if index < 0 || index >= len(poly.Vertices) {
		return fmt.Errorf("%w: %d of %d", ErrVertexIndex, index, len(poly.Vertices))
	}
	if len(poly.Vertices)-1 < MinVertices {
		return ErrMinimumVertex
	}
	poly.Vertices = append(poly.Vertices[:index:index], poly.Vertices[index+1:]...)
	d.Polygons[polygonID] = poly
	return nil
}
