package engine

import "math"

const (
	// Vertex handle radius clamp, in pixels.
	minHandleSize  = 3.0
	maxHandleSize  = 10.0
	baseHandleSize = 10.0

	// DefaultDragThresholdPx is the pointer movement below which a
	// press/release sequence counts as a click rather than a drag.
	DefaultDragThresholdPx = 5.0
)

// HandleSize returns the vertex handle radius in pixels for a zoom level.
// Handles shrink as zoom increases: zoomed in, vertices sit far apart on
// screen and small handles suffice; zoomed out they would otherwise overlap.
// The result is clamped to [3, 10] so handles stay visible and clickable at
// any zoom.
func HandleSize(zoom float64) float64 {
	if zoom <= 0 {
		return maxHandleSize
	}
	return math.Min(maxHandleSize, math.Max(minHandleSize, baseHandleSize/zoom))
}

// Distance returns the Euclidean distance between two points in the same
// coordinate space.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PointToVertexDistance returns the screen-space distance between a screen
// point and a world-space vertex under the view.
func PointToVertexDistance(screenPt Point, vertexWorld Point, view ViewState) float64 {
	return Distance(screenPt, WorldToScreen(vertexWorld, view))
}

// NearestVertex returns the index of the vertex closest to screenPt that
// also lies within the current handle radius. If every vertex is out of
// reach it returns (-1, false) rather than the globally nearest one, so a
// click far from any visible handle never picks a vertex.
func NearestVertex(screenPt Point, vertices []Point, view ViewState) (int, bool) {
	radius := HandleSize(view.Zoom)
	best := -1
	bestDist := math.Inf(1)
	for i, v := range vertices {
		d := PointToVertexDistance(screenPt, v, view)
		if d <= radius && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}

// ExceedsDragThreshold reports whether pointer movement from start to
// current is an intentional drag. The comparison is strict: movement of
// exactly the threshold distance is still a click.
func ExceedsDragThreshold(startScreen, currentScreen Point, thresholdPx float64) bool {
	if thresholdPx <= 0 {
		thresholdPx = DefaultDragThresholdPx
	}
	return Distance(startScreen, currentScreen) > thresholdPx
}

// FlattenForRender projects each vertex through WorldToScreen in order and
// returns the interleaved screen coordinates [x0, y0, x1, y1, ...].
// The result always has length 2*len(vertices).
func FlattenForRender(vertices []Point, view ViewState) []float64 {
	flat := make([]float64, 0, 2*len(vertices))
	for _, v := range vertices {
		s := WorldToScreen(v, view)
		flat = append(flat, s.X, s.Y)
	}
	return flat
}
