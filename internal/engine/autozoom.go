package engine

import "math"

// minFitExtent replaces degenerate rectangle extents so a single-point or
// zero-width selection centers the view instead of scaling infinitely.
const minFitExtent = 1.0

// Fit computes the ViewState that frames rect inside a viewport of the
// given pixel size, leaving marginFraction of the viewport as padding.
// It is total: degenerate rectangles and extreme sizes are handled by
// extent substitution and zoom clamping, never by failing.
func Fit(rect Rect, viewportWidth, viewportHeight, marginFraction float64, bounds ZoomBounds) ViewState {
	w := rect.Width()
	h := rect.Height()
	if w < 1e-6 {
		w = minFitExtent
	}
	if h < 1e-6 {
		h = minFitExtent
	}

	zoom := math.Min(viewportWidth/w, viewportHeight/h) * (1 - marginFraction)
	zoom = bounds.Clamp(zoom)

	// Place the rect center at the viewport center: solving
	// (center - pan) * zoom = viewport/2 for pan.
	center := rect.Center()
	view := ViewState{Zoom: zoom, Bounds: bounds}
	view.Pan = Point{
		X: center.X - viewportWidth/(2*zoom),
		Y: center.Y - viewportHeight/(2*zoom),
	}
	return view
}
