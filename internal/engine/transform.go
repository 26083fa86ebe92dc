package engine

// WorldToScreen maps a world-space point to screen pixels under the view:
// subtract the pan origin, then scale by zoom.
func WorldToScreen(p Point, view ViewState) Point {
	return Point{
		X: (p.X - view.Pan.X) * view.Zoom,
		Y: (p.Y - view.Pan.Y) * view.Zoom,
	}
}

// ScreenToWorld maps a screen pixel back into world space. It is the inverse
// of WorldToScreen up to floating-point rounding. Division by zero cannot
// occur because zoom is clamped to a positive range on every mutation.
func ScreenToWorld(q Point, view ViewState) Point {
	return Point{
		X: q.X/view.Zoom + view.Pan.X,
		Y: q.Y/view.Zoom + view.Pan.Y,
	}
}

// Matrix returns the world→screen mapping of the view as an affine matrix:
// Scale(zoom) * Translate(-pan). TransformPoint on the result agrees with
// WorldToScreen; the renderer uses this form for Canvas2D playback.
func (v ViewState) Matrix() Matrix2D {
	return Scale(v.Zoom, v.Zoom).Multiply(Translate(-v.Pan.X, -v.Pan.Y))
}
