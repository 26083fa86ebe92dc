package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitFramesRectWithMargin(t *testing.T) {
	rect := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}
	view := Fit(rect, 800, 600, 0.1, DefaultZoomBounds())

	// Width is the limiting dimension: min(800/100, 600/50) * 0.9 = 7.2.
	assert.InDelta(t, 7.2, view.Zoom, 1e-12)

	// The rect center lands on the viewport center.
	center := WorldToScreen(rect.Center(), view)
	assert.InDelta(t, 400, center.X, 1e-9)
	assert.InDelta(t, 300, center.Y, 1e-9)
}

func TestFitHeightLimited(t *testing.T) {
	rect := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 100}
	view := Fit(rect, 800, 600, 0, DefaultZoomBounds())

	// 600/100 = 6 beats 800/10 = 80.
	assert.InDelta(t, 6, view.Zoom, 1e-12)
}

func TestFitClampsZoom(t *testing.T) {
	// A tiny rect would need an enormous zoom; clamp to the maximum.
	small := Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	view := Fit(small, 800, 600, 0.1, DefaultZoomBounds())
	assert.Equal(t, DefaultMaxZoom, view.Zoom)

	// A huge rect would need a microscopic zoom; clamp to the minimum.
	huge := Rect{MinX: 0, MinY: 0, MaxX: 1e6, MaxY: 1e6}
	view = Fit(huge, 800, 600, 0.1, DefaultZoomBounds())
	assert.Equal(t, DefaultMinZoom, view.Zoom)
}

func TestFitDegenerateRect(t *testing.T) {
	// A single point has zero extent; fitting substitutes a 1-unit extent
	// and centers the view on the point instead of dividing by zero.
	point := Rect{MinX: 10, MinY: 10, MaxX: 10, MaxY: 10}
	view := Fit(point, 800, 600, 0.1, DefaultZoomBounds())

	require.True(t, view.Valid())
	assert.Greater(t, view.Zoom, 0.0)

	center := WorldToScreen(Point{X: 10, Y: 10}, view)
	assert.InDelta(t, 400, center.X, 1e-9)
	assert.InDelta(t, 300, center.Y, 1e-9)
}

func TestFitDegenerateWidthOnly(t *testing.T) {
	// Vertical line segment: zero width, real height.
	line := Rect{MinX: 5, MinY: 0, MaxX: 5, MaxY: 60}
	view := Fit(line, 800, 600, 0, DefaultZoomBounds())

	require.True(t, view.Valid())
	assert.InDelta(t, 10, view.Zoom, 1e-12) // 600/60, clamped at max

	center := WorldToScreen(line.Center(), view)
	assert.InDelta(t, 400, center.X, 1e-9)
	assert.InDelta(t, 300, center.Y, 1e-9)
}

func TestBoundsOf(t *testing.T) {
	r := BoundsOf([]Point{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 0, Y: 0}})
	assert.Equal(t, Rect{MinX: -2, MinY: -1, MaxX: 3, MaxY: 4}, r)

	assert.Equal(t, Rect{}, BoundsOf(nil))
}

func TestRectUnion(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Rect{MinX: 5, MinY: -5, MaxX: 20, MaxY: 5}

	assert.Equal(t, Rect{MinX: 0, MinY: -5, MaxX: 20, MaxY: 10}, a.Union(b))

	// Union with an empty rect returns the other operand unchanged.
	assert.Equal(t, a, a.Union(Rect{}))
	assert.Equal(t, a, Rect{}.Union(a))
}
