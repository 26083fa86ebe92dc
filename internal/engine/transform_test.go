package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorldToScreen(t *testing.T) {
	view := ViewState{Zoom: 2, Pan: Point{X: 10, Y: 5}}

	s := WorldToScreen(Point{X: 12, Y: 8}, view)
	assert.InDelta(t, 4, s.X, 1e-12)
	assert.InDelta(t, 6, s.Y, 1e-12)

	// The pan origin maps to the screen origin at any zoom.
	origin := WorldToScreen(Point{X: 10, Y: 5}, view)
	assert.Equal(t, Point{}, origin)
}

func TestScreenToWorld(t *testing.T) {
	view := ViewState{Zoom: 4, Pan: Point{X: -3, Y: 7}}

	w := ScreenToWorld(Point{X: 8, Y: -12}, view)
	assert.InDelta(t, -1, w.X, 1e-12)
	assert.InDelta(t, 4, w.Y, 1e-12)
}

func TestTransformRoundTrip(t *testing.T) {
	zooms := []float64{0.01, 0.37, 1, 2, 7.2, 10}
	pans := []Point{{}, {X: 100, Y: -250}, {X: -0.003, Y: 1e6}}
	points := []Point{{}, {X: 1, Y: 1}, {X: -523.77, Y: 0.0001}, {X: 99999, Y: -99999}}

	for _, zoom := range zooms {
		for _, pan := range pans {
			view := ViewState{Zoom: zoom, Pan: pan}
			for _, p := range points {
				back := ScreenToWorld(WorldToScreen(p, view), view)
				assert.InDelta(t, p.X, back.X, 1e-9, "zoom=%v pan=%v", zoom, pan)
				assert.InDelta(t, p.Y, back.Y, 1e-9, "zoom=%v pan=%v", zoom, pan)
			}
		}
	}
}

func TestViewMatrixAgreesWithWorldToScreen(t *testing.T) {
	view := ViewState{Zoom: 3, Pan: Point{X: 4, Y: -2}}
	m := view.Matrix()

	for _, p := range []Point{{}, {X: 10, Y: 20}, {X: -7.5, Y: 0.25}} {
		want := WorldToScreen(p, view)
		got := m.TransformPoint(p)
		assert.InDelta(t, want.X, got.X, 1e-9)
		assert.InDelta(t, want.Y, got.Y, 1e-9)
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	view := ViewState{Zoom: 2.5, Pan: Point{X: 11, Y: -3}}
	m := view.Matrix()
	inv := m.Invert()

	assert.True(t, m.Multiply(inv).IsIdentity())

	p := Point{X: 42, Y: -17}
	back := inv.TransformPoint(m.TransformPoint(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}
