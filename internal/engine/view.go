package engine

// Point is a position in either world or screen space, depending on context.
// World space is the coordinate system polygon vertices are stored in (feet);
// screen space is canvas pixels under the current ViewState.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Default zoom bounds. A plot at zoom 1.0 renders one world unit per pixel;
// the bounds keep the canvas usable from whole-site overview down to
// single-vertex detail work.
const (
	DefaultMinZoom = 0.01
	DefaultMaxZoom = 10.0
)

// ZoomBounds is the closed zoom interval a viewport is allowed to occupy.
type ZoomBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultZoomBounds returns the stock [0.01, 10.0] range.
func DefaultZoomBounds() ZoomBounds {
	return ZoomBounds{Min: DefaultMinZoom, Max: DefaultMaxZoom}
}

// Clamp saturates z into the bounds. Zero and negative requests come out at
// Min, so a zoom applied through Clamp can never reach a non-positive value.
func (b ZoomBounds) Clamp(z float64) float64 {
	if z < b.Min {
		return b.Min
	}
	if z > b.Max {
		return b.Max
	}
	return z
}

// ViewState is the zoom factor and pan offset of one open viewport.
// Pan is the world-space point shown at the screen origin. There is no
// ambient/global view: a ViewState is passed explicitly into every
// transform and query call, which keeps those functions pure.
type ViewState struct {
	Zoom   float64    `json:"zoom"`
	Pan    Point      `json:"pan"`
	Bounds ZoomBounds `json:"-"`
}

// NewViewState returns a view at zoom 1.0, origin pan, with the given bounds.
func NewViewState(bounds ZoomBounds) ViewState {
	return ViewState{Zoom: 1.0, Bounds: bounds}
}

// SetZoom clamps the requested zoom into the view's bounds, applies it and
// returns the applied value. All inputs are saturated, never rejected, so
// interaction is never interrupted by an out-of-range scroll event.
// Applying the same request twice yields the same state both times.
func (v *ViewState) SetZoom(requested float64) float64 {
	v.Zoom = v.bounds().Clamp(requested)
	return v.Zoom
}

// PanBy translates the view by (dx, dy) screen pixels. The world-space pan
// delta is pixels divided by zoom: panning while zoomed in moves less world
// distance per pixel than panning while zoomed out.
func (v *ViewState) PanBy(dx, dy float64) {
	z := v.zoomOrDefault()
	v.Pan.X += dx / z
	v.Pan.Y += dy / z
}

// Valid reports whether the zoom lies inside the view's bounds.
func (v ViewState) Valid() bool {
	b := v.bounds()
	return v.Zoom >= b.Min && v.Zoom <= b.Max
}

func (v ViewState) bounds() ZoomBounds {
	if v.Bounds.Min <= 0 || v.Bounds.Max <= 0 {
		return DefaultZoomBounds()
	}
	return v.Bounds
}

func (v ViewState) zoomOrDefault() float64 {
	if v.Zoom <= 0 {
		return v.bounds().Min
	}
	return v.Zoom
}
