package prefs

import (
	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

// Flat preference keys. Preferences persist as a flat dotted-path map so
// clients can read and write individual keys, but the backend converts the
// map into this typed struct once at load time — the geometry core never
// performs dynamic key lookups.
const (
	KeyDragThreshold = "canvas.drag_threshold_px"
	KeyZoomMin       = "canvas.zoom.min"
	KeyZoomMax       = "canvas.zoom.max"
	KeyTheme         = "theme"
	KeyLatitude      = "location.latitude"
	KeyLongitude     = "location.longitude"
	KeyDevMode       = "development_mode"
)

// Preferences is the typed view of a user's settings.
type Preferences struct {
	DragThresholdPx float64
	ZoomMin         float64
	ZoomMax         float64
	Theme           string
	Latitude        *float64
	Longitude       *float64
	DevelopmentMode bool
}

// Defaults returns the stock preferences.
func Defaults() Preferences {
	return Preferences{
		DragThresholdPx: engine.DefaultDragThresholdPx,
		ZoomMin:         engine.DefaultMinZoom,
		ZoomMax:         engine.DefaultMaxZoom,
		Theme:           "flatly",
	}
}

// FromFlatMap builds Preferences from a flat dotted-path map, applying
// defaults for missing keys and discarding values that would break the
// geometry invariants (non-positive thresholds, inverted zoom bounds).
func FromFlatMap(flat map[string]any) Preferences {
	p := Defaults()
	if flat == nil {
		return p
	}

	if v, ok := toFloat(flat[KeyDragThreshold]); ok && v > 0 {
		p.DragThresholdPx = v
	}
	zoomMin, okMin := toFloat(flat[KeyZoomMin])
	zoomMax, okMax := toFloat(flat[KeyZoomMax])
	if !okMin {
		zoomMin = p.ZoomMin
	}
	if !okMax {
		zoomMax = p.ZoomMax
	}
	if zoomMin > 0 && zoomMax > zoomMin {
		p.ZoomMin = zoomMin
		p.ZoomMax = zoomMax
	}

	if v, ok := flat[KeyTheme].(string); ok && v != "" {
		p.Theme = v
	}
	if v, ok := toFloat(flat[KeyLatitude]); ok {
		p.Latitude = &v
	}
	if v, ok := toFloat(flat[KeyLongitude]); ok {
		p.Longitude = &v
	}
	if v, ok := flat[KeyDevMode].(bool); ok {
		p.DevelopmentMode = v
	}
	return p
}

// FlatMap converts the typed struct back into the persisted dotted-path
// form. Location keys are omitted while unset.
func (p Preferences) FlatMap() map[string]any {
	flat := map[string]any{
		KeyDragThreshold: p.DragThresholdPx,
		KeyZoomMin:       p.ZoomMin,
		KeyZoomMax:       p.ZoomMax,
		KeyTheme:         p.Theme,
		KeyDevMode:       p.DevelopmentMode,
	}
	if p.Latitude != nil {
		flat[KeyLatitude] = *p.Latitude
	}
	if p.Longitude != nil {
		flat[KeyLongitude] = *p.Longitude
	}
	return flat
}

// GeometryConfig projects the preferences into the engine's config.
func (p Preferences) GeometryConfig() engine.Config {
	return engine.Config{
		ZoomBounds:      engine.ZoomBounds{Min: p.ZoomMin, Max: p.ZoomMax},
		DragThresholdPx: p.DragThresholdPx,
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
