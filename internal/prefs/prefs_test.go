package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

func TestDefaults(t *testing.T) {
	p := Defaults()

	assert.Equal(t, 5.0, p.DragThresholdPx)
	assert.Equal(t, 0.01, p.ZoomMin)
	assert.Equal(t, 10.0, p.ZoomMax)
	assert.Equal(t, "flatly", p.Theme)
	assert.Nil(t, p.Latitude)
	assert.False(t, p.DevelopmentMode)
}

func TestFromFlatMap(t *testing.T) {
	p := FromFlatMap(map[string]any{
		KeyDragThreshold: 8.0,
		KeyZoomMin:       0.1,
		KeyZoomMax:       5.0,
		KeyTheme:         "darkly",
		KeyLatitude:      44.97,
		KeyLongitude:     -93.26,
		KeyDevMode:       true,
	})

	assert.Equal(t, 8.0, p.DragThresholdPx)
	assert.Equal(t, 0.1, p.ZoomMin)
	assert.Equal(t, 5.0, p.ZoomMax)
	assert.Equal(t, "darkly", p.Theme)
	require.NotNil(t, p.Latitude)
	assert.Equal(t, 44.97, *p.Latitude)
	require.NotNil(t, p.Longitude)
	assert.Equal(t, -93.26, *p.Longitude)
	assert.True(t, p.DevelopmentMode)
}

func TestFromFlatMapMissingKeysUseDefaults(t *testing.T) {
	p := FromFlatMap(map[string]any{KeyTheme: "minty"})

	assert.Equal(t, "minty", p.Theme)
	assert.Equal(t, 5.0, p.DragThresholdPx)
	assert.Equal(t, 0.01, p.ZoomMin)
	assert.Equal(t, 10.0, p.ZoomMax)

	assert.Equal(t, Defaults(), FromFlatMap(nil))
	assert.Equal(t, Defaults(), FromFlatMap(map[string]any{}))
}

func TestFromFlatMapDiscardsInvalidValues(t *testing.T) {
	p := FromFlatMap(map[string]any{
		KeyDragThreshold: -1.0,
		KeyZoomMin:       5.0,
		KeyZoomMax:       0.5, // inverted bounds
		KeyTheme:         "",
	})

	// Every invalid value falls back to its default.
	assert.Equal(t, Defaults(), p)

	// Wrong types are ignored too.
	p = FromFlatMap(map[string]any{
		KeyDragThreshold: "ten",
		KeyDevMode:       "yes",
	})
	assert.Equal(t, Defaults(), p)
}

func TestFromFlatMapAcceptsIntegers(t *testing.T) {
	// JSON decoding yields float64, but callers building maps in Go often
	// pass untyped ints.
	p := FromFlatMap(map[string]any{KeyDragThreshold: 7})
	assert.Equal(t, 7.0, p.DragThresholdPx)
}

func TestFlatMapRoundTrip(t *testing.T) {
	lat := 44.97
	orig := Preferences{
		DragThresholdPx: 6,
		ZoomMin:         0.05,
		ZoomMax:         8,
		Theme:           "darkly",
		Latitude:        &lat,
		DevelopmentMode: true,
	}

	got := FromFlatMap(orig.FlatMap())
	assert.Equal(t, orig.DragThresholdPx, got.DragThresholdPx)
	assert.Equal(t, orig.ZoomMin, got.ZoomMin)
	assert.Equal(t, orig.ZoomMax, got.ZoomMax)
	assert.Equal(t, orig.Theme, got.Theme)
	require.NotNil(t, got.Latitude)
	assert.Equal(t, lat, *got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.True(t, got.DevelopmentMode)
}

func TestFlatMapOmitsUnsetLocation(t *testing.T) {
	flat := Defaults().FlatMap()
	assert.NotContains(t, flat, KeyLatitude)
	assert.NotContains(t, flat, KeyLongitude)
}

func TestGeometryConfig(t *testing.T) {
	p := Preferences{DragThresholdPx: 7, ZoomMin: 0.2, ZoomMax: 4}
	cfg := p.GeometryConfig()

	assert.Equal(t, engine.ZoomBounds{Min: 0.2, Max: 4}, cfg.ZoomBounds)
	assert.Equal(t, 7.0, cfg.DragThresholdPx)
}
