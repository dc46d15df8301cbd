package services

import (
	"testing"

	"smartwaste/dashboard/models"
	"smartwaste/dashboard/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapView(t *testing.T) {
	view := BuildMapView(sample.Snapshot().Bins, DefaultMapSettings)

	assert.Equal(t, models.Point{Lat: 40.7138, Lon: -74.0060}, view.Center)
	assert.Equal(t, 13, view.Zoom)
	assert.Equal(t, 700, view.Width)
	assert.Equal(t, 400, view.Height)

	require.Len(t, view.Markers, 3)
	expected := []struct {
		id    string
		color models.MarkerColor
		popup string
	}{
		{"Bin 1", models.MarkerOrange, "Bin 1\nFill: 85%"},
		{"Bin 2", models.MarkerGreen, "Bin 2\nFill: 60%"},
		{"Bin 3", models.MarkerRed, "Bin 3\nFill: 95%"},
	}
	for i, e := range expected {
		m := view.Markers[i]
		assert.Equal(t, e.id, m.BinID)
		assert.Equal(t, e.color, m.Color)
		assert.Equal(t, e.popup, m.Popup)
		assert.Equal(t, 10, m.Radius)
		assert.True(t, m.Filled)
	}
}

func TestBuildMapView_Bounds(t *testing.T) {
	view := BuildMapView(sample.Snapshot().Bins, DefaultMapSettings)

	require.NotNil(t, view.Bounds)
	assert.InDelta(t, 40.7108, view.Bounds.LatMin, 1e-9)
	assert.InDelta(t, 40.7158, view.Bounds.LatMax, 1e-9)
	assert.InDelta(t, -74.0120, view.Bounds.LonMin, 1e-9)
	assert.InDelta(t, -74.0020, view.Bounds.LonMax, 1e-9)
}

func TestBuildMapView_Distance(t *testing.T) {
	view := BuildMapView(sample.Snapshot().Bins, DefaultMapSettings)

	// Bin 1 sits 0.001 degrees of latitude south of the center.
	assert.InDelta(t, 111.2, view.Markers[0].DistanceMeters, 0.5)
	for _, m := range view.Markers {
		assert.Greater(t, m.DistanceMeters, 0.0)
		assert.Less(t, m.DistanceMeters, 1000.0)
	}
}

func TestBuildMapView_NoBins(t *testing.T) {
	view := BuildMapView([]models.Bin{}, DefaultMapSettings)

	assert.NotNil(t, view.Markers)
	assert.Len(t, view.Markers, 0)
	assert.Nil(t, view.Bounds)
	assert.Equal(t, DefaultMapSettings, view.MapSettings)
}
