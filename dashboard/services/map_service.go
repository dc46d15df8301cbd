package services

import (
	"smartwaste/dashboard/models"

	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371008.8

// DefaultMapSettings is the framing of the sample city map.
var DefaultMapSettings = models.MapSettings{
	Center: models.Point{Lat: 40.7138, Lon: -74.0060},
	Zoom:   13,
	Width:  700,
	Height: 400,
}

// BuildMapView places one marker per bin, in bin order.
func BuildMapView(bins []models.Bin, settings models.MapSettings) models.MapView {
	center := s2.LatLngFromDegrees(settings.Center.Lat, settings.Center.Lon)
	markers := make([]models.Marker, 0, len(bins))
	rect := s2.EmptyRect()

	for _, b := range bins {
		ll := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
		rect = rect.AddPoint(ll)

		color := ClassifyFill(b.FillPct)
		markers = append(markers, models.Marker{
			BinID:          b.ID,
			Latitude:       b.Latitude,
			Longitude:      b.Longitude,
			FillPct:        b.FillPct,
			Color:          color,
			Radius:         markerRadius,
			Filled:         true,
			Popup:          PopupText(b),
			DistanceMeters: center.Distance(ll).Radians() * earthRadiusMeters,
		})
	}

	return models.MapView{
		MapSettings: settings,
		Bounds:      viewPortOf(rect),
		Markers:     markers,
	}
}

func viewPortOf(rect s2.Rect) *models.ViewPort {
	if rect.IsEmpty() {
		return nil
	}
	lo, hi := rect.Lo(), rect.Hi()
	return &models.ViewPort{
		LatMin: lo.Lat.Degrees(),
		LonMin: lo.Lng.Degrees(),
		LatMax: hi.Lat.Degrees(),
		LonMax: hi.Lng.Degrees(),
	}
}
