// Package sample holds the fixed demo data the dashboard renders.
package sample

import (
	"smartwaste/dashboard/models"

	"github.com/shopspring/decimal"
)

var snapshot = models.WasteSnapshot{
	City:                  "Sample City",
	TodayWasteTons:        decimal.RequireFromString("15.2"),
	PredictedTomorrowTons: decimal.RequireFromString("16.4"),
	RecyclingRate:         45,
	Daily: []models.DailyWaste{
		{Day: "Mon", Tons: decimal.NewFromInt(8)},
		{Day: "Tue", Tons: decimal.NewFromInt(9)},
		{Day: "Wed", Tons: decimal.NewFromInt(10)},
		{Day: "Thu", Tons: decimal.NewFromInt(12)},
		{Day: "Fri", Tons: decimal.NewFromInt(13)},
		{Day: "Sat", Tons: decimal.NewFromInt(14)},
		{Day: "Sun", Tons: decimal.NewFromInt(15)},
	},
	Bins: []models.Bin{
		{ID: "Bin 1", Latitude: 40.7128, Longitude: -74.0060, FillPct: 85},
		{ID: "Bin 2", Latitude: 40.7158, Longitude: -74.0020, FillPct: 60},
		{ID: "Bin 3", Latitude: 40.7108, Longitude: -74.0120, FillPct: 95},
	},
}

// Snapshot returns a copy of the sample snapshot.
func Snapshot() models.WasteSnapshot {
	return snapshot.Clone()
}
