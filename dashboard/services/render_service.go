package services

import (
	"fmt"
	"strings"

	"smartwaste/dashboard/models"

	"github.com/russross/blackfriday/v2"
	"github.com/shopspring/decimal"
)

const (
	OverflowThreshold = 80
	CriticalThreshold = 90

	SeverityHigh = "high"

	DashboardTitle    = "AI-Powered Smart Waste Management and Recycling Assistant"
	DashboardSubtitle = "Interactive demo dashboard — city waste metrics, predictions, anomaly alerts and recycling tips."

	markerRadius = 10
)

var recyclingTips = []string{
	"Separate recyclables from general waste",
	"Rinse containers before recycling",
	"Recycle paper, plastic, glass, and metal",
}

// ClassifyFill maps a fill percentage to its marker color.
// Both bounds are strict: exactly 90 is orange and exactly 80 is green.
func ClassifyFill(fillPct int) models.MarkerColor {
	switch {
	case fillPct > CriticalThreshold:
		return models.MarkerRed
	case fillPct > OverflowThreshold:
		return models.MarkerOrange
	default:
		return models.MarkerGreen
	}
}

func IsOverflowing(b models.Bin) bool {
	return b.FillPct > OverflowThreshold
}

func IsCritical(b models.Bin) bool {
	return b.FillPct > CriticalThreshold
}

// CountOverflowing returns the number of bins filled above 80%
func CountOverflowing(bins []models.Bin) int {
	n := 0
	for _, b := range bins {
		if IsOverflowing(b) {
			n++
		}
	}
	return n
}

// CriticalAlerts builds one pickup alert per critical bin, in bin order.
func CriticalAlerts(bins []models.Bin) []models.Alert {
	alerts := make([]models.Alert, 0)
	for _, b := range bins {
		if !IsCritical(b) {
			continue
		}
		alerts = append(alerts, models.Alert{
			BinID:    b.ID,
			FillPct:  b.FillPct,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%s is critically full (%d%%). Schedule immediate pickup.", b.ID, b.FillPct),
		})
	}
	return alerts
}

// FormatTons renders a tonnage as "<value> tons". Whole values keep one
// fractional digit, so 16 reads "16.0 tons".
func FormatTons(tons decimal.Decimal) string {
	if tons.Equal(tons.Truncate(0)) {
		return tons.StringFixed(1) + " tons"
	}
	return tons.String() + " tons"
}

// PopupText is the marker popup body for a bin.
func PopupText(b models.Bin) string {
	return fmt.Sprintf("%s\nFill: %d%%", b.ID, b.FillPct)
}

func BuildMetrics(s models.WasteSnapshot) []models.Metric {
	return []models.Metric{
		{Label: "Today's Waste", Value: FormatTons(s.TodayWasteTons)},
		{Label: "Bins Overflowing", Value: fmt.Sprintf("%d", CountOverflowing(s.Bins))},
		{Label: "Predicted Waste (Tomorrow)", Value: FormatTons(s.PredictedTomorrowTons)},
	}
}

func BuildTrendChart(s models.WasteSnapshot) models.TrendChart {
	labels := make([]string, 0, len(s.Daily))
	values := make([]decimal.Decimal, 0, len(s.Daily))
	for _, d := range s.Daily {
		labels = append(labels, d.Day)
		values = append(values, d.Tons)
	}
	return models.TrendChart{
		SeriesName:   "Waste (tons)",
		Labels:       labels,
		Values:       values,
		LineColor:    "#3b82f6",
		PaperColor:   "#0f1724",
		PlotColor:    "#111827",
		FontColor:    "#cbd5e1",
		MarginLeft:   40,
		MarginRight:  20,
		MarginTop:    30,
		MarginBottom: 30,
	}
}

// RecyclingTips returns the static tips list.
func RecyclingTips() []string {
	return append([]string(nil), recyclingTips...)
}

// TipsMarkdown returns the tips as a markdown bullet list
func TipsMarkdown() string {
	var b strings.Builder
	for _, tip := range recyclingTips {
		b.WriteString("- ")
		b.WriteString(tip)
		b.WriteString("\n")
	}
	return b.String()
}

// TipsHTML renders the tips markdown to HTML.
func TipsHTML() string {
	return string(blackfriday.Run([]byte(TipsMarkdown())))
}

// RenderView runs one render pass over the snapshot. It never mutates s and
// holds no state between calls.
func RenderView(s models.WasteSnapshot, settings models.MapSettings) models.DashboardView {
	return models.DashboardView{
		Title:         DashboardTitle,
		Subtitle:      DashboardSubtitle,
		City:          s.City,
		RecyclingRate: s.RecyclingRate,
		Metrics:       BuildMetrics(s),
		Chart:         BuildTrendChart(s),
		Map:           BuildMapView(s.Bins, settings),
		Tips:          RecyclingTips(),
		Alerts:        CriticalAlerts(s.Bins),
	}
}
