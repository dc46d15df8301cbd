package services

import (
	"html/template"

	"smartwaste/dashboard/models"
)

// DashboardService owns the read-only snapshot and renders views from it.
type DashboardService struct {
	snapshot models.WasteSnapshot
	settings models.MapSettings
	charts   *ChartRenderer
}

// NewDashboardService creates a dashboard service over a snapshot
func NewDashboardService(snapshot models.WasteSnapshot, settings models.MapSettings) *DashboardService {
	return &DashboardService{
		snapshot: snapshot.Clone(),
		settings: settings,
		charts:   NewChartRenderer(settings.Width, chartHeight),
	}
}

// Snapshot returns a copy of the snapshot being rendered
func (s *DashboardService) Snapshot() models.WasteSnapshot {
	return s.snapshot.Clone()
}

// MapSettings returns the configured map framing
func (s *DashboardService) MapSettings() models.MapSettings {
	return s.settings
}

// Render runs a render pass
func (s *DashboardService) Render() models.DashboardView {
	return RenderView(s.Snapshot(), s.settings)
}

// RenderChartSVG renders the trend chart of a view
func (s *DashboardService) RenderChartSVG(view models.DashboardView) ([]byte, error) {
	return s.charts.RenderSVG(view.Chart)
}

// TipsHTML returns the tips block as HTML for the page template.
func (s *DashboardService) TipsHTML() template.HTML {
	return template.HTML(TipsHTML())
}
