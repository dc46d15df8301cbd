// Package templates embeds the dashboard page.
package templates

import (
	"embed"
	"html/template"

	"smartwaste/dashboard/models"
)

//go:embed *.html
var files embed.FS

const DashboardPage = "dashboard.html"

// PageData is what the dashboard page renders from.
type PageData struct {
	View     models.DashboardView
	ChartSVG template.HTML
	TipsHTML template.HTML
	TileURL  string
}

// Load parses the embedded page templates.
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
