package handlers

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"smartwaste/common"
	"smartwaste/dashboard/middleware"
	"smartwaste/dashboard/services"
	"smartwaste/dashboard/templates"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EndPointPage      = "/"
	EndPointDashboard = "/api/v1/dashboard"
	EndPointSummary   = "/api/v1/summary"
	EndPointChart     = "/api/v1/chart.svg"
	EndPointMap       = "/api/v1/map"
	EndPointAlerts    = "/api/v1/alerts"
	EndPointHealth    = "/health"
	EndPointVersion   = "/version"
	EndPointMetrics   = "/metrics"
	EndPointSession   = "/ws/dashboard"
)

// RouterOptions carries the HTTP settings of the router.
type RouterOptions struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// NewRouter wires every dashboard endpoint.
func NewRouter(opts RouterOptions, dashboard *DashboardHandler, sessions *WebSocketHandler) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), common.RequestLogger())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.SetHTMLTemplate(tmpl)

	router.GET(EndPointPage, dashboard.PageHandler)
	router.GET(EndPointHealth, dashboard.HealthHandler)
	router.GET(EndPointVersion, dashboard.VersionHandler)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	limited := router.Group("/")
	limited.Use(middleware.RateLimitMiddleware(opts.RateLimitPerMinute, time.Minute))
	{
		limited.GET(EndPointDashboard, dashboard.ViewHandler)
		limited.GET(EndPointSummary, dashboard.SummaryHandler)
		limited.GET(EndPointChart, dashboard.ChartHandler)
		limited.GET(EndPointMap, dashboard.MapHandler)
		limited.GET(EndPointAlerts, dashboard.AlertsHandler)
		if sessions != nil {
			limited.GET(EndPointSession, sessions.ListenDashboard)
		}
	}

	return router, nil
}

// NewSessionHub builds the websocket hub rendering through the handler.
func NewSessionHub(dashboard *DashboardHandler) *services.SessionHub {
	hub := services.NewSessionHub(dashboard)
	dashboard.AttachHub(hub)
	return hub
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// svgHTML strips the XML prolog so the chart can be inlined in the page.
func svgHTML(svg []byte) template.HTML {
	s := string(svg)
	if strings.HasPrefix(s, "<?xml") {
		if i := strings.Index(s, "?>"); i >= 0 {
			s = s[i+2:]
		}
	}
	return template.HTML(strings.TrimSpace(s))
}
