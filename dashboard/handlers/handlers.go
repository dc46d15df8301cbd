package handlers

import (
	"net/http"
	"time"

	"smartwaste/dashboard/metrics"
	"smartwaste/dashboard/models"
	"smartwaste/dashboard/services"
	"smartwaste/dashboard/templates"
	"smartwaste/dashboard/version"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const ServiceName = "smartwaste-dashboard"

const (
	surfacePage      = "page"
	surfaceAPI       = "api"
	surfaceWebSocket = "websocket"
)

// DashboardHandler handles HTTP requests for the dashboard
type DashboardHandler struct {
	service *services.DashboardService
	tileURL string
	hub     *services.SessionHub
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService, tileURL string) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		tileURL: tileURL,
	}
}

// AttachHub lets the health endpoint report websocket sessions.
func (h *DashboardHandler) AttachHub(hub *services.SessionHub) {
	h.hub = hub
}

// Render runs a render pass for websocket sessions.
func (h *DashboardHandler) Render() models.DashboardView {
	return h.render(surfaceWebSocket)
}

func (h *DashboardHandler) render(surface string) models.DashboardView {
	started := time.Now()
	view := h.service.Render()
	metrics.ObserveRender(surface, started, view, services.CountOverflowing(h.service.Snapshot().Bins))
	return view
}

// PageHandler serves the HTML dashboard
func (h *DashboardHandler) PageHandler(c *gin.Context) {
	view := h.render(surfacePage)

	svg, err := h.service.RenderChartSVG(view)
	if err != nil {
		log.WithError(err).Error("Failed to render trend chart")
		c.String(http.StatusInternalServerError, "Failed to render dashboard")
		return
	}

	c.HTML(http.StatusOK, templates.DashboardPage, templates.PageData{
		View:     view,
		ChartSVG: svgHTML(svg),
		TipsHTML: h.service.TipsHTML(),
		TileURL:  h.tileURL,
	})
}

// ViewHandler returns the whole rendered view
func (h *DashboardHandler) ViewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.render(surfaceAPI))
}

// SummaryHandler returns the three summary metrics
func (h *DashboardHandler) SummaryHandler(c *gin.Context) {
	view := h.render(surfaceAPI)
	c.JSON(http.StatusOK, models.SummaryResponse{
		City:    view.City,
		Metrics: view.Metrics,
	})
}

// ChartHandler returns the trend chart as SVG
func (h *DashboardHandler) ChartHandler(c *gin.Context) {
	view := h.render(surfaceAPI)
	svg, err := h.service.RenderChartSVG(view)
	if err != nil {
		log.WithError(err).Error("Failed to render trend chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", svg)
}

// MapHandler returns the map markers and framing
func (h *DashboardHandler) MapHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.render(surfaceAPI).Map)
}

// AlertsHandler returns pickup alerts for critically full bins
func (h *DashboardHandler) AlertsHandler(c *gin.Context) {
	view := h.render(surfaceAPI)
	c.JSON(http.StatusOK, models.AlertsResponse{
		Alerts: view.Alerts,
		Count:  len(view.Alerts),
	})
}

// HealthHandler handles health check requests
func (h *DashboardHandler) HealthHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status:    "healthy",
		Message:   "Smart waste dashboard is running",
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.hub != nil {
		response.ConnectedClients = h.hub.GetConnectedClientsCount()
		response.RendersSent = h.hub.GetRendersSent()
	}
	c.JSON(http.StatusOK, response)
}

// VersionHandler returns build information
func (h *DashboardHandler) VersionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get(ServiceName))
}
