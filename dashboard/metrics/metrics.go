package metrics

import (
	"sync"
	"time"

	"smartwaste/dashboard/models"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// RenderTotal counts render passes by surface (page, api, websocket).
	RenderTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartwaste",
		Subsystem: "dashboard",
		Name:      "render_total",
		Help:      "Total number of dashboard render passes, labeled by surface.",
	}, []string{"surface"})

	// RenderDurationSeconds is the time spent in a render pass.
	RenderDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smartwaste",
		Subsystem: "dashboard",
		Name:      "render_duration_seconds",
		Help:      "Time to render the dashboard view, labeled by surface.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"surface"})

	// BinsOverflowing is the overflow count of the last render.
	BinsOverflowing = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartwaste",
		Subsystem: "dashboard",
		Name:      "bins_overflowing",
		Help:      "Number of bins above the overflow threshold in the last render.",
	})

	// BinsCritical is the alert count of the last render.
	BinsCritical = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartwaste",
		Subsystem: "dashboard",
		Name:      "bins_critical",
		Help:      "Number of bins above the critical threshold in the last render.",
	})

	// WebSocketSessions is the number of open dashboard sessions.
	WebSocketSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartwaste",
		Subsystem: "dashboard",
		Name:      "websocket_sessions",
		Help:      "Number of connected dashboard websocket sessions.",
	})
)

// Register registers collectors with the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RenderTotal,
			RenderDurationSeconds,
			BinsOverflowing,
			BinsCritical,
			WebSocketSessions,
		)
	})
}

// ObserveRender records a finished render pass.
func ObserveRender(surface string, started time.Time, view models.DashboardView, overflowing int) {
	RenderTotal.WithLabelValues(surface).Inc()
	RenderDurationSeconds.WithLabelValues(surface).Observe(time.Since(started).Seconds())
	BinsOverflowing.Set(float64(overflowing))
	BinsCritical.Set(float64(len(view.Alerts)))
}
