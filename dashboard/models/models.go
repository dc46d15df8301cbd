package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyWaste is one point of the weekly trend.
type DailyWaste struct {
	Day  string          `json:"day"`
	Tons decimal.Decimal `json:"tons"`
}

// Bin represents a monitored waste bin
type Bin struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	FillPct   int     `json:"fill_pct"` // 0..100, not validated
}

// WasteSnapshot holds every value shown on the dashboard.
type WasteSnapshot struct {
	City                  string          `json:"city"`
	TodayWasteTons        decimal.Decimal `json:"today_waste_tons"`
	PredictedTomorrowTons decimal.Decimal `json:"predicted_tomorrow_tons"`
	RecyclingRate         int             `json:"recycling_rate"`
	Daily                 []DailyWaste    `json:"daily"`
	Bins                  []Bin           `json:"bins"`
}

// Clone returns a deep copy of the snapshot.
func (s WasteSnapshot) Clone() WasteSnapshot {
	c := s
	c.Daily = append([]DailyWaste(nil), s.Daily...)
	c.Bins = append([]Bin(nil), s.Bins...)
	return c
}

// MarkerColor is the severity color of a bin on the map
type MarkerColor string

const (
	MarkerGreen  MarkerColor = "green"
	MarkerOrange MarkerColor = "orange"
	MarkerRed    MarkerColor = "red"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ViewPort struct {
	LatMin float64 `json:"latmin"`
	LonMin float64 `json:"lonmin"`
	LatMax float64 `json:"latmax"`
	LonMax float64 `json:"lonmax"`
}

// MapSettings describes the fixed map framing.
type MapSettings struct {
	Center Point `json:"center"`
	Zoom   int   `json:"zoom"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
}

// Marker is one circle marker on the map
type Marker struct {
	BinID          string      `json:"bin_id"`
	Latitude       float64     `json:"latitude"`
	Longitude      float64     `json:"longitude"`
	FillPct        int         `json:"fill_pct"`
	Color          MarkerColor `json:"color"`
	Radius         int         `json:"radius"`
	Filled         bool        `json:"filled"`
	Popup          string      `json:"popup"`
	DistanceMeters float64     `json:"distance_meters"`
}

// MapView represents the map region of the dashboard
type MapView struct {
	MapSettings
	Bounds  *ViewPort `json:"bounds,omitempty"`
	Markers []Marker  `json:"markers"`
}

// Metric is a single summary tile
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TrendChart describes the weekly waste chart.
type TrendChart struct {
	SeriesName   string            `json:"series_name"`
	Labels       []string          `json:"labels"`
	Values       []decimal.Decimal `json:"values"`
	LineColor    string            `json:"line_color"`
	PaperColor   string            `json:"paper_color"`
	PlotColor    string            `json:"plot_color"`
	FontColor    string            `json:"font_color"`
	MarginLeft   int               `json:"margin_left"`
	MarginRight  int               `json:"margin_right"`
	MarginTop    int               `json:"margin_top"`
	MarginBottom int               `json:"margin_bottom"`
}

// Alert is a pickup alert raised for a critically full bin
type Alert struct {
	BinID    string `json:"bin_id"`
	FillPct  int    `json:"fill_pct"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// DashboardView is the output of a single render pass.
type DashboardView struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	City          string     `json:"city"`
	RecyclingRate int        `json:"recycling_rate"`
	Metrics       []Metric   `json:"metrics"`
	Chart         TrendChart `json:"chart"`
	Map           MapView    `json:"map"`
	Tips          []string   `json:"tips"`
	Alerts        []Alert    `json:"alerts"`
}

// SummaryResponse represents the response for the summary metrics
type SummaryResponse struct {
	City    string   `json:"city"`
	Metrics []Metric `json:"metrics"`
}

// AlertsResponse represents the response for the alert list
type AlertsResponse struct {
	Alerts []Alert `json:"alerts"`
	Count  int     `json:"count"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message,omitempty"`
	Service          string `json:"service,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	ConnectedClients int    `json:"connected_clients,omitempty"`
	RendersSent      int    `json:"renders_sent,omitempty"`
}

// SessionMessage represents a message sent to websocket sessions
type SessionMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
