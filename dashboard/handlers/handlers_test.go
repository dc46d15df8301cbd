package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartwaste/dashboard/models"
	"smartwaste/dashboard/sample"
	"smartwaste/dashboard/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jknair0/beforeeach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRouter    *gin.Engine
	testDashboard *DashboardHandler
	testHub       *services.SessionHub
)

func setUp() {
	gin.SetMode(gin.TestMode)
	service := services.NewDashboardService(sample.Snapshot(), services.DefaultMapSettings)
	testDashboard = NewDashboardHandler(service, "https://tiles.example.org/{z}/{x}/{y}.png")
	testHub = NewSessionHub(testDashboard)
	go testHub.Start()

	var err error
	testRouter, err = NewRouter(RouterOptions{
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 1000,
	}, testDashboard, NewWebSocketHandler(testHub))
	if err != nil {
		panic(err)
	}
}

func tearDown() {
	testHub.Stop()
}

var it = beforeeach.Create(setUp, tearDown)

func get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPageHandler(t *testing.T) {
	it(func() {
		w := get(EndPointPage)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, services.DashboardTitle)
		assert.Contains(t, body, "15.2 tons")
		assert.Contains(t, body, "16.4 tons")
		assert.Contains(t, body, "<svg")
		assert.Contains(t, body, "<li>Rinse containers before recycling</li>")
		assert.Contains(t, body, "Bin 3 is critically full (95%). Schedule immediate pickup.")
		assert.NotContains(t, body, "Bin 1 is critically full")
		assert.Contains(t, body, "width: 700px; height: 400px;")
	})
}

func TestViewHandler(t *testing.T) {
	it(func() {
		w := get(EndPointDashboard)
		require.Equal(t, http.StatusOK, w.Code)

		var view models.DashboardView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

		assert.Equal(t, "Sample City", view.City)
		assert.Equal(t, 45, view.RecyclingRate)
		require.Len(t, view.Metrics, 3)
		assert.Equal(t, "2", view.Metrics[1].Value)
		require.Len(t, view.Map.Markers, 3)
		require.Len(t, view.Alerts, 1)
		assert.Len(t, view.Tips, 3)
		assert.Equal(t, "15", view.Chart.Values[6].String())
	})
}

func TestViewHandler_Idempotent(t *testing.T) {
	it(func() {
		first := get(EndPointDashboard)
		second := get(EndPointDashboard)

		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})
}

func TestSummaryHandler(t *testing.T) {
	it(func() {
		w := get(EndPointSummary)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.SummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, []models.Metric{
			{Label: "Today's Waste", Value: "15.2 tons"},
			{Label: "Bins Overflowing", Value: "2"},
			{Label: "Predicted Waste (Tomorrow)", Value: "16.4 tons"},
		}, resp.Metrics)
	})
}

func TestChartHandler(t *testing.T) {
	it(func() {
		w := get(EndPointChart)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	})
}

func TestMapHandler(t *testing.T) {
	it(func() {
		w := get(EndPointMap)
		require.Equal(t, http.StatusOK, w.Code)

		var view models.MapView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

		assert.Equal(t, models.Point{Lat: 40.7138, Lon: -74.0060}, view.Center)
		assert.Equal(t, 13, view.Zoom)
		colors := []models.MarkerColor{}
		for _, m := range view.Markers {
			colors = append(colors, m.Color)
		}
		assert.Equal(t, []models.MarkerColor{models.MarkerOrange, models.MarkerGreen, models.MarkerRed}, colors)
		assert.Equal(t, "Bin 2\nFill: 60%", view.Markers[1].Popup)
	})
}

func TestAlertsHandler(t *testing.T) {
	it(func() {
		w := get(EndPointAlerts)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.AlertsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Bin 3", resp.Alerts[0].BinID)
		assert.Equal(t, "high", resp.Alerts[0].Severity)
	})
}

func TestAlertsHandler_NoBins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	snapshot := sample.Snapshot()
	snapshot.Bins = nil
	h := NewDashboardHandler(services.NewDashboardService(snapshot, services.DefaultMapSettings), "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, EndPointAlerts, nil)
	h.AlertsHandler(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"alerts": [], "count": 0}`, w.Body.String())
}

func TestHealthAndVersion(t *testing.T) {
	it(func() {
		w := get(EndPointHealth)
		require.Equal(t, http.StatusOK, w.Code)

		var health models.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, ServiceName, health.Service)

		w = get(EndPointVersion)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"service":"`+ServiceName+`"`)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	it(func() {
		w := get(EndPointMetrics)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDashboardSession(t *testing.T) {
	it(func() {
		server := httptest.NewServer(testRouter)
		defer server.Close()

		url := "ws" + strings.TrimPrefix(server.URL, "http") + EndPointSession
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		first := readSessionMessage(t, conn)
		assert.Equal(t, services.MessageTypeRender, first.Type)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("rerun")))
		second := readSessionMessage(t, conn)
		assert.Equal(t, services.MessageTypeRender, second.Type)
		assert.JSONEq(t, string(first.Data), string(second.Data))

		assert.Eventually(t, func() bool {
			return testHub.GetConnectedClientsCount() == 1 && testHub.GetRendersSent() == 2
		}, time.Second, 10*time.Millisecond)
	})
}

type rawSessionMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readSessionMessage(t *testing.T, conn *websocket.Conn) rawSessionMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg rawSessionMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}
