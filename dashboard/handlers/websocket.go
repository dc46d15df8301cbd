package handlers

import (
	"net/http"

	"smartwaste/dashboard/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocketHandler handles dashboard websocket sessions
type WebSocketHandler struct {
	hub      *services.SessionHub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *services.SessionHub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ListenDashboard upgrades the request and attaches a session to the hub
func (h *WebSocketHandler) ListenDashboard(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Error("Failed to upgrade dashboard session")
		return
	}

	h.hub.RegisterClient(conn, c.ClientIP())
}
