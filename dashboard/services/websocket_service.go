package services

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"smartwaste/dashboard/models"

	"github.com/apex/log"
	"github.com/gorilla/websocket"
)

const (
	MessageTypeRender = "render"
	MessageTypeError  = "error"

	rerunCommand = "rerun"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	readLimit  = 512
)

// ViewSource produces a freshly rendered dashboard view.
type ViewSource interface {
	Render() models.DashboardView
}

// SessionHub manages dashboard websocket sessions. Every session receives a
// render on connect and another one for each "rerun" frame it sends.
type SessionHub struct {
	source      ViewSource
	clients     map[*SessionClient]bool
	register    chan *SessionClient
	unregister  chan *SessionClient
	done        chan struct{}
	stopOnce    sync.Once
	mutex       sync.RWMutex
	rendersSent int
	onChange    func(connected int)
}

// SessionClient represents a single websocket session
type SessionClient struct {
	hub      *SessionHub
	conn     *websocket.Conn
	send     chan []byte
	clientIP string
}

// NewSessionHub creates a new session hub
func NewSessionHub(source ViewSource) *SessionHub {
	return &SessionHub{
		source:     source,
		clients:    make(map[*SessionClient]bool),
		register:   make(chan *SessionClient),
		unregister: make(chan *SessionClient),
		done:       make(chan struct{}),
	}
}

// OnSessionsChanged installs a callback fired with the number of connected
// sessions after every register or unregister.
func (h *SessionHub) OnSessionsChanged(fn func(connected int)) {
	h.onChange = fn
}

// Start runs the hub loop until Stop is called
func (h *SessionHub) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mutex.Unlock()
			log.Infof("Dashboard session opened from %s", client.clientIP)
			h.notify(n)
			h.sendView(client)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mutex.Unlock()
			log.Infof("Dashboard session closed from %s", client.clientIP)
			h.notify(n)

		case <-h.done:
			return
		}
	}
}

// Stop closes every session and ends the hub loop
func (h *SessionHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mutex.Lock()
		defer h.mutex.Unlock()
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
	})
}

// RegisterClient attaches a websocket connection to the hub
func (h *SessionHub) RegisterClient(conn *websocket.Conn, clientIP string) {
	client := &SessionClient{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 16),
		clientIP: clientIP,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// GetConnectedClientsCount returns the number of open sessions
func (h *SessionHub) GetConnectedClientsCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// GetRendersSent returns how many renders were pushed to sessions
func (h *SessionHub) GetRendersSent() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.rendersSent
}

func (h *SessionHub) notify(connected int) {
	if h.onChange != nil {
		h.onChange(connected)
	}
}

// sendView renders the dashboard and queues it for one client.
func (h *SessionHub) sendView(client *SessionClient) {
	msg := h.serializeMessage(models.SessionMessage{
		Type:      MessageTypeRender,
		Data:      h.source.Render(),
		Timestamp: time.Now().UTC(),
	})

	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	select {
	case client.send <- msg:
		h.rendersSent++
	default:
		log.Warnf("Dropping render for slow session %s", client.clientIP)
	}
}

// serializeMessage serializes a session message to JSON
func (h *SessionHub) serializeMessage(message models.SessionMessage) []byte {
	data, err := json.Marshal(message)
	if err != nil {
		log.WithError(err).Error("Failed to serialize session message")
		return []byte("{}")
	}
	return data
}

func isRerun(message []byte) bool {
	return strings.EqualFold(strings.TrimSpace(string(message)), rerunCommand)
}

// readPump reads rerun requests from the connection
func (c *SessionClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Errorf("Session read error for %s", c.clientIP)
			}
			break
		}

		if isRerun(message) {
			c.hub.sendView(c)
			continue
		}
		log.Debugf("Ignoring session message from %s: %s", c.clientIP, string(message))
	}
}

// writePump pumps queued renders to the connection
func (c *SessionClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
