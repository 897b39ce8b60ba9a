// Package ws streams session notifications to browser clients over
// WebSocket. A session can have several tabs open; each gets every event.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 32
)

// Client is one WebSocket connection watching a session.
type Client struct {
	sessionID string
	conn      *websocket.Conn
	send      chan []byte
	hub       *Hub
}

// Hub keeps the connections of every session.
//
// Go Learning Note — Non-Blocking Send:
// Publish is called from ride timers while the session lock is held, so it
// must never wait on a slow browser. `select { case c.send <- msg: default: }`
// drops a client whose buffer is full instead of blocking the ride.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*Client]struct{}
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a hub. allowedOrigins mirrors the CORS setting; "*" or an
// empty list accepts any origin.
func NewHub(logger *slog.Logger, allowedOrigins []string) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		sessions: make(map[string]map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWS upgrades the request and streams the session's events until the
// browser goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		hub:       h,
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
	return nil
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[c.sessionID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.sessions[c.sessionID] = clients
	}
	clients[c] = struct{}{}
	h.logger.Info("ws_registered", "session_id", c.sessionID, "connections", len(clients))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
	h.logger.Info("ws_removed", "session_id", c.sessionID)
}

// Publish sends payload as JSON to every client of the session. Sessions
// nobody is watching are skipped.
func (h *Hub) Publish(sessionID string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.sessions[sessionID]
	if len(clients) == 0 {
		return
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("ws_marshal_failed", "session_id", sessionID, "error", err)
		return
	}
	for c := range clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("ws_client_too_slow", "session_id", sessionID)
			h.removeLocked(c)
		}
	}
}

// CloseSession disconnects every client of a closed session.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.sessions[sessionID] {
		h.removeLocked(c)
	}
}

// Connections returns how many clients watch a session.
func (h *Hub) Connections(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

// readPump only exists to notice the browser leaving and to answer pings;
// clients act on the ride through the HTTP API.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("ws_read_error", "session_id", c.sessionID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.logger.Warn("ws_write_error", "session_id", c.sessionID, "error", err)
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
