package utility

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// RefreshMessage tells a dashboard to reload its insight charts.
const RefreshMessage = "REFRESH"

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// writeWait bounds how long a single dashboard may stall a notification.
const writeWait = 5 * time.Second

// wsClient serializes writes to one connection; gorilla allows a single
// concurrent writer.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) send(msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub holds live insight dashboards, several per user.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]*wsClient
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*websocket.Conn]*wsClient)}
}

// Register adds conn to userID's dashboards.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*websocket.Conn]*wsClient)
		h.clients[userID] = set
	}
	set[conn] = &wsClient{conn: conn}
	log.Info().Str("user_id", userID).Int("connections", len(set)).Msg("WebSocket Client Connected")
}

// Unregister removes conn, for example when the tab closes.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := set[conn]; !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
	log.Info().Str("user_id", userID).Msg("WebSocket Client Disconnected")
}

// Connections returns how many dashboards userID has open.
func (h *Hub) Connections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// Notify sends REFRESH to every dashboard of userID. Writes happen outside
// the hub lock; connections that fail or stall past writeWait are closed and
// dropped.
func (h *Hub) Notify(userID string) {
	h.mu.Lock()
	targets := make([]*wsClient, 0, len(h.clients[userID]))
	for _, c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.send([]byte(RefreshMessage)); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to send WS message, removing client")
			c.conn.Close()
			h.Unregister(userID, c.conn)
		}
	}
}
