package notification

import (
	"encoding/json"
	"sync"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Event is pushed to connected clients as JSON.
type Event struct {
	Type       string               `json:"type"`
	BookingID  string               `json:"booking_id"`
	BookingRef string               `json:"booking_ref"`
	Status     entity.BookingStatus `json:"status"`
	Reason     *string              `json:"reason,omitempty"`
	At         time.Time            `json:"at"`
}

// ClientKey identifies every connection of one account.
func ClientKey(role entity.Role, id uuid.UUID) string {
	return string(role) + ":" + id.String()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to the websocket connections registered per account.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		log:     log.With(zap.String("component", "ws_hub")),
	}
}

func (h *Hub) register(key string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[key] == nil {
		h.clients[key] = make(map[*client]struct{})
	}
	h.clients[key][c] = struct{}{}
	metrics.WebsocketConnected()
}

func (h *Hub) unregister(key string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[key]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, key)
	}
	close(c.send)
	metrics.WebsocketDisconnected()
}

// Connections reports how many sockets are open for key.
func (h *Hub) Connections(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key])
}

// Serve owns conn until the peer disconnects. Clients only receive; anything
// they send is discarded.
func (h *Hub) Serve(key string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(key, c)
	h.log.Debug("Websocket client connected", zap.String("key", key))

	go h.writePump(c)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(key, c)
	h.log.Debug("Websocket client disconnected", zap.String("key", key))
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publish delivers event to every connection of key. Slow clients miss events.
func (h *Hub) Publish(key string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error("Failed to encode websocket event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[key] {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("Websocket client too slow, dropping event", zap.String("key", key))
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.clients {
		for c := range set {
			_ = c.conn.Close()
		}
	}
}
