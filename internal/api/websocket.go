package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/amterp/swatch/internal/id"
	"github.com/gorilla/websocket"
)

// Message types pushed to clients.
const (
	MessageConnected         = "connected"
	MessageReferenceReloaded = "reference_reloaded"
	MessageReferenceError    = "reference_error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait / 2
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Served on localhost only
	},
}

// WebSocketMessage is the JSON message sent to clients.
type WebSocketMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data any    `json:"data"`
}

func newMessage(msgType string, data any) ([]byte, error) {
	return json.Marshal(WebSocketMessage{
		ID:   id.Generate(id.Event),
		Type: msgType,
		Data: data,
	})
}

// WebSocketHub fans reference status messages out to connected clients.
// The most recent broadcast is replayed to clients that connect later, so a
// page opened after a failed reload still sees the error.
type WebSocketHub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	last    []byte
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte // Closed by the hub on removal
}

// NewWebSocketHub creates a new WebSocket hub.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{clients: make(map[*wsClient]struct{})}
}

// Broadcast sends a message of the given type to all connected clients and
// remembers it for clients that connect later.
func (h *WebSocketHub) Broadcast(msgType string, data any) {
	msg, err := newMessage(msgType, data)
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", msgType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	h.fanOut(msg)
}

// fanOut queues msg on every client and drops clients whose queue is full.
// Callers hold the write lock.
func (h *WebSocketHub) fanOut(msg []byte) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropLocked(c)
		}
	}
	MetricWSClients.Set(float64(len(h.clients)))
}

// register queues the greeting and the last status on c, then adds it.
// Both happen under the write lock, so a concurrent Broadcast either lands
// before (and is replayed) or after (and is fanned out to c).
func (h *WebSocketHub) register(c *wsClient) {
	greeting, err := newMessage(MessageConnected, map[string]any{
		"message": "Live reference reload enabled",
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		c.send <- greeting
	}
	if h.last != nil {
		c.send <- h.last
	}
	h.clients[c] = struct{}{}
	MetricWSClients.Set(float64(len(h.clients)))
}

func (h *WebSocketHub) removeClient(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
	MetricWSClients.Set(float64(len(h.clients)))
}

func (h *WebSocketHub) dropLocked(c *wsClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}

	h.register(c)

	go c.writeLoop()
	go h.readLoop(c)
}

// readLoop discards client input. Reading is what notices disconnects and
// pong replies.
func (h *WebSocketHub) readLoop(c *wsClient) {
	defer h.removeClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
	}
}

// writeLoop owns the connection: it writes queued messages and pings until
// the hub closes send.
func (c *wsClient) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
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
				return
			}

		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
