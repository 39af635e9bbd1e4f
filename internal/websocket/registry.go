package websocket

import (
	"IOStatDO/internal/pkg/logger"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ChannelIOStat carries throughput readings
const ChannelIOStat = "iostat"

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many messages a client may lag behind before it
	// is dropped
	sendBuffer = 16
)

var (
	// Registry singleton
	registry *Registry
	once     sync.Once
)

// Registry manages one WebSocket handler per channel
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
}

// GetRegistry returns the WebSocket registry singleton
func GetRegistry() *Registry {
	once.Do(func() {
		registry = NewRegistry()
	})
	return registry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Handler returns the handler for a channel, creating it on first use
func (r *Registry) Handler(channel string) *Handler {
	r.mu.RLock()
	h, ok := r.handlers[channel]
	r.mu.RUnlock()
	if ok {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok = r.handlers[channel]; !ok {
		h = NewHandler()
		r.handlers[channel] = h
	}
	return h
}

// lookup returns the handler for a channel without creating it
func (r *Registry) lookup(channel string) *Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[channel]
}

// Handler manages WebSocket connections
type Handler struct {
	clients  map[*Client]bool
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

// Client represents a WebSocket client connection. Messages are queued on
// send and written by the client's own write loop.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// writePump drains the send queue until it is closed or a write fails
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Dropping WebSocket client after failed write", logger.Err(err))
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// NewHandler creates a new WebSocket handler
func NewHandler() *Handler {
	return &Handler{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS and auth middleware
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client goes away
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket connection", logger.Err(err))
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	go client.writePump()
	defer h.remove(client)

	// Incoming messages are discarded; the read loop only detects close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

// dropLocked unregisters the client and stops its write loop. h.mu must
// be held.
func (h *Handler) dropLocked(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// Broadcast queues a message for every client of this handler. It never
// waits on the network; clients whose queue is full are dropped.
func (h *Handler) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			logger.Warn("Dropping WebSocket client that is not keeping up")
			h.dropLocked(client)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Handler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
