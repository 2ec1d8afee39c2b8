// Package stream fans price ticks out to WebSocket subscribers. The hub
// owns the connection registry; clients are write-only from the server's
// point of view (no inbound protocol beyond the upgrade).
package stream

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	applogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// HubOption configures Hub.
type HubOption func(*Hub)

// WithSendBuffer sets the per-client send queue length.
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithWriteTimeout bounds a single frame write.
func WithWriteTimeout(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithPingInterval sets the keepalive ping cadence.
func WithPingInterval(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.pingInterval = d
		}
	}
}

// WithHubLogger injects a structured logger.
func WithHubLogger(l *applogger.Logger) HubOption {
	return func(h *Hub) {
		h.l = l
	}
}

// WithHubMetrics injects a metrics recorder.
func WithHubMetrics(m domrepo.Metrics) HubOption {
	return func(h *Hub) {
		h.metrics = m
	}
}

// Hub is a concurrency-safe subscriber registry. Broadcast never blocks on
// a slow consumer: a full send queue drops that client, the others keep
// receiving. Delivery order across sockets is unspecified.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}

	sendBuffer   int
	writeTimeout time.Duration
	pingInterval time.Duration

	l       *applogger.Logger
	metrics domrepo.Metrics
}

// NewHub creates a hub with sane defaults.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		clients:      make(map[*Client]struct{}),
		sendBuffer:   32,
		writeTimeout: 5 * time.Second,
		pingInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adopts an upgraded connection and starts its pumps.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	go c.writePump(h.writeTimeout, h.pingInterval)
	go c.readPump()

	if h.metrics != nil {
		h.metrics.SetStreamClients(n)
	}
	if h.l != nil {
		h.l.Info("stream client connected", applogger.Int("clients", n))
	}
	return c
}

// removeLocked takes a client out of the registry and closes its send
// queue. Caller holds h.mu: the queue close and every Broadcast send are
// serialized by the same lock, so a send can never land on a closed queue.
func (h *Hub) removeLocked(c *Client) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	c.shutdown()
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	ok := h.removeLocked(c)
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	if h.metrics != nil {
		h.metrics.SetStreamClients(n)
	}
	if h.l != nil {
		h.l.Info("stream client disconnected", applogger.Int("clients", n))
	}
}

// Broadcast sends one tick to every subscriber. Clients whose queue is
// full are dropped rather than stalling the fan-out. The sends happen
// under h.mu: they are non-blocking, and holding the lock means no
// concurrent unregister can close a queue mid-loop.
func (h *Hub) Broadcast(tick *models.PriceTick) {
	payload, err := json.Marshal(tick)
	if err != nil {
		if h.l != nil {
			h.l.Error("stream tick marshal error", applogger.Error(err))
		}
		return
	}

	h.mu.Lock()
	n := len(h.clients)
	var dropped []*Client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// slow consumer
			dropped = append(dropped, c)
		}
	}
	for _, c := range dropped {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.RecordBroadcast(n - len(dropped))
		if len(dropped) > 0 {
			h.metrics.SetStreamClients(n - len(dropped))
		}
	}
	if len(dropped) > 0 && h.l != nil {
		h.l.Warn("stream dropped slow consumers", applogger.Int("dropped", len(dropped)))
	}
}

// Clients reports the current subscriber count.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		h.unregister(c)
	}
}
