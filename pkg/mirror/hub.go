// Package mirror broadcasts wheel events over websockets so remote
// indicators can follow a wheel.
//
// A [Hub] tracks connected clients and fans out pre-serialized frames, each
// client with its own write pump so one slow client never blocks the
// others. Clients whose send queue fills are disconnected. [Listener]
// adapts a hub to wheel.Listener, and [Server] upgrades HTTP requests and
// greets each client with the latest state.
//
// Frames are JSON text messages with an envelope:
//
//	{"type": "scroll", "ts": "2026-01-02T15:04:05Z", "data": {"value": 0.5, "tick": 18}}
//
// Types are "wheel_init" (sent once on connect), "scroll_started",
// "scroll" and "scroll_finished".
package mirror

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// HubConfig sizes the hub queues. Zero values select defaults.
type HubConfig struct {
	// SendBuf is the per-client outbound queue size.
	SendBuf int
	// BroadcastBuf is the hub inbound broadcast queue size.
	BroadcastBuf int
}

// Hub tracks connected clients. Call Run to start it.
type Hub struct {
	logger *slog.Logger

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	mu      sync.Mutex
	clients map[*Client]struct{}
	source  StateSource

	sendBuf int
}

// NewHub constructs a hub.
func NewHub(logger *slog.Logger, cfg HubConfig) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	sendBuf := cfg.SendBuf
	if sendBuf <= 0 {
		sendBuf = 32
	}
	bcastBuf := cfg.BroadcastBuf
	if bcastBuf <= 0 {
		bcastBuf = 128
	}
	return &Hub{
		logger:     logger,
		broadcast:  make(chan []byte, bcastBuf),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		sendBuf:    sendBuf,
	}
}

// SetSource sets where the greeting of new clients comes from. A nil
// source greets with the zero state.
func (h *Hub) SetSource(source StateSource) {
	h.mu.Lock()
	h.source = source
	h.mu.Unlock()
}

// Run processes hub events until ctx is canceled, then disconnects every
// client. Clients registered after Run returns are closed at once.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Debug("mirror hub starting")
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("mirror hub stopping")
			h.closeAllClients()
			return

		case c := <-h.register:
			h.join(c)

		case c := <-h.unregister:
			h.removeClient(c, "unregister")

		case msg := <-h.broadcast:
			// Collect slow clients first, remove them after unlocking.
			var slow []*Client
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.Unlock()
			for _, c := range slow {
				h.removeClient(c, "slow_client")
			}
		}
	}
}

// join greets c with the latest state and adds it to the broadcast set.
// Both happen on the Run goroutine, so every broadcast handled afterwards
// reaches c and none handled before it is newer than the greeting.
func (h *Hub) join(c *Client) {
	h.mu.Lock()
	var state State
	if h.source != nil {
		state = h.source.Latest()
	}
	if msg, err := Encode(TypeInit, state, time.Now()); err == nil {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("mirror client connected", "remote_addr", c.remoteAddr, "clients", n)
}

// add hands c to Run. After Run has returned c is closed instead.
func (h *Hub) add(c *Client) {
	if h.stopped() {
		c.close()
		return
	}
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

// remove asks Run to drop c. It never blocks after Run has returned.
func (h *Hub) remove(c *Client) {
	if h.stopped() {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast enqueues a serialized frame. It never blocks; a full queue
// drops the frame.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("mirror broadcast queue full, dropping frame", "bytes", len(msg))
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

func (h *Hub) removeClient(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("mirror client disconnected", "remote_addr", c.remoteAddr, "reason", reason, "clients", n)
	}
}
