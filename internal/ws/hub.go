package ws

import (
	"context"
	"log"
	"sync"
)

// Hub tracks connected websocket clients and fans change events out to them.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan []byte
	stopped   bool
	mutex     sync.RWMutex
	logger    *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan []byte, 256),
		logger:    logger,
	}
}

// Run delivers broadcasts until ctx is done, then closes every client.
// Once Run has returned the hub accepts no new clients.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.stopped = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case message := <-h.broadcast:
			// Sends happen under the read lock because send channels are
			// only closed under the write lock.
			var slow []*Client
			h.mutex.RLock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					slow = append(slow, c)
				}
			}
			h.mutex.RUnlock()

			for _, c := range slow {
				h.Unregister(c)
			}
		}
	}
}

// Register reports false when the hub has stopped; the caller still owns
// the client and must close its connection.
func (h *Hub) Register(client *Client) bool {
	if h == nil || client == nil {
		return false
	}
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		return false
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()

	h.logf("[WS] connected clients=%d", total)
	return true
}

// Unregister is idempotent and safe after the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()

	if ok {
		h.logf("[WS] disconnected clients=%d", total)
	}
}

// Broadcast never blocks; messages are dropped when the queue is full.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("[WS] broadcast dropped, queue full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
