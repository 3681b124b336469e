package ws

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Handler upgrades GET /ws and subscribes the connection to the hub. The
// feed is read-only; anything the client sends is discarded.
type Handler struct {
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The feed carries no private data and sets no state.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.Subscribe)
}

func (h *Handler) Subscribe(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	if !isUpgrade(c) {
		return fiber.NewError(fiber.StatusUpgradeRequired, "websocket upgrade required")
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Printf("[WS] upgrade failed ip=%s err=%v", r.RemoteAddr, err)
			return
		}

		client := NewClient(h.hub, conn)
		if !h.hub.Register(client) {
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})(c)
}

func isUpgrade(c fiber.Ctx) bool {
	return websocket.IsWebSocketUpgrade(&http.Request{
		Header: http.Header{
			"Connection": []string{c.Get(fiber.HeaderConnection)},
			"Upgrade":    []string{c.Get(fiber.HeaderUpgrade)},
		},
	})
}
