package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/carlhannes/hannes-os/internal/domain/vfs"
	"github.com/carlhannes/hannes-os/internal/domain/window"
	"github.com/carlhannes/hannes-os/internal/infrastructure/logging"
	"github.com/carlhannes/hannes-os/internal/infrastructure/monitoring"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// outboundBuffer bounds the per-client queue. A client that cannot keep
// up gets disconnected rather than blocking the broadcaster.
const outboundBuffer = 64

// Handler pushes file-system change events to connected desktop clients
// so open file manager windows refresh without polling.
type Handler struct {
	fs      *vfs.Service
	windows *window.Manager
	log     *logging.Logger
	metrics *monitoring.Metrics

	mu      sync.Mutex
	clients map[chan interface{}]struct{}
}

// NewHandler creates a WebSocket handler and subscribes it to change
// events on the file system
func NewHandler(fs *vfs.Service, windows *window.Manager, log *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	h := &Handler{
		fs:      fs,
		windows: windows,
		log:     log,
		metrics: metrics,
		clients: make(map[chan interface{}]struct{}),
	}
	fs.Subscribe(h.broadcast)
	return h
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}

	outbound := make(chan interface{}, outboundBuffer)
	h.register(outbound)
	defer h.unregister(outbound)

	done := make(chan struct{})
	go h.writeLoop(conn, outbound, done)
	defer close(done)

	h.enqueue(outbound, map[string]interface{}{
		"type":    "system",
		"message": "Connected to desktop service",
	})

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "ping":
			h.enqueue(outbound, map[string]interface{}{"type": "pong"})
		case "stats":
			h.sendStats(c, outbound)
		default:
			h.enqueue(outbound, map[string]interface{}{
				"type":    "error",
				"message": "unknown message type",
			})
		}
	}
}

func (h *Handler) sendStats(c *gin.Context, outbound chan interface{}) {
	fsStats, err := h.fs.Stats(c.Request.Context())
	if err != nil {
		h.enqueue(outbound, map[string]interface{}{
			"type":    "error",
			"message": err.Error(),
		})
		return
	}
	h.enqueue(outbound, map[string]interface{}{
		"type":      "stats",
		"fs":        fsStats,
		"windows":   h.windows.Stats(),
		"timestamp": time.Now().Unix(),
	})
}

// broadcast fans a change event out to every connected client
func (h *Handler) broadcast(event vfs.Event) {
	payload := map[string]interface{}{
		"type":      "fs_change",
		"op":        event.Op,
		"entity_id": event.EntityID,
		"timestamp": time.Now().Unix(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for outbound := range h.clients {
		select {
		case outbound <- payload:
			if h.metrics != nil {
				h.metrics.WSEvents.Inc()
			}
		default:
			// Slow client, skip it. The write loop disconnects it when
			// its queue stays full.
		}
	}
}

func (h *Handler) register(outbound chan interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[outbound] = struct{}{}
}

func (h *Handler) unregister(outbound chan interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, outbound)
}

func (h *Handler) enqueue(outbound chan interface{}, data interface{}) {
	select {
	case outbound <- data:
	default:
	}
}

// writeLoop serializes all writes to a connection. gorilla connections
// support one concurrent writer only.
func (h *Handler) writeLoop(conn *websocket.Conn, outbound chan interface{}, done chan struct{}) {
	for {
		select {
		case data := <-outbound:
			if err := conn.WriteJSON(data); err != nil {
				conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}
