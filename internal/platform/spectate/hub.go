// Package spectate streams game frames to read-only WebSocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// DefaultBuffer is the hub's inbound frame queue length.
	DefaultBuffer = 8
	// clientBuffer is how many encoded frames a viewer may lag behind.
	clientBuffer = 4
	writeTimeout = 2 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to connected viewers. Publish never blocks: when the
// queue or a viewer's buffer is full the frame is dropped.
type Hub struct {
	logger   *log.Logger
	frames   chan any
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates a hub with a frame queue of the given length.
func NewHub(logger *log.Logger, buffer int) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		logger: logger,
		frames: make(chan any, buffer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish queues a frame for broadcast.
func (h *Hub) Publish(frame any) {
	select {
	case h.frames <- frame:
	default:
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run encodes queued frames and hands them to every viewer until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case frame := <-h.frames:
			data, err := json.Marshal(frame)
			if err != nil {
				h.logger.Warn("cannot encode frame", "error", err)
				continue
			}
			h.broadcast(data)
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("spectator connected", "remote", c.conn.RemoteAddr().String(), "clients", n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Info("spectator disconnected", "remote", c.conn.RemoteAddr().String(), "clients", n)
	}
}

// Handler serves GET /ws and GET /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/healthz", h.serveHealth)
	return mux
}

func (h *Hub) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // client went away
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "clients": h.Clients()})
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	h.register(c)
	go h.writeLoop(c)

	// Viewers never send anything meaningful; reading only detects close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(c)
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		//nolint:errcheck // a failed deadline surfaces as a write error
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.unregister(c)
			return
		}
	}
	//nolint:errcheck // best-effort close frame
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ListenAndServe runs the hub and its HTTP server until ctx ends.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		//nolint:errcheck // shutting down anyway
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("spectator feed listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectate: %w", err)
	}
	return nil
}
