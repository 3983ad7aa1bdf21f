package inspect

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bjyip/vue/pkg/reactive"
)

// Event is one live engine event streamed to devtools clients.
type Event struct {
	// Type is "notify", "run" or "flush".
	Type string `json:"type"`
	// Dep is the notifying dep id (type "notify").
	Dep uint64 `json:"dep,omitempty"`
	// Watcher is the watcher id (type "run").
	Watcher uint64 `json:"watcher,omitempty"`
	// Ran is the number of watchers run (type "flush").
	Ran int `json:"ran,omitempty"`
}

// sendBuffer bounds the per-client queue; slow clients drop events rather
// than stalling the engine hooks.
const sendBuffer = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The inspector is a same-host development tool.
	CheckOrigin: func(*http.Request) bool { return true },
}

// hub fans engine dev-hook events out to connected WebSocket clients.
type hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// install wires the hub into the engine's dev hooks.
func (h *hub) install() {
	reactive.SetDevHooks(&reactive.DevHooks{
		OnNotify:     func(depID uint64) { h.broadcast(Event{Type: "notify", Dep: depID}) },
		OnWatcherRun: func(watcherID uint64) { h.broadcast(Event{Type: "run", Watcher: watcherID}) },
		OnFlush:      func(ran int) { h.broadcast(Event{Type: "flush", Ran: ran}) },
	})
}

// broadcast queues an event for every connected client, dropping it for
// clients whose buffers are full.
func (h *hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
		}
	}
}

func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("inspect: websocket upgrade failed", slog.Any("err", err))
		return
	}

	c := &client{conn: conn, send: make(chan Event, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

// writeLoop drains the client's event queue onto the socket.
func (h *hub) writeLoop(c *client) {
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readLoop consumes (and discards) client messages until the connection
// drops, then removes the client.
func (h *hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// close disconnects all clients and removes the engine hooks.
func (h *hub) close() {
	reactive.SetDevHooks(nil)

	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.closed = true
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		_ = c.conn.Close()
	}
}
