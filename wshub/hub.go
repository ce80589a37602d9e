// Package wshub broadcasts engine snapshots to websocket clients. It is
// the same subscribe/unsubscribe/broadcast shape as the teacher's
// grid2d.notifier (Subscribe/Unsubscribe/RecordAdd... fan-out to
// registered channels), adapted from an in-process Update channel to a
// gorilla/websocket connection so a browser front-end can watch the
// simulation live, the way TTrapper-evosoup and ProbeChain-go-probe push
// their own engine state over a websocket connection.
package wshub

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/maccam912/avida-rs/logging"
)

// Logger is the package-level logger, swappable the same way the
// teacher's grid2d.Logger is: Null() by default, Real() to turn it on.
var Logger logging.Logger = logging.Null()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// outboxSize bounds how many undelivered broadcasts a slow client can
// fall behind by before it is dropped, mirroring the backpressure
// concern the teacher's chanbuf package exists to solve.
const outboxSize = 8

// client is one connected websocket subscriber.
type client struct {
	conn   *websocket.Conn
	outbox chan []byte
}

// Hub fans a stream of serialized snapshots out to every connected
// client. The zero value is not usable; construct with New.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// ServeHTTP upgrades the request to a websocket connection, registers it
// as a subscriber, and starts its write pump. The connection is
// unregistered and closed once its outbox closes or a write fails.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger.Printf("wshub: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, outbox: make(chan []byte, outboxSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

// readPump drains and discards client messages; its only purpose is to
// notice when the connection closes so the client can be unregistered.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.outbox {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.unregister(c)
			return
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.outbox)
	}
}

// Broadcast sends payload to every connected client. A client whose
// outbox is already full is dropped rather than allowed to stall the
// broadcast for everyone else (the same non-blocking-send discipline the
// teacher's chanbuf.Limit exists to provide for Grid notifications).
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.outbox <- payload:
		default:
			Logger.Printf("wshub: client outbox full, dropping")
			delete(h.clients, c)
			close(c.outbox)
		}
	}
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
