package broadcast

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Nodes only ever connect from the same machine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans the sync signal out between in-process nodes and remote
// (other-process) nodes connected over WebSocket. One node per machine runs
// the hub; the rest dial it.
type Hub struct {
	mu    sync.RWMutex
	nodes map[*Node]struct{}
	conns map[*conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		nodes: make(map[*Node]struct{}),
		conns: make(map[*conn]struct{}),
	}
}

// Node attaches a new in-process subscriber and returns its bus.
func (h *Hub) Node() *Node {
	n := &Node{hub: h}
	h.mu.Lock()
	h.nodes[n] = struct{}{}
	h.mu.Unlock()
	return n
}

func (h *Hub) detach(n *Node) {
	h.mu.Lock()
	delete(h.nodes, n)
	h.mu.Unlock()
}

// fanout delivers the signal to every attachment except origin.
func (h *Hub) fanout(origin any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for n := range h.nodes {
		if n != origin {
			n.deliver()
		}
	}
	for c := range h.conns {
		if c == origin {
			continue
		}
		select {
		case c.send <- []byte(sentinel):
		default:
			// Slow consumer: drop the signal. It will catch up on the next
			// one, or serve stale reads until then.
		}
	}
}

// Handler serves the WebSocket endpoint remote nodes dial.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("broadcast: upgrade failed: %v", err)
			return
		}
		c := &conn{ws: ws, send: make(chan []byte, 256)}
		h.mu.Lock()
		h.conns[c] = struct{}{}
		h.mu.Unlock()
		log.Printf("broadcast: node connected (%d remote)", h.remoteCount())

		go c.writePump()
		go func() {
			c.readPump(h)
			h.mu.Lock()
			delete(h.conns, c)
			h.mu.Unlock()
			close(c.send)
			log.Printf("broadcast: node disconnected (%d remote)", h.remoteCount())
		}()
	}
}

func (h *Hub) remoteCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// conn is one remote node's connection, seen from the hub side.
type conn struct {
	ws   *websocket.Conn
	send chan []byte
}

func (c *conn) readPump(h *Hub) {
	defer c.ws.Close()
	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if string(msg) == sentinel {
			h.fanout(c)
		}
	}
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
