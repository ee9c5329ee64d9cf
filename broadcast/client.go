package broadcast

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a Bus backed by a WebSocket connection to another node's hub.
type Client struct {
	ws   *websocket.Conn
	send chan []byte

	mu       sync.Mutex
	handlers []func()

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to a hub, e.g. "ws://127.0.0.1:8080/sync".
func Dial(url string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		ws:   ws,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

func (c *Client) Publish() {
	select {
	case c.send <- []byte(sentinel):
	case <-c.done:
		// Relay gone. Siblings serve stale data until it comes back; that
		// is within the channel's delivery guarantees.
	}
}

func (c *Client) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.ws.Close()
}

func (c *Client) readPump() {
	defer c.Close()
	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			log.Printf("broadcast: sync connection lost: %v", err)
			return
		}
		if string(msg) != sentinel {
			continue
		}
		c.mu.Lock()
		handlers := append([]func(){}, c.handlers...)
		c.mu.Unlock()
		for _, fn := range handlers {
			go fn()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
