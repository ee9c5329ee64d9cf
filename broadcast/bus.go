// Package broadcast is the same-device sync channel between nodes. The
// signal carries no payload: it only means "persisted state changed, re-read
// it". A publisher never receives its own signal.
package broadcast

import "sync"

// sentinel is the wire form of the signal.
const sentinel = "DB_UPDATE"

// Bus is one node's attachment to the channel.
type Bus interface {
	// Publish signals every other attached node. Fire and forget: delivery
	// is unordered and unacknowledged.
	Publish()
	// Subscribe registers fn to run whenever another node publishes.
	// Handlers run asynchronously.
	Subscribe(fn func())
	Close() error
}

// Node is an in-process attachment handed out by a Hub.
type Node struct {
	hub *Hub

	mu       sync.Mutex
	handlers []func()
	closed   bool
}

func (n *Node) Publish() {
	n.hub.fanout(n)
}

func (n *Node) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, fn)
}

func (n *Node) Close() error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.hub.detach(n)
	return nil
}

func (n *Node) deliver() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	for _, fn := range n.handlers {
		go fn()
	}
}
