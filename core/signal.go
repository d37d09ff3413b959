package core

import "fmt"

// HandlerFunc is a signal handler. The payload is whatever the emitter
// passed; handlers type-assert as needed.
type HandlerFunc func(payload any)

// Connection is a single publisher-event-to-subscriber-handler link. The
// list of connections lives on the publisher's NodeBase in subscription
// order; emission walks a snapshot of that list.
type Connection struct {
	Event      string
	Subscriber Handle
	Handler    string
	OneShot    bool

	fn HandlerFunc
}

// NewConnection builds a connection record invoking fn.
func NewConnection(event string, sub Handle, handler string, oneShot bool, fn HandlerFunc) *Connection {
	return &Connection{Event: event, Subscriber: sub, Handler: handler, OneShot: oneShot, fn: fn}
}

// Invoke calls the connection's handler with payload.
func (c *Connection) Invoke(payload any) { c.fn(payload) }

// matches reports identity of the (event, subscriber, handler) triple.
func (c *Connection) matches(event string, sub NodeID, handler string) bool {
	return c.Event == event && c.Subscriber.ID() == sub && c.Handler == handler
}

// AddConnection appends c to the node's publish list. An identical
// (event, subscriber, handler) triple already present is an error.
func (b *NodeBase) AddConnection(c *Connection) error {
	for _, existing := range b.conns {
		if existing.matches(c.Event, c.Subscriber.ID(), c.Handler) {
			return fmt.Errorf("connect %q to %q: %w", c.Event, c.Handler, ErrDuplicateConnection)
		}
	}
	b.conns = append(b.conns, c)
	return nil
}

// RemoveConnection removes the connection identified by the triple,
// reporting whether one was found.
func (b *NodeBase) RemoveConnection(event string, sub NodeID, handler string) bool {
	for i, c := range b.conns {
		if c.matches(event, sub, handler) {
			b.conns = append(b.conns[:i], b.conns[i+1:]...)
			return true
		}
	}
	return false
}

// DropConnection removes c by identity. Used during emission to prune
// one-shots and dead subscribers without disturbing the rest of the list.
func (b *NodeBase) DropConnection(c *Connection) {
	for i, existing := range b.conns {
		if existing == c {
			b.conns = append(b.conns[:i], b.conns[i+1:]...)
			return
		}
	}
}

// ConnectionsSnapshot returns a copy of the current subscriber list for
// event, in subscription order. Connections added after the snapshot is
// taken are not part of it.
func (b *NodeBase) ConnectionsSnapshot(event string) []*Connection {
	var out []*Connection
	for _, c := range b.conns {
		if c.Event == event {
			out = append(out, c)
		}
	}
	return out
}

// ClearConnections drops every outgoing connection. Called when the
// publisher is destroyed.
func (b *NodeBase) ClearConnections() { b.conns = nil }
