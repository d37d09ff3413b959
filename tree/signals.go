package tree

import (
	"fmt"

	"github.com/treekit/treekit/core"
)

// Connect subscribes sub's handler (registered on its NodeBase under
// handler) to pub's event. Durable connections stay until disconnected or
// an endpoint is freed; one-shot connections are removed after their single
// invocation.
//
// Connecting the identical (publisher, event, subscriber, handler) tuple
// twice fails with ErrDuplicateConnection.
func (t *Tree) Connect(pub core.Handle, event string, sub core.Handle, handler string, oneShot bool) error {
	pn, ok := pub.Resolve()
	if !ok {
		return fmt.Errorf("connect %q: publisher: %w", event, core.ErrNodeAbsent)
	}
	sn, ok := sub.Resolve()
	if !ok {
		return fmt.Errorf("connect %q: subscriber: %w", event, core.ErrNodeAbsent)
	}
	fn, ok := sn.Base().Handler(handler)
	if !ok {
		return fmt.Errorf("connect %q to %q on %q: %w", event, handler, sn.Base().Name(), core.ErrUnknownHandler)
	}
	return pn.Base().AddConnection(core.NewConnection(event, sub, handler, oneShot, fn))
}

// Disconnect removes the durable connection identified by the tuple,
// reporting whether one existed.
func (t *Tree) Disconnect(pub core.Handle, event string, sub core.Handle, handler string) bool {
	pn, ok := pub.Resolve()
	if !ok {
		return false
	}
	return pn.Base().RemoveConnection(event, sub.ID(), handler)
}

// Emit synchronously invokes every live subscriber of pub's event with
// payload, in subscription order.
//
// The subscriber list is snapshotted at emission start, so connections
// added by handlers mid-emission are not visited until the next emission.
// Re-entrant emission of the same event is permitted. Connections whose
// subscriber has been freed are pruned silently; one-shot connections are
// removed immediately upon their invocation, before any later connection
// runs.
func (t *Tree) Emit(pub core.Handle, event string, payload any) {
	pn, ok := pub.Resolve()
	if !ok {
		return
	}
	b := pn.Base()
	for _, c := range b.ConnectionsSnapshot(event) {
		if !c.Subscriber.Valid() {
			b.DropConnection(c)
			continue
		}
		if c.OneShot {
			b.DropConnection(c)
		}
		c.Invoke(payload)
	}
}
