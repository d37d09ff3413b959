package core

import "fmt"

// NodeBase bundles the state every node carries: identity, name, hierarchy
// links, depth, process mode, signal handlers and outgoing connections.
// Embed it in concrete node types; it supplies no-op lifecycle hooks so a
// struct embedding NodeBase already satisfies the Node interface.
//
// The Set*/Clear*/Bind* mutators exist for the tree package's registration
// and destruction paths. Application code builds detached subtrees with
// AddChild and performs live edits through the Authority.
type NodeBase struct {
	name     string
	id       NodeID
	handle   Handle
	mode     ProcessMode
	parent   Node
	children []Node
	depth    int
	ready    bool
	tree     Authority
	handlers map[string]HandlerFunc
	conns    []*Connection
}

// NewBase constructs a NodeBase with the given name, detached and in
// ModeInherit.
func NewBase(name string) NodeBase {
	return NodeBase{name: name}
}

// Base returns the NodeBase itself, satisfying the Node interface for
// embedders.
func (b *NodeBase) Base() *NodeBase { return b }

// Ready is the default no-op ready hook.
func (b *NodeBase) Ready() {}

// Process is the default no-op per-frame hook.
func (b *NodeBase) Process(float64) {}

// Terminal is the default no-op destruction hook.
func (b *NodeBase) Terminal(TerminalReason) {}

// Name returns the node's name, unique among its siblings once attached.
func (b *NodeBase) Name() string { return b.name }

// SetName renames a detached node. Live nodes cannot be renamed; sibling
// uniqueness is established at attach time.
func (b *NodeBase) SetName(name string) error {
	if b.tree != nil {
		return fmt.Errorf("rename %q: %w", b.name, ErrAlreadyLive)
	}
	b.name = name
	return nil
}

// SetNameUnchecked renames the node without the liveness check. The tree
// uses it to apply sibling-collision suffixes during attach; application
// code should use SetName.
func (b *NodeBase) SetNameUnchecked(name string) { b.name = name }

// ID returns the node's unique id, or InvalidID while it has never been
// attached.
func (b *NodeBase) ID() NodeID { return b.id }

// Handle returns the node's own generation-checked handle. The zero Handle
// is returned while the node has never been attached.
func (b *NodeBase) Handle() Handle { return b.handle }

// Depth returns the node's depth; the root sits at 0.
func (b *NodeBase) Depth() int { return b.depth }

// Mode returns the node's process mode.
func (b *NodeBase) Mode() ProcessMode { return b.mode }

// SetMode sets the node's process mode. Takes effect the next frame.
func (b *NodeBase) SetMode(m ProcessMode) { b.mode = m }

// Tree returns the owning tree's Authority, or nil while detached.
func (b *NodeBase) Tree() Authority { return b.tree }

// Attached reports whether the node is currently part of a live tree.
func (b *NodeBase) Attached() bool { return b.tree != nil }

// ReadyDone reports whether the Ready hook has already run.
func (b *NodeBase) ReadyDone() bool { return b.ready }

// Parent returns the node's parent, or nil for the root and for detached
// subtree roots.
func (b *NodeBase) Parent() Node { return b.parent }

// Children returns a copy of the ordered child list; mutating it has no
// effect on the tree.
func (b *NodeBase) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// NumChildren returns the number of direct children.
func (b *NodeBase) NumChildren() int { return len(b.children) }

// ChildByName returns the direct child with the exact given name, or nil.
func (b *NodeBase) ChildByName(name string) Node {
	for _, c := range b.children {
		if c.Base().name == name {
			return c
		}
	}
	return nil
}

// ChildIndex returns the position of child in the ordered child list, or -1.
func (b *NodeBase) ChildIndex(child Node) int {
	for i, c := range b.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AddChild appends child to parent's child list while both are detached.
// It is the composition primitive for building subtrees before attachment;
// live edits must go through the Authority so they can be staged against
// the traversal.
func AddChild(parent, child Node) error {
	pb, cb := parent.Base(), child.Base()
	if pb.tree != nil || cb.tree != nil {
		return fmt.Errorf("add child %q to %q: %w", cb.name, pb.name, ErrAlreadyLive)
	}
	if cb.parent != nil {
		return fmt.Errorf("add child %q: %w", cb.name, ErrInvalidAttachment)
	}
	if child == parent {
		return fmt.Errorf("add child %q to itself: %w", cb.name, ErrInvalidAttachment)
	}
	for a := pb.parent; a != nil; a = a.Base().parent {
		if a == child {
			return fmt.Errorf("add child %q: %w", cb.name, ErrInvalidAttachment)
		}
	}
	cb.parent = parent
	pb.children = append(pb.children, child)
	return nil
}

// RegisterHandler exposes fn under name so other nodes can connect signals
// to it. Registering the same name twice is an error.
func (b *NodeBase) RegisterHandler(name string, fn HandlerFunc) error {
	if b.handlers == nil {
		b.handlers = map[string]HandlerFunc{}
	}
	if _, exists := b.handlers[name]; exists {
		return fmt.Errorf("handler %q: %w", name, ErrDuplicateHandler)
	}
	b.handlers[name] = fn
	return nil
}

// Handler looks up a registered handler by name.
func (b *NodeBase) Handler(name string) (HandlerFunc, bool) {
	fn, ok := b.handlers[name]
	return fn, ok
}

// Tree-internal mutators below. These are invoked by the tree package during
// registration, detachment and destruction; application code has no reason
// to call them.

// BindIdentity records the node's allocated id and handle.
func (b *NodeBase) BindIdentity(h Handle) {
	b.id = h.ID()
	b.handle = h
}

// SetTree links the node to its owning tree.
func (b *NodeBase) SetTree(a Authority) { b.tree = a }

// ClearTree unlinks the node from its tree.
func (b *NodeBase) ClearTree() { b.tree = nil }

// SetDepth records the node's derived depth.
func (b *NodeBase) SetDepth(d int) { b.depth = d }

// SetParent records the node's parent back-reference.
func (b *NodeBase) SetParent(p Node) { b.parent = p }

// ClearParent drops the parent back-reference.
func (b *NodeBase) ClearParent() { b.parent = nil }

// InsertChildAt inserts child at index, appending when index is out of
// range.
func (b *NodeBase) InsertChildAt(child Node, index int) {
	if index < 0 || index >= len(b.children) {
		b.children = append(b.children, child)
		return
	}
	b.children = append(b.children, nil)
	copy(b.children[index+1:], b.children[index:])
	b.children[index] = child
}

// RemoveChild removes child from the ordered child list, reporting whether
// it was present.
func (b *NodeBase) RemoveChild(child Node) bool {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return true
		}
	}
	return false
}

// ClearChildren drops the child list.
func (b *NodeBase) ClearChildren() { b.children = nil }

// MarkReady records that the Ready hook has run.
func (b *NodeBase) MarkReady() { b.ready = true }
