package core

// Handle is a non-owning, generation-checked reference to a node. It holds
// the (id, generation) pair plus the cached arena slot, so resolution is a
// pointer dereference and two comparisons; it never walks the tree.
//
// Handles are cheap to copy and safe to retain across arbitrary tree
// mutations: once the referenced node is destroyed every copy resolves as
// absent, permanently. The zero Handle is valid and always absent.
type Handle struct {
	id    NodeID
	gen   Generation
	entry *slot
}

// ID returns the referenced node's id (InvalidID for the zero handle).
func (h Handle) ID() NodeID { return h.id }

// Resolve returns the live node this handle refers to, or false when the
// node has been destroyed (or the handle is zero). Absence is a normal
// outcome callers must branch on, never an error.
func (h Handle) Resolve() (Node, bool) {
	if h.entry == nil || h.entry.node == nil || h.entry.gen != h.gen {
		return nil, false
	}
	return h.entry.node, true
}

// Valid reports whether the handle currently resolves to a live node.
func (h Handle) Valid() bool {
	_, ok := h.Resolve()
	return ok
}

// Tp is the typed counterpart of Handle. Resolution additionally requires
// the live node to be of type T; a type mismatch yields absent rather than
// an error, mirroring the untyped layer's treatment of destroyed nodes.
type Tp[T Node] struct {
	h Handle
}

// Typed wraps an untyped handle. The wrap itself never fails; the type check
// happens on every Resolve so the same Tp stays correct if the slot's
// dynamic type could never match.
func Typed[T Node](h Handle) Tp[T] {
	return Tp[T]{h: h}
}

// Resolve returns the live node as T, or false if the node is gone or is
// not a T.
func (p Tp[T]) Resolve() (T, bool) {
	n, ok := p.h.Resolve()
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := n.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}

// Valid reports whether the handle resolves to a live node of type T.
func (p Tp[T]) Valid() bool {
	_, ok := p.Resolve()
	return ok
}

// Handle returns the underlying untyped handle.
func (p Tp[T]) Handle() Handle { return p.h }
