package core

// NodeID uniquely identifies a node for the lifetime of its tree. Ids are
// issued from a monotonic counter and are never reused, so a NodeID observed
// once refers to the same logical node forever. The zero value is reserved
// and never issued.
type NodeID uint64

// InvalidID is the zero NodeID; no live node ever carries it.
const InvalidID NodeID = 0

// Generation is the per-slot counter that detects stale references. It is
// bumped exactly when the slot's node is destroyed, so a (NodeID, Generation)
// pair captured from a live node stops resolving the moment the node dies.
type Generation uint32

// slot is a single arena entry. Slots are allocated once per id and are kept
// for the lifetime of the table, which makes the pointer stable and lets
// Handles cache it for O(1) resolution.
type slot struct {
	gen  Generation
	node Node
}

// Table is the identity and slot table: a generational arena mapping NodeID
// to the node currently stored under it.
//
// Contract (all methods are O(1)):
//   - Allocate issues a fresh, never-reused id at generation 0
//   - Bind records the node for an id and returns the Handle capturing the
//     current generation
//   - Invalidate bumps the generation and clears the node; resolving any
//     previously captured pair fails from then on
//   - Resolve never returns a recycled location under a stale generation
//     and never panics; unknown ids are simply absent
type Table struct {
	slots map[NodeID]*slot
	next  NodeID
}

// NewTable creates an empty slot table.
func NewTable() *Table {
	return &Table{slots: map[NodeID]*slot{}, next: InvalidID + 1}
}

// Allocate issues a fresh id with generation 0 and no bound node.
func (t *Table) Allocate() NodeID {
	id := t.next
	t.next++
	t.slots[id] = &slot{}
	return id
}

// Bind stores n under id and returns the handle that resolves to n until the
// id is invalidated. Binding an unknown id returns the zero Handle.
func (t *Table) Bind(id NodeID, n Node) Handle {
	s, ok := t.slots[id]
	if !ok {
		return Handle{}
	}
	s.node = n
	return Handle{id: id, gen: s.gen, entry: s}
}

// Invalidate bumps the generation for id and clears its node, causing every
// handle captured before the call to resolve as absent. Calling it again for
// an already-invalidated id is a no-op.
func (t *Table) Invalidate(id NodeID) {
	s, ok := t.slots[id]
	if !ok || s.node == nil {
		return
	}
	s.node = nil
	s.gen++
}

// Resolve returns the node bound under id iff gen matches the slot's current
// generation. It is side-effect-free.
func (t *Table) Resolve(id NodeID, gen Generation) (Node, bool) {
	s, ok := t.slots[id]
	if !ok || s.node == nil || s.gen != gen {
		return nil, false
	}
	return s.node, true
}

// Live reports whether id currently has a bound node.
func (t *Table) Live(id NodeID) bool {
	s, ok := t.slots[id]
	return ok && s.node != nil
}

// HandleFor captures a handle for id at its current generation. The zero
// Handle is returned when id is not live.
func (t *Table) HandleFor(id NodeID) Handle {
	s, ok := t.slots[id]
	if !ok || s.node == nil {
		return Handle{}
	}
	return Handle{id: id, gen: s.gen, entry: s}
}

// Len returns the number of ids ever allocated, live or not.
func (t *Table) Len() int { return len(t.slots) }
