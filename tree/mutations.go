package tree

import (
	"github.com/treekit/treekit/core"
)

// mutationKind tags a queued structural edit.
type mutationKind int

const (
	mutAttach mutationKind = iota
	mutDetach
)

// mutation is one buffered structural edit. Edits requested while the
// scheduler is mid-traversal land here instead of being applied in place;
// the queue is drained in submission order at the frame boundary.
type mutation struct {
	kind   mutationKind
	parent core.Handle // attach: insertion parent
	child  core.Node   // attach: detached subtree
	index  int         // attach: insertion position (<0 appends)
	target core.Handle // detach: node to free
}

// pendingDetach reports whether a detach for id is already queued. A unit
// appears in at most one pending detach.
func (t *Tree) pendingDetach(id core.NodeID) bool {
	for _, m := range t.queue {
		if m.kind == mutDetach && m.target.ID() == id {
			return true
		}
	}
	return false
}

// pendingAttach reports whether child is already the subject of a queued
// attach.
func (t *Tree) pendingAttach(child core.Node) bool {
	for _, m := range t.queue {
		if m.kind == mutAttach && m.child == child {
			return true
		}
	}
	return false
}

// drainAndCommit applies queued edits in submission order. A detach whose
// target was already removed by an ancestor's cascading free commits as a
// no-op; an attach whose parent died in the meantime is dropped with a
// warning diagnostic, since its requester can no longer be told
// synchronously.
func (t *Tree) drainAndCommit() {
	queue := t.queue
	t.queue = nil
	for _, m := range queue {
		if t.state == stateTerminated {
			return
		}
		switch m.kind {
		case mutAttach:
			pn, ok := m.parent.Resolve()
			if !ok {
				t.Post(t.root, core.SeverityWarning,
					"dropping queued attach of "+m.child.Base().Name()+": parent freed before commit")
				continue
			}
			t.commitAttach(pn, m.child, m.index)
		case mutDetach:
			n, ok := m.target.Resolve()
			if !ok {
				continue
			}
			t.commitFree(n)
		}
	}
}
