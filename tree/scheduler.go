package tree

import "github.com/treekit/treekit/core"

// Status is the externally visible tree state reported by Tick.
type Status int

const (
	// StatusActive means the tree is running frames normally.
	StatusActive Status = iota
	// StatusPaused means the global pause flag is set; frames still
	// traverse but pause-gated hooks are skipped.
	StatusPaused
	// StatusTerminated means the tree has been torn down; Tick is a no-op
	// from now on.
	StatusTerminated
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPaused:
		return "paused"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// state is the scheduler's internal state machine.
type state int

const (
	stateIdle state = iota
	stateTraversing
	stateTerminated
)

// Tick runs one logical frame: a pre-order traversal of the live tree
// invoking lifecycle hooks, followed by the commit of structural edits
// buffered during the traversal. delta is passed through to Process hooks
// untouched; it plays no part in scheduling decisions.
//
// A node traverses with Ready exactly once, on the first frame after its
// attachment, and with Process on every later frame its pause policy
// permits. Ticking a terminated tree is a no-op returning
// StatusTerminated.
func (t *Tree) Tick(delta float64) Status {
	if t.state == stateTerminated {
		return StatusTerminated
	}
	rootNode, ok := t.root.Resolve()
	if !ok {
		t.state = stateTerminated
		return StatusTerminated
	}

	t.frame++
	t.state = stateTraversing
	t.walkFrame(rootNode, delta, !t.paused)
	t.state = stateIdle

	t.drainAndCommit()
	if t.termRequested && t.state != stateTerminated {
		t.shutdown()
	}
	return t.Status()
}

// Status reports the tree's externally visible state without running a
// frame.
func (t *Tree) Status() Status {
	switch {
	case t.state == stateTerminated:
		return StatusTerminated
	case t.paused:
		return StatusPaused
	default:
		return StatusActive
	}
}

// RequestTermination asks the tree to tear down. Mid-traversal the current
// frame completes first and the terminal pass runs at the frame boundary;
// outside traversal teardown happens immediately. Every remaining node's
// Terminal hook runs with ReasonShutdown, post-order.
func (t *Tree) RequestTermination() {
	if t.state == stateTerminated || t.termRequested {
		return
	}
	t.termRequested = true
	if t.state != stateTraversing {
		t.shutdown()
	}
}

// shutdown destroys the remaining tree and transitions to Terminated.
func (t *Tree) shutdown() {
	if t.state == stateTerminated {
		return
	}
	if n, ok := t.root.Resolve(); ok {
		t.destroy(n, core.ReasonShutdown)
	}
	t.state = stateTerminated
	t.logger.Info("tree terminated", "tree", t.id, "frame", t.frame)
}

// walkFrame visits n and its subtree pre-order, resolving the effective
// pause decision top-down. inheritedRun is the nearest ancestor's effective
// decision; the root inherits the negated global pause flag.
func (t *Tree) walkFrame(n core.Node, delta float64, inheritedRun bool) {
	b := n.Base()
	if !t.table.Live(b.ID()) {
		// Destroyed since it was scheduled; skip without descending.
		return
	}

	run := inheritedRun
	switch b.Mode() {
	case core.ModeIndependent:
		run = true
	case core.ModePausable:
		run = !t.paused
	}

	if !b.ReadyDone() {
		b.MarkReady()
		n.Ready()
	} else if run {
		n.Process(delta)
	}

	for _, c := range b.Children() {
		if t.state == stateTerminated {
			return
		}
		t.walkFrame(c, delta, run)
	}
}
