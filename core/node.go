package core

import "reflect"

// ProcessMode controls whether a node's Process hook runs while the tree is
// paused.
type ProcessMode int

const (
	// ModeInherit follows the nearest ancestor's effective pause state. A
	// root in this mode follows the tree's global pause flag.
	ModeInherit ProcessMode = iota
	// ModePausable obeys the tree's global pause flag directly, ignoring
	// ancestors.
	ModePausable
	// ModeIndependent always runs, paused or not.
	ModeIndependent
)

// String returns the mode's name.
func (m ProcessMode) String() string {
	switch m {
	case ModeInherit:
		return "inherit"
	case ModePausable:
		return "pausable"
	case ModeIndependent:
		return "independent"
	default:
		return "unknown"
	}
}

// TerminalReason tells a node's Terminal hook why it is being destroyed.
type TerminalReason int

const (
	// ReasonFreed means the node was the explicit target of a Free call.
	ReasonFreed TerminalReason = iota
	// ReasonCascade means an ancestor was freed and destruction cascaded
	// down to this node.
	ReasonCascade
	// ReasonShutdown means the whole tree is terminating.
	ReasonShutdown
)

// String returns the reason's name.
func (r TerminalReason) String() string {
	switch r {
	case ReasonFreed:
		return "freed"
	case ReasonCascade:
		return "cascade"
	case ReasonShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Node is the capability set every tree element implements. Embedding
// NodeBase satisfies the full interface with no-op hooks; concrete node
// types override the hooks they care about.
//
// Hooks are invoked by the scheduler on its single logical thread and run to
// completion without preemption. They may emit signals (dispatched
// synchronously) and request structural edits (deferred until the end of the
// frame when made mid-traversal).
type Node interface {
	// Base returns the node's embedded NodeBase.
	Base() *NodeBase

	// Ready runs exactly once, on the first traversal after the node is
	// attached into a live tree.
	Ready()

	// Process runs once per frame after Ready, subject to the node's
	// process mode and the tree's pause flag. delta is the caller-supplied
	// frame time; the scheduler passes it through untouched.
	Process(delta float64)

	// Terminal runs as the node is destroyed, after all of its children
	// have been destroyed.
	Terminal(reason TerminalReason)
}

// Authority is the per-tree coordination surface nodes see from inside
// their hooks. The tree package provides the concrete implementation; core
// depends only on this interface so node types stay decoupled from the
// scheduler.
type Authority interface {
	// Root returns a handle to the tree's root node.
	Root() Handle

	// AttachChild inserts a detached subtree as the last child of parent.
	// Mid-traversal calls are queued and committed at the frame boundary.
	AttachChild(parent Handle, child Node) error

	// Free detaches the node and destroys it together with its subtree,
	// children first. Mid-traversal calls are queued. Freeing the root
	// terminates the tree.
	Free(h Handle) error

	// ResolvePath resolves a slash-delimited path relative to from (or the
	// root for absolute paths) against the committed topology.
	ResolvePath(from Handle, path string) (Handle, error)

	// Connect subscribes sub's named handler to pub's event.
	Connect(pub Handle, event string, sub Handle, handler string, oneShot bool) error

	// Disconnect removes a previously established connection. It reports
	// whether a connection was found and removed.
	Disconnect(pub Handle, event string, sub Handle, handler string) bool

	// Emit synchronously invokes, in subscription order, every live
	// subscriber of pub's event.
	Emit(pub Handle, event string, payload any)

	// Post raises a diagnostic attributed to the origin node. A fatal
	// severity also requests termination.
	Post(origin Handle, sev Severity, msg string)

	// Paused reports the tree's global pause flag.
	Paused() bool

	// RequestTermination asks the tree to tear down. Mid-traversal the
	// current frame still completes; the terminal pass runs at its end.
	RequestTermination()
}

// TypeTag derives the stable type tag used for scene templates and the
// read-only walk: the node's concrete type name without package path.
func TypeTag(n Node) string {
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
