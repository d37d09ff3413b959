package tree

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/treekit/treekit/core"
	"github.com/treekit/treekit/logging"
)

// Compile-time assertion: the Tree is the Authority nodes program against.
var _ core.Authority = (*Tree)(nil)

// Tree is the authority coordinating one node hierarchy: it owns the
// identity table, the pause flag, the mutation queue and the root, and it
// drives lifecycle hooks through Tick. Create one per running tree; there is
// no ambient singleton.
type Tree struct {
	id    string
	table *core.Table
	root  core.Handle

	state         state
	paused        bool
	termRequested bool
	frame         uint64
	queue         []mutation

	logger logging.Logger
	sink   core.DiagnosticSink
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger sets the structured logger used for the tree's own operational
// messages. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(t *Tree) { t.logger = l }
}

// WithDiagnosticSink sets the receiver of the diagnostic event stream
// raised by node code via Post. Defaults to a bridge onto the tree's
// logger.
func WithDiagnosticSink(s core.DiagnosticSink) Option {
	return func(t *Tree) { t.sink = s }
}

// WithStartPaused creates the tree with the global pause flag already set.
func WithStartPaused() Option {
	return func(t *Tree) { t.paused = true }
}

// New creates a tree owning root and registers root's entire subtree. The
// root must be a detached subtree: never attached, or fully composed via
// core.AddChild.
func New(root core.Node, opts ...Option) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("new tree: %w", core.ErrInvalidAttachment)
	}
	if root.Base().Tree() != nil || root.Base().Parent() != nil {
		return nil, fmt.Errorf("new tree: root %q: %w", root.Base().Name(), core.ErrAlreadyLive)
	}

	t := &Tree{
		id:     uuid.NewString(),
		table:  core.NewTable(),
		state:  stateIdle,
		logger: logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.sink == nil {
		t.sink = logging.NewDiagnosticSink(t.logger)
	}

	t.register(root, 0)
	t.root = root.Base().Handle()
	t.logger.Debug("tree created", "tree", t.id, "root", root.Base().Name())
	return t, nil
}

// ID returns the tree's unique instance id, used to correlate log records
// and diagnostics.
func (t *Tree) ID() string { return t.id }

// Root returns a handle to the root node. It resolves as absent once the
// tree has terminated.
func (t *Tree) Root() core.Handle { return t.root }

// Frame returns the number of frames ticked so far.
func (t *Tree) Frame() uint64 { return t.frame }

// Paused reports the global pause flag.
func (t *Tree) Paused() bool { return t.paused }

// Pause sets the global pause flag. Paused trees still traverse each frame;
// only hooks gated by pause policy are skipped.
func (t *Tree) Pause() {
	if !t.paused {
		t.paused = true
		t.logger.Debug("tree paused", "tree", t.id, "frame", t.frame)
	}
}

// Unpause clears the global pause flag.
func (t *Tree) Unpause() {
	if t.paused {
		t.paused = false
		t.logger.Debug("tree unpaused", "tree", t.id, "frame", t.frame)
	}
}

// NodeHandle returns the handle of a node registered to this tree; the zero
// handle for nil, detached and foreign nodes.
func (t *Tree) NodeHandle(n core.Node) core.Handle {
	if n == nil || n.Base().Tree() != core.Authority(t) {
		return core.Handle{}
	}
	return n.Base().Handle()
}

// ChildrenOf returns handles to the ordered children of h, or nil when h is
// absent.
func (t *Tree) ChildrenOf(h core.Handle) []core.Handle {
	n, ok := h.Resolve()
	if !ok {
		return nil
	}
	children := n.Base().Children()
	out := make([]core.Handle, 0, len(children))
	for _, c := range children {
		out = append(out, c.Base().Handle())
	}
	return out
}

// ParentOf returns a handle to h's parent; the zero handle for the root,
// detached subtree roots and absent nodes.
func (t *Tree) ParentOf(h core.Handle) core.Handle {
	n, ok := h.Resolve()
	if !ok {
		return core.Handle{}
	}
	p := n.Base().Parent()
	if p == nil {
		return core.Handle{}
	}
	return p.Base().Handle()
}

// DepthOf returns h's depth (root is 0) and whether h is live.
func (t *Tree) DepthOf(h core.Handle) (int, bool) {
	n, ok := h.Resolve()
	if !ok {
		return 0, false
	}
	return n.Base().Depth(), true
}

// IsAncestor reports whether a is a strict ancestor of b.
func (t *Tree) IsAncestor(a, b core.Handle) bool {
	an, ok := a.Resolve()
	if !ok {
		return false
	}
	bn, ok := b.Resolve()
	if !ok {
		return false
	}
	for p := bn.Base().Parent(); p != nil; p = p.Base().Parent() {
		if p == an {
			return true
		}
	}
	return false
}

// Post raises a diagnostic attributed to the origin node and forwards it to
// the diagnostic sink. A fatal severity also requests termination; control
// flow of the current frame is otherwise unaffected.
func (t *Tree) Post(origin core.Handle, sev core.Severity, msg string) {
	t.sink.Post(core.Diagnostic{
		Tree:     t.id,
		Severity: sev,
		Path:     t.pathOf(origin),
		Message:  msg,
		Time:     time.Now().UTC(),
	})
	if sev == core.SeverityFatal {
		t.RequestTermination()
	}
}

// pathOf renders the absolute path of the origin node, or a placeholder
// when it no longer resolves.
func (t *Tree) pathOf(h core.Handle) string {
	n, ok := h.Resolve()
	if !ok {
		return "<absent>"
	}
	var names []string
	for cur := n; cur != nil; cur = cur.Base().Parent() {
		names = append(names, cur.Base().Name())
	}
	path := ""
	for i := len(names) - 1; i >= 0; i-- {
		path += "/" + names[i]
	}
	return path
}
