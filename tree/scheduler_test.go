package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treekit/treekit/core"
)

func TestTickRunsReadyOncePreOrder(t *testing.T) {
	var trace []string
	root := newTracedProbe("Main", &trace)
	a := newTracedProbe("A", &trace)
	b := newTracedProbe("B", &trace)
	leaf := newTracedProbe("Leaf", &trace)
	require.NoError(t, core.AddChild(root, a))
	require.NoError(t, core.AddChild(root, b))
	require.NoError(t, core.AddChild(a, leaf))

	tr, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, tr.Tick(0.1))
	assert.Equal(t, []string{"ready:Main", "ready:A", "ready:Leaf", "ready:B"}, trace)
	assert.Equal(t, uint64(1), tr.Frame())

	trace = trace[:0]
	tr.Tick(0.1)
	assert.Equal(t, []string{"process:Main", "process:A", "process:Leaf", "process:B"}, trace)
	assert.Equal(t, 1, root.readyCalls, "ready never runs twice")
}

func TestTickPassesDeltaThrough(t *testing.T) {
	root := newProbe("Main")
	tr, err := New(root)
	require.NoError(t, err)

	tr.Tick(1.0) // ready frame
	tr.Tick(0.25)
	tr.Tick(0.5)

	assert.Equal(t, []float64{0.25, 0.5}, root.processed)
}

func TestPauseModes(t *testing.T) {
	root := newProbe("Main")
	inherit := newProbe("Inherit")
	pausable := newProbe("Pausable")
	pausable.SetMode(core.ModePausable)
	independent := newProbe("Independent")
	independent.SetMode(core.ModeIndependent)
	require.NoError(t, core.AddChild(root, inherit))
	require.NoError(t, core.AddChild(root, pausable))
	require.NoError(t, core.AddChild(root, independent))

	tr, err := New(root, WithStartPaused())
	require.NoError(t, err)

	// Ready runs regardless of pause state.
	assert.Equal(t, StatusPaused, tr.Tick(0.1))
	assert.Equal(t, 1, inherit.readyCalls)
	assert.Equal(t, 1, independent.readyCalls)

	tr.Tick(0.1)
	assert.Empty(t, root.processed)
	assert.Empty(t, inherit.processed, "inherit under a paused root is paused")
	assert.Empty(t, pausable.processed)
	assert.Len(t, independent.processed, 1)

	tr.Unpause()
	assert.Equal(t, StatusActive, tr.Tick(0.1))
	assert.Len(t, root.processed, 1)
	assert.Len(t, inherit.processed, 1)
	assert.Len(t, pausable.processed, 1)
	assert.Len(t, independent.processed, 2)
}

func TestInheritFollowsNearestAncestorNotGlobalFlag(t *testing.T) {
	root := newProbe("Main")
	island := newProbe("Island")
	island.SetMode(core.ModeIndependent)
	child := newProbe("Child") // ModeInherit
	require.NoError(t, core.AddChild(root, island))
	require.NoError(t, core.AddChild(island, child))

	tr, err := New(root, WithStartPaused())
	require.NoError(t, err)

	tr.Tick(0.1) // ready frame
	tr.Tick(0.1)

	assert.Empty(t, root.processed)
	assert.Len(t, island.processed, 1)
	assert.Len(t, child.processed, 1,
		"inherit under an unpaused independent ancestor runs while the tree is paused")
}

func TestPausableIgnoresRunningAncestor(t *testing.T) {
	root := newProbe("Main")
	island := newProbe("Island")
	island.SetMode(core.ModeIndependent)
	strict := newProbe("Strict")
	strict.SetMode(core.ModePausable)
	require.NoError(t, core.AddChild(root, island))
	require.NoError(t, core.AddChild(island, strict))

	tr, err := New(root, WithStartPaused())
	require.NoError(t, err)

	tr.Tick(0.1)
	tr.Tick(0.1)

	assert.Len(t, island.processed, 1)
	assert.Empty(t, strict.processed, "pausable obeys the global flag even under a running ancestor")
}

func TestMidFrameAttachIsDeferredToFrameBoundary(t *testing.T) {
	root := newProbe("Main")
	late := newProbe("Late")
	var childrenDuringHook int
	root.onProcess = func(p *probe, _ float64) {
		tr := p.Tree().(*Tree)
		if p.processed[len(p.processed)-1] == 1.0 {
			require.NoError(t, tr.AttachChild(p.Handle(), late))
			childrenDuringHook = p.NumChildren()
		}
	}

	tr, err := New(root)
	require.NoError(t, err)

	tr.Tick(0.5) // ready frame
	tr.Tick(1.0) // attach requested mid-frame

	assert.Equal(t, 0, childrenDuringHook, "edit is invisible while the frame runs")
	assert.Equal(t, 1, root.NumChildren(), "edit committed at the frame boundary")
	assert.Equal(t, 0, late.readyCalls)

	tr.Tick(0.5)
	assert.Equal(t, 1, late.readyCalls, "new node becomes ready on the next frame")
	assert.Empty(t, late.processed)
}

func TestMidFrameDuplicateAttachIsRejected(t *testing.T) {
	root := newProbe("Main")
	late := newProbe("Late")
	var second error
	root.onProcess = func(p *probe, _ float64) {
		tr := p.Tree().(*Tree)
		require.NoError(t, tr.AttachChild(p.Handle(), late))
		second = tr.AttachChild(p.Handle(), late)
	}

	tr, err := New(root)
	require.NoError(t, err)
	tr.Tick(0.1)
	tr.Tick(0.1)

	assert.ErrorIs(t, second, core.ErrInvalidAttachment)
	assert.Equal(t, 1, root.NumChildren())
}

func TestMidFrameFreeRunsTerminalBeforeFrameEnds(t *testing.T) {
	// Root has children A, B, C. B frees itself mid-frame: its terminal hook
	// must run before Tick returns, and A and C must still process that same
	// frame.
	var trace []string
	root := newTracedProbe("Main", &trace)
	a := newTracedProbe("A", &trace)
	b := newTracedProbe("B", &trace)
	c := newTracedProbe("C", &trace)
	require.NoError(t, core.AddChild(root, a))
	require.NoError(t, core.AddChild(root, b))
	require.NoError(t, core.AddChild(root, c))

	b.onProcess = func(p *probe, _ float64) {
		require.NoError(t, p.Tree().Free(p.Handle()))
	}

	tr, err := New(root)
	require.NoError(t, err)
	hb := b.Handle()

	tr.Tick(0.1) // ready frame
	trace = trace[:0]
	tr.Tick(0.1)

	assert.Equal(t,
		[]string{"process:Main", "process:A", "process:B", "process:C", "terminal:B"},
		trace)
	assert.Equal(t, []core.TerminalReason{core.ReasonFreed}, b.terminal)
	assert.False(t, hb.Valid())
	assert.Equal(t, 2, root.NumChildren())

	trace = trace[:0]
	tr.Tick(0.1)
	assert.Equal(t, []string{"process:Main", "process:A", "process:C"}, trace)
}

func TestMidFrameDoubleFreeCommitsOnce(t *testing.T) {
	root := newProbe("Main")
	victim := newProbe("Victim")
	require.NoError(t, core.AddChild(root, victim))
	root.onProcess = func(p *probe, _ float64) {
		tr := p.Tree()
		require.NoError(t, tr.Free(victim.Handle()))
		require.NoError(t, tr.Free(victim.Handle()))
	}

	tr, err := New(root)
	require.NoError(t, err)
	tr.Tick(0.1)
	tr.Tick(0.1)

	assert.Equal(t, []core.TerminalReason{core.ReasonFreed}, victim.terminal)
}

func TestQueuedAttachDroppedWhenParentDies(t *testing.T) {
	// During one frame, a free of B is queued first and an attach under B
	// second. The free commits, so the attach finds a dead parent and is
	// dropped with a warning diagnostic.
	sink := &recordingSink{}
	root := newProbe("Main")
	b := newProbe("B")
	orphan := newProbe("Orphan")
	require.NoError(t, core.AddChild(root, b))
	root.onProcess = func(p *probe, _ float64) {
		tr := p.Tree()
		require.NoError(t, tr.Free(b.Handle()))
		require.NoError(t, tr.AttachChild(b.Handle(), orphan))
	}

	tr, err := New(root, WithDiagnosticSink(sink))
	require.NoError(t, err)
	tr.Tick(0.1)
	tr.Tick(0.1)

	assert.False(t, orphan.Attached())
	require.Len(t, sink.posts, 1)
	assert.Equal(t, core.SeverityWarning, sink.posts[0].Severity)
	assert.Contains(t, sink.posts[0].Message, "Orphan")
}

func TestFreeRootTerminatesTree(t *testing.T) {
	root := newProbe("Main")
	a := newProbe("A")
	require.NoError(t, core.AddChild(root, a))
	tr, err := New(root)
	require.NoError(t, err)

	require.NoError(t, tr.Free(tr.Root()))

	assert.Equal(t, StatusTerminated, tr.Status())
	assert.Equal(t, []core.TerminalReason{core.ReasonFreed}, root.terminal)
	assert.Equal(t, []core.TerminalReason{core.ReasonCascade}, a.terminal)
	assert.False(t, tr.Root().Valid())

	// Any further tick is a no-op.
	frame := tr.Frame()
	assert.Equal(t, StatusTerminated, tr.Tick(0.1))
	assert.Equal(t, frame, tr.Frame())
	assert.Len(t, root.terminal, 1)
}

func TestMidFrameFreeRootTerminatesAtBoundary(t *testing.T) {
	root := newProbe("Main")
	root.onProcess = func(p *probe, _ float64) {
		require.NoError(t, p.Tree().Free(p.Handle()))
	}
	tr, err := New(root)
	require.NoError(t, err)

	tr.Tick(0.1)
	assert.Equal(t, StatusTerminated, tr.Tick(0.1))
	assert.Equal(t, []core.TerminalReason{core.ReasonFreed}, root.terminal)
}

func TestRequestTerminationMidFrameCompletesTheFrame(t *testing.T) {
	var trace []string
	root := newTracedProbe("Main", &trace)
	a := newTracedProbe("A", &trace)
	b := newTracedProbe("B", &trace)
	require.NoError(t, core.AddChild(root, a))
	require.NoError(t, core.AddChild(root, b))
	a.onProcess = func(p *probe, _ float64) {
		p.Tree().RequestTermination()
	}

	tr, err := New(root)
	require.NoError(t, err)
	tr.Tick(0.1)
	trace = trace[:0]

	assert.Equal(t, StatusTerminated, tr.Tick(0.1))
	assert.Equal(t,
		[]string{"process:Main", "process:A", "process:B",
			"terminal:A", "terminal:B", "terminal:Main"},
		trace, "the frame completes, then shutdown runs post-order")
	assert.Equal(t, []core.TerminalReason{core.ReasonShutdown}, a.terminal)
	assert.Equal(t, []core.TerminalReason{core.ReasonShutdown}, root.terminal)
}

func TestRequestTerminationOutsideFrameIsImmediate(t *testing.T) {
	root := newProbe("Main")
	tr, err := New(root)
	require.NoError(t, err)

	tr.RequestTermination()

	assert.Equal(t, StatusTerminated, tr.Status())
	assert.Equal(t, []core.TerminalReason{core.ReasonShutdown}, root.terminal)

	tr.RequestTermination() // idempotent
	assert.Len(t, root.terminal, 1)
}
