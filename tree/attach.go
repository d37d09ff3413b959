package tree

import (
	"fmt"
	"strconv"

	"github.com/treekit/treekit/core"
)

// AttachChild inserts child (a detached subtree) as the last child of
// parent. Mid-traversal the edit is queued and committed at the frame
// boundary; outside traversal it applies immediately.
func (t *Tree) AttachChild(parent core.Handle, child core.Node) error {
	return t.AttachChildAt(parent, child, -1)
}

// AttachChildAt is AttachChild with an explicit insertion index; out of
// range indexes append.
//
// It fails with ErrInvalidAttachment when the child is already live (owned
// by a parent, registered to another tree, or this tree's root), the parent
// is not live, or the attachment would make the child its own ancestor. No
// partial mutation occurs on failure.
func (t *Tree) AttachChildAt(parent core.Handle, child core.Node, index int) error {
	if t.state == stateTerminated {
		return fmt.Errorf("attach: %w", core.ErrTerminated)
	}
	if child == nil {
		return fmt.Errorf("attach: nil child: %w", core.ErrInvalidAttachment)
	}
	cb := child.Base()
	if cb.Parent() != nil {
		return fmt.Errorf("attach %q: child already owned: %w", cb.Name(), core.ErrInvalidAttachment)
	}
	if cb.Tree() != nil && cb.Tree() != core.Authority(t) {
		return fmt.Errorf("attach %q: child registered to another tree: %w", cb.Name(), core.ErrInvalidAttachment)
	}
	if cb.ID() != core.InvalidID && cb.ID() == t.root.ID() {
		return fmt.Errorf("attach %q: child is the root: %w", cb.Name(), core.ErrInvalidAttachment)
	}
	pn, ok := parent.Resolve()
	if !ok {
		return fmt.Errorf("attach %q: parent not live: %w", cb.Name(), core.ErrInvalidAttachment)
	}
	if pn == child {
		return fmt.Errorf("attach %q: child is its own parent: %w", cb.Name(), core.ErrInvalidAttachment)
	}
	for a := pn.Base().Parent(); a != nil; a = a.Base().Parent() {
		if a == child {
			return fmt.Errorf("attach %q: child is an ancestor of parent: %w", cb.Name(), core.ErrInvalidAttachment)
		}
	}
	if t.state == stateTraversing {
		if t.pendingAttach(child) {
			return fmt.Errorf("attach %q: already pending: %w", cb.Name(), core.ErrInvalidAttachment)
		}
		t.queue = append(t.queue, mutation{kind: mutAttach, parent: parent, child: child, index: index})
		return nil
	}
	t.commitAttach(pn, child, index)
	return nil
}

// Detach removes a live node and its subtree from its parent and returns
// ownership of the detached subtree without destroying it; handles into the
// subtree keep resolving. Used for re-parenting via a subsequent
// AttachChild. Detach is immediate-only: it cannot be requested
// mid-traversal.
func (t *Tree) Detach(h core.Handle) (core.Node, error) {
	if t.state == stateTerminated {
		return nil, fmt.Errorf("detach: %w", core.ErrTerminated)
	}
	if t.state == stateTraversing {
		return nil, fmt.Errorf("detach: structural detach is not available during traversal")
	}
	n, ok := h.Resolve()
	if !ok {
		return nil, fmt.Errorf("detach: %w", core.ErrNodeAbsent)
	}
	if h.ID() == t.root.ID() {
		return nil, fmt.Errorf("detach: cannot detach the root: %w", core.ErrInvalidAttachment)
	}
	b := n.Base()
	if p := b.Parent(); p != nil {
		p.Base().RemoveChild(n)
		b.ClearParent()
	}
	t.logger.Debug("subtree detached", "tree", t.id, "node", b.Name())
	return n, nil
}

// Free detaches the node referenced by h and destroys its entire subtree,
// children first, invalidating every id in it. Freeing an absent handle is
// a no-op. Freeing the root terminates the tree. Mid-traversal the request
// is queued and committed at the frame boundary.
func (t *Tree) Free(h core.Handle) error {
	if t.state == stateTerminated {
		return fmt.Errorf("free: %w", core.ErrTerminated)
	}
	n, ok := h.Resolve()
	if !ok {
		return nil
	}
	if t.state == stateTraversing {
		if !t.pendingDetach(h.ID()) {
			t.queue = append(t.queue, mutation{kind: mutDetach, target: h})
		}
		return nil
	}
	t.commitFree(n)
	return nil
}

// commitAttach performs the actual insertion: sibling-name uniquing, child
// list insertion and subtree registration.
func (t *Tree) commitAttach(parent core.Node, child core.Node, index int) {
	pb := parent.Base()
	cb := child.Base()

	taken := make(map[string]bool, pb.NumChildren())
	for _, sibling := range pb.Children() {
		taken[sibling.Base().Name()] = true
	}
	if unique := uniquifyName(cb.Name(), taken); unique != cb.Name() {
		t.logger.Debug("sibling name collision", "tree", t.id, "name", cb.Name(), "renamed", unique)
		cb.SetNameUnchecked(unique)
	}

	pb.InsertChildAt(child, index)
	cb.SetParent(parent)
	t.register(child, pb.Depth()+1)
	t.logger.Debug("subtree attached", "tree", t.id, "parent", pb.Name(), "child", cb.Name())
}

// register binds the subtree rooted at n into the identity table (fresh ids
// for never-registered nodes, existing bindings kept for re-attached
// subtrees) and records tree back-reference and derived depth.
func (t *Tree) register(n core.Node, depth int) {
	b := n.Base()
	if b.ID() == core.InvalidID || !t.table.Live(b.ID()) {
		id := t.table.Allocate()
		b.BindIdentity(t.table.Bind(id, n))
	}
	b.SetTree(t)
	b.SetDepth(depth)
	for _, c := range b.Children() {
		t.register(c, depth+1)
	}
}

// commitFree removes n from its parent and destroys the subtree. Destroying
// the root transitions the tree to Terminated.
func (t *Tree) commitFree(n core.Node) {
	b := n.Base()
	isRoot := b.ID() == t.root.ID()
	if p := b.Parent(); p != nil {
		p.Base().RemoveChild(n)
		b.ClearParent()
	}
	t.destroy(n, core.ReasonFreed)
	if isRoot {
		t.state = stateTerminated
		t.logger.Info("root freed, tree terminated", "tree", t.id, "frame", t.frame)
	}
}

// destroy tears a subtree down post-order: children are fully destroyed
// before the node's own Terminal hook runs, and the node's id is
// invalidated immediately after the hook returns.
func (t *Tree) destroy(n core.Node, reason core.TerminalReason) {
	b := n.Base()
	childReason := core.ReasonCascade
	if reason == core.ReasonShutdown {
		childReason = core.ReasonShutdown
	}
	for _, c := range b.Children() {
		t.destroy(c, childReason)
	}
	n.Terminal(reason)
	t.table.Invalidate(b.ID())
	b.ClearConnections()
	b.ClearChildren()
	b.ClearParent()
	b.ClearTree()
}

// uniquifyName returns name if unused among taken, otherwise name with the
// lowest unused integer suffix appended.
func uniquifyName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 1; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}
