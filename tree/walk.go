package tree

import "github.com/treekit/treekit/core"

// WalkInfo describes one node of a read-only, depth-first enumeration.
// External serializers consume this instead of reaching into the identity
// table's internal representation.
type WalkInfo struct {
	ID          core.NodeID
	Type        string
	Name        string
	Depth       int
	NumChildren int

	// Node is the visited node. Walk consumers must treat it as
	// read-only; structural edits go through the Authority.
	Node core.Node
}

// Walk enumerates the subtree rooted at from in depth-first pre-order,
// children in insertion order. fn returning false stops the walk. Walking
// an absent handle returns ErrNodeAbsent.
func (t *Tree) Walk(from core.Handle, fn func(info WalkInfo) bool) error {
	n, ok := from.Resolve()
	if !ok {
		return core.ErrNodeAbsent
	}
	walkNode(n, fn)
	return nil
}

func walkNode(n core.Node, fn func(info WalkInfo) bool) bool {
	b := n.Base()
	info := WalkInfo{
		ID:          b.ID(),
		Type:        core.TypeTag(n),
		Name:        b.Name(),
		Depth:       b.Depth(),
		NumChildren: b.NumChildren(),
		Node:        n,
	}
	if !fn(info) {
		return false
	}
	for _, c := range b.Children() {
		if !walkNode(c, fn) {
			return false
		}
	}
	return true
}
