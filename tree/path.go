package tree

import (
	"fmt"

	"github.com/treekit/treekit/core"
)

// ResolvePath resolves a slash-delimited path to a handle. Relative paths
// start at from; absolute paths (leading "/") start at the root and their
// first segment must equal the root's name. "." keeps the current node and
// ".." steps to the parent. Matching is case-sensitive and exact.
//
// Resolution walks the committed topology only: edits still buffered in the
// mutation queue are invisible. The first segment that cannot be resolved
// fails with a PathError naming it.
func (t *Tree) ResolvePath(from core.Handle, path string) (core.Handle, error) {
	parsed := core.ParsePath(path)
	segments := parsed.Segments()

	var cur core.Node
	if parsed.Absolute() {
		rootNode, ok := t.root.Resolve()
		if !ok {
			return core.Handle{}, &core.PathError{Path: path, Segment: "/"}
		}
		if len(segments) == 0 {
			return core.Handle{}, &core.PathError{Path: path, Segment: "/"}
		}
		if segments[0] != rootNode.Base().Name() {
			return core.Handle{}, &core.PathError{Path: path, Segment: segments[0]}
		}
		cur = rootNode
		segments = segments[1:]
	} else {
		n, ok := from.Resolve()
		if !ok {
			return core.Handle{}, fmt.Errorf("resolve path %q: %w", path, core.ErrNodeAbsent)
		}
		cur = n
	}

	for _, seg := range segments {
		switch seg {
		case ".":
			continue
		case "..":
			p := cur.Base().Parent()
			if p == nil {
				return core.Handle{}, &core.PathError{Path: path, Segment: seg}
			}
			cur = p
		default:
			c := cur.Base().ChildByName(seg)
			if c == nil {
				return core.Handle{}, &core.PathError{Path: path, Segment: seg}
			}
			cur = c
		}
	}
	return cur.Base().Handle(), nil
}
