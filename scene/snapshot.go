package scene

import (
	"github.com/treekit/treekit/core"
	"github.com/treekit/treekit/tree"
)

// Snapshot captures the subtree rooted at from as a template, using the
// tree's read-only walk. Nodes implementing Stateful contribute their user
// state; everything else is captured structurally (type tag, name, order).
func Snapshot(t *tree.Tree, from core.Handle) (*Template, error) {
	var (
		root  *Template
		stack []*Template
		base  int
	)
	err := t.Walk(from, func(info tree.WalkInfo) bool {
		tpl := &Template{Type: info.Type, Name: info.Name}
		if s, ok := info.Node.(Stateful); ok {
			if state := s.SaveState(); len(state) > 0 {
				tpl.State = state
			}
		}
		if root == nil {
			root = tpl
			base = info.Depth
			stack = []*Template{tpl}
			return true
		}
		rel := info.Depth - base
		parent := stack[rel-1]
		parent.Children = append(parent.Children, tpl)
		stack = append(stack[:rel], tpl)
		return true
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}
