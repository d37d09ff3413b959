package scene

import (
	"errors"
	"fmt"

	"github.com/treekit/treekit/core"
)

var (
	// ErrUnknownType is returned when instantiating a template whose type
	// tag has no registered constructor.
	ErrUnknownType = errors.New("unknown node type")

	// ErrDuplicateType is returned when a type tag is registered twice.
	ErrDuplicateType = errors.New("duplicate node type")
)

// Registry maps type tags to node constructors so templates can be turned
// back into concrete node values. Tags default to the constructor's
// concrete type name, matching the tags the read-only walk reports.
type Registry struct {
	ctors map[string]func() core.Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: map[string]func() core.Node{}}
}

// Register derives the tag from the constructor's product and records it.
// It returns the derived tag.
func (r *Registry) Register(ctor func() core.Node) (string, error) {
	tag := core.TypeTag(ctor())
	return tag, r.RegisterNamed(tag, ctor)
}

// RegisterNamed records ctor under an explicit tag.
func (r *Registry) RegisterNamed(tag string, ctor func() core.Node) error {
	if _, exists := r.ctors[tag]; exists {
		return fmt.Errorf("register %q: %w", tag, ErrDuplicateType)
	}
	r.ctors[tag] = ctor
	return nil
}

// Instantiate builds a detached subtree from tpl: every node is freshly
// constructed, named, fed its persisted state, and linked to its parent.
// The result is ready for tree.New or AttachChild.
func (r *Registry) Instantiate(tpl *Template) (core.Node, error) {
	ctor, ok := r.ctors[tpl.Type]
	if !ok {
		return nil, fmt.Errorf("instantiate %q: %w", tpl.Type, ErrUnknownType)
	}
	n := ctor()
	if err := n.Base().SetName(tpl.Name); err != nil {
		return nil, fmt.Errorf("instantiate %q: %w", tpl.Name, err)
	}
	if len(tpl.State) > 0 {
		s, ok := n.(Stateful)
		if !ok {
			return nil, fmt.Errorf("instantiate %q: type %q carries state but does not implement Stateful", tpl.Name, tpl.Type)
		}
		if err := s.LoadState(tpl.State); err != nil {
			return nil, fmt.Errorf("instantiate %q: load state: %w", tpl.Name, err)
		}
	}
	for _, childTpl := range tpl.Children {
		child, err := r.Instantiate(childTpl)
		if err != nil {
			return nil, err
		}
		if err := core.AddChild(n, child); err != nil {
			return nil, err
		}
	}
	return n, nil
}
