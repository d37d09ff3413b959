package scene

// Template is the serializable description of one node and its subtree.
type Template struct {
	Type     string         `toml:"type" yaml:"type"`
	Name     string         `toml:"name" yaml:"name"`
	State    map[string]any `toml:"state,omitempty" yaml:"state,omitempty"`
	Children []*Template    `toml:"children,omitempty" yaml:"children,omitempty"`
}

// Stateful is implemented by node types that carry user-defined state worth
// persisting in scene templates.
type Stateful interface {
	// SaveState exports the node's user state for serialization.
	SaveState() map[string]any

	// LoadState restores previously exported state on a freshly
	// constructed, still detached node.
	LoadState(state map[string]any) error
}

// NumNodes returns the total number of nodes the template describes.
func (t *Template) NumNodes() int {
	n := 1
	for _, c := range t.Children {
		n += c.NumNodes()
	}
	return n
}
