// Package scene persists and reconstructs tree topology. A Template is the
// serializable description of a subtree: a type tag, a name, optional user
// state and ordered children. Templates are produced from a live tree via
// Snapshot (which consumes the tree's read-only walk) and turned back into
// detached subtrees via a Registry of node constructors, ready to be
// attached or to seed a new tree.
//
// Scenes are stored as TOML (the canonical on-disk format) or YAML; Save
// and Load pick the codec from the file extension and write whole files
// atomically. Hash produces a structural fingerprint that ignores user
// state, for cheap change detection across template versions.
package scene
