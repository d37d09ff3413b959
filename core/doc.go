// Package core provides the foundational domain types for the treekit
// runtime. It defines:
//
//   - NodeID / generation-checked identity and the slot Table that maps ids
//     to live nodes (a generational arena)
//   - The Node capability interface and the embeddable NodeBase carrying
//     name, hierarchy links, depth, process mode, signal handlers and
//     connections
//   - Non-owning references: the untyped Handle and the typed Tp[T]
//   - Signal connection records, slash-delimited Path values, the
//     Diagnostic record/sink boundary and the error taxonomy
//
// The package intentionally keeps scheduling, mutation staging and dispatch
// out of scope; those live in the tree package, which implements the
// Authority interface defined here. Nodes written by applications embed
// NodeBase, override the lifecycle hooks they care about, and reach back
// into their tree exclusively through Authority and Handles.
package core
