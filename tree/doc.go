// Package tree implements the treekit runtime's coordination layer: the
// Tree authority that owns one node hierarchy and drives it frame by frame.
//
// # Core responsibilities
//
// Ownership & identity:
//   - Exclusive parent-to-children ownership with insertion order preserved
//   - Generational slot-table registration so handles never dangle
//   - Deterministic sibling-name disambiguation on attach
//
// Scheduling:
//   - Single-threaded cooperative frames: one pre-order traversal per Tick
//   - Ready-once semantics, then per-frame Process subject to pause policy
//   - Terminal hooks in post-order with an explicit destruction reason
//
// Mutation staging:
//   - Structural edits requested mid-traversal are buffered and committed
//     at the frame boundary, so hooks never invalidate the traversal they
//     run inside of
//
// Dispatch:
//   - Synchronous FIFO signal emission with snapshot isolation and
//     automatic pruning of freed endpoints
//   - Slash-delimited path resolution over the committed topology
//   - A read-only depth-first walk for external serializers
//
// Exactly one traversal is active at a time. The Tree performs no internal
// locking; an embedding that drives Tick from multiple OS threads must
// serialize frame boundaries itself.
package tree
