// Package treekit provides a high-level façade over the tree runtime:
// composing large programs out of a hierarchy of autonomous nodes with
// private state, lifecycle hooks and generation-checked handles. Most
// applications interact with this package by:
//  1. Defining node types that embed core.NodeBase and override hooks
//  2. Composing a detached subtree (directly or from a scene template)
//  3. Creating a tree via New() and driving it with Tick from a host loop
//
// The façade delegates to tree.Tree while keeping setup concise. Defaults
// are safe for local development; hosts typically supply a structured
// logger and a diagnostic sink.
package treekit

import (
	"github.com/treekit/treekit/core"
	"github.com/treekit/treekit/logging"
	"github.com/treekit/treekit/tree"
)

// Version is the current treekit version.
const Version = "0.1.0"

// Options configures a treekit instance.
type Options struct {
	// Logger receives the tree's own operational messages. Defaults to a
	// no-op logger.
	Logger logging.Logger

	// DiagnosticSink receives the diagnostic stream raised by node code.
	// Defaults to a bridge onto Logger.
	DiagnosticSink core.DiagnosticSink

	// StartPaused creates the tree with the global pause flag set.
	StartPaused bool
}

// New creates a tree from a detached root subtree. opts may be nil.
func New(root core.Node, opts *Options) (*tree.Tree, error) {
	if opts == nil {
		opts = &Options{}
	}
	var treeOpts []tree.Option
	if opts.Logger != nil {
		treeOpts = append(treeOpts, tree.WithLogger(opts.Logger))
	}
	if opts.DiagnosticSink != nil {
		treeOpts = append(treeOpts, tree.WithDiagnosticSink(opts.DiagnosticSink))
	}
	if opts.StartPaused {
		treeOpts = append(treeOpts, tree.WithStartPaused())
	}
	return tree.New(root, treeOpts...)
}
