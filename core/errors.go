package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAttachment is returned when an attach would create a cycle,
	// the child is already live, or the parent is not live. No partial
	// mutation occurs.
	ErrInvalidAttachment = errors.New("invalid attachment")

	// ErrAlreadyLive is returned by operations that only apply to detached
	// nodes, such as renaming or detached composition.
	ErrAlreadyLive = errors.New("node is already part of a live tree")

	// ErrDuplicateConnection is returned by Connect when the identical
	// (publisher, event, subscriber, handler) connection already exists.
	ErrDuplicateConnection = errors.New("duplicate connection")

	// ErrDuplicateHandler is returned when a handler name is registered
	// twice on the same node.
	ErrDuplicateHandler = errors.New("duplicate handler")

	// ErrUnknownHandler is returned by Connect when the subscriber has no
	// handler registered under the requested name.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrNodeAbsent is returned when an operation requires a live node but
	// the handle no longer resolves.
	ErrNodeAbsent = errors.New("node is absent")

	// ErrTerminated is returned for structural operations on a tree that
	// has already terminated.
	ErrTerminated = errors.New("tree has terminated")

	// ErrPathNotFound is the sentinel wrapped by PathError.
	ErrPathNotFound = errors.New("path not found")
)

// PathError reports the first segment of a path that could not be resolved.
// It unwraps to ErrPathNotFound.
type PathError struct {
	Path    string
	Segment string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: segment %q not found", e.Path, e.Segment)
}

// Unwrap makes errors.Is(err, ErrPathNotFound) hold.
func (e *PathError) Unwrap() error { return ErrPathNotFound }
