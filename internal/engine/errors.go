package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrNoSelection indicates an operation that acts on the selection was
	// called with nothing selected.
	ErrNoSelection = errors.New("nothing selected")

	// ErrNoDocument indicates Load was given a nil tree.
	ErrNoDocument = errors.New("no document")
)
