package commands

import (
	"errors"
	"fmt"
)

// Command errors.
var (
	// ErrWrongKind indicates the target node's kind does not support the command.
	ErrWrongKind = errors.New("node kind does not support this command")

	// ErrOutOfRange indicates an index outside the valid range.
	ErrOutOfRange = errors.New("index out of range")

	// ErrRootNode indicates an attempt to remove the document root.
	ErrRootNode = errors.New("cannot remove the document root")

	// ErrEmptyTemplate indicates a repeat container with no item to clone.
	ErrEmptyTemplate = errors.New("repeat container has no template item")
)

// Error records a failed command and the node it targeted.
type Error struct {
	Op     string // Command name (e.g., "delete-node", "paste")
	Target string // Target node id, if any
	Err    error  // Underlying error
}

func newError(op, target string, err error) *Error {
	return &Error{Op: op, Target: target, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
