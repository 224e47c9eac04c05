package tree

import (
	"errors"
	"fmt"
)

// Errors returned by tree validation and by callers that require a node.
var (
	// ErrNotFound indicates a node id is absent from the tree.
	ErrNotFound = errors.New("node not found")

	// ErrDuplicateID indicates two nodes share an id.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrEmptyID indicates a node has no id.
	ErrEmptyID = errors.New("empty node id")

	// ErrSharedNode indicates the same node is owned by two parent slots.
	ErrSharedNode = errors.New("node owned by more than one parent")

	// ErrInvalidItem indicates a repeat container holds something other
	// than a repeat item.
	ErrInvalidItem = errors.New("repeat container item is not a repeat item")
)

// ValidationError reports which node broke a tree invariant.
type ValidationError struct {
	ID  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("node %q: %v", e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the tree invariants: every node has a non-empty id, ids
// are unique, no node is owned twice, and repeat containers only hold
// repeat items. It returns the first violation found.
func Validate(root *Node) error {
	seenIDs := make(map[string]struct{})
	seenNodes := make(map[*Node]struct{})
	var err error
	Walk(root, func(n *Node, _ int) bool {
		if _, ok := seenNodes[n]; ok {
			err = &ValidationError{ID: n.ID, Err: ErrSharedNode}
			return false
		}
		seenNodes[n] = struct{}{}
		if n.ID == "" {
			err = &ValidationError{ID: n.ID, Err: ErrEmptyID}
			return false
		}
		if _, ok := seenIDs[n.ID]; ok {
			err = &ValidationError{ID: n.ID, Err: ErrDuplicateID}
			return false
		}
		seenIDs[n.ID] = struct{}{}
		for _, it := range n.Items {
			if !it.IsRepeatItem() {
				err = &ValidationError{ID: it.ID, Err: ErrInvalidItem}
				return false
			}
		}
		return true
	})
	return err
}
