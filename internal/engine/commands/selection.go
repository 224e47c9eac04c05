package commands

import (
	"fmt"

	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/engine/history"
	"github.com/dshills/pagecraft/internal/selection"
)

// SelectNode changes the selection. Selection is not part of the undo
// history, so the command is never recorded.
type SelectNode struct {
	State selection.State
}

// NewSelectNode creates a SelectNode command.
func NewSelectNode(s selection.State) *SelectNode {
	return &SelectNode{State: s}
}

// Name returns "select".
func (c *SelectNode) Name() string { return "select" }

// Description returns a human-readable description.
func (c *SelectNode) Description() string {
	if c.State.IsNone() {
		return "Select nothing"
	}
	return fmt.Sprintf("Select %s (%s)", c.State.NodeID, c.State.Mode)
}

// CanExecute is always true.
func (c *SelectNode) CanExecute(*document.Document) bool { return true }

// CanUndo is always false.
func (c *SelectNode) CanUndo() bool { return false }

// Execute sets the selection. Selecting a node that is not in the tree
// fails.
func (c *SelectNode) Execute(d *document.Document) error {
	if c.State.IsNone() {
		d.ClearSelection()
		return nil
	}
	if _, err := lookup(d, c.Name(), c.State.NodeID); err != nil {
		return err
	}
	d.SetSelection(c.State)
	return nil
}

// Undo is not supported.
func (c *SelectNode) Undo(*document.Document) error {
	return newError(c.Name(), c.State.NodeID, history.ErrCannotUndo)
}

// NewClearSelection returns a command that clears the selection.
func NewClearSelection() *SelectNode {
	return &SelectNode{State: selection.None()}
}
