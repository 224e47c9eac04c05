package history

import (
	"fmt"

	"github.com/dshills/pagecraft/internal/document"
)

// Command represents a reversible edit of a document.
type Command interface {
	// Name returns a short machine-friendly name, e.g. "delete-node".
	Name() string

	// Description returns a human-readable description of the command.
	Description() string

	// Execute performs the command and returns an error if it fails.
	// A failing Execute must leave the document unchanged.
	Execute(d *document.Document) error

	// Undo reverses the command and returns an error if it fails.
	Undo(d *document.Document) error
}

// Guarded is implemented by commands that can refuse to run.
// Commands that do not implement it can always execute and undo.
type Guarded interface {
	// CanExecute reports whether the command may run against d.
	CanExecute(d *document.Document) bool

	// CanUndo reports whether the command may be undone.
	CanUndo() bool
}

// CanExecute reports whether cmd may be executed against d.
func CanExecute(d *document.Document, cmd Command) bool {
	if g, ok := cmd.(Guarded); ok {
		return g.CanExecute(d)
	}
	return true
}

// CanUndo reports whether cmd may be undone.
func CanUndo(cmd Command) bool {
	if g, ok := cmd.(Guarded); ok {
		return g.CanUndo()
	}
	return true
}

// Base supplies the default guards: a command can execute until it has
// been executed, and can be undone once it has.
//
// Embedders call MarkExecuted at the end of a successful Execute and
// MarkUndone at the end of a successful Undo.
type Base struct {
	executed bool
}

// CanExecute reports whether the command has not run yet.
func (b *Base) CanExecute(*document.Document) bool { return !b.executed }

// CanUndo reports whether the command has run.
func (b *Base) CanUndo() bool { return b.executed }

// Executed reports whether the command is currently applied.
func (b *Base) Executed() bool { return b.executed }

// MarkExecuted records a successful Execute.
func (b *Base) MarkExecuted() { b.executed = true }

// MarkUndone records a successful Undo.
func (b *Base) MarkUndone() { b.executed = false }

// Compound groups multiple commands as one undo unit.
type Compound struct {
	Label    string
	Commands []Command
}

// NewCompound creates a new compound command.
func NewCompound(label string, commands ...Command) *Compound {
	return &Compound{
		Label:    label,
		Commands: commands,
	}
}

// Name returns "compound".
func (c *Compound) Name() string {
	return "compound"
}

// Execute runs all commands in order. If one fails, the ones before it are
// undone so the document is left as it was.
func (c *Compound) Execute(d *document.Document) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(d); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(d)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Label, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *Compound) Undo(d *document.Document) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(d); err != nil {
			for j := i + 1; j < len(c.Commands); j++ {
				_ = c.Commands[j].Execute(d)
			}
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Label, i, err)
		}
	}
	return nil
}

// CanExecute is true when there is something to run.
func (c *Compound) CanExecute(*document.Document) bool {
	return len(c.Commands) > 0
}

// CanUndo is true when every grouped command can be undone.
func (c *Compound) CanUndo() bool {
	for _, cmd := range c.Commands {
		if !CanUndo(cmd) {
			return false
		}
	}
	return len(c.Commands) > 0
}

// Description returns the compound command's label.
func (c *Compound) Description() string {
	if c.Label != "" {
		return c.Label
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *Compound) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *Compound) IsEmpty() bool {
	return len(c.Commands) == 0
}
