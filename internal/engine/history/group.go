package history

import "github.com/dshills/pagecraft/internal/document"

// Transaction executes fn within a grouped undo context. If fn returns an
// error, every command it executed is undone, newest first, and nothing is
// recorded; the redo stack is kept. Otherwise the group is ended normally.
func (m *Manager) Transaction(d *document.Document, name string, fn func() error) error {
	m.BeginGroup(name)

	if err := fn(); err != nil {
		m.mu.Lock()
		cmds := m.takeGroupLocked()
		m.mu.Unlock()
		for i := len(cmds) - 1; i >= 0; i-- {
			_ = cmds[i].Undo(d)
		}
		return err
	}

	m.EndGroup()
	return nil
}

// Checkpoint represents a point in history that can be returned to. It
// records the undo depth, so it stays meaningful only while the entries
// below it are neither evicted nor undone.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (m *Manager) CreateCheckpoint() Checkpoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Checkpoint{undoDepth: len(m.undoStack)}
}

// UndoToCheckpoint undoes all operations since the checkpoint.
func (m *Manager) UndoToCheckpoint(d *document.Document, cp Checkpoint) error {
	for m.UndoCount() > cp.undoDepth {
		if err := m.Undo(d); err != nil {
			return err
		}
	}
	return nil
}
