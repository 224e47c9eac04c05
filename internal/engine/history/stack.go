package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/pagecraft/internal/document"
)

// DefaultCapacity is the undo depth used when none is configured.
const DefaultCapacity = 50

// Common errors for history operations.
var (
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrInvalidOperation = errors.New("command cannot be executed")
	ErrCannotUndo       = errors.New("command cannot be undone")
	ErrReentrant        = errors.New("command manager is busy")
	ErrGroupOpen        = errors.New("undo group is open")
)

// Info describes an entry on the undo or redo stack.
type Info struct {
	Name        string
	Description string
	Timestamp   time.Time
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

func (e *undoEntry) info() Info {
	return Info{
		Name:        e.command.Name(),
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// Manager runs commands against a document and keeps bounded undo and
// redo stacks. History is linear: executing a new command drops the redo
// branch.
//
// Calls are serialized. A command that calls back into the manager from
// Execute or Undo gets ErrReentrant.
type Manager struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry
	running   bool

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	capacity int
}

// NewManager creates a manager that keeps at most capacity undo entries.
// A non-positive capacity uses DefaultCapacity.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{capacity: capacity}
}

// begin claims the manager for one call.
func (m *Manager) begin() error {
	if m.running {
		return ErrReentrant
	}
	m.running = true
	return nil
}

func (m *Manager) finish() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Execute runs cmd and records it for undo.
//
// A command whose guard refuses is rejected with ErrInvalidOperation before
// anything runs. If cmd.Execute fails the error is returned and both stacks
// are left as they were. A command that reports it cannot be undone right
// after running (selection changes) is not recorded and leaves the redo
// stack alone.
func (m *Manager) Execute(d *document.Document, cmd Command) error {
	if !CanExecute(d, cmd) {
		return ErrInvalidOperation
	}

	m.mu.Lock()
	if err := m.begin(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()
	defer m.finish()

	if err := cmd.Execute(d); err != nil {
		return err
	}

	if !CanUndo(cmd) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.grouping {
		m.groupCmds = append(m.groupCmds, cmd)
		return nil
	}
	m.pushLocked(cmd)
	return nil
}

// pushLocked adds a command without acquiring the lock.
func (m *Manager) pushLocked(cmd Command) {
	m.undoStack = append(m.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})

	// Clear redo stack
	m.redoStack = nil

	m.trimLocked()
}

// trimLocked evicts the oldest entries past capacity.
func (m *Manager) trimLocked() {
	if len(m.undoStack) > m.capacity {
		excess := len(m.undoStack) - m.capacity
		clear(m.undoStack[:excess])
		m.undoStack = m.undoStack[excess:]
	}
}

// Undo reverses the most recent command. It returns ErrGroupOpen while a
// group is being recorded.
//
// The entry is put back on the undo stack if the command refuses with
// ErrCannotUndo or its Undo fails, so no entry is ever lost.
func (m *Manager) Undo(d *document.Document) error {
	m.mu.Lock()
	if m.grouping {
		m.mu.Unlock()
		return ErrGroupOpen
	}
	if err := m.begin(); err != nil {
		m.mu.Unlock()
		return err
	}
	if len(m.undoStack) == 0 {
		m.running = false
		m.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.mu.Unlock()
	defer m.finish()

	restore := func() {
		m.mu.Lock()
		m.undoStack = append(m.undoStack, entry)
		m.mu.Unlock()
	}

	if !CanUndo(entry.command) {
		restore()
		return ErrCannotUndo
	}
	if err := entry.command.Undo(d); err != nil {
		restore()
		return err
	}

	m.mu.Lock()
	m.redoStack = append(m.redoStack, entry)
	m.mu.Unlock()
	return nil
}

// Redo re-executes the most recently undone command. It returns
// ErrGroupOpen while a group is being recorded.
func (m *Manager) Redo(d *document.Document) error {
	m.mu.Lock()
	if m.grouping {
		m.mu.Unlock()
		return ErrGroupOpen
	}
	if err := m.begin(); err != nil {
		m.mu.Unlock()
		return err
	}
	if len(m.redoStack) == 0 {
		m.running = false
		m.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.mu.Unlock()
	defer m.finish()

	if err := entry.command.Execute(d); err != nil {
		m.mu.Lock()
		m.redoStack = append(m.redoStack, entry)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.undoStack = append(m.undoStack, entry)
	m.trimLocked()
	m.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (m *Manager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of redo operations available.
func (m *Manager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// BeginGroup starts a command group.
// Commands executed while grouping are combined into a single undo unit.
func (m *Manager) BeginGroup(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.grouping {
		// Already grouping, ignore nested calls
		return
	}

	m.grouping = true
	m.groupName = name
	m.groupCmds = nil
}

// EndGroup finishes a command group.
// All commands since BeginGroup are combined into a Compound.
func (m *Manager) EndGroup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.grouping {
		return
	}

	m.grouping = false

	switch len(m.groupCmds) {
	case 0:
	case 1:
		m.pushLocked(m.groupCmds[0])
	default:
		m.pushLocked(NewCompound(m.groupName, m.groupCmds...))
	}
	m.groupCmds = nil
}

// CancelGroup ends a command group without recording it and returns the
// commands executed since BeginGroup, oldest first. They remain applied to
// the document, so the redo stack is cleared when there are any.
func (m *Manager) CancelGroup() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmds := m.takeGroupLocked()
	if len(cmds) > 0 {
		m.redoStack = nil
	}
	return cmds
}

// takeGroupLocked ends grouping and returns the recorded commands.
func (m *Manager) takeGroupLocked() []Command {
	cmds := m.groupCmds
	m.grouping = false
	m.groupCmds = nil
	return cmds
}

// IsGrouping returns true if currently in a command group.
func (m *Manager) IsGrouping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.grouping
}

// Clear removes all undo/redo history.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undoStack = nil
	m.redoStack = nil
	m.grouping = false
	m.groupCmds = nil
}

// UndoInfo describes the undo stack, oldest first.
func (m *Manager) UndoInfo() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Info, len(m.undoStack))
	for i, entry := range m.undoStack {
		result[i] = entry.info()
	}
	return result
}

// RedoInfo describes the redo stack, oldest first.
func (m *Manager) RedoInfo() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Info, len(m.redoStack))
	for i, entry := range m.redoStack {
		result[i] = entry.info()
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (m *Manager) PeekUndo() (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return Info{}, false
	}
	return m.undoStack[len(m.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (m *Manager) PeekRedo() (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return Info{}, false
	}
	return m.redoStack[len(m.redoStack)-1].info(), true
}

// SetCapacity changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (m *Manager) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.capacity = capacity
	m.trimLocked()
}

// Capacity returns the maximum number of undo entries.
func (m *Manager) Capacity() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capacity
}
