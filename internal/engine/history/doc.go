// Package history provides undo/redo for document edits.
//
// The history system uses the Command pattern: every edit is a Command
// with Execute and Undo methods that act on a document.Document.
//
// # Commands
//
// Commands may implement Guarded to refuse execution or undo. Embedding
// Base gives the usual lifecycle: a command runs once, can then be undone,
// and can run again after an undo (redo). Commands whose CanUndo stays
// false after running, such as selection changes, are applied but never
// recorded.
//
// # Manager
//
// The Manager keeps the undo and redo stacks:
//
//	m := NewManager(50) // keep 50 undo entries
//
//	m.Execute(doc, cmd)
//	m.Undo(doc)
//	m.Redo(doc)
//
// History is linear. A new command clears the redo stack, and once the undo
// stack exceeds its capacity the oldest entry is evicted. A failing Execute,
// Undo or Redo never loses or adds an entry.
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	m.BeginGroup("Duplicate rows")
//	// ... multiple executes ...
//	m.EndGroup()
//
// Transaction does the same around a function and rolls back on error.
package history
