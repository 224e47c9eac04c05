// Package commands implements the document edits run through a
// history.Manager.
//
// Every edit captures the document state before it mutates anything. Undo
// puts that state back and redo reinstates the state the edit produced, so
// an undo followed by a redo yields exactly the same tree, ids included.
// Failing commands return an *Error and leave the document untouched.
//
// SelectNode is the exception: it changes only the selection and is never
// recorded.
package commands
