// Package event delivers editor change notifications to observers such as
// the renderer.
//
// Topics use dot notation. Subscribing to a prefix receives every topic
// below it, so "document" receives "document.changed".
package event

import (
	"github.com/dshills/pagecraft/internal/selection"
)

// Topic names an event category.
type Topic string

// Editor topics.
const (
	// DocumentChanged is published after the tree was replaced.
	DocumentChanged Topic = "document.changed"

	// SelectionChanged is published after the selection changed.
	SelectionChanged Topic = "selection.changed"

	// HistoryChanged is published after the undo or redo stack changed.
	HistoryChanged Topic = "history.changed"
)

// Action says what caused an event.
type Action string

// Actions.
const (
	ActionExecute Action = "execute"
	ActionUndo    Action = "undo"
	ActionRedo    Action = "redo"
	ActionLoad    Action = "load"
	ActionClick   Action = "click"
)

// Event is one change notification.
type Event struct {
	Topic  Topic
	Action Action

	// Command is the name of the command involved, if any.
	Command string

	// Selection is the selection after the change.
	Selection selection.State

	// UndoCount and RedoCount are the stack depths after the change.
	UndoCount int
	RedoCount int
}

// Covers reports whether a subscription to t receives events on other.
func (t Topic) Covers(other Topic) bool {
	if t == "" || t == other {
		return true
	}
	return len(other) > len(t) && other[:len(t)] == t && other[len(t)] == '.'
}
