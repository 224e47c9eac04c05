package selection

// Mode is the edit mode of a selection.
type Mode uint8

const (
	// ModeNone means nothing is selected.
	ModeNone Mode = iota
	// ModeBlock selects a node as a whole for structural edits.
	ModeBlock
	// ModeText places a caret inside a node's text content.
	ModeText
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeText:
		return "text"
	default:
		return "none"
	}
}

// ParseMode converts a mode name to a Mode. Unknown names yield ModeNone.
func ParseMode(s string) Mode {
	switch s {
	case "block":
		return ModeBlock
	case "text":
		return ModeText
	default:
		return ModeNone
	}
}

// State is the current selection. Any state may move to any other.
type State struct {
	Mode   Mode
	NodeID string
}

// None returns the empty selection.
func None() State {
	return State{Mode: ModeNone}
}

// Block returns a block selection of id.
func Block(id string) State {
	return State{Mode: ModeBlock, NodeID: id}
}

// Text returns a text selection of id.
func Text(id string) State {
	return State{Mode: ModeText, NodeID: id}
}

// IsNone reports whether nothing is selected.
func (s State) IsNone() bool {
	return s.Mode == ModeNone || s.NodeID == ""
}
