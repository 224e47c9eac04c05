package commands

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/tree"
)

// TextEdit replaces the content of a text node.
type TextEdit struct {
	snapshot
	NodeID string
	Text   string
}

// NewTextEdit creates a TextEdit command.
func NewTextEdit(nodeID, text string) *TextEdit {
	return &TextEdit{NodeID: nodeID, Text: text}
}

// Name returns "text-edit".
func (c *TextEdit) Name() string { return "text-edit" }

// Description returns a human-readable description.
func (c *TextEdit) Description() string {
	if utf8.RuneCountInString(c.Text) <= 20 {
		return fmt.Sprintf("Edit text \"%s\"", c.Text)
	}
	return fmt.Sprintf("Edit text (%d characters)", utf8.RuneCountInString(c.Text))
}

// CanExecute requires a node id.
func (c *TextEdit) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute sets the text.
func (c *TextEdit) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		if n.Kind() != tree.KindText {
			return newError(c.Name(), c.NodeID, ErrWrongKind)
		}
		modify(d, c.NodeID, func(n *tree.Node) { n.Text = c.Text })
		return nil
	})
}

// SetAttribute sets an attribute on an element-like node. An empty value
// removes the attribute.
type SetAttribute struct {
	snapshot
	NodeID string
	Key    string
	Value  string
}

// NewSetAttribute creates a SetAttribute command.
func NewSetAttribute(nodeID, key, value string) *SetAttribute {
	return &SetAttribute{NodeID: nodeID, Key: key, Value: value}
}

// Name returns "set-attribute".
func (c *SetAttribute) Name() string { return "set-attribute" }

// Description returns a human-readable description.
func (c *SetAttribute) Description() string {
	if c.Value == "" {
		return fmt.Sprintf("Remove %s", c.Key)
	}
	return fmt.Sprintf("Set %s=%q", c.Key, c.Value)
}

// CanExecute requires a node id and a key.
func (c *SetAttribute) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != "" && c.Key != ""
}

// Execute sets or removes the attribute.
func (c *SetAttribute) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		if n.Kind() == tree.KindText {
			return newError(c.Name(), c.NodeID, ErrWrongKind)
		}
		modify(d, c.NodeID, func(n *tree.Node) {
			if c.Value == "" {
				delete(n.Attrs, c.Key)
				return
			}
			if n.Attrs == nil {
				n.Attrs = make(map[string]string)
			}
			n.Attrs[c.Key] = c.Value
		})
		return nil
	})
}

// ReplaceMedia sets the source and inline markup of a media node.
type ReplaceMedia struct {
	snapshot
	NodeID string
	Src    string
	Markup string
}

// NewReplaceMedia creates a ReplaceMedia command.
func NewReplaceMedia(nodeID, src, markup string) *ReplaceMedia {
	return &ReplaceMedia{NodeID: nodeID, Src: src, Markup: markup}
}

// Name returns "replace-media".
func (c *ReplaceMedia) Name() string { return "replace-media" }

// Description returns a human-readable description.
func (c *ReplaceMedia) Description() string { return "Replace media" }

// CanExecute requires a node id.
func (c *ReplaceMedia) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute replaces the media content.
func (c *ReplaceMedia) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		if n.Kind() != tree.KindMedia {
			return newError(c.Name(), c.NodeID, ErrWrongKind)
		}
		modify(d, c.NodeID, func(n *tree.Node) {
			n.Src = c.Src
			n.Markup = c.Markup
		})
		return nil
	})
}

// ApplyRecords stores fetched records and their column schema on a
// data-bound node. It is how the fetch collaborator hands data to the core
// once a request resolves.
type ApplyRecords struct {
	snapshot
	NodeID  string
	Records []tree.Record
	Columns []tree.Column
}

// NewApplyRecords creates an ApplyRecords command. The records and columns
// are copied.
func NewApplyRecords(nodeID string, records []tree.Record, columns []tree.Column) *ApplyRecords {
	rs := make([]tree.Record, len(records))
	for i, r := range records {
		rs[i] = maps.Clone(r)
	}
	return &ApplyRecords{
		NodeID:  nodeID,
		Records: rs,
		Columns: slices.Clone(columns),
	}
}

// Name returns "apply-records".
func (c *ApplyRecords) Name() string { return "apply-records" }

// Description returns a human-readable description.
func (c *ApplyRecords) Description() string {
	return fmt.Sprintf("Load %d records", len(c.Records))
}

// CanExecute requires a node id.
func (c *ApplyRecords) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute replaces the node's records and columns.
func (c *ApplyRecords) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		if n.Kind() != tree.KindDataBound {
			return newError(c.Name(), c.NodeID, ErrWrongKind)
		}
		modify(d, c.NodeID, func(n *tree.Node) {
			n.Records = c.Records
			n.Columns = c.Columns
		})
		return nil
	})
}

// SetViewMode switches how a data-bound node presents its records.
type SetViewMode struct {
	snapshot
	NodeID string
	Mode   string
}

// NewSetViewMode creates a SetViewMode command.
func NewSetViewMode(nodeID, mode string) *SetViewMode {
	return &SetViewMode{NodeID: nodeID, Mode: mode}
}

// Name returns "set-view-mode".
func (c *SetViewMode) Name() string { return "set-view-mode" }

// Description returns a human-readable description.
func (c *SetViewMode) Description() string { return fmt.Sprintf("Show as %s", c.Mode) }

// CanExecute requires a node id.
func (c *SetViewMode) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute sets the view mode.
func (c *SetViewMode) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		if n.Kind() != tree.KindDataBound {
			return newError(c.Name(), c.NodeID, ErrWrongKind)
		}
		modify(d, c.NodeID, func(n *tree.Node) { n.ViewMode = c.Mode })
		return nil
	})
}
