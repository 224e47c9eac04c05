// Package document holds the editing session state that commands act on.
package document

import (
	"github.com/dshills/pagecraft/internal/clipboard"
	"github.com/dshills/pagecraft/internal/selection"
	"github.com/dshills/pagecraft/internal/tree"
)

// Document is one editing session: the current tree, the selection, the
// clipboard slot and the paste handlers.
//
// A Document is not safe for concurrent use. The core runs synchronously on
// each input event; the command Manager serializes access.
type Document struct {
	root      *tree.Node
	selection selection.State
	clipboard *clipboard.Store
	handlers  *clipboard.Registry
	ids       tree.IDGenerator
}

// Option configures a Document.
type Option func(*Document)

// WithClipboard sets the clipboard store. A store may be shared between
// documents to allow copy and paste across them.
func WithClipboard(s *clipboard.Store) Option {
	return func(d *Document) {
		if s != nil {
			d.clipboard = s
		}
	}
}

// WithHandlers sets the clipboard handler registry.
func WithHandlers(r *clipboard.Registry) Option {
	return func(d *Document) {
		if r != nil {
			d.handlers = r
		}
	}
}

// WithIDGenerator sets the generator used for new node ids.
func WithIDGenerator(gen tree.IDGenerator) Option {
	return func(d *Document) {
		if gen != nil {
			d.ids = gen
		}
	}
}

// New creates a document around root.
func New(root *tree.Node, opts ...Option) *Document {
	d := &Document{
		root:      root,
		selection: selection.None(),
		ids:       tree.UUIDGenerator(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clipboard == nil {
		d.clipboard = clipboard.NewStore()
	}
	if d.handlers == nil {
		d.handlers = clipboard.DefaultRegistry()
	}
	return d
}

// Root returns the current tree.
func (d *Document) Root() *tree.Node {
	return d.root
}

// SetRoot replaces the current tree.
func (d *Document) SetRoot(root *tree.Node) {
	d.root = root
}

// Find returns the node with the given id in the current tree.
func (d *Document) Find(id string) *tree.Node {
	return tree.Find(d.root, id)
}

// Selection returns the current selection.
func (d *Document) Selection() selection.State {
	return d.selection
}

// SetSelection replaces the current selection.
func (d *Document) SetSelection(s selection.State) {
	d.selection = s
}

// ClearSelection sets the selection to none.
func (d *Document) ClearSelection() {
	d.selection = selection.None()
}

// IsSelected reports whether id is the selected node.
func (d *Document) IsSelected(id string) bool {
	return d.selection.NodeID != "" && d.selection.NodeID == id
}

// Clipboard returns the clipboard store.
func (d *Document) Clipboard() *clipboard.Store {
	return d.clipboard
}

// Handlers returns the clipboard handler registry.
func (d *Document) Handlers() *clipboard.Registry {
	return d.handlers
}

// IDs returns the id generator.
func (d *Document) IDs() tree.IDGenerator {
	return d.ids
}

// IsAncestor reports whether ancestorID strictly contains id in the
// current tree. It lets the selection resolver reason about containment
// without depending on the node model.
func (d *Document) IsAncestor(ancestorID, id string) bool {
	return tree.IsAncestor(d.root, ancestorID, id)
}

// Part names document state beyond the tree that a capture may hold.
type Part uint8

const (
	// PartSelection is the selection state.
	PartSelection Part = 1 << iota
	// PartClipboard is the clipboard slot. The store may be shared, so only
	// commands that write the slot capture it.
	PartClipboard

	// PartAll is every part.
	PartAll = PartSelection | PartClipboard
)

// State is a point-in-time capture of the tree plus the parts named in
// Parts. Restore leaves the other parts alone.
type State struct {
	Root      *tree.Node
	Selection selection.State
	Clipboard clipboard.Snapshot
	Parts     Part
}

// Without returns s with the given parts dropped.
func (s State) Without(p Part) State {
	s.Parts &^= p
	return s
}

// Capture returns the current tree and the requested parts. Because trees
// are persistent this costs O(1) regardless of document size.
func (d *Document) Capture(parts Part) State {
	s := State{Root: d.root, Parts: parts}
	if parts&PartSelection != 0 {
		s.Selection = d.selection
	}
	if parts&PartClipboard != 0 {
		s.Clipboard = d.clipboard.Snapshot()
	}
	return s
}

// Restore puts back a state returned by Capture. A selection that was not
// captured is kept unless its node is gone from the restored tree, in which
// case it is cleared.
func (d *Document) Restore(s State) {
	d.root = s.Root
	if s.Parts&PartSelection != 0 {
		d.selection = s.Selection
	} else if !d.selection.IsNone() && d.Find(d.selection.NodeID) == nil {
		d.selection = selection.None()
	}
	if s.Parts&PartClipboard != 0 {
		d.clipboard.Restore(s.Clipboard)
	}
}
