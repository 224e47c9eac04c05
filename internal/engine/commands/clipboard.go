package commands

import (
	"fmt"

	"github.com/dshills/pagecraft/internal/clipboard"
	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/selection"
	"github.com/dshills/pagecraft/internal/tree"
)

// Variant selects which clipboard handler a copy, cut or paste uses.
type Variant uint8

const (
	// Universal dispatches through the handler registry.
	Universal Variant = iota
	// SectionVariant always uses the section handler.
	SectionVariant
	// ItemVariant always uses the repeat item handler.
	ItemVariant
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case SectionVariant:
		return "section"
	case ItemVariant:
		return "item"
	default:
		return "universal"
	}
}

// ParseVariant converts a variant name. The empty string is Universal.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "universal":
		return Universal, nil
	case "section":
		return SectionVariant, nil
	case "item", "repeat-item":
		return ItemVariant, nil
	}
	return Universal, fmt.Errorf("unknown clipboard variant %q", s)
}

// handlerKind returns the fixed handler kind of a variant.
func (v Variant) handlerKind() string {
	switch v {
	case SectionVariant:
		return clipboard.KindSection
	case ItemVariant:
		return clipboard.KindRepeatItem
	}
	return ""
}

// sourceHandler picks the handler that copies or cuts n.
func sourceHandler(d *document.Document, v Variant, op string, n *tree.Node) (clipboard.Handler, error) {
	if v == Universal {
		h, ok := d.Handlers().FindHandler(n)
		if !ok {
			return nil, newError(op, n.ID, fmt.Errorf("%w: %q", clipboard.ErrNoHandler, n.ContentKind()))
		}
		return h, nil
	}
	h, ok := d.Handlers().ForKind(v.handlerKind())
	if !ok {
		return nil, newError(op, n.ID, fmt.Errorf("%w: %q", clipboard.ErrNoHandler, v.handlerKind()))
	}
	if !h.CanHandle(n) {
		return nil, newError(op, n.ID, ErrWrongKind)
	}
	return h, nil
}

// Copy puts a node on the clipboard. Undo restores the previous clipboard
// contents.
type Copy struct {
	snapshot
	NodeID  string
	Variant Variant
}

// NewCopy creates a Copy command.
func NewCopy(nodeID string, v Variant) *Copy {
	return &Copy{NodeID: nodeID, Variant: v}
}

// Name returns "copy".
func (c *Copy) Name() string { return "copy" }

// Description returns a human-readable description.
func (c *Copy) Description() string { return fmt.Sprintf("Copy %s", c.NodeID) }

// CanExecute requires a node id.
func (c *Copy) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute fills the clipboard.
func (c *Copy) Execute(d *document.Document) error {
	return c.run(d, document.PartClipboard, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		h, err := sourceHandler(d, c.Variant, c.Name(), n)
		if err != nil {
			return err
		}
		d.Clipboard().Set(h.Copy(n))
		return nil
	})
}

// Cut puts a node on the clipboard and deletes it the way DeleteNode does.
// The clipboard keeps the payload after pasting, so cut content can be
// pasted more than once.
type Cut struct {
	snapshot
	NodeID  string
	Variant Variant
}

// NewCut creates a Cut command.
func NewCut(nodeID string, v Variant) *Cut {
	return &Cut{NodeID: nodeID, Variant: v}
}

// Name returns "cut".
func (c *Cut) Name() string { return "cut" }

// Description returns a human-readable description.
func (c *Cut) Description() string { return fmt.Sprintf("Cut %s", c.NodeID) }

// CanExecute requires a node id.
func (c *Cut) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute fills the clipboard and removes the node.
func (c *Cut) Execute(d *document.Document) error {
	return c.run(d, document.PartAll, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		h, err := sourceHandler(d, c.Variant, c.Name(), n)
		if err != nil {
			return err
		}
		if err := removeNode(d, c.Name(), n); err != nil {
			return err
		}
		d.Clipboard().Set(h.Cut(n))
		return nil
	})
}

// Paste inserts a fresh-id clone of the clipboard contents relative to a
// target node and selects the pasted node. An empty TargetID pastes at the
// handler's default position.
type Paste struct {
	snapshot
	TargetID string
	Variant  Variant

	// PastedID is the id of the inserted or updated node after Execute.
	PastedID string
}

// NewPaste creates a Paste command.
func NewPaste(targetID string, v Variant) *Paste {
	return &Paste{TargetID: targetID, Variant: v}
}

// Name returns "paste".
func (c *Paste) Name() string { return "paste" }

// Description returns a human-readable description.
func (c *Paste) Description() string { return "Paste" }

// CanExecute requires clipboard contents.
func (c *Paste) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && !d.Clipboard().IsEmpty()
}

// Execute performs the paste.
func (c *Paste) Execute(d *document.Document) error {
	return c.run(d, document.PartSelection, func() error {
		data, ok := d.Clipboard().Get()
		if !ok {
			return newError(c.Name(), c.TargetID, clipboard.ErrEmpty)
		}
		var target *tree.Node
		if c.TargetID != "" {
			n, err := lookup(d, c.Name(), c.TargetID)
			if err != nil {
				return err
			}
			target = n
		}

		ctx := clipboard.PasteContext{Root: d.Root(), IDs: d.IDs()}
		var res clipboard.Result
		if c.Variant == Universal {
			res = d.Handlers().Paste(target, data, ctx)
		} else {
			h, ok := d.Handlers().ForKind(c.Variant.handlerKind())
			if !ok {
				return newError(c.Name(), c.TargetID,
					fmt.Errorf("%w: %q", clipboard.ErrNoHandler, c.Variant.handlerKind()))
			}
			if !h.CanPaste(target, data) {
				return newError(c.Name(), c.TargetID, clipboard.ErrIncompatible)
			}
			res = h.Paste(target, data, ctx)
		}

		if !res.Success || res.Tree == nil {
			err := res.Err
			if err == nil {
				err = clipboard.ErrInvalidTarget
			}
			return newError(c.Name(), c.TargetID, err)
		}
		d.SetRoot(res.Tree)
		c.PastedID = res.PastedID
		if c.PastedID != "" {
			d.SetSelection(selection.Block(c.PastedID))
		}
		return nil
	})
}
