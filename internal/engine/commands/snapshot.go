package commands

import (
	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/engine/history"
	"github.com/dshills/pagecraft/internal/tree"
)

// snapshot gives a command undo and redo by capturing document state.
//
// The first Execute records the state before and after the mutation. Undo
// restores the first, and a later Execute (redo) restores the second, so
// redo reproduces the same ids a paste or add generated the first time.
// Both captures are O(1) because trees are persistent.
//
// Only the tree and the parts a command owns are captured. The selection
// is kept only when the command actually changed it, so undo and redo do
// not rewind a selection the user made since.
type snapshot struct {
	history.Base

	before  document.State
	after   document.State
	applied bool
}

// run performs mutate once and records the surrounding states. parts names
// the state beyond the tree that mutate may write. If mutate fails the
// document is put back as it was.
func (s *snapshot) run(d *document.Document, parts document.Part, mutate func() error) error {
	if s.applied {
		d.Restore(s.after)
		s.MarkExecuted()
		return nil
	}
	before := d.Capture(parts)
	if err := mutate(); err != nil {
		d.Restore(before)
		return err
	}
	after := d.Capture(parts)
	if parts&document.PartSelection != 0 && before.Selection == after.Selection {
		before = before.Without(document.PartSelection)
		after = after.Without(document.PartSelection)
	}
	s.before, s.after = before, after
	s.applied = true
	s.MarkExecuted()
	return nil
}

// Undo restores the state captured before the command ran.
func (s *snapshot) Undo(d *document.Document) error {
	if !s.Executed() {
		return history.ErrCannotUndo
	}
	d.Restore(s.before)
	s.MarkUndone()
	return nil
}

// lookup returns the node or a wrapped tree.ErrNotFound.
func lookup(d *document.Document, op, id string) (*tree.Node, error) {
	n := d.Find(id)
	if n == nil {
		return nil, newError(op, id, tree.ErrNotFound)
	}
	return n, nil
}

// modify replaces the node with a modified private copy.
func modify(d *document.Document, id string, fn func(n *tree.Node)) {
	d.SetRoot(tree.Update(d.Root(), id, func(n *tree.Node) *tree.Node {
		cp := n.Copy()
		fn(cp)
		return cp
	}))
}

// clearContent empties the content fields of an atomic node.
func clearContent(n *tree.Node) {
	switch {
	case n.Kind() == tree.KindText:
		n.Text = ""
	case n.Kind() == tree.KindMedia:
		n.Src = ""
		n.Markup = ""
	case n.IsFormControl():
		delete(n.Attrs, tree.AttrValue)
	}
}

// removeNode deletes a container-like node from the tree or clears an
// atomic one in place. A selection that no longer resolves is cleared.
func removeNode(d *document.Document, op string, n *tree.Node) error {
	if n.IsAtomic() {
		modify(d, n.ID, clearContent)
		if d.IsSelected(n.ID) {
			d.ClearSelection()
		}
		return nil
	}
	if n.ID == d.Root().ID {
		return newError(op, n.ID, ErrRootNode)
	}
	d.SetRoot(tree.Remove(d.Root(), n.ID))
	if sel := d.Selection(); !sel.IsNone() && d.Find(sel.NodeID) == nil {
		d.ClearSelection()
	}
	return nil
}
