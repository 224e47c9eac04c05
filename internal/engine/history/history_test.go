package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/tree"
)

// setText replaces the content of a text node.
type setText struct {
	Base
	id   string
	text string
	prev string
}

func (c *setText) Name() string { return "set-text" }
func (c *setText) Description() string { return fmt.Sprintf("Set %s to %q", c.id, c.text) }

func (c *setText) Execute(d *document.Document) error {
	n := d.Find(c.id)
	if n == nil {
		return tree.ErrNotFound
	}
	c.prev = n.Text
	d.SetRoot(tree.Update(d.Root(), c.id, func(n *tree.Node) *tree.Node {
		n = n.Copy()
		n.Text = c.text
		return n
	}))
	c.MarkExecuted()
	return nil
}

func (c *setText) Undo(d *document.Document) error {
	d.SetRoot(tree.Update(d.Root(), c.id, func(n *tree.Node) *tree.Node {
		n = n.Copy()
		n.Text = c.prev
		return n
	}))
	c.MarkUndone()
	return nil
}

// scripted is a command whose behavior is set per test.
type scripted struct {
	execErr  error
	undoErr  error
	canUndo  bool
	onExec   func()
	executed int
	undone   int
}

func (c *scripted) Name() string { return "scripted" }
func (c *scripted) Description() string { return "Scripted" }
func (c *scripted) CanExecute(*document.Document) bool { return true }
func (c *scripted) CanUndo() bool { return c.canUndo }

func (c *scripted) Execute(*document.Document) error {
	if c.onExec != nil {
		c.onExec()
	}
	if c.execErr != nil {
		return c.execErr
	}
	c.executed++
	return nil
}

func (c *scripted) Undo(*document.Document) error {
	if c.undoErr != nil {
		return c.undoErr
	}
	c.undone++
	return nil
}

func newTestDocument() *document.Document {
	return document.New(tree.NewElement("root", "div",
		tree.NewText("t", "a"),
	))
}

func text(d *document.Document) string {
	return d.Find("t").Text
}

func TestBaseGuards(t *testing.T) {
	var b Base
	if !b.CanExecute(nil) || b.CanUndo() {
		t.Error("fresh command should execute and not undo")
	}
	b.MarkExecuted()
	if b.CanExecute(nil) || !b.CanUndo() || !b.Executed() {
		t.Error("executed command should undo and not execute")
	}
	b.MarkUndone()
	if !b.CanExecute(nil) || b.CanUndo() {
		t.Error("undone command should execute again")
	}
}

func TestManagerExecuteAndUndo(t *testing.T) {
	d := newTestDocument()
	m := NewManager(0)
	if m.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", m.Capacity(), DefaultCapacity)
	}

	if err := m.Execute(d, &setText{id: "t", text: "b"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text(d) != "b" || m.UndoCount() != 1 {
		t.Fatalf("text=%q undo=%d", text(d), m.UndoCount())
	}
	if err := m.Undo(d); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if text(d) != "a" || m.UndoCount() != 0 || m.RedoCount() != 1 {
		t.Errorf("after undo text=%q undo=%d redo=%d", text(d), m.UndoCount(), m.RedoCount())
	}
	if err := m.Redo(d); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if text(d) != "b" || m.UndoCount() != 1 || m.RedoCount() != 0 {
		t.Errorf("after redo text=%q undo=%d redo=%d", text(d), m.UndoCount(), m.RedoCount())
	}
}

func TestManagerRejectsExecutedCommand(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	cmd := &setText{id: "t", text: "b"}
	if err := m.Execute(d, cmd); err != nil {
		t.Fatal(err)
	}
	if err := m.Execute(d, cmd); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("second Execute = %v, want ErrInvalidOperation", err)
	}
	if m.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", m.UndoCount())
	}
}

func TestManagerFailedExecute(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	_ = m.Undo(d)
	_ = m.Execute(d, &setText{id: "t", text: "c"})

	boom := errors.New("boom")
	if err := m.Execute(d, &scripted{execErr: boom, canUndo: true}); !errors.Is(err, boom) {
		t.Fatalf("Execute = %v, want boom", err)
	}
	if err := m.Execute(d, &setText{id: "missing", text: "x"}); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("Execute = %v, want ErrNotFound", err)
	}
	if m.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", m.UndoCount())
	}
	if text(d) != "c" {
		t.Errorf("text = %q, want c", text(d))
	}
}

func TestManagerRedoClearedOnExecute(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	_ = m.Undo(d)
	if !m.CanRedo() {
		t.Fatal("should be able to redo")
	}
	_ = m.Execute(d, &setText{id: "t", text: "c"})
	if m.CanRedo() {
		t.Error("new command should clear redo")
	}
}

func TestManagerCapacity(t *testing.T) {
	for _, k := range []int{1, 2, 7} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			d := newTestDocument()
			m := NewManager(5)
			for i := 0; i < 5+k; i++ {
				_ = m.Execute(d, &setText{id: "t", text: fmt.Sprint(i)})
			}
			if m.UndoCount() != 5 {
				t.Fatalf("UndoCount() = %d, want 5", m.UndoCount())
			}
			// The oldest surviving entry is command k.
			info := m.UndoInfo()
			if want := fmt.Sprintf("Set t to %q", fmt.Sprint(k)); info[0].Description != want {
				t.Errorf("oldest = %q, want %q", info[0].Description, want)
			}
		})
	}
}

func TestManagerSetCapacity(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	for i := 0; i < 8; i++ {
		_ = m.Execute(d, &setText{id: "t", text: fmt.Sprint(i)})
	}
	m.SetCapacity(3)
	if m.UndoCount() != 3 || m.Capacity() != 3 {
		t.Errorf("UndoCount()=%d Capacity()=%d", m.UndoCount(), m.Capacity())
	}
}

func TestManagerEmptyStacks(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	if err := m.Undo(d); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo = %v", err)
	}
	if err := m.Redo(d); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo = %v", err)
	}
	// The manager must not stay claimed after a failed call.
	if err := m.Execute(d, &setText{id: "t", text: "b"}); err != nil {
		t.Errorf("Execute after empty undo = %v", err)
	}
}

func TestManagerHistorylessCommand(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	_ = m.Undo(d)

	sel := &scripted{canUndo: false}
	if err := m.Execute(d, sel); err != nil {
		t.Fatal(err)
	}
	if sel.executed != 1 {
		t.Error("command should have run")
	}
	if m.UndoCount() != 0 || m.RedoCount() != 1 {
		t.Errorf("undo=%d redo=%d, want 0 and 1", m.UndoCount(), m.RedoCount())
	}
}

func TestManagerUndoRefused(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	cmd := &scripted{canUndo: true}
	_ = m.Execute(d, cmd)
	cmd.canUndo = false

	if err := m.Undo(d); !errors.Is(err, ErrCannotUndo) {
		t.Fatalf("Undo = %v, want ErrCannotUndo", err)
	}
	if m.UndoCount() != 1 || cmd.undone != 0 {
		t.Errorf("entry lost or undo ran: undo=%d undone=%d", m.UndoCount(), cmd.undone)
	}
}

func TestManagerUndoFailureKeepsEntry(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	boom := errors.New("boom")
	cmd := &scripted{canUndo: true}
	_ = m.Execute(d, cmd)
	cmd.undoErr = boom

	if err := m.Undo(d); !errors.Is(err, boom) {
		t.Fatalf("Undo = %v", err)
	}
	if m.UndoCount() != 1 || m.RedoCount() != 0 {
		t.Errorf("undo=%d redo=%d", m.UndoCount(), m.RedoCount())
	}

	cmd.undoErr = nil
	_ = m.Undo(d)
	cmd.execErr = boom
	if err := m.Redo(d); !errors.Is(err, boom) {
		t.Fatalf("Redo = %v", err)
	}
	if m.UndoCount() != 0 || m.RedoCount() != 1 {
		t.Errorf("undo=%d redo=%d", m.UndoCount(), m.RedoCount())
	}
}

func TestManagerReentrant(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	var inner error
	outer := &scripted{canUndo: true}
	outer.onExec = func() {
		inner = m.Execute(d, &setText{id: "t", text: "x"})
	}
	if err := m.Execute(d, outer); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrReentrant) {
		t.Errorf("inner Execute = %v, want ErrReentrant", inner)
	}
	if text(d) != "a" {
		t.Errorf("inner command ran: text=%q", text(d))
	}
	if m.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", m.UndoCount())
	}
}

func TestManagerClear(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	_ = m.Execute(d, &setText{id: "t", text: "c"})
	_ = m.Undo(d)
	m.Clear()
	if m.CanUndo() || m.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}

func TestManagerGrouping(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)

	m.BeginGroup("Retype")
	if !m.IsGrouping() {
		t.Fatal("should be grouping")
	}
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	_ = m.Execute(d, &setText{id: "t", text: "c"})
	m.EndGroup()

	if m.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", m.UndoCount())
	}
	if info, _ := m.PeekUndo(); info.Description != "Retype" || info.Name != "compound" {
		t.Errorf("PeekUndo() = %+v", info)
	}
	if err := m.Undo(d); err != nil {
		t.Fatal(err)
	}
	if text(d) != "a" {
		t.Errorf("text = %q, want a", text(d))
	}
	if err := m.Redo(d); err != nil {
		t.Fatal(err)
	}
	if text(d) != "c" {
		t.Errorf("text = %q, want c", text(d))
	}
}

func TestManagerGroupSingleCommand(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	m.BeginGroup("One")
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	m.EndGroup()
	if info, _ := m.PeekUndo(); info.Name != "set-text" {
		t.Errorf("single grouped command should be pushed as is, got %+v", info)
	}
}

func TestManagerTransactionRollback(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	boom := errors.New("boom")
	err := m.Transaction(d, "Broken", func() error {
		_ = m.Execute(d, &setText{id: "t", text: "b"})
		_ = m.Execute(d, &setText{id: "t", text: "c"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction = %v", err)
	}
	if text(d) != "a" {
		t.Errorf("text = %q, want a", text(d))
	}
	if m.UndoCount() != 0 || m.IsGrouping() {
		t.Errorf("undo=%d grouping=%v", m.UndoCount(), m.IsGrouping())
	}
}

func TestCompoundRollsBack(t *testing.T) {
	d := newTestDocument()
	c := NewCompound("", &setText{id: "t", text: "b"}, &setText{id: "missing"})
	if err := c.Execute(d); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("Execute = %v", err)
	}
	if text(d) != "a" {
		t.Errorf("text = %q, want a", text(d))
	}
	if c.Description() != "2 operations" {
		t.Errorf("Description() = %q", c.Description())
	}
	if NewCompound("").CanUndo() || !NewCompound("").IsEmpty() {
		t.Error("empty compound should not undo")
	}
}

func TestCheckpoint(t *testing.T) {
	d := newTestDocument()
	m := NewManager(10)
	_ = m.Execute(d, &setText{id: "t", text: "b"})
	cp := m.CreateCheckpoint()
	_ = m.Execute(d, &setText{id: "t", text: "c"})
	_ = m.Execute(d, &setText{id: "t", text: "d"})

	if err := m.UndoToCheckpoint(d, cp); err != nil {
		t.Fatal(err)
	}
	if text(d) != "b" || m.RedoCount() != 2 {
		t.Errorf("text=%q redo=%d", text(d), m.RedoCount())
	}
	if info := m.RedoInfo(); len(info) != 2 || info[1].Timestamp.IsZero() {
		t.Errorf("RedoInfo() = %+v", info)
	}
}
