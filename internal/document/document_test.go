package document

import (
	"testing"

	"github.com/dshills/pagecraft/internal/clipboard"
	"github.com/dshills/pagecraft/internal/selection"
	"github.com/dshills/pagecraft/internal/tree"
)

var _ selection.Hierarchy = (*Document)(nil)

func sample() *tree.Node {
	return tree.NewElement("body", "body",
		tree.NewSection("sec",
			tree.NewText("title", "Hello"),
		),
	)
}

func TestNewDefaults(t *testing.T) {
	d := New(sample())
	if d.Clipboard() == nil || d.Handlers() == nil || d.IDs() == nil {
		t.Fatal("New should fill in defaults")
	}
	if !d.Selection().IsNone() {
		t.Errorf("initial selection = %+v, want none", d.Selection())
	}
	if d.Find("title") == nil {
		t.Error("Find(title) = nil")
	}
	if !d.IsAncestor("body", "title") || d.IsAncestor("title", "body") {
		t.Error("IsAncestor wrong")
	}
}

func TestOptions(t *testing.T) {
	store := clipboard.NewStore()
	reg := clipboard.NewRegistry()
	d := New(sample(),
		WithClipboard(store),
		WithHandlers(reg),
		WithIDGenerator(tree.SequenceGenerator("n")),
		WithClipboard(nil),
	)
	if d.Clipboard() != store {
		t.Error("WithClipboard not applied or overwritten by nil")
	}
	if d.Handlers() != reg {
		t.Error("WithHandlers not applied")
	}
	if got := d.IDs()(); got != "n-1" {
		t.Errorf("IDs() = %q, want n-1", got)
	}
}

func TestSelection(t *testing.T) {
	d := New(sample())
	d.SetSelection(selection.Block("sec"))
	if !d.IsSelected("sec") || d.IsSelected("title") {
		t.Error("IsSelected wrong")
	}
	d.ClearSelection()
	if d.IsSelected("sec") || d.IsSelected("") {
		t.Error("nothing should be selected")
	}
}

func TestCaptureRestore(t *testing.T) {
	d := New(sample())
	d.SetSelection(selection.Text("title"))
	before := d.Capture(PartAll)

	d.SetRoot(tree.Remove(d.Root(), "sec"))
	d.ClearSelection()
	d.Clipboard().Set(clipboard.Data{Kind: "text", Payload: tree.NewText("x", "x")})

	d.Restore(before)
	if d.Root() != before.Root {
		t.Error("root not restored")
	}
	if d.Selection() != selection.Text("title") {
		t.Errorf("selection = %+v", d.Selection())
	}
	if !d.Clipboard().IsEmpty() {
		t.Error("clipboard not restored")
	}
}

func TestRestoreLeavesUncapturedParts(t *testing.T) {
	d := New(sample())
	d.SetSelection(selection.Text("title"))
	before := d.Capture(0)

	d.SetSelection(selection.Block("sec"))
	d.Clipboard().Set(clipboard.Data{Kind: "text", Payload: tree.NewText("x", "x")})

	d.Restore(before)
	if d.Selection() != selection.Block("sec") {
		t.Errorf("selection = %+v, want the later selection kept", d.Selection())
	}
	if d.Clipboard().IsEmpty() {
		t.Error("clipboard was restored without being captured")
	}
}

func TestRestoreClearsDanglingSelection(t *testing.T) {
	d := New(sample())
	before := d.Capture(0)

	d.SetRoot(tree.Remove(d.Root(), "title"))
	d.SetRoot(tree.Update(d.Root(), "sec", func(n *tree.Node) *tree.Node {
		cp := n.Copy()
		cp.Children = append(cp.Children, tree.NewText("added", "New"))
		return cp
	}))
	d.SetSelection(selection.Text("added"))

	d.Restore(before)
	if !d.Selection().IsNone() {
		t.Errorf("selection = %+v, want none after its node went away", d.Selection())
	}
}
