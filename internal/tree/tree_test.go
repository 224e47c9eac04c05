package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var cmpNode = []cmp.Option{cmp.AllowUnexported(Node{}), cmpopts.EquateEmpty()}

// sampleTree builds:
//
//	body
//	  sec1 (section)
//	    heading > title (text)
//	    hero (media)
//	  sec2 (section)
//	    list (repeat container)
//	      item1 > one (text)
//	      item2 > two (text)
func sampleTree() *Node {
	return NewElement("body", "body",
		NewSection("sec1",
			NewElement("heading", "h1", NewText("title", "Title")),
			NewMedia("hero", "hero.png"),
		),
		NewSection("sec2",
			NewRepeatContainer("list",
				NewItem("item1", "tag-1", NewText("one", "One")),
				NewItem("item2", "tag-2", NewText("two", "Two")),
			),
		),
	)
}

func TestFind(t *testing.T) {
	root := sampleTree()

	tests := []struct {
		id   string
		kind Kind
	}{
		{"body", KindElement},
		{"title", KindText},
		{"hero", KindMedia},
		{"list", KindRepeatContainer},
		{"item2", KindElement},
		{"two", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := Find(root, tt.id)
			if n == nil {
				t.Fatalf("Find(%q) = nil", tt.id)
			}
			if n.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", n.Kind(), tt.kind)
			}
		})
	}

	if Find(root, "missing") != nil {
		t.Error("Find should return nil for a missing id")
	}
	if Find(nil, "body") != nil {
		t.Error("Find on nil root should return nil")
	}
}

func TestUpdateRebuildsOnlyPath(t *testing.T) {
	root := sampleTree()

	next := Update(root, "title", func(n *Node) *Node {
		c := n.Copy()
		c.Text = "Changed"
		return c
	})

	if next == root {
		t.Fatal("Update should return a new root")
	}
	if got := Find(next, "title").Text; got != "Changed" {
		t.Errorf("title = %q, want Changed", got)
	}
	if got := Find(root, "title").Text; got != "Title" {
		t.Errorf("original title mutated to %q", got)
	}
	// Untouched subtrees are shared by reference.
	if Find(next, "sec2") != Find(root, "sec2") {
		t.Error("sec2 should be shared between old and new root")
	}
	if Find(next, "hero") != Find(root, "hero") {
		t.Error("hero should be shared between old and new root")
	}
	// Nodes on the path are reallocated.
	if Find(next, "sec1") == Find(root, "sec1") {
		t.Error("sec1 is on the path and should be rebuilt")
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	root := sampleTree()
	called := false
	next := Update(root, "missing", func(n *Node) *Node {
		called = true
		return n
	})
	if next != root {
		t.Error("Update with missing id should return the input root")
	}
	if called {
		t.Error("fn should not be called for a missing id")
	}
}

func TestUpdateInItems(t *testing.T) {
	root := sampleTree()
	next := Update(root, "two", func(n *Node) *Node {
		c := n.Copy()
		c.Text = "Deux"
		return c
	})
	if got := Find(next, "two").Text; got != "Deux" {
		t.Errorf("two = %q, want Deux", got)
	}
	if Find(next, "item1") != Find(root, "item1") {
		t.Error("sibling item should be shared")
	}
}

func TestRemove(t *testing.T) {
	root := sampleTree()

	t.Run("children", func(t *testing.T) {
		next := Remove(root, "hero")
		if Find(next, "hero") != nil {
			t.Error("hero should be removed")
		}
		if len(Find(next, "sec1").Children) != 1 {
			t.Error("sec1 should have one child left")
		}
		if Find(next, "heading") != Find(root, "heading") {
			t.Error("unmatched sibling should be shared")
		}
	})

	t.Run("items", func(t *testing.T) {
		next := Remove(root, "item1")
		list := Find(next, "list")
		if len(list.Items) != 1 || list.Items[0].ID != "item2" {
			t.Errorf("items = %v, want [item2]", IDs(list)[1:])
		}
		if Find(root, "item1") == nil {
			t.Error("original tree must keep item1")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if Remove(root, "missing") != root {
			t.Error("Remove with missing id should return the input")
		}
	})

	t.Run("root", func(t *testing.T) {
		if Remove(root, "body") != root {
			t.Error("the root cannot be removed")
		}
	})
}

func TestCloneWithFreshIDs(t *testing.T) {
	root := sampleTree()
	list := Find(root, "list")

	clone := CloneWithFreshIDs(list, SequenceGenerator("n"))

	orig := make(map[string]bool)
	for _, id := range IDs(list) {
		orig[id] = true
	}
	seen := make(map[string]bool)
	for _, id := range IDs(clone) {
		if orig[id] {
			t.Errorf("clone reused id %q", id)
		}
		if seen[id] {
			t.Errorf("clone has duplicate id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != len(orig) {
		t.Errorf("clone has %d nodes, want %d", len(seen), len(orig))
	}

	for i, it := range clone.Items {
		if it.RepeatItem == list.Items[i].RepeatItem {
			t.Errorf("item %d kept repeat tag %q", i, it.RepeatItem)
		}
		if !it.IsRepeatItem() {
			t.Errorf("item %d lost its repeat tag", i)
		}
	}

	if !EqualContent(list, clone) {
		t.Error("clone should be content-equal to the source")
	}
	// The source is untouched.
	if diff := cmp.Diff(sampleTree(), root, cmpNode...); diff != "" {
		t.Errorf("source mutated (-want +got):\n%s", diff)
	}
}

func TestCloneWithFreshIDsDefaultGenerator(t *testing.T) {
	a := CloneWithFreshIDs(NewText("x", "hi"), nil)
	b := CloneWithFreshIDs(NewText("x", "hi"), nil)
	if a.ID == "x" || b.ID == "x" || a.ID == b.ID {
		t.Errorf("ids not regenerated: %q, %q", a.ID, b.ID)
	}
}

func TestInsertAfter(t *testing.T) {
	root := sampleTree()
	next, ok := InsertAfter(root, "item1", NewItem("item3", "tag-3"))
	if !ok {
		t.Fatal("InsertAfter failed")
	}
	got := []string{}
	for _, it := range Find(next, "list").Items {
		got = append(got, it.ID)
	}
	want := []string{"item1", "item3", "item2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}

	if _, ok := InsertAfter(root, "body", NewText("x", "")); ok {
		t.Error("cannot insert after the root")
	}
}

func TestInsert(t *testing.T) {
	root := sampleTree()
	next, ok := Insert(root, "sec1", SlotChildren, 0, NewText("lead", "Lead"))
	if !ok {
		t.Fatal("Insert failed")
	}
	if first := Find(next, "sec1").Children[0]; first.ID != "lead" {
		t.Errorf("first child = %q, want lead", first.ID)
	}
	next, _ = Insert(next, "sec1", SlotChildren, 99, NewText("tail", "Tail"))
	kids := Find(next, "sec1").Children
	if kids[len(kids)-1].ID != "tail" {
		t.Error("out of range index should append")
	}
	if _, ok := Insert(root, "missing", SlotChildren, 0, NewText("x", "")); ok {
		t.Error("Insert into missing parent should fail")
	}
}

func TestFindParentAndPath(t *testing.T) {
	root := sampleTree()

	loc, ok := FindParent(root, "item2")
	if !ok || loc.Parent.ID != "list" || loc.Slot != SlotItems || loc.Index != 1 {
		t.Errorf("FindParent(item2) = %+v, %v", loc, ok)
	}
	if _, ok := FindParent(root, "body"); ok {
		t.Error("root has no parent")
	}

	var ids []string
	for _, n := range Path(root, "one") {
		ids = append(ids, n.ID)
	}
	want := []string{"body", "sec2", "list", "item1", "one"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Path (-want +got):\n%s", diff)
	}
}

func TestIsAncestor(t *testing.T) {
	root := sampleTree()
	tests := []struct {
		anc, id string
		want    bool
	}{
		{"body", "two", true},
		{"list", "one", true},
		{"sec1", "one", false},
		{"one", "one", false},
		{"one", "list", false},
		{"missing", "one", false},
	}
	for _, tt := range tests {
		if got := IsAncestor(root, tt.anc, tt.id); got != tt.want {
			t.Errorf("IsAncestor(%q, %q) = %v, want %v", tt.anc, tt.id, got, tt.want)
		}
	}
}

func TestSections(t *testing.T) {
	parent, secs := Sections(sampleTree())
	if parent == nil || parent.ID != "body" {
		t.Fatalf("parent = %v, want body", parent)
	}
	if len(secs) != 2 || secs[0].ID != "sec1" || secs[1].ID != "sec2" {
		t.Errorf("sections = %v", secs)
	}
	if p, s := Sections(NewElement("x", "div")); p != nil || s != nil {
		t.Error("tree without sections should return nil")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sampleTree()); err != nil {
		t.Fatalf("Validate(sample) = %v", err)
	}

	dup := NewElement("root", "div", NewText("a", ""), NewText("a", ""))
	if err := Validate(dup); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate ids: err = %v", err)
	}

	shared := NewText("s", "")
	twice := NewElement("root", "div", shared, shared)
	if err := Validate(twice); !errors.Is(err, ErrSharedNode) {
		t.Errorf("shared node: err = %v", err)
	}

	empty := NewElement("root", "div", NewText("", ""))
	if err := Validate(empty); !errors.Is(err, ErrEmptyID) {
		t.Errorf("empty id: err = %v", err)
	}

	bad := NewRepeatContainer("list", NewElement("plain", "div"))
	var verr *ValidationError
	if err := Validate(bad); !errors.As(err, &verr) || verr.ID != "plain" {
		t.Errorf("invalid item: err = %v", err)
	}
}

func TestEqual(t *testing.T) {
	a, b := sampleTree(), sampleTree()
	if !Equal(a, b) {
		t.Error("identical trees should be equal")
	}
	c := Update(b, "hero", func(n *Node) *Node {
		cp := n.Copy()
		cp.Src = "other.png"
		return cp
	})
	if Equal(a, c) {
		t.Error("trees with different src should differ")
	}
	if Equal(a, nil) || !Equal(nil, nil) {
		t.Error("nil handling wrong")
	}

	d := NewDataBound("d", "api")
	d.Records = []Record{{"n": 1}}
	e := NewDataBound("d", "api")
	e.Records = []Record{{"n": 2}}
	if Equal(d, e) {
		t.Error("records should be compared")
	}
}

func TestNodePredicates(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		atomic  bool
		content string
	}{
		{"text", NewText("t", "x"), true, "text"},
		{"media", NewMedia("m", "a.png"), true, "media"},
		{"section", NewSection("s"), false, "section"},
		{"item", NewItem("i", "tag"), false, "repeat-item"},
		{"input", NewElement("in", "input"), true, "form-control"},
		{"div", NewElement("d", "div"), false, "element"},
		{"repeat", NewRepeatContainer("r"), false, "repeat-container"},
		{"data", NewDataBound("db", "src"), false, "data-bound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsAtomic(); got != tt.atomic {
				t.Errorf("IsAtomic = %v, want %v", got, tt.atomic)
			}
			if got := tt.node.ContentKind(); got != tt.content {
				t.Errorf("ContentKind = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestCopyIsolation(t *testing.T) {
	n := NewSection("s", NewText("a", "A"))
	c := n.Copy()
	c.Attrs["extra"] = "1"
	c.Children = append(c.Children, NewText("b", "B"))
	if _, ok := n.Attrs["extra"]; ok {
		t.Error("attrs leaked into original")
	}
	if len(n.Children) != 1 {
		t.Error("children leaked into original")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindText, KindMedia, KindElement, KindRepeatContainer, KindDataBound} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("widget"); ok {
		t.Error("unknown kind should not parse")
	}
}
