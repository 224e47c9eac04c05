package tree

import (
	"maps"
	"reflect"
)

// Equal reports whether two trees are structurally identical: same kinds,
// ids, content fields, attributes and collections, recursively. Nil and
// empty collections compare equal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ID != b.ID || a.kind != b.kind || a.Tag != b.Tag ||
		a.Text != b.Text || a.Src != b.Src || a.Markup != b.Markup ||
		a.RepeatItem != b.RepeatItem || a.Source != b.Source || a.ViewMode != b.ViewMode {
		return false
	}
	if !maps.Equal(a.Attrs, b.Attrs) {
		return false
	}
	if !equalNodes(a.Children, b.Children) || !equalNodes(a.Items, b.Items) {
		return false
	}
	if len(a.Columns) != len(b.Columns) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i] != b.Columns[i] {
			return false
		}
	}
	if len(a.Records) != len(b.Records) {
		return false
	}
	for i := range a.Records {
		if len(a.Records[i]) != len(b.Records[i]) || !reflect.DeepEqual(a.Records[i], b.Records[i]) {
			return false
		}
	}
	return true
}

func equalNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SameShape reports whether two subtrees are structurally homologous: the
// same kinds and tags at every position with the same number of children and
// items. Content, attributes and ids are ignored.
func SameShape(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.Tag != b.Tag || a.IsRepeatItem() != b.IsRepeatItem() {
		return false
	}
	if len(a.Children) != len(b.Children) || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Children {
		if !SameShape(a.Children[i], b.Children[i]) {
			return false
		}
	}
	for i := range a.Items {
		if !SameShape(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

// EqualContent is like Equal but ignores ids and repeat tags. Two clones
// produced by CloneWithFreshIDs from the same node are content-equal.
func EqualContent(a, b *Node) bool {
	return Equal(stripIDs(a), stripIDs(b))
}

func stripIDs(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := DeepCopy(n)
	Walk(c, func(m *Node, _ int) bool {
		m.ID = ""
		if m.RepeatItem != "" {
			m.RepeatItem = repeatTagPrefix
		}
		return true
	})
	return c
}
