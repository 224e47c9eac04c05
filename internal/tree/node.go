package tree

import (
	"maps"
	"slices"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindText is inline text content.
	KindText Kind = iota + 1
	// KindMedia is image or vector content.
	KindMedia
	// KindElement is a generic container with children and attributes.
	KindElement
	// KindRepeatContainer owns an ordered list of cloned items.
	KindRepeatContainer
	// KindDataBound is populated from an external data source.
	KindDataBound
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMedia:
		return "media"
	case KindElement:
		return "element"
	case KindRepeatContainer:
		return "repeat-container"
	case KindDataBound:
		return "data-bound"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back to a Kind.
// Returns false if the name is not recognized.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "text":
		return KindText, true
	case "media":
		return KindMedia, true
	case "element":
		return KindElement, true
	case "repeat-container":
		return KindRepeatContainer, true
	case "data-bound":
		return KindDataBound, true
	default:
		return 0, false
	}
}

// Attribute names with structural meaning.
const (
	// AttrSection marks an element as a top-level section.
	AttrSection = "data-section"
	// AttrValue holds the current value of a form control.
	AttrValue = "value"
)

// Record is one row of fetched data for a data-bound node.
type Record map[string]any

// Column describes one field of the records held by a data-bound node.
type Column struct {
	Key   string
	Label string
	Type  string
}

// Node is an immutable element of the document tree.
//
// Nodes are never modified after they are reachable from a root. Operations
// that change the tree return a new root that shares every untouched subtree
// with the old one. Use Copy to obtain a private node to modify before it is
// placed back into a tree.
type Node struct {
	ID   string
	kind Kind

	// Tag is the element name for KindElement nodes (e.g. "section", "img").
	Tag string

	// Text is the content of a KindText node.
	Text string

	// Src and Markup hold the content of a KindMedia node.
	Src    string
	Markup string

	// Attrs is the open attribute map of element-like nodes.
	Attrs map[string]string

	// Children are owned child nodes.
	Children []*Node

	// Items are the repeat items of a KindRepeatContainer.
	Items []*Node

	// RepeatItem distinguishes clone instances; empty for non-items.
	RepeatItem string

	// DataBound fields.
	Source   string
	ViewMode string
	Records  []Record
	Columns  []Column
}

// New creates a node of the given kind.
func New(kind Kind, id string) *Node {
	return &Node{ID: id, kind: kind}
}

// NewText creates a text node.
func NewText(id, text string) *Node {
	return &Node{ID: id, kind: KindText, Text: text}
}

// NewMedia creates a media node.
func NewMedia(id, src string) *Node {
	return &Node{ID: id, kind: KindMedia, Src: src}
}

// NewElement creates an element node with the given children.
func NewElement(id, tag string, children ...*Node) *Node {
	return &Node{ID: id, kind: KindElement, Tag: tag, Children: children}
}

// NewSection creates an element tagged as a section.
func NewSection(id string, children ...*Node) *Node {
	n := NewElement(id, "section", children...)
	n.Attrs = map[string]string{AttrSection: ""}
	return n
}

// NewItem creates an element tagged as a repeat item.
func NewItem(id, repeatTag string, children ...*Node) *Node {
	n := NewElement(id, "div", children...)
	n.RepeatItem = repeatTag
	return n
}

// NewRepeatContainer creates a repeat container holding the given items.
func NewRepeatContainer(id string, items ...*Node) *Node {
	return &Node{ID: id, kind: KindRepeatContainer, Tag: "div", Items: items}
}

// NewDataBound creates a data-bound node reading from source.
func NewDataBound(id, source string) *Node {
	return &Node{ID: id, kind: KindDataBound, Tag: "div", Source: source}
}

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind {
	if n == nil {
		return 0
	}
	return n.kind
}

// Copy returns a shallow copy of the node suitable for modification.
// The attribute map and the child, item, record and column slices are
// duplicated so edits to the copy do not leak into the original; the child
// nodes themselves are shared.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Attrs = maps.Clone(n.Attrs)
	c.Children = slices.Clone(n.Children)
	c.Items = slices.Clone(n.Items)
	c.Records = slices.Clone(n.Records)
	c.Columns = slices.Clone(n.Columns)
	return &c
}

// Attr returns the value of an attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// IsSection reports whether the node is an element tagged as a section.
func (n *Node) IsSection() bool {
	if n.Kind() != KindElement {
		return false
	}
	_, ok := n.Attr(AttrSection)
	return ok
}

// IsRepeatItem reports whether the node is a repeat item instance.
func (n *Node) IsRepeatItem() bool {
	return n.Kind() == KindElement && n.RepeatItem != ""
}

// IsFormControl reports whether the node is an interactive form element.
func (n *Node) IsFormControl() bool {
	if n.Kind() != KindElement {
		return false
	}
	switch n.Tag {
	case "input", "textarea", "select", "button":
		return true
	}
	return false
}

// IsAtomic reports whether deleting the node clears its content instead of
// removing it from the tree.
func (n *Node) IsAtomic() bool {
	switch n.Kind() {
	case KindText, KindMedia:
		return true
	case KindElement:
		return n.IsFormControl()
	}
	return false
}

// ContentKind returns the clipboard and selection kind name of the node.
// Element specializations (section, repeat item, form control) are reported
// ahead of the generic element kind.
func (n *Node) ContentKind() string {
	switch {
	case n.IsSection():
		return "section"
	case n.IsRepeatItem():
		return "repeat-item"
	case n.IsFormControl():
		return "form-control"
	}
	return n.Kind().String()
}
