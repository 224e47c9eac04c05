package codec

import (
	"fmt"
	"maps"

	"github.com/dshills/pagecraft/internal/tree"
)

// FormatVersion is the version written into encoded documents.
const FormatVersion = 1

// documentDTO is the envelope of an encoded document.
type documentDTO struct {
	Version int      `json:"version" yaml:"version" cbor:"version"`
	Root    *nodeDTO `json:"root" yaml:"root" cbor:"root"`
}

// nodeDTO is the serialized form of a tree.Node.
type nodeDTO struct {
	ID         string            `json:"id" yaml:"id" cbor:"id"`
	Kind       string            `json:"kind" yaml:"kind" cbor:"kind"`
	Tag        string            `json:"tag,omitempty" yaml:"tag,omitempty" cbor:"tag,omitempty"`
	Text       string            `json:"text,omitempty" yaml:"text,omitempty" cbor:"text,omitempty"`
	Src        string            `json:"src,omitempty" yaml:"src,omitempty" cbor:"src,omitempty"`
	Markup     string            `json:"markup,omitempty" yaml:"markup,omitempty" cbor:"markup,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" cbor:"attrs,omitempty"`
	RepeatItem string            `json:"repeatItem,omitempty" yaml:"repeatItem,omitempty" cbor:"repeatItem,omitempty"`
	Children   []*nodeDTO        `json:"children,omitempty" yaml:"children,omitempty" cbor:"children,omitempty"`
	Items      []*nodeDTO        `json:"items,omitempty" yaml:"items,omitempty" cbor:"items,omitempty"`
	Source     string            `json:"source,omitempty" yaml:"source,omitempty" cbor:"source,omitempty"`
	ViewMode   string            `json:"viewMode,omitempty" yaml:"viewMode,omitempty" cbor:"viewMode,omitempty"`
	Records    []map[string]any  `json:"records,omitempty" yaml:"records,omitempty" cbor:"records,omitempty"`
	Columns    []columnDTO       `json:"columns,omitempty" yaml:"columns,omitempty" cbor:"columns,omitempty"`
}

type columnDTO struct {
	Key   string `json:"key" yaml:"key" cbor:"key"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" cbor:"label,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty" cbor:"type,omitempty"`
}

func fromNode(n *tree.Node) *nodeDTO {
	if n == nil {
		return nil
	}
	d := &nodeDTO{
		ID:         n.ID,
		Kind:       n.Kind().String(),
		Tag:        n.Tag,
		Text:       n.Text,
		Src:        n.Src,
		Markup:     n.Markup,
		Attrs:      maps.Clone(n.Attrs),
		RepeatItem: n.RepeatItem,
		Source:     n.Source,
		ViewMode:   n.ViewMode,
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, fromNode(c))
	}
	for _, it := range n.Items {
		d.Items = append(d.Items, fromNode(it))
	}
	for _, r := range n.Records {
		d.Records = append(d.Records, maps.Clone(map[string]any(r)))
	}
	for _, c := range n.Columns {
		d.Columns = append(d.Columns, columnDTO(c))
	}
	return d
}

// toNode converts d back into a node. path locates d in errors.
func toNode(d *nodeDTO, path string) (*tree.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingNode)
	}
	kind, ok := tree.ParseKind(d.Kind)
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownKind, d.Kind)
	}

	n := tree.New(kind, d.ID)
	n.Tag = d.Tag
	n.Text = d.Text
	n.Src = d.Src
	n.Markup = d.Markup
	n.Attrs = maps.Clone(d.Attrs)
	n.RepeatItem = d.RepeatItem
	n.Source = d.Source
	n.ViewMode = d.ViewMode

	for i, c := range d.Children {
		child, err := toNode(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	for i, it := range d.Items {
		item, err := toNode(it, fmt.Sprintf("%s.items[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, item)
	}
	for _, r := range d.Records {
		n.Records = append(n.Records, tree.Record(r))
	}
	for _, c := range d.Columns {
		n.Columns = append(n.Columns, tree.Column(c))
	}
	return n, nil
}
