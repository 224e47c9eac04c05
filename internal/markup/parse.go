// Package markup converts between HTML and document trees.
//
// Rendered HTML carries the node model in data attributes so a rendered
// page parses back to the same tree:
//
//	data-id     node id
//	data-kind   text, media, repeat-container or data-bound
//	data-item   repeat item tag
//	data-source data-bound source; data-view, data-records and
//	            data-columns hold its view mode and fetched data
//
// Plain HTML without these attributes is accepted too: text becomes text
// nodes, <img> and <svg> become media, everything else becomes elements,
// and ids are generated.
package markup

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/pagecraft/internal/tree"
)

// Attributes that carry the node model.
const (
	AttrID      = "data-id"
	AttrKind    = "data-kind"
	AttrItem    = "data-item"
	AttrSource  = "data-source"
	AttrView    = "data-view"
	AttrRecords = "data-records"
	AttrColumns = "data-columns"
	AttrSrc     = "data-src"
)

// Option configures Parse.
type Option func(*parser)

// WithIDGenerator sets the generator for nodes without a data-id.
func WithIDGenerator(gen tree.IDGenerator) Option {
	return func(p *parser) {
		if gen != nil {
			p.ids = gen
		}
	}
}

type parser struct {
	ids tree.IDGenerator
}

// Parse reads an HTML page and returns the tree rooted at its <body>. The
// result is validated.
func Parse(r io.Reader, opts ...Option) (*tree.Node, error) {
	p := &parser{ids: tree.UUIDGenerator()}
	for _, opt := range opts {
		opt(p)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return nil, fmt.Errorf("parse html: no body element")
	}

	root, err := p.element(body)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(root); err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return root, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func (p *parser) id(attrs map[string]string) string {
	if id, ok := attrs[AttrID]; ok && id != "" {
		delete(attrs, AttrID)
		return id
	}
	delete(attrs, AttrID)
	return p.ids()
}

// node converts one HTML node. It returns nil for nodes that have no
// counterpart in the tree (comments, whitespace).
func (p *parser) node(n *html.Node) (*tree.Node, error) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil, nil
		}
		return tree.NewText(p.ids(), n.Data), nil
	case html.ElementNode:
		return p.element(n)
	}
	return nil, nil
}

func (p *parser) element(n *html.Node) (*tree.Node, error) {
	attrs := attrMap(n)
	kind := attrs[AttrKind]
	delete(attrs, AttrKind)

	switch {
	case kind == "text":
		node := tree.NewText(p.id(attrs), textContent(n))
		return node, nil

	case kind == "media" || n.DataAtom == atom.Img:
		node := tree.NewMedia(p.id(attrs), attrs["src"])
		if src, ok := attrs[AttrSrc]; ok {
			node.Src = src
		}
		if n.DataAtom != atom.Img {
			markup, err := renderChildren(n)
			if err != nil {
				return nil, err
			}
			node.Markup = markup
		}
		node.Attrs = extraAttrs(attrs, mediaAttrs...)
		return node, nil

	case n.DataAtom == atom.Svg || n.Data == "svg":
		node := tree.NewMedia(p.id(attrs), "")
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		node.Markup = b.String()
		return node, nil

	case kind == "data-bound":
		return p.dataBound(n, attrs)
	}

	var node *tree.Node
	if kind == "repeat-container" {
		node = tree.New(tree.KindRepeatContainer, p.id(attrs))
	} else {
		node = tree.New(tree.KindElement, p.id(attrs))
	}
	node.Tag = n.Data
	if item, ok := attrs[AttrItem]; ok {
		node.RepeatItem = item
		delete(attrs, AttrItem)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child, err := p.node(c)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if node.Kind() == tree.KindRepeatContainer && child.IsRepeatItem() {
			node.Items = append(node.Items, child)
		} else {
			node.Children = append(node.Children, child)
		}
	}

	if len(attrs) > 0 {
		node.Attrs = attrs
	}
	return node, nil
}

func (p *parser) dataBound(n *html.Node, attrs map[string]string) (*tree.Node, error) {
	node := tree.NewDataBound(p.id(attrs), attrs[AttrSource])
	node.Tag = n.Data
	node.ViewMode = attrs[AttrView]

	if raw := attrs[AttrRecords]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &node.Records); err != nil {
			return nil, fmt.Errorf("node %s: %s: %w", node.ID, AttrRecords, err)
		}
	}
	if raw := attrs[AttrColumns]; raw != "" {
		var cols []columnJSON
		if err := json.Unmarshal([]byte(raw), &cols); err != nil {
			return nil, fmt.Errorf("node %s: %s: %w", node.ID, AttrColumns, err)
		}
		for _, c := range cols {
			node.Columns = append(node.Columns, tree.Column(c))
		}
	}
	node.Attrs = extraAttrs(attrs, dataBoundAttrs...)
	return node, nil
}

// Attributes that media and data-bound nodes keep in their own fields.
var (
	mediaAttrs     = []string{AttrID, AttrKind, "src", AttrSrc}
	dataBoundAttrs = []string{AttrID, AttrKind, AttrSource, AttrView, AttrRecords, AttrColumns}
)

// extraAttrs returns the attributes not named in reserved, or nil.
func extraAttrs(attrs map[string]string, reserved ...string) map[string]string {
	var out map[string]string
	for k, v := range attrs {
		if slices.Contains(reserved, k) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[k] = v
	}
	return out
}

type columnJSON struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func renderChildren(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("render markup: %w", err)
		}
	}
	return b.String(), nil
}
