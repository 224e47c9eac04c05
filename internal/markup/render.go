package markup

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/pagecraft/internal/tree"
)

// ErrRootNotElement indicates Render was given a root that cannot become
// the page body.
var ErrRootNotElement = errors.New("root must be an element")

// Render writes root as an HTML page. The root becomes the <body>.
func Render(w io.Writer, root *tree.Node) error {
	if root == nil || root.Kind() != tree.KindElement {
		return ErrRootNotElement
	}

	body, err := element(root)
	if err != nil {
		return err
	}
	body.Data, body.DataAtom = "body", atom.Body

	head := &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "meta",
		DataAtom: atom.Meta,
		Attr:     []html.Attribute{{Key: "charset", Val: "utf-8"}},
	})

	page := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	page.AppendChild(head)
	page.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(page)

	return html.Render(w, doc)
}

func newElement(tag string, attrs ...html.Attribute) *html.Node {
	if tag == "" {
		tag = "div"
	}
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func render(n *tree.Node) (*html.Node, error) {
	switch n.Kind() {
	case tree.KindText:
		span := newElement("span", attr(AttrID, n.ID), attr(AttrKind, "text"))
		span.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		return span, nil

	case tree.KindMedia:
		extra := sortedAttrs(extraAttrs(n.Attrs, mediaAttrs...))
		if n.Markup == "" {
			img := newElement("img", attr(AttrID, n.ID), attr(AttrKind, "media"), attr("src", n.Src))
			img.Attr = append(img.Attr, extra...)
			return img, nil
		}
		span := newElement("span", attr(AttrID, n.ID), attr(AttrKind, "media"))
		if n.Src != "" {
			span.Attr = append(span.Attr, attr(AttrSrc, n.Src))
		}
		span.Attr = append(span.Attr, extra...)
		span.AppendChild(&html.Node{Type: html.RawNode, Data: n.Markup})
		return span, nil

	case tree.KindDataBound:
		return dataBound(n)

	case tree.KindElement, tree.KindRepeatContainer:
		return element(n)
	}
	return nil, fmt.Errorf("node %s: cannot render kind %s", n.ID, n.Kind())
}

func element(n *tree.Node) (*html.Node, error) {
	el := newElement(n.Tag, attr(AttrID, n.ID))
	if n.Kind() == tree.KindRepeatContainer {
		el.Attr = append(el.Attr, attr(AttrKind, "repeat-container"))
	}
	if n.RepeatItem != "" {
		el.Attr = append(el.Attr, attr(AttrItem, n.RepeatItem))
	}
	el.Attr = append(el.Attr, sortedAttrs(n.Attrs)...)

	for _, list := range [][]*tree.Node{n.Children, n.Items} {
		for _, c := range list {
			child, err := render(c)
			if err != nil {
				return nil, err
			}
			el.AppendChild(child)
		}
	}
	return el, nil
}

func dataBound(n *tree.Node) (*html.Node, error) {
	el := newElement(n.Tag,
		attr(AttrID, n.ID),
		attr(AttrKind, "data-bound"),
		attr(AttrSource, n.Source),
	)
	if n.ViewMode != "" {
		el.Attr = append(el.Attr, attr(AttrView, n.ViewMode))
	}
	if len(n.Records) > 0 {
		raw, err := json.Marshal(n.Records)
		if err != nil {
			return nil, fmt.Errorf("node %s: records: %w", n.ID, err)
		}
		el.Attr = append(el.Attr, attr(AttrRecords, string(raw)))
	}
	if len(n.Columns) > 0 {
		cols := make([]columnJSON, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = columnJSON(c)
		}
		raw, err := json.Marshal(cols)
		if err != nil {
			return nil, fmt.Errorf("node %s: columns: %w", n.ID, err)
		}
		el.Attr = append(el.Attr, attr(AttrColumns, string(raw)))
	}
	el.Attr = append(el.Attr, sortedAttrs(extraAttrs(n.Attrs, dataBoundAttrs...))...)
	return el, nil
}

func sortedAttrs(m map[string]string) []html.Attribute {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]html.Attribute, len(keys))
	for i, k := range keys {
		out[i] = attr(k, m[k])
	}
	return out
}
