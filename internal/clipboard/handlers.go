package clipboard

import (
	"time"

	"github.com/dshills/pagecraft/internal/tree"
)

// Built-in handler kinds.
const (
	KindSection    = "section"
	KindRepeatItem = "repeat-item"
	KindMedia      = "media"
	KindText       = "text"
	KindElement    = "element"
)

// DefaultHandlers returns the built-in handlers in registration order, from
// the generic element fallback to the most specific section handler. A nil
// clock uses time.Now.
func DefaultHandlers(now func() time.Time) []Handler {
	return []Handler{
		&ElementHandler{base{kind: KindElement, now: now}},
		&TextHandler{base{kind: KindText, now: now}},
		&MediaHandler{base{kind: KindMedia, now: now}},
		&RepeatItemHandler{base{kind: KindRepeatItem, now: now}},
		&SectionHandler{base{kind: KindSection, now: now}},
	}
}

// nearest returns the closest node on the path from root to id, including
// the node itself, that satisfies pred.
func nearest(root *tree.Node, id string, pred func(*tree.Node) bool) *tree.Node {
	path := tree.Path(root, id)
	for i := len(path) - 1; i >= 0; i-- {
		if pred(path[i]) {
			return path[i]
		}
	}
	return nil
}

// SectionHandler copies whole sections and pastes them after the target
// section, or at the end of the section list when nothing is targeted.
type SectionHandler struct{ base }

// CanHandle accepts section elements.
func (h *SectionHandler) CanHandle(node *tree.Node) bool {
	return node.IsSection()
}

// CanPaste accepts section payloads with any target.
func (h *SectionHandler) CanPaste(_ *tree.Node, data Data) bool {
	return data.Payload.IsSection()
}

// Paste inserts a fresh section clone.
func (h *SectionHandler) Paste(target *tree.Node, data Data, ctx PasteContext) Result {
	if !data.Payload.IsSection() {
		return failed(ErrIncompatible)
	}
	clone := freshClone(data, ctx)

	if target != nil {
		sec := nearest(ctx.Root, target.ID, (*tree.Node).IsSection)
		if sec != nil {
			if root, ok := tree.InsertAfter(ctx.Root, sec.ID, clone); ok {
				return Result{Success: true, Tree: root, PastedID: clone.ID}
			}
		}
	}

	parentID := ctx.Root.ID
	if parent, _ := tree.Sections(ctx.Root); parent != nil {
		parentID = parent.ID
	}
	root, ok := tree.Insert(ctx.Root, parentID, tree.SlotChildren, -1, clone)
	if !ok {
		return failed(ErrInvalidTarget)
	}
	return Result{Success: true, Tree: root, PastedID: clone.ID}
}

// RepeatItemHandler copies repeat items and pastes them into a repeat
// container, after the targeted item or at the end of the targeted container.
type RepeatItemHandler struct{ base }

// CanHandle accepts repeat items.
func (h *RepeatItemHandler) CanHandle(node *tree.Node) bool {
	return node.IsRepeatItem()
}

// CanPaste accepts repeat item payloads targeting an item or a container.
func (h *RepeatItemHandler) CanPaste(target *tree.Node, data Data) bool {
	if !data.Payload.IsRepeatItem() || target == nil {
		return false
	}
	return target.IsRepeatItem() || target.Kind() == tree.KindRepeatContainer
}

// Paste inserts a fresh item clone. The payload must have the same shape as
// the container's template item.
func (h *RepeatItemHandler) Paste(target *tree.Node, data Data, ctx PasteContext) Result {
	if !data.Payload.IsRepeatItem() {
		return failed(ErrIncompatible)
	}
	if target == nil {
		return failed(ErrInvalidTarget)
	}

	var container *tree.Node
	after := ""
	if target.Kind() == tree.KindRepeatContainer {
		container = target
	} else if item := nearest(ctx.Root, target.ID, (*tree.Node).IsRepeatItem); item != nil {
		if loc, ok := tree.FindParent(ctx.Root, item.ID); ok && loc.Slot == tree.SlotItems {
			container = loc.Parent
			after = item.ID
		}
	}
	if container == nil {
		return failed(ErrInvalidTarget)
	}
	if len(container.Items) > 0 && !tree.SameShape(container.Items[0], data.Payload) {
		return failed(ErrIncompatible)
	}

	clone := freshClone(data, ctx)
	var root *tree.Node
	var ok bool
	if after != "" {
		root, ok = tree.InsertAfter(ctx.Root, after, clone)
	} else {
		root, ok = tree.Insert(ctx.Root, container.ID, tree.SlotItems, -1, clone)
	}
	if !ok {
		return failed(ErrInvalidTarget)
	}
	return Result{Success: true, Tree: root, PastedID: clone.ID}
}

// MediaHandler copies media content and pastes it into a target media slot,
// replacing the slot's source and markup while keeping the slot itself.
type MediaHandler struct{ base }

// CanHandle accepts media nodes.
func (h *MediaHandler) CanHandle(node *tree.Node) bool {
	return node.Kind() == tree.KindMedia
}

// CanPaste accepts media payloads onto media targets.
func (h *MediaHandler) CanPaste(target *tree.Node, data Data) bool {
	return data.Payload.Kind() == tree.KindMedia && target.Kind() == tree.KindMedia
}

// Paste fills the target media slot from the payload.
func (h *MediaHandler) Paste(target *tree.Node, data Data, ctx PasteContext) Result {
	if !h.CanPaste(target, data) {
		return failed(ErrInvalidTarget)
	}
	clone := freshClone(data, ctx)
	root := tree.Update(ctx.Root, target.ID, func(n *tree.Node) *tree.Node {
		c := n.Copy()
		c.Src = clone.Src
		c.Markup = clone.Markup
		for k, v := range clone.Attrs {
			if c.Attrs == nil {
				c.Attrs = make(map[string]string, len(clone.Attrs))
			}
			c.Attrs[k] = v
		}
		return c
	})
	return Result{Success: true, Tree: root, PastedID: target.ID}
}

// TextHandler copies text nodes. Pasting onto a text node replaces its
// content; pasting onto a container element appends a fresh text node.
type TextHandler struct{ base }

// CanHandle accepts text nodes.
func (h *TextHandler) CanHandle(node *tree.Node) bool {
	return node.Kind() == tree.KindText
}

// CanPaste accepts text payloads onto text nodes or non-atomic elements.
func (h *TextHandler) CanPaste(target *tree.Node, data Data) bool {
	if data.Payload.Kind() != tree.KindText || target == nil {
		return false
	}
	return target.Kind() == tree.KindText || (target.Kind() == tree.KindElement && !target.IsAtomic())
}

// Paste replaces or appends text.
func (h *TextHandler) Paste(target *tree.Node, data Data, ctx PasteContext) Result {
	if !h.CanPaste(target, data) {
		return failed(ErrInvalidTarget)
	}
	clone := freshClone(data, ctx)
	if target.Kind() == tree.KindText {
		root := tree.Update(ctx.Root, target.ID, func(n *tree.Node) *tree.Node {
			c := n.Copy()
			c.Text = clone.Text
			return c
		})
		return Result{Success: true, Tree: root, PastedID: target.ID}
	}
	root, ok := tree.Insert(ctx.Root, target.ID, tree.SlotChildren, -1, clone)
	if !ok {
		return failed(ErrInvalidTarget)
	}
	return Result{Success: true, Tree: root, PastedID: clone.ID}
}

// ElementHandler is the generic fallback for element-like nodes. It pastes
// a fresh clone directly after the target.
type ElementHandler struct{ base }

// CanHandle accepts elements, repeat containers and data-bound nodes.
func (h *ElementHandler) CanHandle(node *tree.Node) bool {
	switch node.Kind() {
	case tree.KindElement, tree.KindRepeatContainer, tree.KindDataBound:
		return true
	}
	return false
}

// CanPaste accepts any payload with a target.
func (h *ElementHandler) CanPaste(target *tree.Node, data Data) bool {
	return target != nil && data.Payload != nil
}

// Paste inserts the clone after target, or as the last child when target
// is the root.
func (h *ElementHandler) Paste(target *tree.Node, data Data, ctx PasteContext) Result {
	if !h.CanPaste(target, data) {
		return failed(ErrInvalidTarget)
	}
	clone := freshClone(data, ctx)
	after := target.ID
	// Only repeat items may live in an Items collection.
	if loc, ok := tree.FindParent(ctx.Root, after); ok && loc.Slot == tree.SlotItems && !clone.IsRepeatItem() {
		after = loc.Parent.ID
	}
	if root, ok := tree.InsertAfter(ctx.Root, after, clone); ok {
		return Result{Success: true, Tree: root, PastedID: clone.ID}
	}
	if after == ctx.Root.ID {
		root, _ := tree.Insert(ctx.Root, target.ID, tree.SlotChildren, -1, clone)
		return Result{Success: true, Tree: root, PastedID: clone.ID}
	}
	return failed(ErrInvalidTarget)
}
