package clipboard

import (
	"time"

	"github.com/dshills/pagecraft/internal/tree"
)

// PasteContext carries what a handler needs to insert a payload.
type PasteContext struct {
	// Root is the current document root.
	Root *tree.Node

	// IDs generates ids for the pasted clone. Nil uses UUIDs.
	IDs tree.IDGenerator
}

// Result is the outcome of a paste.
type Result struct {
	Success bool

	// Tree is the new document root when Success is true.
	Tree *tree.Node

	// PastedID is the id of the inserted or updated node.
	PastedID string

	// Err explains a failure.
	Err error
}

func failed(err error) Result {
	return Result{Err: err}
}

// Handler implements copy, cut and paste for one content kind.
type Handler interface {
	// Kind returns the clipboard kind this handler produces.
	Kind() string

	// CanHandle reports whether the handler can copy or cut the node.
	CanHandle(node *tree.Node) bool

	// CanPaste reports whether the data can be pasted relative to target.
	// Target may be nil when nothing is selected.
	CanPaste(target *tree.Node, data Data) bool

	// Copy returns clipboard data for the node.
	Copy(node *tree.Node) Data

	// Cut returns clipboard data for the node. Removing or clearing the
	// node itself is the caller's job.
	Cut(node *tree.Node) Data

	// Paste inserts a fresh-id clone of data.Payload relative to target.
	Paste(target *tree.Node, data Data, ctx PasteContext) Result
}

// base implements Kind, Copy and Cut for the built-in handlers.
type base struct {
	kind string
	now  func() time.Time
}

func (b base) Kind() string {
	return b.kind
}

func (b base) Copy(node *tree.Node) Data {
	return b.data(node, OpCopy)
}

func (b base) Cut(node *tree.Node) Data {
	return b.data(node, OpCut)
}

func (b base) data(node *tree.Node, op Operation) Data {
	now := b.now
	if now == nil {
		now = time.Now
	}
	return Data{
		Kind:      b.kind,
		Payload:   node,
		Operation: op,
		Timestamp: now(),
	}
}

func freshClone(data Data, ctx PasteContext) *tree.Node {
	return tree.CloneWithFreshIDs(data.Payload, ctx.IDs)
}
