// Package tree provides the document node model and pure traversal utilities.
//
// A document is a tree of *Node values. Each node carries a Kind tag that is
// fixed at creation (text, media, element, repeat container, data bound) and
// a globally unique ID.
//
// # Persistence
//
// Nodes reachable from a root are treated as immutable. Update, Remove and
// Insert return a new root; only the nodes on the path from the root to the
// change are reallocated and every other subtree is shared:
//
//	next := tree.Update(root, "title", func(n *tree.Node) *tree.Node {
//	    c := n.Copy()
//	    c.Text = "Hello"
//	    return c
//	})
//
// Keeping the previous root is therefore a complete, O(1) snapshot of the
// document, which the command engine relies on for undo.
//
// # Lookup Failures
//
// Find returns nil and the mutating helpers return their input unchanged
// when an id is absent. Callers that require the node report ErrNotFound.
//
// # Fresh Identities
//
// CloneWithFreshIDs deep-copies a subtree and regenerates every id and
// repeat tag, so pasting or duplicating the same payload repeatedly never
// produces colliding ids.
package tree
