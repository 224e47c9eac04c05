package tree

import "slices"

// Slot identifies which collection of a parent owns a node.
type Slot uint8

const (
	// SlotNone means the node has no parent (it is the root or absent).
	SlotNone Slot = iota
	// SlotChildren is the Children collection.
	SlotChildren
	// SlotItems is the Items collection.
	SlotItems
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotChildren:
		return "children"
	case SlotItems:
		return "items"
	default:
		return "none"
	}
}

// Find returns the first node with the given id, searching depth first
// through Children and then Items. Returns nil if no node matches.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if n := Find(c, id); n != nil {
			return n
		}
	}
	for _, c := range root.Items {
		if n := Find(c, id); n != nil {
			return n
		}
	}
	return nil
}

// Location describes where a node sits inside its parent.
type Location struct {
	Parent *Node
	Slot   Slot
	Index  int
}

// FindParent returns the location of the node with the given id.
// The second result is false when the id is absent or names the root.
func FindParent(root *Node, id string) (Location, bool) {
	if root == nil {
		return Location{}, false
	}
	for i, c := range root.Children {
		if c.ID == id {
			return Location{Parent: root, Slot: SlotChildren, Index: i}, true
		}
	}
	for i, c := range root.Items {
		if c.ID == id {
			return Location{Parent: root, Slot: SlotItems, Index: i}, true
		}
	}
	for _, c := range root.Children {
		if loc, ok := FindParent(c, id); ok {
			return loc, true
		}
	}
	for _, c := range root.Items {
		if loc, ok := FindParent(c, id); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// Path returns the nodes from root down to the node with the given id,
// inclusive at both ends. Returns nil if the id is absent.
func Path(root *Node, id string) []*Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return []*Node{root}
	}
	for _, coll := range [][]*Node{root.Children, root.Items} {
		for _, c := range coll {
			if p := Path(c, id); p != nil {
				return append([]*Node{root}, p...)
			}
		}
	}
	return nil
}

// IsAncestor reports whether the node ancestorID is a strict ancestor of
// the node id.
func IsAncestor(root *Node, ancestorID, id string) bool {
	if ancestorID == id {
		return false
	}
	anc := Find(root, ancestorID)
	if anc == nil {
		return false
	}
	return Find(anc, id) != nil
}

// Update replaces the node with the given id by fn's result. Only the nodes
// on the path from the root to the match are rebuilt; all other subtrees are
// shared with the input. If no node matches, root is returned unchanged.
func Update(root *Node, id string, fn func(*Node) *Node) *Node {
	if root == nil {
		return nil
	}
	out, _ := update(root, id, fn)
	return out
}

func update(n *Node, id string, fn func(*Node) *Node) (*Node, bool) {
	if n.ID == id {
		return fn(n), true
	}
	for i, c := range n.Children {
		if r, ok := update(c, id, fn); ok {
			cp := n.Copy()
			cp.Children[i] = r
			return cp, true
		}
	}
	for i, c := range n.Items {
		if r, ok := update(c, id, fn); ok {
			cp := n.Copy()
			cp.Items[i] = r
			return cp, true
		}
	}
	return n, false
}

// Remove returns a tree without the node with the given id. The root itself
// cannot be removed. If no node matches, root is returned unchanged.
func Remove(root *Node, id string) *Node {
	loc, ok := FindParent(root, id)
	if !ok {
		return root
	}
	return Update(root, loc.Parent.ID, func(p *Node) *Node {
		cp := p.Copy()
		switch loc.Slot {
		case SlotChildren:
			cp.Children = slices.Delete(cp.Children, loc.Index, loc.Index+1)
		case SlotItems:
			cp.Items = slices.Delete(cp.Items, loc.Index, loc.Index+1)
		}
		return cp
	})
}

// Insert places node into the given collection of the parent at index.
// An index outside the collection appends. The second result is false if
// the parent is absent.
func Insert(root *Node, parentID string, slot Slot, index int, node *Node) (*Node, bool) {
	if Find(root, parentID) == nil {
		return root, false
	}
	out := Update(root, parentID, func(p *Node) *Node {
		cp := p.Copy()
		switch slot {
		case SlotItems:
			cp.Items = insertAt(cp.Items, index, node)
		default:
			cp.Children = insertAt(cp.Children, index, node)
		}
		return cp
	})
	return out, true
}

// InsertAfter places node directly after the sibling with the given id, in
// the same collection that holds the sibling. The second result is false if
// the sibling is absent or is the root.
func InsertAfter(root *Node, siblingID string, node *Node) (*Node, bool) {
	loc, ok := FindParent(root, siblingID)
	if !ok {
		return root, false
	}
	return Insert(root, loc.Parent.ID, loc.Slot, loc.Index+1, node)
}

func insertAt(list []*Node, index int, node *Node) []*Node {
	if index < 0 || index > len(list) {
		index = len(list)
	}
	return slices.Insert(list, index, node)
}

// Walk visits every node depth first in the same order as Find. Returning
// false from fn stops the walk.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	for _, c := range n.Items {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// IDs returns every id in the tree in walk order.
func IDs(root *Node) []string {
	var ids []string
	Walk(root, func(n *Node, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Sections returns the first node whose children include section elements,
// together with those section children in order.
func Sections(root *Node) (*Node, []*Node) {
	var parent *Node
	Walk(root, func(n *Node, _ int) bool {
		if slices.ContainsFunc(n.Children, (*Node).IsSection) {
			parent = n
			return false
		}
		return true
	})
	if parent == nil {
		return nil, nil
	}
	var sections []*Node
	for _, c := range parent.Children {
		if c.IsSection() {
			sections = append(sections, c)
		}
	}
	return parent, sections
}
