package commands

import (
	"fmt"
	"slices"

	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/tree"
)

// AddItem appends a new item to a repeat container. The item is a clone of
// the container's first item with fresh ids.
type AddItem struct {
	snapshot
	ContainerID string

	// AddedID is the id of the new item after Execute.
	AddedID string
}

// NewAddItem creates an AddItem command.
func NewAddItem(containerID string) *AddItem {
	return &AddItem{ContainerID: containerID}
}

// Name returns "add-item".
func (c *AddItem) Name() string { return "add-item" }

// Description returns a human-readable description.
func (c *AddItem) Description() string { return "Add item" }

// CanExecute requires a container id.
func (c *AddItem) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.ContainerID != ""
}

// Execute appends the item.
func (c *AddItem) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.ContainerID)
		if err != nil {
			return err
		}
		if n.Kind() != tree.KindRepeatContainer {
			return newError(c.Name(), c.ContainerID, ErrWrongKind)
		}
		if len(n.Items) == 0 {
			return newError(c.Name(), c.ContainerID, ErrEmptyTemplate)
		}
		item := tree.CloneWithFreshIDs(n.Items[0], d.IDs())
		root, _ := tree.Insert(d.Root(), c.ContainerID, tree.SlotItems, -1, item)
		d.SetRoot(root)
		c.AddedID = item.ID
		return nil
	})
}

// DeleteNode deletes a node. Container-like nodes are removed from the
// tree; atomic content (text, media, form controls) is cleared in place so
// the slot survives. A selection on the deleted node is cleared.
type DeleteNode struct {
	snapshot
	NodeID string
}

// NewDeleteNode creates a DeleteNode command.
func NewDeleteNode(nodeID string) *DeleteNode {
	return &DeleteNode{NodeID: nodeID}
}

// Name returns "delete-node".
func (c *DeleteNode) Name() string { return "delete-node" }

// Description returns a human-readable description.
func (c *DeleteNode) Description() string { return fmt.Sprintf("Delete %s", c.NodeID) }

// CanExecute requires a node id.
func (c *DeleteNode) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute deletes or clears the node.
func (c *DeleteNode) Execute(d *document.Document) error {
	return c.run(d, document.PartSelection, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		return removeNode(d, c.Name(), n)
	})
}

// MoveSection reorders sections within their parent. From and To are
// positions among the section siblings, not raw child indices; other
// children keep their places.
type MoveSection struct {
	snapshot
	From int
	To   int
}

// NewMoveSection creates a MoveSection command.
func NewMoveSection(from, to int) *MoveSection {
	return &MoveSection{From: from, To: to}
}

// Name returns "move-section".
func (c *MoveSection) Name() string { return "move-section" }

// Description returns a human-readable description.
func (c *MoveSection) Description() string {
	return fmt.Sprintf("Move section %d to %d", c.From, c.To)
}

// Execute moves the section.
func (c *MoveSection) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		parent, sections := tree.Sections(d.Root())
		if parent == nil {
			return newError(c.Name(), "", fmt.Errorf("no sections: %w", tree.ErrNotFound))
		}
		n := len(sections)
		if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
			return newError(c.Name(), "", fmt.Errorf("%w: move %d to %d of %d sections",
				ErrOutOfRange, c.From, c.To, n))
		}

		order := slices.Clone(sections)
		moved := order[c.From]
		order = slices.Delete(order, c.From, c.From+1)
		order = slices.Insert(order, c.To, moved)

		modify(d, parent.ID, func(p *tree.Node) {
			k := 0
			for i, ch := range p.Children {
				if ch.IsSection() {
					p.Children[i] = order[k]
					k++
				}
			}
		})
		return nil
	})
}

// DuplicateNode inserts a fresh-id clone of a repeat item or section
// directly after it.
type DuplicateNode struct {
	snapshot
	NodeID string

	// CopyID is the id of the clone after Execute.
	CopyID string
}

// NewDuplicateNode creates a DuplicateNode command.
func NewDuplicateNode(nodeID string) *DuplicateNode {
	return &DuplicateNode{NodeID: nodeID}
}

// Name returns "duplicate-node".
func (c *DuplicateNode) Name() string { return "duplicate-node" }

// Description returns a human-readable description.
func (c *DuplicateNode) Description() string { return fmt.Sprintf("Duplicate %s", c.NodeID) }

// CanExecute requires a node id.
func (c *DuplicateNode) CanExecute(d *document.Document) bool {
	return c.snapshot.CanExecute(d) && c.NodeID != ""
}

// Execute inserts the clone.
func (c *DuplicateNode) Execute(d *document.Document) error {
	return c.run(d, 0, func() error {
		n, err := lookup(d, c.Name(), c.NodeID)
		if err != nil {
			return err
		}
		if !n.IsRepeatItem() && !n.IsSection() {
			return newError(c.Name(), c.NodeID, ErrWrongKind)
		}
		clone := tree.CloneWithFreshIDs(n, d.IDs())
		root, ok := tree.InsertAfter(d.Root(), c.NodeID, clone)
		if !ok {
			return newError(c.Name(), c.NodeID, ErrRootNode)
		}
		d.SetRoot(root)
		c.CopyID = clone.ID
		return nil
	})
}
