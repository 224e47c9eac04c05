package tree

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces globally unique node ids.
type IDGenerator func() string

// UUIDGenerator returns random UUID strings.
func UUIDGenerator() IDGenerator {
	return uuid.NewString
}

// SequenceGenerator returns ids of the form prefix-1, prefix-2, ...
// It is safe for concurrent use.
func SequenceGenerator(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// repeatTagPrefix keeps regenerated repeat tags distinguishable from ids.
const repeatTagPrefix = "item-"

// CloneWithFreshIDs returns a deep copy of node in which every id, in the
// root and all descendants including Items, is replaced by a value from gen.
// Repeat item tags are regenerated as well. A nil gen uses UUIDGenerator.
func CloneWithFreshIDs(node *Node, gen IDGenerator) *Node {
	if node == nil {
		return nil
	}
	if gen == nil {
		gen = UUIDGenerator()
	}
	return cloneFresh(node, gen)
}

func cloneFresh(n *Node, gen IDGenerator) *Node {
	c := DeepCopy(n)
	Walk(c, func(m *Node, _ int) bool {
		m.ID = gen()
		if m.RepeatItem != "" {
			m.RepeatItem = repeatTagPrefix + gen()
		}
		return true
	})
	return c
}

// DeepCopy returns a copy of the whole subtree sharing no nodes with the
// input. Ids are preserved.
func DeepCopy(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := n.Copy()
	for i, ch := range c.Children {
		c.Children[i] = DeepCopy(ch)
	}
	for i, it := range c.Items {
		c.Items[i] = DeepCopy(it)
	}
	for i, r := range c.Records {
		c.Records[i] = maps.Clone(r)
	}
	c.Columns = slices.Clone(c.Columns)
	return c
}
