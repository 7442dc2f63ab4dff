package rope

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/stack"
)

// CharAt returns the rune at index i.
func (n *Node) CharAt(i int) (rune, error) {
	if i < 0 || i >= n.Len() {
		return 0, fmt.Errorf("%w: index %d in rope of length %d", ErrIndexOutOfBounds, i, n.Len())
	}

	leaf, at := n.leafForOffset(i)
	return leaf.fragment[at], nil
}

// leafForOffset descends to the leaf holding index i, which must be in range.
func (n *Node) leafForOffset(i int) (*Node, int) {
	cur := n
	for !cur.IsLeaf() {
		if i >= cur.weight {
			i -= cur.weight
			cur = cur.right
		} else {
			cur = cur.left
		}
	}
	return cur, i
}

// Leaves calls fn on every leaf from left to right until fn returns false.
// The walk keeps its own stack, so depth is bounded by memory, not by the
// goroutine stack.
func (n *Node) Leaves(fn func(leaf *Node) bool) {
	if n == nil {
		return
	}

	todo := stack.New[*Node]()
	todo.Push(n)
	for todo.Size() > 0 {
		cur := todo.Pop()
		if cur.IsLeaf() {
			if !fn(cur) {
				return
			}
			continue
		}
		todo.Push(cur.right)
		todo.Push(cur.left)
	}
}

// Scan calls fn with every rune from offset start on, and its offset,
// until fn returns false.
func (n *Node) Scan(start int, fn func(offset int, r rune) bool) error {
	if err := n.checkOffset(start); err != nil {
		return err
	}

	offset := start
	leaves := newLeafCursor(n.tail(start))
	for fragment := leaves.next(); fragment != nil; fragment = leaves.next() {
		for _, r := range fragment {
			if !fn(offset, r) {
				return nil
			}
			offset++
		}
	}
	return nil
}

// Collect returns the contents of the rope as a string.
func (n *Node) Collect() string {
	if n.IsLeaf() {
		return string(n.fragment)
	}

	var builder strings.Builder
	builder.Grow(n.Len())
	n.Leaves(func(leaf *Node) bool {
		for _, r := range leaf.fragment {
			builder.WriteRune(r)
		}
		return true
	})
	return builder.String()
}

// String returns the contents of the rope, like Collect.
func (n *Node) String() string {
	return n.Collect()
}

// Runes returns the contents of the rope as a fresh rune slice.
func (n *Node) Runes() []rune {
	rs := make([]rune, 0, n.Len())
	n.Leaves(func(leaf *Node) bool {
		rs = append(rs, leaf.fragment...)
		return true
	})
	return rs
}

// Equal reports whether both ropes hold the same runes, whatever their shape.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n.Len() != other.Len() {
		return false
	}

	a, b := newLeafCursor(n), newLeafCursor(other)
	var x, y []rune
	for {
		if len(x) == 0 {
			x = a.next()
		}
		if len(y) == 0 {
			y = b.next()
		}
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		k := min(len(x), len(y))
		if !slices.Equal(x[:k], y[:k]) {
			return false
		}
		x, y = x[k:], y[k:]
	}
}

// leafCursor yields the fragments of a rope one leaf at a time.
type leafCursor struct {
	todo *stack.Stack[*Node]
}

func newLeafCursor(n *Node) *leafCursor {
	c := &leafCursor{todo: stack.New[*Node]()}
	if n != nil {
		c.todo.Push(n)
	}
	return c
}

// next returns the fragment of the next leaf, or nil when the walk is over.
func (c *leafCursor) next() []rune {
	for c.todo.Size() > 0 {
		cur := c.todo.Pop()
		if cur.IsLeaf() {
			return cur.fragment
		}
		c.todo.Push(cur.right)
		c.todo.Push(cur.left)
	}
	return nil
}

// Debug renders the tree as (weight,data,(left),(right)) for diagnostics.
func (n *Node) Debug() string {
	var b strings.Builder
	n.debug(&b)
	return b.String()
}

func (n *Node) debug(b *strings.Builder) {
	if n == nil {
		return
	}
	fmt.Fprintf(b, "(%d,", n.weight)
	if n.IsLeaf() {
		b.WriteString(string(n.fragment))
	}
	b.WriteString(",(")
	n.left.debug(b)
	b.WriteString("),(")
	n.right.debug(b)
	b.WriteString("))")
}
