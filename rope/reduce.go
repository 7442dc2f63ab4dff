package rope

import (
	"github.com/cockroachdb/swiss"
	"github.com/sourcegraph/conc/iter"
	"github.com/zyedidia/generic/stack"
)

// A Canonicalizer remembers, for each fragment text, the first leaf it saw
// holding it. Reducing ropes through the same Canonicalizer makes their
// repeated fragments share one leaf.
//
// A Canonicalizer is not safe for concurrent use. Ropes are: reducing
// different ropes with different Canonicalizers may run in parallel.
type Canonicalizer struct {
	leaves *swiss.Map[string, *Node]
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{leaves: swiss.New[string, *Node](64)}
}

// Len returns the number of distinct fragments seen so far.
func (c *Canonicalizer) Len() int {
	return c.leaves.Len()
}

// Reduce returns a rope with the same contents as n in which every leaf is
// the canonical leaf for its text. Subtrees without a replaced leaf are
// returned unchanged.
func (c *Canonicalizer) Reduce(n *Node) *Node {
	if n == nil {
		return nil
	}

	type frame struct {
		node     *Node
		expanded bool
	}
	todo := stack.New[frame]()
	done := stack.New[*Node]()
	todo.Push(frame{n, false})
	for todo.Size() > 0 {
		f := todo.Pop()
		switch {
		case f.node.IsLeaf():
			done.Push(c.canonical(f.node))
		case !f.expanded:
			todo.Push(frame{f.node, true})
			todo.Push(frame{f.node.right, false})
			todo.Push(frame{f.node.left, false})
		default:
			right, left := done.Pop(), done.Pop()
			if left == f.node.left && right == f.node.right {
				done.Push(f.node)
			} else {
				done.Push(internal(left, right))
			}
		}
	}
	return done.Pop()
}

func (c *Canonicalizer) canonical(l *Node) *Node {
	key := string(l.fragment)
	if seen, ok := c.leaves.Get(key); ok {
		return seen
	}
	c.leaves.Put(key, l)
	return l
}

// Reduce deduplicates the leaves of n with a table private to this call.
func (n *Node) Reduce() *Node {
	return NewCanonicalizer().Reduce(n)
}

// ReduceAll reduces independent ropes concurrently. Each rope gets its own
// table, so no leaf is shared between results that was not shared before.
func ReduceAll(ropes []*Node) []*Node {
	return iter.Map(ropes, func(r **Node) *Node {
		return (*r).Reduce()
	})
}
