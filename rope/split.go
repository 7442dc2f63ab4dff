package rope

import (
	"fmt"

	"github.com/zyedidia/generic/stack"
)

// step records one internal node passed on the way down to a leaf, and the
// side that was taken.
type step struct {
	node  *Node
	right bool
}

// Tail returns the runes from index i to the end.
// Tail(0) is the rope itself and Tail(Len()) is the empty rope.
func (n *Node) Tail(i int) (*Node, error) {
	if err := n.checkOffset(i); err != nil {
		return nil, err
	}
	return n.tail(i), nil
}

func (n *Node) tail(i int) *Node {
	if i == n.Len() {
		return nil
	}

	path := stack.New[step]()
	cur := n
	for i > 0 && !cur.IsLeaf() {
		if i >= cur.weight {
			path.Push(step{cur, true})
			i -= cur.weight
			cur = cur.right
		} else {
			path.Push(step{cur, false})
			cur = cur.left
		}
	}

	res := cur
	if i > 0 {
		res = leaf(cur.fragment[i:])
	}
	// Everything right of the cut is kept as is; left subtrees passed on the
	// way down are dropped.
	for path.Size() > 0 {
		s := path.Pop()
		if !s.right {
			res = internal(res, s.node.right)
		}
	}
	return res
}

// Head returns the runes before index i.
// Head(0) is the empty rope and Head(Len()) is the rope itself.
func (n *Node) Head(i int) (*Node, error) {
	if err := n.checkOffset(i); err != nil {
		return nil, err
	}
	return n.head(i), nil
}

func (n *Node) head(i int) *Node {
	if i == 0 {
		return nil
	}

	path := stack.New[step]()
	cur := n
	var res *Node
	for {
		if i == cur.length {
			res = cur
			break
		}
		if cur.IsLeaf() {
			res = leaf(cur.fragment[:i])
			break
		}
		if i < cur.weight {
			path.Push(step{cur, false})
			cur = cur.left
			continue
		}
		if i == cur.weight {
			res = cur.left
			break
		}
		path.Push(step{cur, true})
		i -= cur.weight
		cur = cur.right
	}

	for path.Size() > 0 {
		s := path.Pop()
		if s.right {
			res = internal(s.node.left, res)
		}
	}
	return res
}

// Split returns Head(i) and Tail(i).
func (n *Node) Split(i int) (*Node, *Node, error) {
	if err := n.checkOffset(i); err != nil {
		return nil, nil, err
	}
	return n.head(i), n.tail(i), nil
}

// Subrope returns the runes in [start, end).
func (n *Node) Subrope(start, end int) (*Node, error) {
	if err := IV(start, end).within(n.Len()); err != nil {
		return nil, err
	}
	return n.tail(start).head(end - start), nil
}

// Slice returns the runes in iv as a rope.
func (n *Node) Slice(iv Interval) (*Node, error) {
	return n.Subrope(iv.Lo, iv.Hi)
}

// checkOffset accepts the Len()+1 cut points 0..Len().
func (n *Node) checkOffset(i int) error {
	if i < 0 || i > n.Len() {
		return fmt.Errorf("%w: offset %d in rope of length %d", ErrIndexOutOfBounds, i, n.Len())
	}
	return nil
}
