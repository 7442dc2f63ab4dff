package rope

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/stack"
)

// Insert returns a new rope with other spliced in before index i.
// Only the nodes on the path to i are rebuilt; all other subtrees are shared.
func (n *Node) Insert(other *Node, i int) (*Node, error) {
	if err := n.checkOffset(i); err != nil {
		return nil, err
	}
	switch {
	case other == nil:
		return n, nil
	case n == nil:
		return other, nil
	}

	path, cur, at := n.descend(i)
	var res *Node
	switch {
	case at == 0:
		res = internal(other, cur)
	case at == len(cur.fragment):
		res = internal(cur, other)
	default:
		res = internal(internal(leaf(cur.fragment[:at]), other), leaf(cur.fragment[at:]))
	}

	for path.Size() > 0 {
		s := path.Pop()
		if s.right {
			res = internal(s.node.left, res)
		} else {
			res = internal(res, s.node.right)
		}
	}
	return res, nil
}

// InsertString returns a new rope with s inserted before index i.
func (n *Node) InsertString(s string, i int) (*Node, error) {
	if s == "" {
		if err := n.checkOffset(i); err != nil {
			return nil, err
		}
		return n, nil
	}
	return n.Insert(leaf([]rune(s)), i)
}

// Delete returns a new rope without the rune at index i.
// Deleting the last rune yields the empty rope.
func (n *Node) Delete(i int) (*Node, error) {
	if i < 0 || i >= n.Len() {
		return nil, fmt.Errorf("%w: index %d in rope of length %d", ErrIndexOutOfBounds, i, n.Len())
	}

	path, cur, at := n.descend(i)
	var res *Node
	if len(cur.fragment) > 1 {
		res = leaf(slices.Concat(cur.fragment[:at], cur.fragment[at+1:]))
	}

	for path.Size() > 0 {
		s := path.Pop()
		switch {
		case s.right && res == nil:
			res = s.node.left
		case s.right:
			res = rebuild(s.node.left, res)
		case res == nil:
			res = s.node.right
		default:
			res = rebuild(res, s.node.right)
		}
	}
	return res, nil
}

// rebuild joins the children of a node touched by Delete. A node whose left
// side has shrunk to a single rune next to a leaf is folded into one leaf.
func rebuild(left, right *Node) *Node {
	if left.length == 1 && right.IsLeaf() {
		return leaf(slices.Concat(left.fragment, right.fragment))
	}
	return internal(left, right)
}

// DeleteRange returns a new rope without the runes in [start, end).
func (n *Node) DeleteRange(start, end int) (*Node, error) {
	if err := IV(start, end).within(n.Len()); err != nil {
		return nil, err
	}
	if start == end {
		return n, nil
	}
	return Concat(n.head(start), n.tail(end)), nil
}

// descend walks to the leaf holding offset i, routing right when
// i >= weight. It returns the internal nodes passed, the leaf and the offset
// inside it.
func (n *Node) descend(i int) (*stack.Stack[step], *Node, int) {
	path := stack.New[step]()
	cur := n
	for !cur.IsLeaf() {
		if i >= cur.weight {
			path.Push(step{cur, true})
			i -= cur.weight
			cur = cur.right
		} else {
			path.Push(step{cur, false})
			cur = cur.left
		}
	}
	return path, cur, i
}
