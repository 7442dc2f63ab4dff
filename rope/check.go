package rope

import (
	"fmt"

	"github.com/zyedidia/generic/stack"
)

// Check walks the whole rope once and verifies that leaves are non-empty,
// internal nodes have two children, and that every cached weight, length
// and newline count matches the subtree below it. It returns ErrCorrupt on
// the first violation.
func (n *Node) Check() error {
	if n == nil {
		return nil
	}

	type frame struct {
		node     *Node
		offset   int
		expanded bool
	}
	// totals of finished subtrees, counted from the fragments alone
	type totals struct {
		runes, newlines int
	}
	todo := stack.New[frame]()
	done := stack.New[totals]()
	todo.Push(frame{n, 0, false})
	for todo.Size() > 0 {
		f := todo.Pop()
		cur := f.node
		switch {
		case cur.IsLeaf():
			if len(cur.fragment) == 0 {
				return fmt.Errorf("%w: empty leaf at offset %d", ErrCorrupt, f.offset)
			}
			if cur.weight != len(cur.fragment) || cur.length != len(cur.fragment) {
				return fmt.Errorf("%w: leaf at offset %d has weight %d for %d runes", ErrCorrupt, f.offset, cur.weight, len(cur.fragment))
			}
			lines := countNewlines(cur.fragment)
			if cur.newlines != lines {
				return fmt.Errorf("%w: leaf at offset %d counts %d newlines, holds %d", ErrCorrupt, f.offset, cur.newlines, lines)
			}
			done.Push(totals{len(cur.fragment), lines})
		case !f.expanded:
			if cur.right == nil {
				return fmt.Errorf("%w: internal node at offset %d lacks a right child", ErrCorrupt, f.offset)
			}
			todo.Push(frame{cur, f.offset, true})
			// The right child's offset trusts the weight; a wrong weight is
			// reported when this node is finished.
			todo.Push(frame{cur.right, f.offset + cur.weight, false})
			todo.Push(frame{cur.left, f.offset, false})
		default:
			right, left := done.Pop(), done.Pop()
			if cur.weight != left.runes {
				return fmt.Errorf("%w: node at offset %d has weight %d, left subtree holds %d", ErrCorrupt, f.offset, cur.weight, left.runes)
			}
			if cur.length != left.runes+right.runes {
				return fmt.Errorf("%w: node at offset %d has length %d", ErrCorrupt, f.offset, cur.length)
			}
			if cur.newlines != left.newlines+right.newlines {
				return fmt.Errorf("%w: node at offset %d counts %d newlines", ErrCorrupt, f.offset, cur.newlines)
			}
			done.Push(totals{cur.length, cur.newlines})
		}
	}
	return nil
}
