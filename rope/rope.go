// The rope package provides an immutable, pointer-shared Rope of runes.
// Ropes allow large sequences of text to be edited locally without copying them.
package rope

import (
	"fmt"
	"unicode/utf8"

	"github.com/zyedidia/generic/stack"
)

// DefaultMaxLeaf is the leaf size used when building ropes from bulk text.
const DefaultMaxLeaf = 1024

// A Node is a rope: either a leaf holding a non-empty run of runes, or an
// internal node joining two non-empty ropes.
// Nodes are persistent: there is no way to modify an existing node.
// Instead, all operations return a new rope that shares every untouched
// subtree with its input.
//
// This persistence makes it easy to store old versions of a rope just by
// holding on to old roots, and any number of goroutines may read a rope
// concurrently.
//
// The empty rope is nil. All read methods accept a nil receiver.
type Node struct {
	fragment []rune

	// weight is the number of runes in the left subtree, length the number
	// of runes in the whole subtree. Both are fixed at construction.
	weight, length int

	// newlines counts the '\n' runes in the whole subtree.
	newlines int

	left, right *Node
}

// NewLeaf returns a leaf holding a copy of fragment.
func NewLeaf(fragment []rune) (*Node, error) {
	if len(fragment) == 0 {
		return nil, fmt.Errorf("%w: empty leaf fragment", ErrInvalidArgument)
	}
	return leaf(append([]rune(nil), fragment...)), nil
}

// NewLeafString returns a leaf holding the runes of s.
func NewLeafString(s string) (*Node, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty leaf fragment", ErrInvalidArgument)
	}
	return leaf([]rune(s)), nil
}

// NewInternal joins left and right under a new node.
func NewInternal(left, right *Node) (*Node, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: internal node needs two children", ErrInvalidArgument)
	}
	return internal(left, right), nil
}

// leaf takes ownership of fragment, which must not be empty.
func leaf(fragment []rune) *Node {
	return &Node{
		fragment: fragment,
		weight:   len(fragment),
		length:   len(fragment),
		newlines: countNewlines(fragment),
	}
}

// internal joins two non-nil ropes. The weight is the full length of the
// left subtree, whatever its shape.
func internal(left, right *Node) *Node {
	return &Node{
		weight:   left.length,
		length:   left.length + right.length,
		newlines: left.newlines + right.newlines,
		left:     left,
		right:    right,
	}
}

// Concat returns the concatenation of a and b.
// Concatenating the empty rope has no effect.
func Concat(a, b *Node) *Node {
	switch {
	case b == nil:
		return a
	case a == nil:
		return b
	default:
		return internal(a, b)
	}
}

// Concat returns a new rope that is the concatenation of this rope and other.
func (n *Node) Concat(other *Node) *Node {
	return Concat(n, other)
}

// Append returns a new rope with a leaf of s appended.
func (n *Node) Append(s string) (*Node, error) {
	l, err := NewLeafString(s)
	if err != nil {
		return nil, err
	}
	return Concat(n, l), nil
}

// FromString builds a balanced rope of s with leaves of at most maxLeaf runes.
func FromString(s string, maxLeaf int) *Node {
	if maxLeaf <= 0 {
		maxLeaf = DefaultMaxLeaf
	}

	var leaves []*Node
	for len(s) > 0 {
		end, count := 0, 0
		for end < len(s) && count < maxLeaf {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
			count++
		}
		leaves = append(leaves, leaf([]rune(s[:end])))
		s = s[end:]
	}
	return merge(leaves)
}

// merge joins leaves pairwise so the result has logarithmic depth.
func merge(leaves []*Node) *Node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	default:
		mid := len(leaves) / 2
		return internal(merge(leaves[:mid]), merge(leaves[mid:]))
	}
}

// Len returns the number of runes in the rope.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return n.length
}

// Weight returns the number of runes in the left subtree, or the fragment
// length for a leaf.
func (n *Node) Weight() int {
	if n == nil {
		return 0
	}
	return n.weight
}

// IsLeaf reports whether n holds a fragment.
func (n *Node) IsLeaf() bool {
	return n != nil && n.left == nil
}

// IsEmpty reports whether the rope holds no runes.
func (n *Node) IsEmpty() bool {
	return n == nil
}

func (n *Node) Left() *Node {
	if n == nil {
		return nil
	}
	return n.left
}

func (n *Node) Right() *Node {
	if n == nil {
		return nil
	}
	return n.right
}

// Fragment returns a copy of the runes held by a leaf, nil otherwise.
func (n *Node) Fragment() []rune {
	if !n.IsLeaf() {
		return nil
	}
	return append([]rune(nil), n.fragment...)
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}

	type entry struct {
		node  *Node
		depth int
	}
	deepest := 0
	todo := stack.New[entry]()
	todo.Push(entry{n, 1})
	for todo.Size() > 0 {
		e := todo.Pop()
		if e.node.IsLeaf() {
			deepest = max(deepest, e.depth)
			continue
		}
		todo.Push(entry{e.node.right, e.depth + 1})
		todo.Push(entry{e.node.left, e.depth + 1})
	}
	return deepest
}
