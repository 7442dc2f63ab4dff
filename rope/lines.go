package rope

// Every node caches the number of '\n' runes below it, so line lookups
// descend like index lookups instead of scanning the text.

func countNewlines(fragment []rune) int {
	lines := 0
	for _, r := range fragment {
		if r == '\n' {
			lines++
		}
	}
	return lines
}

// Newlines returns the number of '\n' runes in the rope.
func (n *Node) Newlines() int {
	if n == nil {
		return 0
	}
	return n.newlines
}

// LineCount returns the number of '\n' separated lines; the empty rope has one.
func (n *Node) LineCount() int {
	return n.Newlines() + 1
}

// OffsetOfLine returns the offset of the first rune of line row.
// Rows past the last line map to Len().
func (n *Node) OffsetOfLine(row int) int {
	if row <= 0 {
		return 0
	}
	if row > n.Newlines() {
		return n.Len()
	}

	// 1 <= row <= cur.newlines holds all the way down.
	cur, offset := n, 0
	for !cur.IsLeaf() {
		if row <= cur.left.newlines {
			cur = cur.left
			continue
		}
		row -= cur.left.newlines
		offset += cur.weight
		cur = cur.right
	}
	for i, r := range cur.fragment {
		if r == '\n' {
			row--
			if row == 0 {
				return offset + i + 1
			}
		}
	}
	return n.Len()
}

// LineOfOffset returns the row holding offset, that is the number of '\n'
// runes before it. Offsets are clamped to [0, Len()].
func (n *Node) LineOfOffset(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= n.Len() {
		return n.Newlines()
	}

	cur, lines := n, 0
	for !cur.IsLeaf() {
		if offset >= cur.weight {
			lines += cur.left.newlines
			offset -= cur.weight
			cur = cur.right
		} else {
			cur = cur.left
		}
	}
	return lines + countNewlines(cur.fragment[:offset])
}
