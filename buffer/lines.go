package buffer

import (
	"github.com/teichholz/go-rope/rope"
)

// Line lookups descend by the newline counts cached in the rope, so none of
// these walk the document from the start.

// LineCount returns the number of '\n' separated lines; the empty rope has one.
func LineCount(r *rope.Node) int {
	return r.LineCount()
}

// OffsetOfLine returns the offset of the first rune of line row.
// Rows past the last line map to Len().
func OffsetOfLine(r *rope.Node, row int) int {
	return r.OffsetOfLine(row)
}

// LineOfOffset returns the row holding offset.
// Invariance: LineOfOffset(OffsetOfLine(row)) == row for every existing row.
func LineOfOffset(r *rope.Node, offset int) int {
	return r.LineOfOffset(offset)
}

// LineSpan returns the runes of row without its trailing newline. Rows
// outside the document give an empty span at the nearest end.
func LineSpan(r *rope.Node, row int) rope.Interval {
	whole := rope.IV(0, r.Len())
	if row < 0 {
		return rope.IV(0, 0)
	}

	start := r.OffsetOfLine(row)
	end := r.Len()
	if row < r.Newlines() {
		end = r.OffsetOfLine(row+1) - 1
	}
	return rope.IV(start, end).Intersection(whole)
}

// Line returns row as a string, or "" past the last line.
func Line(r *rope.Node, row int) string {
	line, err := r.Slice(LineSpan(r, row))
	if err != nil {
		return ""
	}
	return line.Collect()
}
