package rope

import (
	"unicode/utf8"
)

// A RopeWriter builds a rope from the bytes written to it. Text is cut into
// leaves of at most maxLeaf runes; a UTF-8 sequence split across two writes
// is kept whole.
type RopeWriter struct {
	leaves  []*Node
	partial []rune
	carry   []byte
	maxLeaf int
}

func Writer(maxLeaf int) *RopeWriter {
	if maxLeaf <= 0 {
		maxLeaf = DefaultMaxLeaf
	}
	return &RopeWriter{maxLeaf: maxLeaf}
}

func (writer *RopeWriter) Write(p []byte) (n int, err error) {
	data := p
	if len(writer.carry) > 0 {
		data = append(writer.carry, p...)
		writer.carry = nil
	}

	for len(data) > 0 {
		if !utf8.FullRune(data) {
			writer.carry = append([]byte(nil), data...)
			break
		}
		r, size := utf8.DecodeRune(data)
		writer.push(r)
		data = data[size:]
	}
	return len(p), nil
}

// WriteString lets io.WriteString skip the byte conversion.
func (writer *RopeWriter) WriteString(s string) (n int, err error) {
	if len(writer.carry) > 0 {
		return writer.Write([]byte(s))
	}
	for _, r := range s {
		writer.push(r)
	}
	return len(s), nil
}

func (writer *RopeWriter) push(r rune) {
	if writer.partial == nil {
		writer.partial = make([]rune, 0, writer.maxLeaf)
	}
	writer.partial = append(writer.partial, r)
	if len(writer.partial) == writer.maxLeaf {
		writer.leaves = append(writer.leaves, leaf(writer.partial))
		writer.partial = nil
	}
}

// Rope returns the balanced rope of everything written so far. Bytes of an
// unfinished UTF-8 sequence are decoded as utf8.RuneError.
func (writer *RopeWriter) Rope() *Node {
	for _, b := range writer.carry {
		r, _ := utf8.DecodeRune([]byte{b})
		writer.push(r)
	}
	writer.carry = nil

	leaves := writer.leaves
	if len(writer.partial) > 0 {
		leaves = append(leaves[:len(leaves):len(leaves)], leaf(writer.partial))
	}
	return merge(leaves)
}
