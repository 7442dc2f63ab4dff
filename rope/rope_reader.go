package rope

import (
	"io"
	"unicode/utf8"
)

// A RopeReader streams the UTF-8 encoding of a rope leaf by leaf, without
// flattening it first.
type RopeReader struct {
	leaves  *leafCursor
	pending []byte
}

// Reader returns a RopeReader positioned at the start of the rope.
func (n *Node) Reader() *RopeReader {
	return &RopeReader{leaves: newLeafCursor(n)}
}

// Read implements the standard Read interface:
// it reads data from the rope, populating p, and returns
// the number of bytes actually read.
func (reader *RopeReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(reader.pending) == 0 && !reader.fill() {
			break
		}
		k := copy(p[n:], reader.pending)
		reader.pending = reader.pending[k:]
		n += k
	}
	if n == 0 && len(p) > 0 {
		err = io.EOF
	}
	return
}

// WriteTo implements io.WriterTo so io.Copy writes one leaf at a time.
func (reader *RopeReader) WriteTo(w io.Writer) (total int64, err error) {
	for len(reader.pending) > 0 || reader.fill() {
		n, err := w.Write(reader.pending)
		total += int64(n)
		reader.pending = reader.pending[n:]
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// fill encodes the next leaf into pending and reports whether there was one.
func (reader *RopeReader) fill() bool {
	fragment := reader.leaves.next()
	if fragment == nil {
		return false
	}
	buf := reader.pending[:0]
	for _, r := range fragment {
		buf = utf8.AppendRune(buf, r)
	}
	reader.pending = buf
	return true
}
