package buffer

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teichholz/go-rope/rope"
)

func newDocument(t *testing.T, text string) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	return NewDocument(path, rope.FromString(text, 4), Options{MaxLeaf: 4, HistoryLimit: 10}, zerolog.Nop())
}

func TestInsertChar(t *testing.T) {
	doc := newDocument(t, "foo")
	steps := []struct {
		row, col int
		c        rune
		want     string
	}{
		{0, 3, '\n', "foo\n"},
		{1, 0, 'b', "foo\nb"},
		{1, 1, 'a', "foo\nba"},
		{1, 2, 'r', "foo\nbar"},
		{1, 3, '\n', "foo\nbar\n"},
		{2, 0, 'b', "foo\nbar\nb"},
		{0, 99, '!', "foo!\nbar\nb"},
	}
	for _, s := range steps {
		r, err := doc.InsertAt(s.row, s.col, s.c)
		require.NoError(t, err)
		assert.Equal(t, s.want, r.Collect())
	}
	assert.Equal(t, 3, doc.LineCount())
	assert.Equal(t, 3, doc.LastCharInRow(0))
	assert.Equal(t, 0, doc.LastCharInRow(2))
}

func TestDeleteAt(t *testing.T) {
	doc := newDocument(t, "foo\nbar")

	r, err := doc.DeleteAt(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "foobar", r.Collect())

	r, err = doc.DeleteAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "foobar", r.Collect())

	r, err = doc.DeleteAt(0, 6)
	require.NoError(t, err)
	assert.Equal(t, "fooba", r.Collect())
}

func TestUndoRedo(t *testing.T) {
	doc := newDocument(t, "ab")
	original := doc.Rope()

	_, err := doc.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	_, err = doc.InsertAt(0, 1, 'x')
	require.NoError(t, err)
	_, err = doc.InsertAt(0, 3, 'y')
	require.NoError(t, err)
	assert.Equal(t, "axby", doc.Rope().Collect())

	r, err := doc.Undo()
	require.NoError(t, err)
	assert.Equal(t, "axb", r.Collect())
	r, err = doc.Undo()
	require.NoError(t, err)
	assert.Same(t, original, r)

	r, err = doc.Redo()
	require.NoError(t, err)
	assert.Equal(t, "axb", r.Collect())

	_, err = doc.InsertAt(0, 0, '_')
	require.NoError(t, err)
	_, err = doc.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(nil, 3)
	var r *rope.Node
	for i := 0; i < 10; i++ {
		r, _ = r.InsertString("x", 0)
		h.Push(r)
	}
	undone := 0
	for h.CanUndo() {
		_, err := h.Undo()
		require.NoError(t, err)
		undone++
	}
	assert.Equal(t, 3, undone)
	assert.Equal(t, 7, h.Current().Len())
}

func TestLines(t *testing.T) {
	r := rope.FromString("one\ntwo\n\nfour", 3)

	assert.Equal(t, 4, LineCount(r))
	assert.Equal(t, 1, LineCount(nil))

	for row, want := range []string{"one", "two", "", "four"} {
		assert.Equal(t, want, Line(r, row), "row %d", row)
		assert.Equal(t, row, LineOfOffset(r, OffsetOfLine(r, row)))
	}
	assert.Equal(t, "", Line(r, 4))
	assert.Equal(t, "", Line(r, -1))

	assert.Equal(t, 0, OffsetOfLine(r, 0))
	assert.Equal(t, 4, OffsetOfLine(r, 1))
	assert.Equal(t, 9, OffsetOfLine(r, 3))
	assert.Equal(t, r.Len(), OffsetOfLine(r, 10))
	assert.Equal(t, 1, LineOfOffset(r, 5))
}

func TestCompact(t *testing.T) {
	doc := newDocument(t, strings.Repeat("abcd", 8))
	for i := 0; i < 5; i++ {
		_, err := doc.InsertAt(0, 0, 'z')
		require.NoError(t, err)
	}
	before := doc.Rope().Collect()

	distinct := doc.Compact()
	assert.Equal(t, before, doc.Rope().Collect())
	assert.NoError(t, doc.Rope().Check())
	// "abcd" plus the single "z" leaf.
	assert.Equal(t, 2, distinct)

	for i := 0; i < 5; i++ {
		_, err := doc.Undo()
		require.NoError(t, err)
	}
	assert.Equal(t, strings.Repeat("abcd", 8), doc.Rope().Collect())
}

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld"), 0644))

	b := NewBuffer(zerolog.Nop())
	doc, err := b.OpenFile(path, Options{MaxLeaf: 4, ReduceOnSave: true})
	require.NoError(t, err)
	again, err := b.OpenFile(path, Options{})
	require.NoError(t, err)
	assert.Same(t, doc, again)

	_, err = doc.InsertAt(1, 5, '!')
	require.NoError(t, err)
	require.NoError(t, doc.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld!", string(raw))

	fresh, err := b.OpenFile(filepath.Join(dir, "new.txt"), Options{})
	require.NoError(t, err)
	assert.Nil(t, fresh.Rope())

	compacted := b.Compact()
	assert.Len(t, compacted, 2)
	assert.Equal(t, 0, compacted[fresh.Path()])
}

func TestHistoryReleasesVersions(t *testing.T) {
	assert := assert.New(t)
	h := NewHistory(nil, 3)
	var r *rope.Node
	for i := 0; i < 10; i++ {
		r, _ = r.InsertString("x", 0)
		h.Push(r)
	}
	assert.Len(h.undo, 3)
	for _, v := range h.undo[len(h.undo):cap(h.undo)] {
		assert.Nil(v)
	}

	_, err := h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	require.NoError(t, err)
	assert.Nil(h.undo[:cap(h.undo)][len(h.undo)])
	assert.Len(h.redo, 2)

	r, _ = r.InsertString("y", 0)
	h.Push(r)
	assert.False(h.CanRedo())
	for _, v := range h.redo[:cap(h.redo)] {
		assert.Nil(v)
	}
}

// scanLines computes what the line helpers report by walking the text.
func scanLines(text string) (starts []int) {
	starts = []int{0}
	for i, c := range []rune(text) {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func TestLinesAfterEdits(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	pieces := []string{"a", "\n", "bc\n", "\n\n", "def"}

	var r *rope.Node
	for step := 0; step < 400; step++ {
		var err error
		if r.Len() > 0 && rnd.Intn(3) == 0 {
			r, err = r.Delete(rnd.Intn(r.Len()))
		} else {
			r, err = r.InsertString(pieces[rnd.Intn(len(pieces))], rnd.Intn(r.Len()+1))
		}
		require.NoError(t, err)
		require.NoError(t, r.Check())

		text := r.Collect()
		starts := scanLines(text)
		require.Equal(t, len(starts), LineCount(r), "step %d", step)
		for row, start := range starts {
			require.Equal(t, start, OffsetOfLine(r, row), "step %d row %d", step, row)
			require.Equal(t, row, LineOfOffset(r, start), "step %d row %d", step, row)
		}
		require.Equal(t, r.Len(), OffsetOfLine(r, len(starts)))
		require.Equal(t, len(starts)-1, LineOfOffset(r, r.Len()))

		lines := strings.Split(text, "\n")
		row := rnd.Intn(len(lines))
		require.Equal(t, lines[row], Line(r, row), "step %d row %d", step, row)
	}
}
