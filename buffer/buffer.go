package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"

	"github.com/teichholz/go-rope/files"
	"github.com/teichholz/go-rope/rope"
)

type Options struct {
	MaxLeaf      int
	HistoryLimit int
	ReduceOnSave bool
}

// Document is one open file: its path and every version of its text.
type Document struct {
	mu      sync.Mutex
	path    string
	history *History
	opts    Options
	log     zerolog.Logger
}

// Buffer holds the open documents by path.
type Buffer struct {
	mu   sync.Mutex
	Open map[string]*Document

	log zerolog.Logger
}

func NewBuffer(log zerolog.Logger) *Buffer {
	return &Buffer{
		Open: make(map[string]*Document),
		log:  log,
	}
}

// OpenFile loads path into a new document, or returns the document already
// open for it. A missing file opens as an empty document.
func (b *Buffer) OpenFile(path string, opts Options) (*Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if doc, ok := b.Open[path]; ok {
		return doc, nil
	}

	r, err := files.Read(path, opts.MaxLeaf)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	doc := NewDocument(path, r, opts, b.log)
	b.Open[path] = doc
	b.log.Info().Str("file", path).Int("runes", r.Len()).Int("depth", r.Depth()).Msg("opened")
	return doc, nil
}

// Compact canonicalizes the history of every open document. Documents are
// processed in parallel, each with its own table.
func (b *Buffer) Compact() map[string]int {
	b.mu.Lock()
	docs := make([]*Document, 0, len(b.Open))
	for _, doc := range b.Open {
		docs = append(docs, doc)
	}
	b.mu.Unlock()

	distinct := iter.Map(docs, func(doc **Document) int {
		return (*doc).Compact()
	})

	res := make(map[string]int, len(docs))
	for i, doc := range docs {
		res[doc.path] = distinct[i]
	}
	return res
}

func NewDocument(path string, r *rope.Node, opts Options, log zerolog.Logger) *Document {
	return &Document{
		path:    path,
		history: NewHistory(r, opts.HistoryLimit),
		opts:    opts,
		log:     log.With().Str("file", path).Logger(),
	}
}

func (d *Document) Path() string {
	return d.path
}

// Rope returns the current version.
func (d *Document) Rope() *rope.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.Current()
}

// InsertAt inserts c at column col of row. Columns past the end of the line
// insert at its end.
func (d *Document) InsertAt(row, col int, c rune) (*rope.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur := d.history.Current()
	next, err := cur.InsertString(string(c), clampedOffset(cur, row, col))
	if err != nil {
		return cur, err
	}
	d.history.Push(next)
	return next, nil
}

// DeleteAt removes the rune before column col of row, like backspace.
// At the start of a line it joins the line with the previous one.
func (d *Document) DeleteAt(row, col int) (*rope.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur := d.history.Current()
	offset := clampedOffset(cur, row, col)
	if offset == 0 {
		return cur, nil
	}
	next, err := cur.Delete(offset - 1)
	if err != nil {
		return cur, err
	}
	d.history.Push(next)
	return next, nil
}

func (d *Document) Undo() (*rope.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.Undo()
}

func (d *Document) Redo() (*rope.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.Redo()
}

// Compact canonicalizes all versions of the document.
func (d *Document) Compact() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	distinct := d.history.Compact()
	d.log.Debug().Int("fragments", distinct).Msg("compacted history")
	return distinct
}

// Save writes the current version to the document's path.
func (d *Document) Save() error {
	if d.opts.ReduceOnSave {
		d.Compact()
	}
	r := d.Rope()
	if err := files.Write(d.path, r.Reader()); err != nil {
		return fmt.Errorf("save %s: %w", d.path, err)
	}
	d.log.Info().Int("runes", r.Len()).Msg("saved")
	return nil
}

// LastCharInRow returns the column of the last rune of row, -1 when empty.
func (d *Document) LastCharInRow(row int) int {
	return LineSpan(d.Rope(), row).Len() - 1
}

func (d *Document) LineCount() int {
	return LineCount(d.Rope())
}

func clampedOffset(r *rope.Node, row, col int) int {
	span := LineSpan(r, row)
	return span.Lo + min(max(col, 0), span.Len())
}
