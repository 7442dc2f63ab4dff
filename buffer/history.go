package buffer

import (
	"errors"

	"github.com/teichholz/go-rope/rope"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History keeps old versions of a document. Ropes are persistent, so a
// version is just a root; consecutive versions share all untouched subtrees.
type History struct {
	undo    []*rope.Node
	redo    []*rope.Node
	current *rope.Node
	limit   int
}

func NewHistory(initial *rope.Node, limit int) *History {
	if limit <= 0 {
		limit = 1000
	}
	return &History{current: initial, limit: limit}
}

func (h *History) Current() *rope.Node {
	return h.current
}

// Push makes next the current version. The redo stack is cleared.
func (h *History) Push(next *rope.Node) {
	h.undo = append(h.undo, h.current)
	if drop := len(h.undo) - h.limit; drop > 0 {
		copy(h.undo, h.undo[drop:])
		h.undo = shrink(h.undo, h.limit)
	}
	h.redo = shrink(h.redo, 0)
	h.current = next
}

func (h *History) Undo() (*rope.Node, error) {
	if len(h.undo) == 0 {
		return h.current, ErrNothingToUndo
	}
	h.redo = append(h.redo, h.current)
	h.current = h.undo[len(h.undo)-1]
	h.undo = shrink(h.undo, len(h.undo)-1)
	return h.current, nil
}

func (h *History) Redo() (*rope.Node, error) {
	if len(h.redo) == 0 {
		return h.current, ErrNothingToRedo
	}
	h.undo = append(h.undo, h.current)
	h.current = h.redo[len(h.redo)-1]
	h.redo = shrink(h.redo, len(h.redo)-1)
	return h.current, nil
}

// shrink cuts versions to n entries and clears the cut ones, so the backing
// array does not keep dropped ropes alive.
func shrink(versions []*rope.Node, n int) []*rope.Node {
	clear(versions[n:])
	return versions[:n]
}

// CanUndo and CanRedo report whether Undo and Redo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Compact runs every version through one Canonicalizer, so text repeated
// across versions ends up in shared leaves. It returns the number of
// distinct fragments.
func (h *History) Compact() int {
	c := rope.NewCanonicalizer()
	for i, v := range h.undo {
		h.undo[i] = c.Reduce(v)
	}
	h.current = c.Reduce(h.current)
	for i, v := range h.redo {
		h.redo[i] = c.Reduce(v)
	}
	return c.Len()
}
