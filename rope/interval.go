package rope

import "fmt"

// Interval is the half-open rune range [Lo, Hi).
//
// Consider:
//
// [1, 2, 3] = [1, 4)
type Interval struct {
	Lo, Hi int
}

// IV is shorthand for Interval{lo, hi}.
func IV(lo, hi int) Interval {
	return Interval{lo, hi}
}

func (i Interval) Len() int {
	return i.Hi - i.Lo
}

func (i Interval) IsEmpty() bool {
	return i.Lo >= i.Hi
}

// Intersection returns the part of i that is also in o, empty if they are disjoint.
func (i Interval) Intersection(o Interval) Interval {
	start := max(i.Lo, o.Lo)
	end := min(i.Hi, o.Hi)
	return Interval{start, max(start, end)}
}

func (i Interval) Contains(n int) bool {
	return i.Lo <= n && n < i.Hi
}

// within reports an error unless 0 <= Lo <= Hi <= length.
func (i Interval) within(length int) error {
	if i.Lo < 0 || i.Lo > i.Hi || i.Hi > length {
		return fmt.Errorf("%w: range %v in rope of length %d", ErrIndexOutOfBounds, i, length)
	}
	return nil
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d)", i.Lo, i.Hi)
}
