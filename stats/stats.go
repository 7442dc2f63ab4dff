// Package stats summarizes the shape of a rope: how many nodes it has, how
// deep it is and how its text is spread over leaves.
package stats

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/teichholz/go-rope/rope"
)

type Stats struct {
	Runes     int
	Leaves    int
	Internals int
	Depth     int

	// DistinctFragments counts leaves by text, SharedLeaves by identity.
	DistinctFragments int
	SharedLeaves      int

	LeafMean, LeafStdDev float64
	LeafMax              float64
}

// Collect walks r once and reports its statistics.
func Collect(r *rope.Node) Stats {
	s := Stats{Runes: r.Len(), Depth: r.Depth()}
	if r == nil {
		return s
	}

	texts := mapset.NewThreadUnsafeSet[string]()
	nodes := mapset.NewThreadUnsafeSet[*rope.Node]()
	var lengths []float64
	r.Leaves(func(l *rope.Node) bool {
		s.Leaves++
		lengths = append(lengths, float64(l.Len()))
		texts.Add(string(l.Fragment()))
		nodes.Add(l)
		return true
	})
	s.Internals = s.Leaves - 1
	s.DistinctFragments = texts.Cardinality()
	s.SharedLeaves = s.Leaves - nodes.Cardinality()

	s.LeafMean, s.LeafStdDev = stat.MeanStdDev(lengths, nil)
	if len(lengths) == 1 {
		s.LeafStdDev = 0
	}
	s.LeafMax = floats.Max(lengths)
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("runes=%d leaves=%d internal=%d depth=%d distinct=%d shared=%d leaf(mean=%.1f sd=%.1f max=%.0f)",
		s.Runes, s.Leaves, s.Internals, s.Depth, s.DistinctFragments, s.SharedLeaves, s.LeafMean, s.LeafStdDev, s.LeafMax)
}
