package viterbi

import (
	"morphja/dictionary"
)

// Searcher finds the minimum-cost BOS to EOS path of a lattice.
type Searcher struct {
	costs *dictionary.ConnectionCosts
}

// NewSearcher returns a searcher using the given connection costs.
func NewSearcher(costs *dictionary.ConnectionCosts) *Searcher {
	return &Searcher{costs: costs}
}

// Search runs both passes and returns the winning nodes in order, without
// BOS and EOS.
func (s *Searcher) Search(l *Lattice) []Node {
	s.Forward(l)
	return s.Backward(l)
}

// Forward computes the shortest cost and best predecessor of every node.
// Among equal-cost predecessors the first in bucket order wins. A node whose
// predecessor bucket is empty or entirely unreachable stays unreachable.
func (s *Searcher) Forward(l *Lattice) {
	for pos := 1; pos <= l.EOSPos(); pos++ {
		for _, ni := range l.EndingAt(pos) {
			n := l.Node(ni)
			best, prev := int64(Unreachable), int32(noPrev)
			for _, mi := range l.EndingAt(n.StartPos - 1) {
				m := l.Node(mi)
				if !m.Reachable() {
					continue
				}
				total := m.ShortestCost + int64(s.costs.Get(int(m.RightID), int(n.LeftID))) + int64(n.Cost)
				if total < best {
					best, prev = total, mi
				}
			}
			n.ShortestCost, n.Prev = best, prev
		}
	}
}

// Backward follows the back-references from EOS. It returns nil when EOS is
// unreachable.
func (s *Searcher) Backward(l *Lattice) []Node {
	eos := l.EOS()
	if eos == nil || eos.Prev == noPrev {
		return nil
	}
	var path []Node
	for n := l.Node(eos.Prev); n.Type != BOS; n = l.Node(n.Prev) {
		path = append(path, *n)
		if n.Prev == noPrev {
			return nil
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
