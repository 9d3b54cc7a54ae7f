package viterbi

// Lattice stores the candidate nodes of one sentence bucketed by the position
// of their last character. Bucket 0 holds the BOS node; after AppendEOS the
// last bucket holds the EOS node.
type Lattice struct {
	nodes  []Node
	ends   [][]int32
	eosPos int
}

// NewLattice returns a lattice holding only BOS.
func NewLattice() *Lattice {
	l := &Lattice{}
	l.Reset()
	return l
}

// Reset empties the lattice for reuse, keeping allocated storage.
func (l *Lattice) Reset() {
	l.nodes = l.nodes[:0]
	for i := range l.ends {
		l.ends[i] = l.ends[i][:0]
	}
	l.ends = l.ends[:0]
	l.eosPos = 0
	l.add(0, newNode(-1, 0, 0, 0, BOS, 0, 0, ""))
}

func (l *Lattice) add(bucket int, n Node) int32 {
	for len(l.ends) <= bucket {
		if len(l.ends) < cap(l.ends) {
			l.ends = l.ends[:len(l.ends)+1]
			continue
		}
		l.ends = append(l.ends, nil)
	}
	i := int32(len(l.nodes))
	l.nodes = append(l.nodes, n)
	l.ends[bucket] = append(l.ends[bucket], i)
	return i
}

// Append adds n to the bucket of its end position and returns its arena index.
func (l *Lattice) Append(n Node) int32 {
	end := n.EndPos()
	if end > l.eosPos {
		l.eosPos = end
	}
	return l.add(end, n)
}

// AppendEOS closes the lattice with the EOS node one past the last position.
func (l *Lattice) AppendEOS() {
	l.eosPos++
	l.add(l.eosPos, newNode(-1, 0, l.eosPos, 0, EOS, 0, 0, ""))
}

// EOSPos returns the high-water end position, which is the EOS bucket once
// AppendEOS has run.
func (l *Lattice) EOSPos() int { return l.eosPos }

// EndingAt returns the arena indexes of the nodes whose last character is at pos.
func (l *Lattice) EndingAt(pos int) []int32 {
	if pos < 0 || pos >= len(l.ends) {
		return nil
	}
	return l.ends[pos]
}

// Node returns the node at arena index i.
func (l *Lattice) Node(i int32) *Node { return &l.nodes[i] }

// Nodes returns every node in insertion order.
func (l *Lattice) Nodes() []Node { return l.nodes }

// Len returns the number of nodes, sentinels included.
func (l *Lattice) Len() int { return len(l.nodes) }

// EOS returns the EOS node, or nil before AppendEOS.
func (l *Lattice) EOS() *Node {
	last := l.EndingAt(len(l.ends) - 1)
	if len(last) != 1 || l.nodes[last[0]].Type != EOS {
		return nil
	}
	return &l.nodes[last[0]]
}
