// Package viterbi builds the word lattice of a sentence and finds its
// minimum-cost path.
package viterbi

import (
	"fmt"
	"math"
)

// NodeType tells sentinels, dictionary words and synthesized words apart.
type NodeType uint8

const (
	BOS NodeType = iota
	EOS
	Known
	Unknown
)

var nodeTypeNames = [...]string{"BOS", "EOS", "KNOWN", "UNKNOWN"}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", uint8(t))
}

// MarshalText renders the type by name in JSON dumps.
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Unreachable is the shortest cost of a node no path reaches.
const Unreachable = math.MaxInt64

// noPrev marks an unset back-reference.
const noPrev = -1

// Node is one candidate word of the lattice. Prev is an index into the
// lattice's node arena.
type Node struct {
	// ID is the token info id, or -1 for BOS and EOS.
	ID           int32    `json:"id"`
	Cost         int16    `json:"cost"`
	StartPos     int      `json:"start_pos"`
	Length       int      `json:"length"`
	Type         NodeType `json:"type"`
	LeftID       int16    `json:"left_id"`
	RightID      int16    `json:"right_id"`
	SurfaceForm  string   `json:"surface_form"`
	Prev         int32    `json:"prev"`
	ShortestCost int64    `json:"shortest_cost"`
}

// EndPos returns the 1-based position of the last character covered.
func (n *Node) EndPos() int { return n.StartPos + n.Length - 1 }

// Reachable reports whether the forward pass found a path to the node.
func (n *Node) Reachable() bool { return n.ShortestCost != Unreachable }

func newNode(id int32, cost int16, start, length int, typ NodeType, left, right int16, surface string) Node {
	n := Node{
		ID:           id,
		Cost:         cost,
		StartPos:     start,
		Length:       length,
		Type:         typ,
		LeftID:       left,
		RightID:      right,
		SurfaceForm:  surface,
		Prev:         noPrev,
		ShortestCost: Unreachable,
	}
	if typ == BOS {
		n.ShortestCost = 0
	}
	return n
}
