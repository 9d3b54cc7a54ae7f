package trie

import (
	radix "github.com/armon/go-radix"
)

// RadixIndex is an in-memory key registry backed by a radix tree. Ids are
// assigned in lexicographic key order, so they agree with a DoubleArray built
// from Keys().
type RadixIndex struct {
	tree     *radix.Tree
	assigned bool
}

// NewRadixIndex returns an empty index.
func NewRadixIndex() *RadixIndex {
	return &RadixIndex{tree: radix.New()}
}

// Add registers key. Adding a key twice is a no-op. Adding after Assign
// invalidates the ids until Assign is called again.
func (r *RadixIndex) Add(key string) {
	if key == "" {
		return
	}
	if _, ok := r.tree.Get(key); ok {
		return
	}
	r.tree.Insert(key, int32(notFound))
	r.assigned = false
}

// Len returns the number of distinct keys.
func (r *RadixIndex) Len() int { return r.tree.Len() }

// Assign numbers every key in lexicographic order and returns them.
func (r *RadixIndex) Assign() []Key {
	keys := make([]Key, 0, r.tree.Len())
	r.tree.Walk(func(s string, _ interface{}) bool {
		keys = append(keys, Key{Key: s, ID: int32(len(keys))})
		return false
	})
	for _, k := range keys {
		r.tree.Insert(k.Key, k.ID)
	}
	r.assigned = true
	return keys
}

// Lookup implements Lookuper.
func (r *RadixIndex) Lookup(key string) (int32, bool) {
	v, ok := r.tree.Get(key)
	if !ok || !r.assigned {
		return notFound, false
	}
	return v.(int32), true
}

// CommonPrefixSearch implements PrefixSearcher.
func (r *RadixIndex) CommonPrefixSearch(input string) []Match {
	var out []Match
	r.tree.WalkPath(input, func(s string, v interface{}) bool {
		if s != "" {
			out = append(out, Match{Key: s, ID: v.(int32)})
		}
		return false
	})
	return out
}
