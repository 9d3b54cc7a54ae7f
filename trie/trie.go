// Package trie provides the prefix-matching capability used to find every
// dictionary word that starts at a given position of a sentence.
package trie

// Match is one dictionary key found by a prefix search.
type Match struct {
	Key string
	ID  int32
}

// PrefixSearcher finds every key that is a prefix of the input. Results are
// ordered by increasing key length.
type PrefixSearcher interface {
	CommonPrefixSearch(input string) []Match
}

// Lookuper resolves a complete key to its id.
type Lookuper interface {
	Lookup(key string) (int32, bool)
}
