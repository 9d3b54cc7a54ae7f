package viterbi

import (
	"unicode/utf8"

	"morphja/dictionary"
)

// Builder turns a sentence into a lattice of known and unknown word candidates.
type Builder struct {
	dict *dictionary.Dictionaries
}

// NewBuilder returns a builder reading from d.
func NewBuilder(d *dictionary.Dictionaries) *Builder {
	return &Builder{dict: d}
}

// Build returns a new lattice for sentence.
func (b *Builder) Build(sentence string) *Lattice {
	l := NewLattice()
	b.BuildInto(l, sentence)
	return l
}

// BuildInto resets l and fills it with the candidates of sentence.
// Positions count characters, so a supplementary-plane character occupies
// a single position.
func (b *Builder) BuildInto(l *Lattice, sentence string) {
	l.Reset()

	offsets := make([]int, 0, len(sentence)+1)
	runes := make([]rune, 0, len(sentence))
	for i, r := range sentence {
		offsets = append(offsets, i)
		runes = append(runes, r)
	}
	offsets = append(offsets, len(sentence))

	tokenInfo, unknown := b.dict.TokenInfo, b.dict.Unknown
	for pos := range runes {
		tail := sentence[offsets[pos]:]

		matches := b.dict.Trie.CommonPrefixSearch(tail)
		for _, m := range matches {
			length := utf8.RuneCountInString(m.Key)
			for _, id := range tokenInfo.TargetMap.Get(m.ID) {
				l.Append(newNode(id, tokenInfo.WordCost(id), pos+1, length, Known,
					tokenInfo.LeftID(id), tokenInfo.RightID(id), m.Key))
			}
		}

		class := unknown.Lookup(runes[pos])
		if len(matches) > 0 && !class.AlwaysInvoke {
			continue
		}
		end := pos + 1
		if class.Grouping {
			for end < len(runes) && unknown.Lookup(runes[end]).Name == class.Name {
				end++
			}
		}
		key := sentence[offsets[pos]:offsets[end]]
		for _, id := range unknown.TargetMap.Get(int32(class.ID)) {
			l.Append(newNode(id, unknown.WordCost(id), pos+1, end-pos, Unknown,
				unknown.LeftID(id), unknown.RightID(id), key))
		}
	}
	l.AppendEOS()
}
