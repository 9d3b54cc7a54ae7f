// Package dictbuilder assembles in-memory dictionaries from word, class and
// cost definitions, producing the same structures Load reads from disk.
package dictbuilder

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"morphja/dictionary"
	"morphja/trie"
)

type entry struct {
	key               string
	left, right, cost int
	feature           string
}

type category struct {
	lo, hi     rune
	class      string
	compatible []string
}

// Builder collects dictionary definitions. Invalid definitions are skipped
// with a warning rather than failing the build.
type Builder struct {
	log      *zap.Logger
	words    []entry
	unknown  []entry
	classes  []dictionary.CharacterClass
	mappings []category
	forward  int
	backward int
	costs    map[[2]int]int16
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{log: zap.NewNop(), costs: make(map[[2]int]int16)}
}

// WithLogger sets the logger used for skipped definitions.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.log = l
	return b
}

// AddWord adds a known word. Several words may share a surface form.
func (b *Builder) AddWord(surface string, leftID, rightID, cost int, features ...string) *Builder {
	if surface == "" || strings.IndexByte(surface, 0) >= 0 {
		b.log.Warn("skipping word with invalid surface", zap.String("surface", surface))
		return b
	}
	b.words = append(b.words, entry{surface, leftID, rightID, cost, strings.Join(features, ",")})
	return b
}

// DefineClass appends a character class. Class ids follow definition order.
func (b *Builder) DefineClass(name string, alwaysInvoke, grouping bool, maxLength int) *Builder {
	b.classes = append(b.classes, dictionary.CharacterClass{
		Name:         name,
		AlwaysInvoke: alwaysInvoke,
		Grouping:     grouping,
		MaxLength:    maxLength,
	})
	return b
}

// MapCategory assigns the code points lo..hi to class, with optional
// compatible classes.
func (b *Builder) MapCategory(lo, hi rune, class string, compatible ...string) *Builder {
	b.mappings = append(b.mappings, category{lo, hi, class, compatible})
	return b
}

// AddUnknown adds an unknown-word template for the named class.
func (b *Builder) AddUnknown(class string, leftID, rightID, cost int, features ...string) *Builder {
	b.unknown = append(b.unknown, entry{class, leftID, rightID, cost, strings.Join(features, ",")})
	return b
}

// SetConnectionSize sets the matrix dimensions.
func (b *Builder) SetConnectionSize(forward, backward int) *Builder {
	b.forward, b.backward = forward, backward
	return b
}

// SetCost sets the cost of the transition forwardID -> backwardID.
func (b *Builder) SetCost(forwardID, backwardID, cost int) *Builder {
	b.costs[[2]int{forwardID, backwardID}] = int16(cost)
	return b
}

// Build assembles and validates the dictionaries.
func (b *Builder) Build() (*dictionary.Dictionaries, error) {
	tokenInfo, da, err := b.buildTokenInfo()
	if err != nil {
		return nil, err
	}

	cc, err := dictionary.NewConnectionCosts(b.forward, b.backward)
	if err != nil {
		return nil, err
	}
	for k, cost := range b.costs {
		if err := cc.Put(k[0], k[1], cost); err != nil {
			return nil, err
		}
	}

	unk, err := b.buildUnknown()
	if err != nil {
		return nil, err
	}

	d := &dictionary.Dictionaries{Trie: da, TokenInfo: tokenInfo, Connection: cc, Unknown: unk}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (b *Builder) buildTokenInfo() (*dictionary.TokenInfoDictionary, *trie.DoubleArray, error) {
	tokenInfo := dictionary.NewTokenInfoDictionary()
	keys := trie.NewRadixIndex()
	ids := make([]int32, len(b.words))
	for i, w := range b.words {
		id, err := tokenInfo.Put(w.left, w.right, w.cost, w.key, w.feature)
		if err != nil {
			b.log.Warn("skipping word", zap.String("surface", w.key), zap.Error(err))
			ids[i] = -1
			continue
		}
		ids[i] = id
		keys.Add(w.key)
	}
	tokenInfo.Shrink()

	da, err := trie.Build(keys.Assign())
	if err != nil {
		return nil, nil, fmt.Errorf("build trie: %w", err)
	}
	for i, w := range b.words {
		if ids[i] < 0 {
			continue
		}
		trieID, _ := keys.Lookup(w.key)
		tokenInfo.AddMapping(trieID, ids[i])
	}
	return tokenInfo, da, nil
}

func (b *Builder) buildUnknown() (*dictionary.UnknownDictionary, error) {
	invoke := dictionary.NewInvokeDefinitionMap(b.classes)
	charDef, err := dictionary.NewCharacterDefinition(invoke)
	if err != nil {
		return nil, err
	}
	for _, m := range b.mappings {
		if err := charDef.SetCategory(m.lo, m.hi, m.class, m.compatible...); err != nil {
			b.log.Warn("skipping category mapping", zap.String("class", m.class), zap.Error(err))
		}
	}

	unk := dictionary.NewUnknownDictionary(charDef)
	for _, u := range b.unknown {
		classID, ok := invoke.Lookup(u.key)
		if !ok {
			b.log.Warn("skipping unknown template for undefined class", zap.String("class", u.key))
			continue
		}
		id, err := unk.Put(u.left, u.right, u.cost, u.key, u.feature)
		if err != nil {
			b.log.Warn("skipping unknown template", zap.String("class", u.key), zap.Error(err))
			continue
		}
		unk.AddMapping(int32(classID), id)
	}
	unk.Shrink()
	return unk, nil
}
