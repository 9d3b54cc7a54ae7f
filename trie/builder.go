package trie

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyKey is returned when a key of length zero is added.
	ErrEmptyKey = errors.New("trie: empty key")
	// ErrInvalidKey is returned for keys containing a null byte.
	ErrInvalidKey = errors.New("trie: key contains a null byte")
	// ErrDuplicateKey is returned when the same key is added twice.
	ErrDuplicateKey = errors.New("trie: duplicate key")
)

// Key is a key together with the id stored for it.
type Key struct {
	Key string
	ID  int32
}

type daBuilder struct {
	keys  []Key
	base  []int32
	check []int32
	// lowest slot that may still be free
	free int
	max  int
}

// Build constructs a DoubleArray holding keys. Keys do not need to be sorted.
func Build(keys []Key) (*DoubleArray, error) {
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	for i, k := range sorted {
		if k.Key == "" {
			return nil, ErrEmptyKey
		}
		if strings.IndexByte(k.Key, 0) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, k.Key)
		}
		if i > 0 && sorted[i-1].Key == k.Key {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k.Key)
		}
	}

	b := &daBuilder{keys: sorted, free: 1}
	b.grow(1024)
	if len(sorted) > 0 {
		b.build(rootID, 0, 0, len(sorted))
	}
	size := b.max + 1
	return &DoubleArray{base: b.base[:size], check: b.check[:size]}, nil
}

func (b *daBuilder) grow(size int) {
	if size <= len(b.base) {
		return
	}
	if size < len(b.base)*2 {
		size = len(b.base) * 2
	}
	base := make([]int32, size)
	check := make([]int32, size)
	copy(base, b.base)
	copy(check, b.check)
	for i := len(b.check); i < size; i++ {
		check[i] = notFound
	}
	b.base, b.check = base, check
}

type child struct {
	code       int32
	start, end int
}

func (b *daBuilder) children(depth, start, end int) []child {
	var out []child
	for i := start; i < end; i++ {
		code := int32(termCode)
		if depth < len(b.keys[i].Key) {
			code = int32(b.keys[i].Key[depth])
		}
		if n := len(out); n > 0 && out[n-1].code == code {
			out[n-1].end = i + 1
			continue
		}
		out = append(out, child{code: code, start: i, end: i + 1})
	}
	return out
}

func (b *daBuilder) findBase(cs []child) int32 {
	for b.free < len(b.check) && b.check[b.free] != notFound {
		b.free++
	}
	first := int(cs[0].code)
	for pos := b.free; ; pos++ {
		base := pos - first
		if base < 1 {
			continue
		}
		b.grow(base + 257)
		ok := true
		for _, c := range cs {
			if b.check[base+int(c.code)] != notFound {
				ok = false
				break
			}
		}
		if ok {
			return int32(base)
		}
	}
}

func (b *daBuilder) build(parent int32, depth, start, end int) {
	cs := b.children(depth, start, end)
	base := b.findBase(cs)
	b.base[parent] = base
	for _, c := range cs {
		slot := base + c.code
		b.check[slot] = parent
		if int(slot) > b.max {
			b.max = int(slot)
		}
		if c.code == termCode {
			b.base[slot] = -b.keys[c.start].ID - 1
		}
	}
	for _, c := range cs {
		if c.code != termCode {
			b.build(base+c.code, depth+1, c.start, c.end)
		}
	}
}
