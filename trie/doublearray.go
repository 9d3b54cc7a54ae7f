package trie

import (
	"morphja/bytecodec"
)

const (
	rootID   = 0
	termCode = 0
	notFound = -1
)

// DoubleArray is a trie stored as two parallel int32 arrays. The child of node
// p on byte c lives at base[p]+c and is valid only when check[child] == p.
// A key ends with a transition on the terminal code 0, whose base holds
// -id-1.
type DoubleArray struct {
	base  []int32
	check []int32
}

// NewDoubleArray wraps existing base and check arrays.
func NewDoubleArray(base, check []int32) *DoubleArray {
	return &DoubleArray{base: base, check: check}
}

// Load decodes base and check from their little-endian persisted form.
func Load(base, check []byte) *DoubleArray {
	return &DoubleArray{base: decodeInt32s(base), check: decodeInt32s(check)}
}

// Bytes encodes base and check in their persisted form.
func (da *DoubleArray) Bytes() (base, check []byte) {
	return encodeInt32s(da.base), encodeInt32s(da.check)
}

// Size returns the number of slots in the arrays.
func (da *DoubleArray) Size() int { return len(da.base) }

func (da *DoubleArray) baseAt(i int32) int32 {
	if i < 0 || int(i) >= len(da.base) {
		return 0
	}
	return da.base[i]
}

func (da *DoubleArray) traverse(parent int32, code int32) int32 {
	child := da.baseAt(parent) + code
	if child <= rootID || int(child) >= len(da.check) || da.check[child] != parent {
		return notFound
	}
	return child
}

// CommonPrefixSearch implements PrefixSearcher.
func (da *DoubleArray) CommonPrefixSearch(input string) []Match {
	var out []Match
	parent := int32(rootID)
	for i := 0; i < len(input); i++ {
		child := da.traverse(parent, int32(input[i]))
		if child == notFound {
			break
		}
		parent = child
		leaf := da.traverse(child, termCode)
		if leaf == notFound {
			continue
		}
		if b := da.baseAt(leaf); b <= 0 {
			out = append(out, Match{Key: input[:i+1], ID: -b - 1})
		}
	}
	return out
}

// Lookup implements Lookuper.
func (da *DoubleArray) Lookup(key string) (int32, bool) {
	parent := int32(rootID)
	for i := 0; i < len(key); i++ {
		parent = da.traverse(parent, int32(key[i]))
		if parent == notFound {
			return notFound, false
		}
	}
	leaf := da.traverse(parent, termCode)
	if leaf == notFound {
		return notFound, false
	}
	b := da.baseAt(leaf)
	if b > 0 {
		return notFound, false
	}
	return -b - 1, true
}

func decodeInt32s(b []byte) []int32 {
	buf := bytecodec.Wrap(b)
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = buf.Int32At(i * 4)
	}
	return out
}

func encodeInt32s(v []int32) []byte {
	buf := bytecodec.NewBuffer(len(v)*4 + 1)
	for _, x := range v {
		// an int32 never exceeds 0xFFFFFFFF
		_ = buf.PutInt32(int64(uint32(x)))
	}
	return buf.Shrink()
}
