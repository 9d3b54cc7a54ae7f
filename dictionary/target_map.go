package dictionary

import (
	"sort"

	"morphja/bytecodec"
)

// TargetMap maps a trie id (known words) or a character class id (unknown
// words) to the token info ids of every homonym, in insertion order.
type TargetMap map[int32][]int32

// Add appends tokenInfoID to the homonyms of key.
func (m TargetMap) Add(key, tokenInfoID int32) {
	m[key] = append(m[key], tokenInfoID)
}

// Get returns the homonyms of key, or nil.
func (m TargetMap) Get(key int32) []int32 {
	return m[key]
}

// Encode serialises the map as key_count followed by
// {key, value_count, values...} records in ascending key order.
func (m TargetMap) Encode() []byte {
	keys := make([]int32, 0, len(m))
	size := 4
	for k, v := range m {
		keys = append(keys, k)
		size += 8 + 4*len(v)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buf := bytecodec.NewBuffer(size)
	put := func(v int32) { _ = buf.PutInt32(int64(uint32(v))) }
	put(int32(len(keys)))
	for _, k := range keys {
		values := m[k]
		put(k)
		put(int32(len(values)))
		for _, v := range values {
			put(v)
		}
	}
	return buf.Shrink()
}

// DecodeTargetMap parses the layout written by Encode. Reading stops at the
// declared key count or at the end of the buffer, whichever comes first.
func DecodeTargetMap(b []byte) TargetMap {
	buf := bytecodec.Wrap(b)
	count := int(buf.GetInt32())
	m := make(TargetMap, max(count, 0))
	for i := 0; i < count && buf.Position()+8 <= buf.Size(); i++ {
		key := buf.GetInt32()
		n := int(buf.GetInt32())
		for j := 0; j < n && buf.Position() < buf.Size(); j++ {
			m.Add(key, buf.GetInt32())
		}
	}
	return m
}
