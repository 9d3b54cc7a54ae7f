package dictionary

import (
	"fmt"

	"morphja/bytecodec"
)

// RecordSize is the stride of one token info record:
// int16 left_id, int16 right_id, int16 word_cost, int32 feature offset.
const RecordSize = 10

// TokenInfoDictionary holds the fixed-stride word records and the side table
// of "surface,feature..." strings they point into. A token info id is the
// byte offset of its record.
type TokenInfoDictionary struct {
	records   *bytecodec.Buffer
	features  *bytecodec.Buffer
	TargetMap TargetMap
	// set while the dictionary is still being written by Put
	building bool
	// set when wrapping persisted buffers, whose size may include padding
	loaded bool
}

// NewTokenInfoDictionary returns an empty dictionary ready for Put.
func NewTokenInfoDictionary() *TokenInfoDictionary {
	return &TokenInfoDictionary{
		records:   bytecodec.NewBuffer(64 * 1024),
		features:  bytecodec.NewBuffer(256 * 1024),
		TargetMap: make(TargetMap),
		building:  true,
	}
}

// LoadTokenInfoDictionary wraps persisted buffers. The slices are not copied.
func LoadTokenInfoDictionary(records, features, targetMap []byte) *TokenInfoDictionary {
	return &TokenInfoDictionary{
		records:   bytecodec.Wrap(records),
		features:  bytecodec.Wrap(features),
		TargetMap: DecodeTargetMap(targetMap),
		loaded:    true,
	}
}

// Put appends a record and its feature string and returns the new token info id.
func (d *TokenInfoDictionary) Put(leftID, rightID, wordCost int, surface, feature string) (int32, error) {
	fields := [...]int{leftID, rightID, wordCost}
	for _, v := range fields {
		if v > 0xFFFF {
			return 0, fmt.Errorf("put %q: %w: %d", surface, bytecodec.ErrOverflow, v)
		}
	}
	id := int32(d.records.Position())
	for _, v := range fields {
		_ = d.records.PutInt16(v)
	}
	if err := d.records.PutInt32(int64(d.features.Position())); err != nil {
		return 0, fmt.Errorf("put %q: %w", surface, err)
	}
	d.features.PutString(surface + "," + feature)
	return id, nil
}

// AddMapping registers tokenInfoID as a homonym of key.
func (d *TokenInfoDictionary) AddMapping(key, tokenInfoID int32) {
	d.TargetMap.Add(key, tokenInfoID)
}

// Shrink truncates both buffers after bulk construction. It is a no-op on a
// loaded dictionary, whose cursor does not mark the end of the data.
func (d *TokenInfoDictionary) Shrink() {
	if !d.building {
		return
	}
	d.records.Shrink()
	d.features.Shrink()
	d.building = false
}

// Len returns the number of records. A loaded dictionary counts the distinct
// records its target map reaches.
func (d *TokenInfoDictionary) Len() int {
	switch {
	case d.building:
		return d.records.Position() / RecordSize
	case d.loaded:
		seen := make(map[int32]struct{})
		for _, ids := range d.TargetMap {
			for _, id := range ids {
				seen[id] = struct{}{}
			}
		}
		return len(seen)
	}
	return d.records.Size() / RecordSize
}

// LeftID returns the left context id of a record.
func (d *TokenInfoDictionary) LeftID(id int32) int16 { return d.records.Int16At(int(id)) }

// RightID returns the right context id of a record.
func (d *TokenInfoDictionary) RightID(id int32) int16 { return d.records.Int16At(int(id) + 2) }

// WordCost returns the emission cost of a record.
func (d *TokenInfoDictionary) WordCost(id int32) int16 { return d.records.Int16At(int(id) + 4) }

// Features returns the "surface,feature..." string of a record.
func (d *TokenInfoDictionary) Features(id int32) string {
	if id < 0 {
		return ""
	}
	s, _ := d.features.StringAt(int(d.records.Int32At(int(id) + 6)))
	return s
}

// Buffers returns the record, feature and target map buffers in persisted form.
func (d *TokenInfoDictionary) Buffers() (records, features, targetMap []byte) {
	d.Shrink()
	return d.records.Bytes(), d.features.Bytes(), d.TargetMap.Encode()
}
