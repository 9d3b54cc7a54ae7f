// Package bytecodec implements the little-endian byte buffer shared by every
// persisted dictionary structure.
//
// Reads past the end of the buffer never fail: integer reads yield zero for the
// missing bytes and string reads stop at the end. Persisted buffers are often
// padded, and the dictionary loaders rely on this.
package bytecodec

import (
	"errors"
	"fmt"
)

// DefaultSize is the initial capacity used by NewBuffer when no size is given.
const DefaultSize = 1024 * 1024

// ErrOverflow is returned when a value does not fit the requested width.
var ErrOverflow = errors.New("bytecodec: value overflows field width")

// Buffer is a sequential cursor over a growable byte slice.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer returns an empty buffer with the given initial capacity.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Buffer{buf: make([]byte, size)}
}

// Wrap returns a buffer reading b from offset 0. b is not copied.
func Wrap(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Size returns the length of the underlying slice, including any unwritten tail.
func (b *Buffer) Size() int { return len(b.buf) }

// Position returns the cursor offset.
func (b *Buffer) Position() int { return b.pos }

// Seek moves the cursor to an absolute offset.
func (b *Buffer) Seek(pos int) { b.pos = pos }

// Bytes returns the underlying slice without truncation.
func (b *Buffer) Bytes() []byte { return b.buf }

// Shrink truncates the buffer to the cursor and returns the result.
func (b *Buffer) Shrink() []byte {
	if b.pos < len(b.buf) {
		b.buf = b.buf[:b.pos]
	}
	return b.buf
}

func (b *Buffer) reserve(n int) {
	need := b.pos + n
	if need <= len(b.buf) {
		return
	}
	size := len(b.buf) * 2
	if size < need {
		size = need
	}
	grown := make([]byte, size)
	copy(grown, b.buf)
	b.buf = grown
}

// PutByte writes one byte at the cursor.
func (b *Buffer) PutByte(v byte) {
	b.reserve(1)
	b.buf[b.pos] = v
	b.pos++
}

// PutInt16 writes the low 16 bits of v. Values above 0xFFFF are rejected;
// negative values are stored in two's complement.
func (b *Buffer) PutInt16(v int) error {
	if v > 0xFFFF {
		return fmt.Errorf("%w: %d > 0xFFFF", ErrOverflow, v)
	}
	b.reserve(2)
	b.buf[b.pos] = byte(v)
	b.buf[b.pos+1] = byte(v >> 8)
	b.pos += 2
	return nil
}

// PutInt32 writes the low 32 bits of v. Values above 0xFFFFFFFF are rejected.
func (b *Buffer) PutInt32(v int64) error {
	if v > 0xFFFFFFFF {
		return fmt.Errorf("%w: %d > 0xFFFFFFFF", ErrOverflow, v)
	}
	b.reserve(4)
	b.buf[b.pos] = byte(v)
	b.buf[b.pos+1] = byte(v >> 8)
	b.buf[b.pos+2] = byte(v >> 16)
	b.buf[b.pos+3] = byte(v >> 24)
	b.pos += 4
	return nil
}

// PutString writes s followed by a null terminator.
func (b *Buffer) PutString(s string) {
	enc := EncodeString(s)
	b.reserve(len(enc) + 1)
	copy(b.buf[b.pos:], enc)
	b.pos += len(enc)
	b.buf[b.pos] = 0
	b.pos++
}

// ByteAt reads one byte at i, or 0 when i is out of range.
func (b *Buffer) ByteAt(i int) byte {
	if i < 0 || i >= len(b.buf) {
		return 0
	}
	return b.buf[i]
}

// Int16At reads a signed little-endian 16-bit value at i.
func (b *Buffer) Int16At(i int) int16 {
	return int16(uint16(b.ByteAt(i)) | uint16(b.ByteAt(i+1))<<8)
}

// Uint16At reads an unsigned little-endian 16-bit value at i.
func (b *Buffer) Uint16At(i int) uint16 {
	return uint16(b.Int16At(i))
}

// Int32At reads a signed little-endian 32-bit value at i.
func (b *Buffer) Int32At(i int) int32 {
	return int32(uint32(b.ByteAt(i)) |
		uint32(b.ByteAt(i+1))<<8 |
		uint32(b.ByteAt(i+2))<<16 |
		uint32(b.ByteAt(i+3))<<24)
}

// StringAt decodes the null-terminated string starting at i and returns it
// together with the offset just past the terminator.
func (b *Buffer) StringAt(i int) (string, int) {
	if i < 0 {
		return "", i
	}
	end := i
	for end < len(b.buf) && b.buf[end] != 0 {
		end++
	}
	var s string
	if i < end {
		s = DecodeString(b.buf[i:end])
	}
	return s, end + 1
}

// GetByte reads one byte at the cursor.
func (b *Buffer) GetByte() byte {
	v := b.ByteAt(b.pos)
	b.pos++
	return v
}

// GetInt16 reads a signed 16-bit value at the cursor.
func (b *Buffer) GetInt16() int16 {
	v := b.Int16At(b.pos)
	b.pos += 2
	return v
}

// GetInt32 reads a signed 32-bit value at the cursor.
func (b *Buffer) GetInt32() int32 {
	v := b.Int32At(b.pos)
	b.pos += 4
	return v
}

// GetString reads a null-terminated string at the cursor.
func (b *Buffer) GetString() string {
	s, next := b.StringAt(b.pos)
	b.pos = next
	return s
}
