package bytecodec

import (
	"errors"
	"unicode/utf16"
)

// ErrMalformedSurrogate reports a high surrogate that is not followed by a low one.
var ErrMalformedSurrogate = errors.New("bytecodec: malformed surrogate pair")

// EncodeUTF16 converts UTF-16 code units to UTF-8. A surrogate pair becomes a
// single 4-byte sequence; an unpaired low surrogate is emitted as a 3-byte
// sequence like any other BMP unit.
func EncodeUTF16(units []uint16) ([]byte, error) {
	out := make([]byte, 0, len(units)*3)
	for i := 0; i < len(units); i++ {
		code := rune(units[i])
		if code >= 0xD800 && code <= 0xDBFF {
			if i+1 >= len(units) {
				return nil, ErrMalformedSurrogate
			}
			lower := rune(units[i+1])
			if lower < 0xDC00 || lower > 0xDFFF {
				return nil, ErrMalformedSurrogate
			}
			code = (code-0xD800)<<10 + 0x10000 + (lower - 0xDC00)
			i++
		}
		switch {
		case code < 0x80:
			out = append(out, byte(code))
		case code < 0x800:
			out = append(out,
				byte(code>>6)|0xC0,
				byte(code&0x3F)|0x80)
		case code < 0x10000:
			out = append(out,
				byte(code>>12)|0xE0,
				byte((code>>6)&0x3F)|0x80,
				byte(code&0x3F)|0x80)
		default:
			out = append(out,
				byte(code>>18)|0xF0,
				byte((code>>12)&0x3F)|0x80,
				byte((code>>6)&0x3F)|0x80,
				byte(code&0x3F)|0x80)
		}
	}
	return out, nil
}

// DecodeUTF16 is the inverse of EncodeUTF16. Code points at or above 0x10000
// come back as surrogate pairs. Truncated sequences read the missing
// continuation bytes as zero.
func DecodeUTF16(b []byte) []uint16 {
	at := func(i int) rune {
		if i < len(b) {
			return rune(b[i])
		}
		return 0
	}
	out := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		b1 := at(i)
		var code rune
		switch {
		case b1 < 0x80:
			code = b1
			i++
		case b1>>5 == 0x06:
			code = (b1&0x1F)<<6 | at(i+1)&0x3F
			i += 2
		case b1>>4 == 0x0E:
			code = (b1&0x0F)<<12 | (at(i+1)&0x3F)<<6 | at(i+2)&0x3F
			i += 3
		default:
			code = (b1&0x07)<<18 | (at(i+1)&0x3F)<<12 | (at(i+2)&0x3F)<<6 | at(i+3)&0x3F
			i += 4
		}
		if code < 0x10000 {
			out = append(out, uint16(code))
			continue
		}
		code -= 0x10000
		out = append(out, uint16(0xD800|code>>10), uint16(0xDC00|code&0x3FF))
	}
	return out
}

// EncodeString encodes a Go string through its UTF-16 form.
func EncodeString(s string) []byte {
	// utf16.Encode never yields an unpaired high surrogate.
	enc, _ := EncodeUTF16(utf16.Encode([]rune(s)))
	return enc
}

// DecodeString decodes bytes written by EncodeString.
func DecodeString(b []byte) string {
	return string(utf16.Decode(DecodeUTF16(b)))
}
