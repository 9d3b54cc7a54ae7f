// Package kanji annotates token surfaces with their kana readings.
package kanji

import "strings"

// IsKanji reports whether r is a CJK unified ideograph or the iteration
// mark 々.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) || (r >= 0x20000 && r <= 0x2FA1F) || r == '々'
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return (r >= 0x3041 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// KatakanaToHiragana converts katakana in s to hiragana, leaving everything
// else untouched.
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

func hasKanji(rs []rune) bool {
	for _, r := range rs {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// Furigana formats surface with its reading attached to the kanji part, as
// in [食|た]べる. Kana shared by surface and reading at either end stays
// outside the brackets. Surfaces without kanji, and empty or "*" readings,
// come back unchanged.
func Furigana(surface, reading string) string {
	s := []rune(surface)
	if reading == "" || reading == "*" || !hasKanji(s) {
		return surface
	}
	r := []rune(KatakanaToHiragana(reading))
	same := func(a, b rune) bool { return IsKana(a) && []rune(KatakanaToHiragana(string(a)))[0] == b }

	head := 0
	for head < len(s) && head < len(r) && same(s[head], r[head]) {
		head++
	}
	tail := 0
	for tail < len(s)-head && tail < len(r)-head && same(s[len(s)-1-tail], r[len(r)-1-tail]) {
		tail++
	}
	if len(r)-head-tail <= 0 {
		return surface
	}

	var b strings.Builder
	b.WriteString(string(s[:head]))
	b.WriteString("[" + string(s[head:len(s)-tail]) + "|" + string(r[head:len(r)-tail]) + "]")
	b.WriteString(string(s[len(s)-tail:]))
	return b.String()
}
