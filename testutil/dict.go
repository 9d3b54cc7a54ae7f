// Package testutil provides small dictionaries shared by the package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"morphja/dictbuilder"
	"morphja/dictionary"
)

// Context ids used by the sample dictionary. 0 is reserved for BOS/EOS.
const (
	Noun     = 1
	Particle = 2
	Symbol   = 3
)

// SampleBuilder returns a builder for a small IPADIC-shaped dictionary that
// covers the classic すもも sentence, hiragana and katakana runs, kanji and
// punctuation.
func SampleBuilder() *dictbuilder.Builder {
	b := dictbuilder.New()

	b.AddWord("すもも", Noun, Noun, 3000, "名詞", "一般", "*", "*", "*", "*", "すもも", "スモモ", "スモモ")
	b.AddWord("もも", Noun, Noun, 3000, "名詞", "一般", "*", "*", "*", "*", "もも", "モモ", "モモ")
	b.AddWord("もも", Noun, Noun, 4000, "名詞", "固有名詞", "人名", "名", "*", "*", "もも", "モモ", "モモ")
	b.AddWord("も", Particle, Particle, 1000, "助詞", "係助詞", "*", "*", "*", "*", "も", "モ", "モ")
	b.AddWord("の", Particle, Particle, 1000, "助詞", "連体化", "*", "*", "*", "*", "の", "ノ", "ノ")
	b.AddWord("うち", Noun, Noun, 3000, "名詞", "非自立", "副詞可能", "*", "*", "*", "うち", "ウチ", "ウチ")
	b.AddWord("、", Symbol, Symbol, 0, "記号", "読点", "*", "*", "*", "*", "、", "、", "、")
	b.AddWord("。", Symbol, Symbol, 0, "記号", "句点", "*", "*", "*", "*", "。", "。", "。")

	b.DefineClass("DEFAULT", false, true, 0).
		DefineClass("SPACE", false, true, 0).
		DefineClass("KANJI", false, false, 2).
		DefineClass("SYMBOL", true, true, 0).
		DefineClass("NUMERIC", true, true, 0).
		DefineClass("ALPHA", true, true, 0).
		DefineClass("HIRAGANA", false, true, 2).
		DefineClass("KATAKANA", true, true, 2)

	b.MapCategory(0x0020, 0x0020, "SPACE").
		MapCategory(0x0021, 0x002F, "SYMBOL").
		MapCategory(0x0030, 0x0039, "NUMERIC").
		MapCategory(0x003A, 0x0040, "SYMBOL").
		MapCategory(0x0041, 0x005A, "ALPHA").
		MapCategory(0x0061, 0x007A, "ALPHA").
		MapCategory(0x3000, 0x3000, "SPACE").
		MapCategory(0x3001, 0x303F, "SYMBOL").
		MapCategory(0x3041, 0x309F, "HIRAGANA").
		MapCategory(0x30A1, 0x30FF, "KATAKANA").
		MapCategory(0x30FC, 0x30FC, "KATAKANA", "HIRAGANA").
		MapCategory(0x4E00, 0x9FAF, "KANJI")

	b.AddUnknown("DEFAULT", Symbol, Symbol, 5000, "記号", "一般", "*", "*", "*", "*", "*").
		AddUnknown("SPACE", Symbol, Symbol, 5000, "記号", "空白", "*", "*", "*", "*", "*").
		AddUnknown("KANJI", Noun, Noun, 8000, "名詞", "一般", "*", "*", "*", "*", "*").
		AddUnknown("SYMBOL", Symbol, Symbol, 5000, "記号", "一般", "*", "*", "*", "*", "*").
		AddUnknown("NUMERIC", Noun, Noun, 5000, "名詞", "数", "*", "*", "*", "*", "*").
		AddUnknown("ALPHA", Noun, Noun, 5000, "名詞", "固有名詞", "組織", "*", "*", "*", "*").
		AddUnknown("HIRAGANA", Noun, Noun, 9000, "名詞", "一般", "*", "*", "*", "*", "*").
		AddUnknown("KATAKANA", Noun, Noun, 6000, "名詞", "一般", "*", "*", "*", "*", "*").
		AddUnknown("KATAKANA", Noun, Noun, 7000, "名詞", "固有名詞", "一般", "*", "*", "*", "*")

	b.SetConnectionSize(4, 4)
	costs := [4][4]int{
		{0, 0, 1000, 0},
		{0, 1000, -500, 0},
		{500, -200, 1000, 0},
		{0, 0, 1000, 0},
	}
	for fwd, row := range costs {
		for bwd, c := range row {
			b.SetCost(fwd, bwd, c)
		}
	}
	return b
}

// SampleDictionaries builds the sample dictionary or fails the test.
func SampleDictionaries(t testing.TB) *dictionary.Dictionaries {
	t.Helper()
	d, err := SampleBuilder().Build()
	require.NoError(t, err)
	return d
}

// MapSource is an in-memory dictionary.ByteSource.
type MapSource map[string][]byte

// Load implements dictionary.ByteSource.
func (m MapSource) Load(name string) ([]byte, error) {
	b, ok := m[name]
	if !ok {
		return nil, MissingError{Name: name}
	}
	return b, nil
}

// MissingError is returned by MapSource for an absent buffer.
type MissingError struct{ Name string }

func (e MissingError) Error() string { return "testutil: missing buffer " + e.Name }
