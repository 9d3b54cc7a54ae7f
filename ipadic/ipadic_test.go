package ipadic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"morphja/model"
	"morphja/viterbi"
)

func TestFormatEntry(t *testing.T) {
	f := strings.Split("すもも,名詞,一般,*,*,*,*,すもも,スモモ,スモモ", ",")
	got := Formatter{}.FormatEntry(20, 1, viterbi.Known, f)
	assert.Equal(t, model.Token{
		WordID:         20,
		WordType:       "KNOWN",
		WordPosition:   1,
		SurfaceForm:    "すもも",
		POS:            "名詞",
		POSDetail1:     "一般",
		POSDetail2:     "*",
		POSDetail3:     "*",
		ConjugatedType: "*",
		ConjugatedForm: "*",
		BasicForm:      "すもも",
		Reading:        "スモモ",
		Pronunciation:  "スモモ",
	}, got)
	assert.True(t, got.Known())
}

func TestFormatEntryMissingFields(t *testing.T) {
	got := Formatter{}.FormatEntry(0, 3, viterbi.Known, []string{"x", "名詞"})
	assert.Equal(t, "名詞", got.POS)
	assert.Empty(t, got.POSDetail1)
	assert.Empty(t, got.Pronunciation)

	got = Formatter{}.FormatEntry(0, 3, viterbi.Known, nil)
	assert.Empty(t, got.SurfaceForm)
}

func TestFormatUnknownEntry(t *testing.T) {
	f := strings.Split("KATAKANA,名詞,一般,*,*,*,*,*", ",")
	got := Formatter{}.FormatUnknownEntry(30, 4, viterbi.Unknown, f, "カタカナ")
	assert.Equal(t, "カタカナ", got.SurfaceForm)
	assert.Equal(t, "UNKNOWN", got.WordType)
	assert.Equal(t, "名詞", got.POS)
	assert.Equal(t, "*", got.BasicForm)
	assert.Empty(t, got.Reading)
	assert.False(t, got.Known())
}
