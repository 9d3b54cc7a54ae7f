// Package ingest splits input text into the sentences the tokenizer
// analyzes one at a time.
package ingest

import (
	"strings"
	"unicode/utf8"
)

// Delimiters are the punctuation marks that end a sentence. The delimiter
// stays attached to the sentence it ends.
const Delimiters = "、。"

// Sentence is one piece of the input and where it starts.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	// Offset is the number of characters of input before Text.
	Offset int `json:"offset"`
}

// Len returns the number of characters in the sentence.
func (s Sentence) Len() int { return utf8.RuneCountInString(s.Text) }

// Split cuts text after every delimiter. Empty pieces are dropped, so the
// result is empty for empty input.
func Split(text string) []Sentence {
	var out []Sentence
	offset := 0
	for text != "" {
		end := len(text)
		if i := strings.IndexAny(text, Delimiters); i >= 0 {
			_, size := utf8.DecodeRuneInString(text[i:])
			end = i + size
		}
		s := Sentence{Index: len(out), Text: text[:end], Offset: offset}
		out = append(out, s)
		offset += s.Len()
		text = text[end:]
	}
	return out
}
