// Package refcheck compares our segmentation with kagome's, using the IPA or
// UniDic dictionary bundled with kagome as the reference.
package refcheck

import (
	"fmt"
	"sort"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"morphja/model"
)

// Dictionary names accepted by DictFor.
const (
	IPA    = "ipa"
	UniDic = "uni"
)

// DictFor returns the bundled kagome dictionary with the given name.
func DictFor(name string) (*dict.Dict, error) {
	switch name {
	case IPA, "":
		return ipa.Dict(), nil
	case UniDic:
		return uni.Dict(), nil
	}
	return nil, fmt.Errorf("refcheck: unknown reference dictionary %q", name)
}

// Segment is one reference word.
type Segment struct {
	// Position is 1-based and counts characters, like model.Token.
	Position int    `json:"position"`
	Surface  string `json:"surface"`
	Class    string `json:"class"`
}

// Reference wraps a kagome tokenizer.
type Reference struct {
	t    *tokenizer.Tokenizer
	mode tokenizer.TokenizeMode
}

// Option configures a Reference.
type Option func(*Reference)

// WithMode selects kagome's Normal, Search or Extended segmentation.
func WithMode(m tokenizer.TokenizeMode) Option {
	return func(r *Reference) { r.mode = m }
}

// New returns a reference analyzer over d.
func New(d *dict.Dict, opts ...Option) (*Reference, error) {
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("refcheck: new tokenizer: %w", err)
	}
	r := &Reference{t: t, mode: tokenizer.Normal}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Segment returns kagome's words for text.
func (r *Reference) Segment(text string) []Segment {
	toks := r.t.Analyze(text, r.mode)
	out := make([]Segment, 0, len(toks))
	for _, kt := range toks {
		out = append(out, Segment{Position: kt.Start + 1, Surface: kt.Surface, Class: kt.Class.String()})
	}
	return out
}

// Compare segments text with kagome and compares the result with tokens.
func (r *Reference) Compare(text string, tokens []model.Token) Report {
	rep := Compare(r.Segment(text), tokens)
	rep.Text = text
	return rep
}

// Report summarizes a comparison.
type Report struct {
	Text        string             `json:"text"`
	Matched     int                `json:"matched"`
	Divergences []model.Divergence `json:"divergences,omitempty"`
}

// Agree reports whether both segmentations are identical.
func (r Report) Agree() bool { return len(r.Divergences) == 0 }

// Compare lines up words by start position. A position where only one side
// starts a word, or where the surfaces differ, is a divergence.
func Compare(ref []Segment, tokens []model.Token) Report {
	want := make(map[int]string, len(ref))
	for _, s := range ref {
		want[s.Position] = s.Surface
	}
	got := make(map[int]string, len(tokens))
	for _, t := range tokens {
		got[t.WordPosition] = t.SurfaceForm
	}

	positions := make([]int, 0, len(want)+len(got))
	for p := range want {
		positions = append(positions, p)
	}
	for p := range got {
		if _, ok := want[p]; !ok {
			positions = append(positions, p)
		}
	}
	sort.Ints(positions)

	var rep Report
	for _, p := range positions {
		g, w := got[p], want[p]
		if g == w {
			rep.Matched++
			continue
		}
		rep.Divergences = append(rep.Divergences, model.Divergence{Position: p, Got: g, Want: w})
	}
	return rep
}
