// Package tokenize segments text into tokens using the lattice search over
// a loaded dictionary.
package tokenize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"morphja/dictionary"
	"morphja/ingest"
	"morphja/ipadic"
	"morphja/model"
	"morphja/viterbi"
)

// ErrInputTooLong is returned when a sentence exceeds the configured limit.
var ErrInputTooLong = errors.New("tokenize: sentence too long")

// Formatter turns resolved features into caller-visible tokens.
type Formatter interface {
	FormatEntry(wordID int32, position int, typ viterbi.NodeType, features []string) model.Token
	FormatUnknownEntry(wordID int32, position int, typ viterbi.NodeType, features []string, surface string) model.Token
}

// Tokenized pairs a sentence with the tokens produced for it.
type Tokenized struct {
	Sentence ingest.Sentence `json:"sentence"`
	Tokens   []model.Token   `json:"tokens"`
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithFormatter replaces the default IPADIC formatter.
func WithFormatter(f Formatter) Option {
	return func(t *Tokenizer) { t.formatter = f }
}

// WithLogger sets the logger for per-sentence diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tokenizer) { t.log = l }
}

// WithMaxSentenceLength limits the characters per sentence accepted by
// TokenizeContext and Analyze. Zero means no limit.
func WithMaxSentenceLength(n int) Option {
	return func(t *Tokenizer) { t.maxLen = n }
}

// Tokenizer is safe for concurrent use; the dictionaries are never written.
type Tokenizer struct {
	dict      *dictionary.Dictionaries
	builder   *viterbi.Builder
	searcher  *viterbi.Searcher
	formatter Formatter
	log       *zap.Logger
	maxLen    int
	lattices  sync.Pool
}

// New returns a tokenizer over d.
func New(d *dictionary.Dictionaries, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		dict:      d,
		builder:   viterbi.NewBuilder(d),
		searcher:  viterbi.NewSearcher(d.Connection),
		formatter: ipadic.Formatter{},
		log:       zap.NewNop(),
	}
	t.lattices.New = func() any { return viterbi.NewLattice() }
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize analyzes text without length limit or cancellation. A sentence
// whose end cannot be reached contributes no tokens.
//
// WordPosition is the 1-based character offset of the token in text. This
// differs from kuromoji-style positions, which advance by the last token's
// position, whenever a sentence ends in a token longer than one character.
func (t *Tokenizer) Tokenize(text string) []model.Token {
	var tokens []model.Token
	for _, s := range ingest.Split(text) {
		tokens = t.appendSentence(tokens, s)
	}
	return tokens
}

// TokenizeContext is Tokenize with the sentence length limit applied and ctx
// checked between sentences.
func (t *Tokenizer) TokenizeContext(ctx context.Context, text string) ([]model.Token, error) {
	var tokens []model.Token
	err := t.each(ctx, text, func(s ingest.Sentence) {
		tokens = t.appendSentence(tokens, s)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Analyze is TokenizeContext with the tokens grouped by sentence.
func (t *Tokenizer) Analyze(ctx context.Context, text string) ([]Tokenized, error) {
	var out []Tokenized
	err := t.each(ctx, text, func(s ingest.Sentence) {
		out = append(out, Tokenized{Sentence: s, Tokens: t.appendSentence(nil, s)})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tokenizer) each(ctx context.Context, text string, fn func(ingest.Sentence)) error {
	for _, s := range ingest.Split(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.checkLen(s); err != nil {
			return err
		}
		fn(s)
	}
	return nil
}

func (t *Tokenizer) checkLen(s ingest.Sentence) error {
	if n := s.Len(); t.maxLen > 0 && n > t.maxLen {
		return fmt.Errorf("%w: sentence %d has %d characters, limit is %d", ErrInputTooLong, s.Index, n, t.maxLen)
	}
	return nil
}

// Lattice returns the searched lattice of a single sentence, subject to the
// same length limit as TokenizeContext. The caller owns the result.
func (t *Tokenizer) Lattice(sentence string) (*viterbi.Lattice, error) {
	if err := t.checkLen(ingest.Sentence{Text: sentence}); err != nil {
		return nil, err
	}
	l := t.builder.Build(sentence)
	t.searcher.Forward(l)
	return l, nil
}

func (t *Tokenizer) appendSentence(tokens []model.Token, s ingest.Sentence) []model.Token {
	l := t.lattices.Get().(*viterbi.Lattice)
	defer t.lattices.Put(l)

	t.builder.BuildInto(l, s.Text)
	path := t.searcher.Search(l)
	t.log.Debug("sentence searched",
		zap.Int("sentence", s.Index),
		zap.Int("nodes", l.Len()),
		zap.Int("path", len(path)))
	if path == nil && s.Text != "" {
		t.log.Warn("no path through sentence", zap.Int("sentence", s.Index), zap.String("text", s.Text))
	}

	for _, n := range path {
		tokens = append(tokens, t.format(n, s.Offset+n.StartPos))
	}
	return tokens
}

func (t *Tokenizer) format(n viterbi.Node, position int) model.Token {
	if n.Type == viterbi.Unknown {
		features := splitFeatures(t.dict.Unknown.Features(n.ID))
		return t.formatter.FormatUnknownEntry(n.ID, position, n.Type, features, n.SurfaceForm)
	}
	features := splitFeatures(t.dict.TokenInfo.Features(n.ID))
	return t.formatter.FormatEntry(n.ID, position, n.Type, features)
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
