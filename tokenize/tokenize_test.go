package tokenize

import (
	"context"
	"strings"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"morphja/dictbuilder"
	"morphja/dictionary"
	"morphja/model"
	"morphja/testutil"
	"morphja/viterbi"
)

func surfaces(tokens []model.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.SurfaceForm
	}
	return out
}

func positions(tokens []model.Token) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.WordPosition
	}
	return out
}

func TestTokenizeSumomo(t *testing.T) {
	tokens := New(testutil.SampleDictionaries(t)).Tokenize("すもももももももものうち")

	assert.Equal(t, []string{"すもも", "も", "もも", "も", "もも", "の", "うち"}, surfaces(tokens))
	assert.Equal(t, []int{1, 4, 5, 7, 8, 10, 11}, positions(tokens))
	for _, tok := range tokens {
		assert.Equal(t, "KNOWN", tok.WordType)
	}
	assert.Equal(t, "助詞", tokens[1].POS)
	assert.Equal(t, "係助詞", tokens[1].POSDetail1)
	assert.Equal(t, "スモモ", tokens[0].Reading)
	assert.Equal(t, "一般", tokens[2].POSDetail1, "cheaper homonym")
}

func TestTokenizeSupplementaryCharacter(t *testing.T) {
	tokens := New(testutil.SampleDictionaries(t)).Tokenize("𠮷野屋")

	assert.Equal(t, []string{"𠮷", "野", "屋"}, surfaces(tokens))
	assert.Equal(t, []int{1, 2, 3}, positions(tokens))
	assert.Equal(t, "記号", tokens[0].POS)
	for _, tok := range tokens {
		assert.Equal(t, "UNKNOWN", tok.WordType)
		assert.Empty(t, tok.Reading)
	}
}

func TestTokenizeAcrossSentences(t *testing.T) {
	tokens := New(testutil.SampleDictionaries(t)).Tokenize("あ、あ。あ、あ。")

	assert.Equal(t, []string{"あ", "、", "あ", "。", "あ", "、", "あ", "。"}, surfaces(tokens))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, positions(tokens))
	assert.Equal(t, "KNOWN", tokens[1].WordType)
	assert.Equal(t, "読点", tokens[1].POSDetail1)
}

func TestTokenizeOffsetWithoutTrailingPunctuationToken(t *testing.T) {
	// The first sentence ends in a three-character word, so later positions
	// must count characters, not follow the last token.
	tokens := New(testutil.SampleDictionaries(t)).Tokenize("もも。すもも")
	assert.Equal(t, []string{"もも", "。", "すもも"}, surfaces(tokens))
	assert.Equal(t, []int{1, 3, 4}, positions(tokens))
}

func TestTokenizeGroupsKatakanaRun(t *testing.T) {
	tokens := New(testutil.SampleDictionaries(t)).Tokenize("カタカナ")
	require.Len(t, tokens, 1)
	assert.Equal(t, "カタカナ", tokens[0].SurfaceForm)
	assert.Equal(t, "UNKNOWN", tokens[0].WordType)
	assert.Equal(t, int32(70), tokens[0].WordID, "first KATAKANA template")
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, New(testutil.SampleDictionaries(t)).Tokenize(""))
}

type recorder struct {
	calls []string
}

func (r *recorder) FormatEntry(wordID int32, position int, typ viterbi.NodeType, features []string) model.Token {
	r.calls = append(r.calls, typ.String()+":"+strings.Join(features, "|"))
	return model.Token{WordID: wordID, WordPosition: position}
}

func (r *recorder) FormatUnknownEntry(wordID int32, position int, typ viterbi.NodeType, features []string, surface string) model.Token {
	r.calls = append(r.calls, typ.String()+":"+surface+":"+features[0])
	return model.Token{WordID: wordID, WordPosition: position, SurfaceForm: surface}
}

func TestFormatterReceivesResolvedFeatures(t *testing.T) {
	rec := &recorder{}
	New(testutil.SampleDictionaries(t), WithFormatter(rec)).Tokenize("の野")
	assert.Equal(t, []string{
		"KNOWN:の|助詞|連体化|*|*|*|*|の|ノ|ノ",
		"UNKNOWN:野:KANJI",
	}, rec.calls)
}

func TestMissingFeaturesResolveEmpty(t *testing.T) {
	d, err := dictbuilder.New().
		DefineClass(dictionary.DefaultCategory, false, false, 0).
		AddUnknown(dictionary.DefaultCategory, 0, 0, 100).
		SetConnectionSize(1, 1).
		AddWord("a", 0, 0, 1).
		Build()
	require.NoError(t, err)
	// Point the record at a feature offset past the end of the string table.
	records, features, targets := d.TokenInfo.Buffers()
	records[6] = 0xFF
	d.TokenInfo = dictionary.LoadTokenInfoDictionary(records, features, targets)

	rec := &recorder{}
	tokens := New(d, WithFormatter(rec)).Tokenize("a")
	require.Len(t, tokens, 1)
	assert.Equal(t, []string{"KNOWN:"}, rec.calls)
}

func TestTokenizeContextLimits(t *testing.T) {
	tok := New(testutil.SampleDictionaries(t), WithMaxSentenceLength(4))

	tokens, err := tok.TokenizeContext(context.Background(), "すもも。もも")
	require.NoError(t, err)
	assert.Len(t, tokens, 3)

	_, err = tok.TokenizeContext(context.Background(), "もも。すもももも")
	assert.ErrorIs(t, err, ErrInputTooLong)
	assert.Contains(t, err.Error(), "sentence 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tok.TokenizeContext(ctx, "もも")
	assert.ErrorIs(t, err, context.Canceled)

	// The plain call ignores the limit.
	assert.Len(t, tok.Tokenize("すもももも"), 3)
}

func TestAnalyzeGroupsBySentence(t *testing.T) {
	out, err := New(testutil.SampleDictionaries(t)).Analyze(context.Background(), "すもも、もも")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "すもも、", out[0].Sentence.Text)
	assert.Equal(t, []string{"すもも", "、"}, surfaces(out[0].Tokens))
	assert.Equal(t, []int{5}, positions(out[1].Tokens))
}

func TestLatticeIsSearched(t *testing.T) {
	l, err := New(testutil.SampleDictionaries(t)).Lattice("すもももももももものうち")
	require.NoError(t, err)
	require.NotNil(t, l.EOS())
	assert.Equal(t, int64(12900), l.EOS().ShortestCost)
}

func TestLatticeHonorsLimit(t *testing.T) {
	tok := New(testutil.SampleDictionaries(t), WithMaxSentenceLength(4))

	_, err := tok.Lattice("すもももも")
	assert.ErrorIs(t, err, ErrInputTooLong)

	l, err := tok.Lattice("すもも。")
	require.NoError(t, err)
	assert.NotNil(t, l.EOS())
}

func TestUnreachableSentenceIsLogged(t *testing.T) {
	d, err := dictbuilder.New().
		DefineClass(dictionary.DefaultCategory, false, false, 0).
		SetConnectionSize(1, 1).
		AddWord("a", 0, 0, 1).
		AddWord("。", 0, 0, 1).
		Build()
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	tokens := New(d, WithLogger(zap.New(core))).Tokenize("ba。a")
	assert.Equal(t, []string{"a"}, surfaces(tokens))
	assert.Equal(t, []int{4}, positions(tokens))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ba。", logs.All()[0].ContextMap()["text"])
}

func TestConcurrentTokenize(t *testing.T) {
	tok := New(testutil.SampleDictionaries(t))
	want := tok.Tokenize("すもももももももものうち。カタカナ")

	var wg conc.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Go(func() {
			assert.Equal(t, want, tok.Tokenize("すもももももももものうち。カタカナ"))
		})
	}
	wg.Wait()
}

func TestTokensCoverInput(t *testing.T) {
	tok := New(testutil.SampleDictionaries(t))
	alphabet := []rune("すものうちあ、。カタナ野屋𠮷A1 ー")
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(rt, "text")
		tokens := tok.Tokenize(text)

		pos := 1
		var b strings.Builder
		for _, tk := range tokens {
			if tk.WordPosition != pos {
				rt.Fatalf("token %q at %d, want %d", tk.SurfaceForm, tk.WordPosition, pos)
			}
			b.WriteString(tk.SurfaceForm)
			pos += len([]rune(tk.SurfaceForm))
		}
		if b.String() != text {
			rt.Fatalf("surfaces %q, want %q", b.String(), text)
		}
		if again := tok.Tokenize(text); !assert.ObjectsAreEqual(tokens, again) {
			rt.Fatalf("nondeterministic result for %q", text)
		}
	})
}
