package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morphja/testutil"
)

type span struct {
	Start, Length int
	Type          NodeType
	Surface       string
}

func spans(l *Lattice, end int) []span {
	var out []span
	for _, i := range l.EndingAt(end) {
		n := l.Node(i)
		out = append(out, span{n.StartPos, n.Length, n.Type, n.SurfaceForm})
	}
	return out
}

func TestBuildKnownWords(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("すもも")

	// "もも" has two homonyms; bucket order is the order of discovery.
	assert.Equal(t, []span{
		{1, 3, Known, "すもも"},
		{2, 2, Known, "もも"},
		{2, 2, Known, "もも"},
		{3, 1, Known, "も"},
	}, spans(l, 3))
	assert.Equal(t, []span{{2, 1, Known, "も"}}, spans(l, 2))
	assert.Empty(t, spans(l, 1))
	assert.Equal(t, 4, l.EOS().StartPos)
}

func TestHomonymOrderFollowsTargetMap(t *testing.T) {
	d := testutil.SampleDictionaries(t)
	l := NewBuilder(d).Build("もも")

	var costs []int16
	for _, i := range l.EndingAt(2) {
		if n := l.Node(i); n.Length == 2 {
			costs = append(costs, n.Cost)
		}
	}
	assert.Equal(t, []int16{3000, 4000}, costs)
}

func TestBuildUnknownOnlyWithoutMatch(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("うちち")

	for _, n := range l.Nodes() {
		if n.StartPos == 1 {
			assert.Equal(t, Known, n.Type, "known match suppresses unknown words for HIRAGANA")
		}
	}
	// "ち" at 3 has no dictionary entry; HIRAGANA groups the run "ちち" at 2.
	assert.Equal(t, []span{{2, 2, Unknown, "ちち"}, {3, 1, Unknown, "ち"}}, spans(l, 3))
}

func TestAlwaysInvokeAddsUnknownBesideKnown(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("、")
	assert.Equal(t, []span{{1, 1, Known, "、"}, {1, 1, Unknown, "、"}}, spans(l, 1))
}

func TestGroupingCollapsesRun(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("カタカナ")

	// Two KATAKANA templates, each spanning the whole run despite a max length of 2.
	assert.Equal(t, []span{
		{1, 4, Unknown, "カタカナ"},
		{1, 4, Unknown, "カタカナ"},
		{2, 3, Unknown, "タカナ"},
		{2, 3, Unknown, "タカナ"},
		{3, 2, Unknown, "カナ"},
		{3, 2, Unknown, "カナ"},
		{4, 1, Unknown, "ナ"},
		{4, 1, Unknown, "ナ"},
	}, spans(l, 4))
}

func TestGroupingStopsAtClassChange(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("ABカ")
	assert.Equal(t, []span{{1, 2, Unknown, "AB"}, {2, 1, Unknown, "B"}}, spans(l, 2))
}

func TestNoGroupingForKanji(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("野屋")
	assert.Equal(t, []span{{1, 1, Unknown, "野"}}, spans(l, 1))
	assert.Equal(t, []span{{2, 1, Unknown, "屋"}}, spans(l, 2))
}

func TestSurrogatePairIsOnePosition(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("𠮷野屋")

	assert.Equal(t, []span{{1, 1, Unknown, "𠮷"}}, spans(l, 1))
	assert.Equal(t, []span{{2, 1, Unknown, "野"}}, spans(l, 2))
	assert.Equal(t, 4, l.EOS().StartPos)
}

func TestBuildEmptySentence(t *testing.T) {
	b := NewBuilder(testutil.SampleDictionaries(t))
	l := b.Build("")
	require.NotNil(t, l.EOS())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.EOS().StartPos)
}
