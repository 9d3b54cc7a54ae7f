package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLatticeHoldsBOS(t *testing.T) {
	l := NewLattice()
	bos := l.EndingAt(0)
	require.Len(t, bos, 1)
	assert.Equal(t, BOS, l.Node(bos[0]).Type)
	assert.Equal(t, int64(0), l.Node(bos[0]).ShortestCost)
	assert.Nil(t, l.EOS())
}

func TestAppendBucketsByEndPosition(t *testing.T) {
	l := NewLattice()
	l.Append(newNode(0, 1, 1, 3, Known, 0, 0, "すもも"))
	l.Append(newNode(10, 1, 2, 1, Known, 0, 0, "も"))
	l.Append(newNode(20, 1, 3, 1, Unknown, 0, 0, "も"))

	assert.Equal(t, 3, l.EOSPos())
	assert.Len(t, l.EndingAt(3), 2)
	assert.Len(t, l.EndingAt(2), 1)
	assert.Empty(t, l.EndingAt(1))
	assert.Empty(t, l.EndingAt(99))

	l.AppendEOS()
	eos := l.EOS()
	require.NotNil(t, eos)
	assert.Equal(t, 4, eos.StartPos)
	assert.Equal(t, 4, l.EOSPos())
	assert.Equal(t, int64(Unreachable), eos.ShortestCost)
	assert.Len(t, l.EndingAt(4), 1)
}

func TestResetReusesLattice(t *testing.T) {
	l := NewLattice()
	l.Append(newNode(0, 1, 1, 5, Known, 0, 0, "abcde"))
	l.AppendEOS()

	l.Reset()
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.EOSPos())
	assert.Empty(t, l.EndingAt(5))
	l.AppendEOS()
	assert.Equal(t, 1, l.EOS().StartPos)
}

func TestNodeTypeNames(t *testing.T) {
	assert.Equal(t, "KNOWN", Known.String())
	assert.Equal(t, "UNKNOWN", Unknown.String())
	assert.Equal(t, "NodeType(9)", NodeType(9).String())
	b, err := EOS.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "EOS", string(b))
}
