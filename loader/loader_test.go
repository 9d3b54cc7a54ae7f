package loader

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morphja/dictionary"
	"morphja/testutil"
	"morphja/tokenize"
)

func sumomo(t *testing.T, d *dictionary.Dictionaries) {
	t.Helper()
	tokens := tokenize.New(d).Tokenize("すもももももももものうち")
	require.Len(t, tokens, 7)
	assert.Equal(t, "うち", tokens[6].SurfaceForm)
}

func TestWriteThenLoad(t *testing.T) {
	for _, compress := range []bool{false, true} {
		mem := afero.NewMemMapFs()
		require.NoError(t, Write(mem, "/dict", testutil.SampleDictionaries(t), compress))

		for _, name := range dictionary.Files {
			if compress {
				name += GzipSuffix
			}
			ok, err := afero.Exists(mem, "/dict/"+name)
			require.NoError(t, err)
			assert.True(t, ok, name)
		}

		d, err := dictionary.Load(NewAferoSource(mem, "/dict", compress))
		require.NoError(t, err)
		sumomo(t, d)
	}
}

func TestFSSource(t *testing.T) {
	bufs, err := testutil.SampleDictionaries(t).Buffers()
	require.NoError(t, err)
	fsys := fstest.MapFS{}
	for name, b := range bufs {
		fsys[name] = &fstest.MapFile{Data: b}
	}

	d, err := dictionary.Load(NewFSSource(fsys, false))
	require.NoError(t, err)
	sumomo(t, d)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDir(dir, testutil.SampleDictionaries(t), true))

	d, err := dictionary.Load(NewDirSource(dir, true))
	require.NoError(t, err)
	sumomo(t, d)
}

func TestLoadErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	_, err := NewAferoSource(mem, "/none", false).Load(dictionary.BaseFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, afero.WriteFile(mem, "/bad/"+dictionary.BaseFile+GzipSuffix, []byte("not gzip"), 0o644))
	_, err = NewAferoSource(mem, "/bad", true).Load(dictionary.BaseFile)
	assert.ErrorContains(t, err, "gunzip "+dictionary.BaseFile)

	_, err = dictionary.Load(NewAferoSource(mem, "/bad", true))
	assert.ErrorContains(t, err, dictionary.BaseFile)
}
