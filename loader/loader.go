// Package loader reads and writes the dictionary buffers on a filesystem.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	"morphja/dictionary"
)

// GzipSuffix is appended to each buffer name when files are compressed.
const GzipSuffix = ".gz"

// Source is a dictionary.ByteSource reading NAME or NAME.gz from a directory
// of an afero filesystem.
type Source struct {
	fs   afero.Fs
	dir  string
	gzip bool
}

// NewDirSource reads from a directory on the local disk.
func NewDirSource(dir string, gzip bool) *Source {
	return &Source{fs: afero.NewOsFs(), dir: dir, gzip: gzip}
}

// NewFSSource reads from the root of fsys, e.g. an embed.FS.
func NewFSSource(fsys fs.FS, gzip bool) *Source {
	return &Source{fs: afero.FromIOFS{FS: fsys}, dir: ".", gzip: gzip}
}

// NewAferoSource reads from dir on an arbitrary afero filesystem.
func NewAferoSource(afs afero.Fs, dir string, gzip bool) *Source {
	return &Source{fs: afs, dir: dir, gzip: gzip}
}

func (s *Source) path(name string) string {
	if s.gzip {
		name += GzipSuffix
	}
	if _, ok := s.fs.(afero.FromIOFS); ok {
		return path.Join(s.dir, name)
	}
	return filepath.Join(s.dir, name)
}

// Load implements dictionary.ByteSource.
func (s *Source) Load(name string) ([]byte, error) {
	b, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		return nil, err
	}
	if !s.gzip {
		return b, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("gunzip %s: %w", name, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gunzip %s: %w", name, err)
	}
	return out, nil
}

// Write persists every buffer of d into dir on afs, creating dir if needed.
func Write(afs afero.Fs, dir string, d *dictionary.Dictionaries, compress bool) error {
	bufs, err := d.Buffers()
	if err != nil {
		return err
	}
	if err := afs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range dictionary.Files {
		data := bufs[name]
		if compress {
			name += GzipSuffix
			if data, err = gzipBytes(data); err != nil {
				return fmt.Errorf("gzip %s: %w", name, err)
			}
		}
		if err := afero.WriteFile(afs, filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// WriteDir is Write on the local disk.
func WriteDir(dir string, d *dictionary.Dictionaries, compress bool) error {
	return Write(afero.NewOsFs(), dir, d, compress)
}

func gzipBytes(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
