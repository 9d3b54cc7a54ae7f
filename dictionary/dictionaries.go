// Package dictionary holds the precompiled, read-only dictionary structures
// used to build a word lattice: known words, unknown-word templates,
// character classes and connection costs.
package dictionary

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"morphja/trie"
)

// Names of the persisted buffers supplied by a ByteSource.
const (
	BaseFile          = "base.dat"
	CheckFile         = "check.dat"
	TokenInfoFile     = "tid.dat"
	TokenInfoPosFile  = "tid_pos.dat"
	TokenInfoMapFile  = "tid_map.dat"
	ConnectionFile    = "cc.dat"
	UnknownFile       = "unk.dat"
	UnknownPosFile    = "unk_pos.dat"
	UnknownMapFile    = "unk_map.dat"
	UnknownCharFile   = "unk_char.dat"
	UnknownCompatFile = "unk_compat.dat"
	UnknownInvokeFile = "unk_invoke.dat"
)

// Files lists every buffer name in load order.
var Files = []string{
	BaseFile, CheckFile,
	TokenInfoFile, TokenInfoPosFile, TokenInfoMapFile,
	ConnectionFile,
	UnknownFile, UnknownPosFile, UnknownMapFile, UnknownCharFile, UnknownCompatFile, UnknownInvokeFile,
}

// ErrInvalidDictionary is returned by Validate.
var ErrInvalidDictionary = errors.New("dictionary: invalid dictionary")

// ByteSource supplies decompressed dictionary buffers by name.
type ByteSource interface {
	Load(name string) ([]byte, error)
}

// Dictionaries bundles everything the lattice builder and searcher read.
// It is never mutated after construction and may be shared freely.
type Dictionaries struct {
	Trie       trie.PrefixSearcher
	TokenInfo  *TokenInfoDictionary
	Connection *ConnectionCosts
	Unknown    *UnknownDictionary
}

type loadOptions struct {
	log *zap.Logger
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithLogger sets the logger used while loading.
func WithLogger(l *zap.Logger) LoadOption {
	return func(o *loadOptions) { o.log = l }
}

// Load reads all twelve buffers from src and validates the result.
func Load(src ByteSource, opts ...LoadOption) (*Dictionaries, error) {
	o := loadOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	bufs := make(map[string][]byte, len(Files))
	for _, name := range Files {
		b, err := src.Load(name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		o.log.Debug("dictionary buffer loaded", zap.String("name", name), zap.Int("bytes", len(b)))
		bufs[name] = b
	}

	cc, err := LoadConnectionCosts(bufs[ConnectionFile])
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ConnectionFile, err)
	}
	unk, err := LoadUnknownDictionary(
		bufs[UnknownFile], bufs[UnknownPosFile], bufs[UnknownMapFile],
		bufs[UnknownCharFile], bufs[UnknownCompatFile], bufs[UnknownInvokeFile])
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", UnknownInvokeFile, err)
	}

	d := &Dictionaries{
		Trie:       trie.Load(bufs[BaseFile], bufs[CheckFile]),
		TokenInfo:  LoadTokenInfoDictionary(bufs[TokenInfoFile], bufs[TokenInfoPosFile], bufs[TokenInfoMapFile]),
		Connection: cc,
		Unknown:    unk,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	fwd, bwd := cc.Dimensions()
	o.log.Info("dictionary loaded",
		zap.Int("words", d.TokenInfo.Len()),
		zap.Int("unknown_templates", unk.Len()),
		zap.Int("classes", unk.CharDef.Invoke.Len()),
		zap.Int("forward_dim", fwd),
		zap.Int("backward_dim", bwd))
	return d, nil
}

// Validate checks that every context id stored in the word tables addresses
// a cell of the connection matrix, so search never reads past it.
func (d *Dictionaries) Validate() error {
	if d.Trie == nil || d.TokenInfo == nil || d.Connection == nil || d.Unknown == nil {
		return fmt.Errorf("%w: missing component", ErrInvalidDictionary)
	}
	// BOS and EOS use context id 0 on both sides.
	maxLeft, maxRight := 0, 0
	for _, t := range []*TokenInfoDictionary{d.TokenInfo, d.Unknown.TokenInfoDictionary} {
		for _, ids := range t.TargetMap {
			for _, id := range ids {
				if id < 0 || int(id)+RecordSize > t.records.Size() {
					return fmt.Errorf("%w: token info id %d outside %d byte table",
						ErrInvalidDictionary, id, t.records.Size())
				}
				l, r := int(t.LeftID(id)), int(t.RightID(id))
				if l < 0 || r < 0 {
					return fmt.Errorf("%w: negative context id at token info id %d", ErrInvalidDictionary, id)
				}
				maxLeft, maxRight = max(maxLeft, l), max(maxRight, r)
			}
		}
	}
	if _, err := d.Connection.index(maxRight, maxLeft); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDictionary, err)
	}
	return nil
}

// Buffers serialises the dictionaries into the twelve named buffers. The
// trie must be a *trie.DoubleArray.
func (d *Dictionaries) Buffers() (map[string][]byte, error) {
	da, ok := d.Trie.(*trie.DoubleArray)
	if !ok {
		return nil, fmt.Errorf("%w: trie %T cannot be persisted", ErrInvalidDictionary, d.Trie)
	}
	out := make(map[string][]byte, len(Files))
	out[BaseFile], out[CheckFile] = da.Bytes()
	out[TokenInfoFile], out[TokenInfoPosFile], out[TokenInfoMapFile] = d.TokenInfo.Buffers()
	out[ConnectionFile] = d.Connection.Bytes()
	out[UnknownFile], out[UnknownPosFile], out[UnknownMapFile] = d.Unknown.Buffers()
	out[UnknownCharFile], out[UnknownCompatFile], out[UnknownInvokeFile] = d.Unknown.CharDef.Bytes()
	return out, nil
}
