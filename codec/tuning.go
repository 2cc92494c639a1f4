package codec

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tickwise/base64-stream/chunk"
	"github.com/tickwise/base64-stream/errors"
)

// Reference round budgets. One round stays comfortably under a host
// per-tick instruction ceiling; changing them changes throughput per round,
// never output.
const (
	DefaultEncodeBytesPerRound  = 1000
	DefaultDecodeChunksPerRound = 25
	DefaultTextFlushLimit       = 32
)

// Tuning holds the bounded-round knobs of a codec session. Zero fields take
// their defaults. Tuning travels inside session checkpoints, hence the cbor
// tags next to the yaml ones.
type Tuning struct {
	// EncodeBytesPerRound caps how many source bytes one encode round packs.
	EncodeBytesPerRound int `yaml:"encode_bytes_per_round" cbor:"encode_bytes_per_round"`
	// DecodeChunksPerRound caps how many text chunks one decode round drains.
	DecodeChunksPerRound int `yaml:"decode_chunks_per_round" cbor:"decode_chunks_per_round"`
	// TextFlushLimit is the encoder's buffered-text high-water mark; the
	// buffer is flushed into the destination once it reaches this length.
	TextFlushLimit int `yaml:"text_flush_limit" cbor:"text_flush_limit"`
	// ChunkLimit caps the segment length of the encoder's destination text.
	ChunkLimit int `yaml:"chunk_limit" cbor:"chunk_limit"`
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return Tuning{
		EncodeBytesPerRound:  DefaultEncodeBytesPerRound,
		DecodeChunksPerRound: DefaultDecodeChunksPerRound,
		TextFlushLimit:       DefaultTextFlushLimit,
		ChunkLimit:           chunk.DefaultLimit,
	}
}

// normalized returns t with zero fields replaced by their defaults.
func (t Tuning) normalized() Tuning {
	d := DefaultTuning()
	if t.EncodeBytesPerRound == 0 {
		t.EncodeBytesPerRound = d.EncodeBytesPerRound
	}
	if t.DecodeChunksPerRound == 0 {
		t.DecodeChunksPerRound = d.DecodeChunksPerRound
	}
	if t.TextFlushLimit == 0 {
		t.TextFlushLimit = d.TextFlushLimit
	}
	if t.ChunkLimit == 0 {
		t.ChunkLimit = d.ChunkLimit
	}
	return t
}

// validate reports the first non-positive knob.
func (t Tuning) validate() error {
	switch {
	case t.EncodeBytesPerRound < 1:
		return errors.InvalidInput(errors.PhaseConfig, "encode_bytes_per_round must be positive")
	case t.DecodeChunksPerRound < 1:
		return errors.InvalidInput(errors.PhaseConfig, "decode_chunks_per_round must be positive")
	case t.TextFlushLimit < 1:
		return errors.InvalidInput(errors.PhaseConfig, "text_flush_limit must be positive")
	case t.ChunkLimit < 1:
		return errors.InvalidInput(errors.PhaseConfig, "chunk_limit must be positive")
	}
	return nil
}

// LoadTuning reads a YAML tuning file, fills defaults for absent fields,
// and validates the result.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, errors.ReadFailed(errors.PhaseConfig, path, err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}

	t = t.normalized()
	if err := t.validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}
