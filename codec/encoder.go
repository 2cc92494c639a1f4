package codec

import (
	"context"

	"github.com/tickwise/base64-stream/chunk"
	"github.com/tickwise/base64-stream/errors"
	"github.com/tickwise/base64-stream/round"
)

// Encoder packs a byte stream into Base64 text. One Encoder serves one
// encode session: feed bytes with the write methods or a whole source with
// Write or Consume, then call Finish to take the destination text.
//
// A packing accumulator holds up to two pending bytes between calls. The
// moment a third byte arrives the 3-byte group is emitted as four
// characters, so output never lags input by more than two bytes. Emitted
// characters collect in a small text buffer that is flushed into the
// destination whenever it reaches Tuning.TextFlushLimit.
type Encoder struct {
	acc      uint32
	pending  int
	text     []byte
	dst      *chunk.Text
	tuning   Tuning
	finished bool
}

// NewEncoder returns an encoder with the reference tuning.
func NewEncoder() *Encoder {
	return NewEncoderWithTuning(DefaultTuning())
}

// NewEncoderWithTuning returns an encoder with the given tuning. Zero
// tuning fields take their defaults.
func NewEncoderWithTuning(t Tuning) *Encoder {
	t = t.normalized()
	return &Encoder{
		text:   make([]byte, 0, t.TextFlushLimit),
		dst:    chunk.NewWithLimit(t.ChunkLimit),
		tuning: t,
	}
}

// WriteU8 encodes the low 8 bits of v. High bits are masked off, never
// rejected.
func (e *Encoder) WriteU8(v uint32) error {
	if e.finished {
		return errors.AlreadyFinalized(errors.PhaseEncode, "WriteU8")
	}
	e.push(byte(v))
	return nil
}

// WriteU16 encodes the low 16 bits of v, low byte first. High bits are
// masked off.
func (e *Encoder) WriteU16(v uint32) error {
	if e.finished {
		return errors.AlreadyFinalized(errors.PhaseEncode, "WriteU16")
	}
	e.push(byte(v))
	e.push(byte(v >> 8))
	return nil
}

// WriteU32 encodes all 32 bits of v in little-endian byte order.
func (e *Encoder) WriteU32(v uint32) error {
	if e.finished {
		return errors.AlreadyFinalized(errors.PhaseEncode, "WriteU32")
	}
	e.push(byte(v))
	e.push(byte(v >> 8))
	e.push(byte(v >> 16))
	e.push(byte(v >> 24))
	return nil
}

// Write encodes every unread byte of src in bounded rounds, then rewinds
// the source's read cursor so the caller can reuse it. Cancellation is
// observed between rounds.
func (e *Encoder) Write(ctx context.Context, src ByteSource) error {
	return round.Run(ctx, e.WriteTask(src))
}

// Consume is Write with ownership: the source is released once fully read
// instead of rewound.
func (e *Encoder) Consume(ctx context.Context, src ByteSource) error {
	return round.Run(ctx, e.ConsumeTask(src))
}

// WriteTask returns the bounded-round task behind Write, for callers that
// drive rounds from their own loop.
func (e *Encoder) WriteTask(src ByteSource) *EncodeTask {
	return &EncodeTask{enc: e, src: src, total: src.Len()}
}

// ConsumeTask returns the bounded-round task behind Consume.
func (e *Encoder) ConsumeTask(src ByteSource) *EncodeTask {
	return &EncodeTask{enc: e, src: src, own: true, total: src.Len()}
}

// Finish completes the session. A pending partial group is zero-padded,
// emitted, and filled out with '=' so the final group holds exactly four
// characters. Buffered text is flushed and the destination handed to the
// caller. The encoder is invalid afterward: every later call reports
// KindAlreadyFinalized.
func (e *Encoder) Finish() (*chunk.Text, error) {
	if e.finished {
		return nil, errors.AlreadyFinalized(errors.PhaseFinalize, "Finish")
	}

	switch e.pending {
	case 0:
	case 1:
		// one byte left: two data characters, two pads
		e.emit(e.acc<<16, 2)
		e.text = append(e.text, padChar, padChar)
	case 2:
		// two bytes left: three data characters, one pad
		e.emit(e.acc<<8, 3)
		e.text = append(e.text, padChar)
	default:
		return nil, errors.Internal(errors.PhaseFinalize, "pending byte count out of range")
	}
	e.flush()

	dst := e.dst
	e.dst = nil
	e.text = nil
	e.acc = 0
	e.pending = 0
	e.finished = true
	return dst, nil
}

// Release discards a session abandoned before Finish and returns the
// destination to its pool. Release after Finish is a no-op.
func (e *Encoder) Release() {
	if e.finished {
		return
	}
	e.dst.Release()
	e.dst = nil
	e.text = nil
	e.finished = true
}

// push shifts one raw byte into the accumulator and emits a full group
// once three bytes are pending.
func (e *Encoder) push(b byte) {
	e.acc = e.acc<<8 | uint32(b)
	e.pending++
	if e.pending == 3 {
		e.emit(e.acc, 4)
		e.acc = 0
		e.pending = 0
	}
}

// emit appends the first n characters of the 24-bit group v, then flushes
// the text buffer if it reached the flush limit.
func (e *Encoder) emit(v uint32, n int) {
	group := [4]byte{
		alphabet[v>>18&0x3F],
		alphabet[v>>12&0x3F],
		alphabet[v>>6&0x3F],
		alphabet[v&0x3F],
	}
	e.text = append(e.text, group[:n]...)
	if len(e.text) >= e.tuning.TextFlushLimit {
		e.flush()
	}
}

// flush moves buffered text into the destination.
func (e *Encoder) flush() {
	if len(e.text) == 0 {
		return
	}
	e.dst.Append(string(e.text))
	e.text = e.text[:0]
}
