package codec

import (
	"context"

	"github.com/tickwise/base64-stream/buffer"
	"github.com/tickwise/base64-stream/errors"
	"github.com/tickwise/base64-stream/round"
)

// Decoder unpacks Base64 text into raw bytes. One Decoder serves one
// decode session: feed text with AppendString or a whole chunked source
// with Append or Consume, then call Finish to take the destination buffer.
//
// Fragments may split the text anywhere. A carry-over of up to three
// characters bridges incomplete groups between calls, so the decoded bytes
// never depend on how the text was fragmented.
//
// Decoding is lenient by design: '=' and any character outside the Base64
// alphabet map to value 0 and are decoded without complaint. The one fatal
// condition is a total text length that is not a multiple of four,
// detected at Finish.
type Decoder struct {
	carry    [3]byte
	carryLen int
	last     [4]byte
	hasLast  bool
	dst      *buffer.Buffer
	tuning   Tuning
	finished bool
}

// NewDecoder returns a decoder with the reference tuning.
func NewDecoder() *Decoder {
	return NewDecoderWithTuning(DefaultTuning())
}

// NewDecoderWithTuning returns a decoder with the given tuning. Zero
// tuning fields take their defaults.
func NewDecoderWithTuning(t Tuning) *Decoder {
	return &Decoder{
		dst:    buffer.New(),
		tuning: t.normalized(),
	}
}

// AppendString decodes a text fragment of any length, including empty.
// Full four-character groups are decoded immediately; a remainder of up to
// three characters is carried over to the next call.
func (d *Decoder) AppendString(s string) error {
	if d.finished {
		return errors.AlreadyFinalized(errors.PhaseDecode, "AppendString")
	}
	d.absorb(s)
	return nil
}

// Append decodes every unread chunk of src in bounded rounds, then rewinds
// the source's read cursor so the caller can reuse it. Cancellation is
// observed between rounds.
func (d *Decoder) Append(ctx context.Context, src TextSource) error {
	return round.Run(ctx, d.AppendTask(src))
}

// Consume is Append with ownership: the source is released once drained
// instead of rewound.
func (d *Decoder) Consume(ctx context.Context, src TextSource) error {
	return round.Run(ctx, d.ConsumeTask(src))
}

// AppendTask returns the bounded-round task behind Append, for callers
// that drive rounds from their own loop.
func (d *Decoder) AppendTask(src TextSource) *DecodeTask {
	return &DecodeTask{dec: d, src: src, total: src.Len()}
}

// ConsumeTask returns the bounded-round task behind Consume.
func (d *Decoder) ConsumeTask(src TextSource) *DecodeTask {
	return &DecodeTask{dec: d, src: src, own: true, total: src.Len()}
}

// Finish completes the session. Leftover carry-over characters mean the
// total text length was not a multiple of four: that is fatal, reported
// with KindMalformedLength, and the session is left untouched so the
// caller may append the missing characters and try again. On success the
// destination loses one trailing byte per '=' in the last decoded group
// and is handed to the caller. The decoder is invalid afterward.
func (d *Decoder) Finish() (*buffer.Buffer, error) {
	if d.finished {
		return nil, errors.AlreadyFinalized(errors.PhaseFinalize, "Finish")
	}
	if d.carryLen != 0 {
		return nil, errors.MalformedLength(d.carryLen)
	}

	if d.hasLast {
		pad := 0
		if d.last[3] == padChar {
			pad++
		}
		if d.last[2] == padChar {
			pad++
		}
		d.dst.Truncate(d.dst.Len() - pad)
	}

	dst := d.dst
	d.dst = nil
	d.hasLast = false
	d.finished = true
	return dst, nil
}

// Release discards a session abandoned before Finish and returns the
// destination to its pool. Release after Finish is a no-op.
func (d *Decoder) Release() {
	if d.finished {
		return
	}
	d.dst.Release()
	d.dst = nil
	d.finished = true
}

// absorb decodes every full group across the carry-over plus s and keeps
// the remainder as the new carry-over.
func (d *Decoder) absorb(s string) {
	i := 0

	if d.carryLen > 0 {
		need := 4 - d.carryLen
		if len(s) < need {
			copy(d.carry[d.carryLen:], s)
			d.carryLen += len(s)
			return
		}
		var g [4]byte
		copy(g[:], d.carry[:d.carryLen])
		copy(g[d.carryLen:], s[:need])
		d.decodeGroup(g)
		d.carryLen = 0
		i = need
	}

	for ; i+4 <= len(s); i += 4 {
		var g [4]byte
		copy(g[:], s[i:i+4])
		d.decodeGroup(g)
	}

	if rem := len(s) - i; rem > 0 {
		copy(d.carry[:], s[i:])
		d.carryLen = rem
	}
}

// decodeGroup unpacks four 6-bit values into three bytes. '=' and unmapped
// characters contribute 0 here; Finish trims the bytes padding stood for.
// The group is retained so Finish can see the final padding.
func (d *Decoder) decodeGroup(g [4]byte) {
	v := uint32(decodeTable[g[0]])<<18 |
		uint32(decodeTable[g[1]])<<12 |
		uint32(decodeTable[g[2]])<<6 |
		uint32(decodeTable[g[3]])
	d.dst.AppendByte(byte(v >> 16))
	d.dst.AppendByte(byte(v >> 8))
	d.dst.AppendByte(byte(v))
	d.last = g
	d.hasLast = true
}
