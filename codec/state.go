package codec

import (
	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	"github.com/tickwise/base64-stream/errors"
)

// checkpointVersion is bumped whenever the snapshot layout changes.
const checkpointVersion = 1

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same session state always produces
// identical checkpoint bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR. Unknown
// fields are silently ignored for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// encoderState is the wire form of an in-flight encode session.
type encoderState struct {
	Version  int      `cbor:"version"`
	Acc      uint32   `cbor:"acc"`
	Pending  int      `cbor:"pending"`
	Text     []byte   `cbor:"text"`
	Segments []string `cbor:"segments"`
	Tuning   Tuning   `cbor:"tuning"`
}

// decoderState is the wire form of an in-flight decode session.
type decoderState struct {
	Version int    `cbor:"version"`
	Carry   []byte `cbor:"carry"`
	Last    []byte `cbor:"last"`
	HasLast bool   `cbor:"has_last"`
	Data    []byte `cbor:"data"`
	Tuning  Tuning `cbor:"tuning"`
}

// Checkpoint serializes the in-flight session to deterministic CBOR. Call
// it between rounds; the snapshot captures the packing accumulator,
// buffered text, the destination built so far, and the tuning. The session
// stays usable.
func (e *Encoder) Checkpoint() ([]byte, error) {
	if e.finished {
		return nil, errors.AlreadyFinalized(errors.PhaseEncode, "Checkpoint")
	}
	st := encoderState{
		Version:  checkpointVersion,
		Acc:      e.acc,
		Pending:  e.pending,
		Text:     e.text,
		Segments: e.dst.Segments(),
		Tuning:   e.tuning,
	}
	data, err := encMode.Marshal(st)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInternal, err, "marshal encoder checkpoint")
	}
	return data, nil
}

// ResumeEncoder reconstructs an encoder from a Checkpoint snapshot. The
// restored session continues exactly where the original stood, down to the
// destination's segment layout.
func ResumeEncoder(data []byte) (*Encoder, error) {
	var st encoderState
	if err := decMode.Unmarshal(data, &st); err != nil {
		return nil, errors.RestoreFailed("encoder checkpoint", err)
	}
	if st.Version != checkpointVersion {
		return nil, errors.New(errors.PhaseRestore, errors.KindInvalidInput).
			Value(st.Version).
			Detail("unsupported checkpoint version %d", st.Version).
			Build()
	}
	if st.Pending < 0 || st.Pending > 2 {
		return nil, errors.New(errors.PhaseRestore, errors.KindInvalidInput).
			Detail("pending byte count %d out of range", st.Pending).
			Build()
	}
	t := st.Tuning.normalized()
	if err := t.validate(); err != nil {
		return nil, errors.Wrap(errors.PhaseRestore, errors.KindInvalidInput, err, "encoder tuning")
	}

	enc := NewEncoderWithTuning(t)
	enc.acc = st.Acc
	enc.pending = st.Pending
	enc.text = append(enc.text, st.Text...)
	for _, seg := range st.Segments {
		enc.dst.Append(seg)
	}

	Logger().Debug("encoder restored from checkpoint",
		zap.Int("pending", enc.pending),
		zap.Int("segments", len(st.Segments)))
	return enc, nil
}

// Checkpoint serializes the in-flight session to deterministic CBOR. Call
// it between rounds; the snapshot captures the carry-over, the last
// decoded group, the bytes decoded so far, and the tuning. The session
// stays usable.
func (d *Decoder) Checkpoint() ([]byte, error) {
	if d.finished {
		return nil, errors.AlreadyFinalized(errors.PhaseDecode, "Checkpoint")
	}
	st := decoderState{
		Version: checkpointVersion,
		Carry:   d.carry[:d.carryLen],
		HasLast: d.hasLast,
		Data:    d.dst.Bytes(),
		Tuning:  d.tuning,
	}
	if d.hasLast {
		st.Last = d.last[:]
	}
	data, err := encMode.Marshal(st)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInternal, err, "marshal decoder checkpoint")
	}
	return data, nil
}

// ResumeDecoder reconstructs a decoder from a Checkpoint snapshot.
func ResumeDecoder(data []byte) (*Decoder, error) {
	var st decoderState
	if err := decMode.Unmarshal(data, &st); err != nil {
		return nil, errors.RestoreFailed("decoder checkpoint", err)
	}
	if st.Version != checkpointVersion {
		return nil, errors.New(errors.PhaseRestore, errors.KindInvalidInput).
			Value(st.Version).
			Detail("unsupported checkpoint version %d", st.Version).
			Build()
	}
	if len(st.Carry) > 3 {
		return nil, errors.New(errors.PhaseRestore, errors.KindInvalidInput).
			Detail("carry-over of %d characters out of range", len(st.Carry)).
			Build()
	}
	if st.HasLast && len(st.Last) != 4 {
		return nil, errors.New(errors.PhaseRestore, errors.KindInvalidInput).
			Detail("last group holds %d characters, want 4", len(st.Last)).
			Build()
	}
	t := st.Tuning.normalized()
	if err := t.validate(); err != nil {
		return nil, errors.Wrap(errors.PhaseRestore, errors.KindInvalidInput, err, "decoder tuning")
	}

	dec := NewDecoderWithTuning(t)
	copy(dec.carry[:], st.Carry)
	dec.carryLen = len(st.Carry)
	if st.HasLast {
		copy(dec.last[:], st.Last)
		dec.hasLast = true
	}
	dec.dst.AppendBytes(st.Data)

	Logger().Debug("decoder restored from checkpoint",
		zap.Int("carry", dec.carryLen),
		zap.Int("decoded", dec.dst.Len()))
	return dec, nil
}
