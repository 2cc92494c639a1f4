package codec

import (
	"context"

	"github.com/tickwise/base64-stream/errors"
	"github.com/tickwise/base64-stream/round"
)

// EncodeTask feeds one byte source to an encoder in bounded rounds. Create
// it with Encoder.WriteTask or Encoder.ConsumeTask and drive it with
// round.Run, round.Steps, or a loop of your own.
type EncodeTask struct {
	enc       *Encoder
	src       ByteSource
	own       bool
	completed bool
	rounds    int
	done      int
	total     int
}

// Step encodes at most Tuning.EncodeBytesPerRound bytes and reports
// whether input remains. The source cursor carries the position between
// rounds, so no byte is skipped or read twice. After the final round the
// source is rewound, or released when the task owns it; further Step calls
// are no-ops reporting StatusDone.
func (t *EncodeTask) Step(_ context.Context) (round.Status, error) {
	if t.completed {
		return round.StatusDone, nil
	}
	if t.enc.finished {
		return round.StatusDone, errors.AlreadyFinalized(errors.PhaseEncode, "Step")
	}

	t.rounds++
	for n := 0; n < t.enc.tuning.EncodeBytesPerRound; n++ {
		if !t.src.More() {
			t.complete()
			return round.StatusDone, nil
		}
		t.enc.push(t.src.Next())
		t.done++
	}

	if !t.src.More() {
		t.complete()
		return round.StatusDone, nil
	}
	return round.StatusContinue, nil
}

// Rounds returns how many rounds have run so far.
func (t *EncodeTask) Rounds() int { return t.rounds }

// Progress returns processed and total input bytes.
func (t *EncodeTask) Progress() (done, total int) { return t.done, t.total }

func (t *EncodeTask) complete() {
	if t.own {
		t.src.Release()
	} else {
		t.src.ResetRead()
	}
	t.completed = true
}

// DecodeTask feeds one chunked text source to a decoder in bounded rounds.
// Create it with Decoder.AppendTask or Decoder.ConsumeTask and drive it
// with round.Run, round.Steps, or a loop of your own.
type DecodeTask struct {
	dec       *Decoder
	src       TextSource
	own       bool
	completed bool
	rounds    int
	done      int
	total     int
}

// Step decodes at most Tuning.DecodeChunksPerRound chunks and reports
// whether input remains. After the final round the source is rewound, or
// released when the task owns it; further Step calls are no-ops reporting
// StatusDone.
func (t *DecodeTask) Step(_ context.Context) (round.Status, error) {
	if t.completed {
		return round.StatusDone, nil
	}
	if t.dec.finished {
		return round.StatusDone, errors.AlreadyFinalized(errors.PhaseDecode, "Step")
	}

	t.rounds++
	for n := 0; n < t.dec.tuning.DecodeChunksPerRound; n++ {
		if !t.src.More() {
			t.complete()
			return round.StatusDone, nil
		}
		c := t.src.Next()
		t.dec.absorb(c)
		t.done += len(c)
	}

	if !t.src.More() {
		t.complete()
		return round.StatusDone, nil
	}
	return round.StatusContinue, nil
}

// Rounds returns how many rounds have run so far.
func (t *DecodeTask) Rounds() int { return t.rounds }

// Progress returns processed and total input characters.
func (t *DecodeTask) Progress() (done, total int) { return t.done, t.total }

func (t *DecodeTask) complete() {
	if t.own {
		t.src.Release()
	} else {
		t.src.ResetRead()
	}
	t.completed = true
}
