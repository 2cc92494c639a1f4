package testbed

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tickwise/base64-stream/buffer"
	"github.com/tickwise/base64-stream/codec"
	"github.com/tickwise/base64-stream/round"
)

func TestCheckpoint_MidStreamHandoff(t *testing.T) {
	ctx := context.Background()
	data := payload(3000)

	// straight-through reference
	reference, err := codec.Encode(ctx, buffer.FromBytes(data))
	if err != nil {
		t.Fatalf("reference encode: %v", err)
	}
	want := reference.String()
	reference.Release()

	// drive a few rounds, snapshot, abandon the original, resume elsewhere
	enc := codec.NewEncoderWithTuning(codec.Tuning{EncodeBytesPerRound: 256})
	task := enc.WriteTask(buffer.FromBytes(data))
	if _, err := round.Steps(ctx, task, 5); err != nil {
		t.Fatalf("partial drive: %v", err)
	}

	snap, err := enc.Checkpoint()
	if err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	enc.Release()

	restored, err := codec.ResumeEncoder(snap)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	read, _ := task.Progress()
	if err := restored.Consume(ctx, buffer.FromBytes(data[read:])); err != nil {
		t.Fatalf("drive remainder: %v", err)
	}
	text, err := restored.Finish()
	if err != nil {
		t.Fatalf("finish restored: %v", err)
	}
	defer text.Release()

	if got := text.String(); got != want {
		t.Errorf("restored session produced %d characters, reference %d; outputs differ", len(got), len(want))
	}
}

func TestCheckpoint_DecoderHandoff(t *testing.T) {
	ctx := context.Background()
	data := payload(700)

	text, err := codec.Encode(ctx, buffer.FromBytes(data))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	encoded := text.String()
	text.Release()

	// decode in three hops, snapshotting between each
	cuts := []int{0, 101, 415, len(encoded)}
	snap := []byte(nil)
	for i := 0; i < len(cuts)-1; i++ {
		var dec *codec.Decoder
		if snap == nil {
			dec = codec.NewDecoder()
		} else {
			dec, err = codec.ResumeDecoder(snap)
			if err != nil {
				t.Fatalf("resume hop %d: %v", i, err)
			}
		}
		if err := dec.AppendString(encoded[cuts[i]:cuts[i+1]]); err != nil {
			t.Fatalf("append hop %d: %v", i, err)
		}

		if i < len(cuts)-2 {
			snap, err = dec.Checkpoint()
			if err != nil {
				t.Fatalf("checkpoint hop %d: %v", i, err)
			}
			dec.Release()
			continue
		}

		decoded, err := dec.Finish()
		if err != nil {
			t.Fatalf("finish: %v", err)
		}
		if diff := cmp.Diff(data, collect(decoded)); diff != "" {
			t.Errorf("handoff decode mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCheckpoint_TuningTravels(t *testing.T) {
	ctx := context.Background()
	data := payload(240)

	enc := codec.NewEncoderWithTuning(codec.Tuning{ChunkLimit: 20})
	if err := enc.Write(ctx, buffer.FromBytes(data[:120])); err != nil {
		t.Fatalf("first half: %v", err)
	}
	snap, err := enc.Checkpoint()
	if err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	enc.Release()

	restored, err := codec.ResumeEncoder(snap)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := restored.Write(ctx, buffer.FromBytes(data[120:])); err != nil {
		t.Fatalf("second half: %v", err)
	}
	text, err := restored.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	defer text.Release()

	// the 20-character chunk limit must survive the snapshot
	segs := text.Segments()
	for i, seg := range segs[:len(segs)-1] {
		if len(seg) != 20 {
			t.Errorf("segment %d holds %d characters, want 20", i, len(seg))
		}
	}
}
