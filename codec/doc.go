// Package codec implements the streaming Base64 encoder and decoder.
//
// Both directions are stateful sessions that process input in bounded
// rounds and end with a consuming finalize:
//
//	┌────────────────────────────────────────────┐
//	│ buffer.Buffer → [Encoder] → chunk.Text     │
//	│ chunk.Text    → [Decoder] → buffer.Buffer  │
//	└────────────────────────────────────────────┘
//
// # Key Types
//
//	Encoder     - Packs bytes into RFC 4648 Base64 text
//	Decoder     - Unpacks Base64 text into bytes
//	Tuning      - Bounded-round knobs (bytes/chunks per round)
//	EncodeTask  - round.Task feeding one byte source to an Encoder
//	DecodeTask  - round.Task feeding one text source to a Decoder
//
// # Encoding Flow
//
//  1. enc := codec.NewEncoder()
//  2. enc.Write(ctx, src), or drive enc.WriteTask(src) step by step
//  3. text, err := enc.Finish()
//
// # Decoding Flow
//
//  1. dec := codec.NewDecoder()
//  2. dec.Append(ctx, text), or dec.AppendString(s) for plain fragments
//  3. data, err := dec.Finish()
//
// # Packing
//
// Three raw bytes form one 24-bit group emitted as four alphabet
// characters; decoding reverses the packing four characters at a time. A
// final partial group is zero-padded and completed with '=' characters.
// Decoding is lenient: bytes outside the alphabet (including '=') carry the
// value 0, and Finish trims the zero bytes produced by trailing padding.
//
// # Sessions Are Single-Use
//
// Finish transfers the destination container to the caller and invalidates
// the session; every later operation reports an already_finalized error.
// Checkpoint serializes an in-flight session at a round boundary and
// ResumeEncoder/ResumeDecoder reconstruct it, possibly in another process.
package codec
