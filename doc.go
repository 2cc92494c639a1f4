// Package base64stream provides a streaming RFC 4648 Base64 codec for
// cooperatively scheduled hosts.
//
// Encoding and decoding are stateful sessions sliced into bounded rounds:
// each round processes at most a configured amount of input before yielding,
// so a large payload never monopolizes the thread driving it. Sessions end
// with a consuming finalize that hands the output container to the caller
// and invalidates the session.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	base64stream/        Root package with the source collaborator interfaces
//	├── codec/           Encoder and Decoder sessions, tuning, checkpoints
//	├── buffer/          Byte buffer with read cursor, truncation, pooled reuse
//	├── chunk/           Text container split into bounded-length segments
//	├── round/           Bounded-round task driver
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Encode a byte buffer and print the Base64 text:
//
//	src := buffer.FromBytes([]byte{0x4D, 0x61, 0x6E})
//	text, err := codec.Encode(ctx, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(text.String()) // "TWFu"
//
// # Bounded Rounds
//
// Bulk operations (Write, Consume, Append) are driven through round.Task
// steps. Each step encodes at most Tuning.EncodeBytesPerRound bytes or
// decodes at most Tuning.DecodeChunksPerRound chunks, then reports whether
// input remains. The bulk methods drive their task to completion internally;
// callers with their own event loop obtain the task and step it themselves.
// Round boundaries are the only suspension points, so output order always
// matches input order.
//
// # Ownership
//
// Write and Append borrow their source and rewind its read cursor when done.
// Consume takes ownership and releases the source once fully read. The
// destination container belongs to the session until Finish transfers it to
// the caller; every operation on a finished session reports an
// already_finalized error.
package base64stream
