package codec

import (
	"context"

	"github.com/tickwise/base64-stream/buffer"
	"github.com/tickwise/base64-stream/chunk"
)

// Encode runs a whole encode session over src in one call: a fresh encoder
// drains every unread byte and the finished text is returned. The source
// is borrowed; its read cursor is rewound afterward.
func Encode(ctx context.Context, src ByteSource) (*chunk.Text, error) {
	enc := NewEncoder()
	if err := enc.Write(ctx, src); err != nil {
		enc.Release()
		return nil, err
	}
	text, err := enc.Finish()
	if err != nil {
		enc.Release()
		return nil, err
	}
	return text, nil
}

// Decode runs a whole decode session over src in one call: a fresh decoder
// drains every unread chunk and the decoded bytes are returned. The source
// is borrowed; its read cursor is rewound afterward.
func Decode(ctx context.Context, src TextSource) (*buffer.Buffer, error) {
	dec := NewDecoder()
	if err := dec.Append(ctx, src); err != nil {
		dec.Release()
		return nil, err
	}
	data, err := dec.Finish()
	if err != nil {
		dec.Release()
		return nil, err
	}
	return data, nil
}

// DecodeString decodes a plain string in one call.
func DecodeString(s string) (*buffer.Buffer, error) {
	dec := NewDecoder()
	if err := dec.AppendString(s); err != nil {
		dec.Release()
		return nil, err
	}
	data, err := dec.Finish()
	if err != nil {
		dec.Release()
		return nil, err
	}
	return data, nil
}
