package base64stream

// ByteSource is a byte stream consumed one byte at a time through a read
// cursor. Next returns 0 once the stream is exhausted; More is the guard.
type ByteSource interface {
	More() bool
	Next() byte
	ResetRead()
	Len() int
	Release()
}

// TextSource is a segmented text stream consumed one chunk at a time through
// a read cursor. Len is the total character count across all chunks.
type TextSource interface {
	More() bool
	Next() string
	ResetRead()
	Len() int
	Release()
}
