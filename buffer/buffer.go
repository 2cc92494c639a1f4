// Package buffer implements the byte buffer collaborator of the codec: a
// growable byte container with a read cursor, size truncation, and pooled
// reuse.
package buffer

// Buffer is a random-access byte container. Appends go to the end; reads
// consume bytes through a cursor that can be rewound. A Buffer is not safe
// for concurrent use.
type Buffer struct {
	data []byte
	pos  int
}

// New returns an empty buffer from the reuse pool.
func New() *Buffer {
	return getBuffer()
}

// FromBytes returns a pooled buffer seeded with a copy of data.
func FromBytes(data []byte) *Buffer {
	b := getBuffer()
	b.data = append(b.data, data...)
	return b
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(v byte) {
	b.data = append(b.data, v)
}

// AppendBytes appends data.
func (b *Buffer) AppendBytes(v []byte) {
	b.data = append(b.data, v...)
}

// More reports whether unread bytes remain.
func (b *Buffer) More() bool {
	return b.pos < len(b.data)
}

// Next returns the next unread byte and advances the cursor, or 0 when the
// buffer is exhausted.
func (b *Buffer) Next() byte {
	if b.pos >= len(b.data) {
		return 0
	}
	v := b.data[b.pos]
	b.pos++
	return v
}

// ResetRead rewinds the read cursor to the start.
func (b *Buffer) ResetRead() {
	b.pos = 0
}

// Position returns the current read cursor.
func (b *Buffer) Position() int {
	return b.pos
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Truncate shrinks the buffer to n bytes. Out-of-range sizes are clamped;
// a cursor past the new end moves back to it.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(b.data) {
		return
	}
	b.data = b.data[:n]
	if b.pos > n {
		b.pos = n
	}
}

// Bytes returns the buffer's contents without copying. The slice is only
// valid until the next append or Release.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Release resets the buffer and returns it to the reuse pool. The buffer
// must not be used afterward.
func (b *Buffer) Release() {
	putBuffer(b)
}
