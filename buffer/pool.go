package buffer

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 * 1024
	poolInitCap = 512
)

var bufPool = sync.Pool{
	New: func() any {
		return &Buffer{data: make([]byte, 0, poolInitCap)}
	},
}

func getBuffer() *Buffer {
	return bufPool.Get().(*Buffer)
}

func putBuffer(b *Buffer) {
	if b == nil || cap(b.data) > poolMaxCap {
		return // reject oversized
	}
	b.data = b.data[:0]
	b.pos = 0
	bufPool.Put(b)
}
