package chunk

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxSegments  = 256
	poolInitSegments = 4
)

var textPool = sync.Pool{
	New: func() any {
		return &Text{segments: make([]string, 0, poolInitSegments)}
	},
}

func getText() *Text {
	return textPool.Get().(*Text)
}

func putText(t *Text) {
	if t == nil || cap(t.segments) > poolMaxSegments {
		return // reject oversized
	}
	clear(t.segments)
	t.segments = t.segments[:0]
	t.limit = 0
	t.idx = 0
	t.size = 0
	textPool.Put(t)
}
