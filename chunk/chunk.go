// Package chunk implements the chunked text collaborator of the codec: a
// string container split into bounded-length segments so hosts with a
// maximum string size can carry arbitrarily long text.
package chunk

import "strings"

// DefaultLimit is the segment length cap used by New and FromString.
const DefaultLimit = 8192

// Text is a segmented string container. Appends fill the last open segment
// before starting a new one, so every segment except the last holds exactly
// the limit. Reads consume whole segments through a cursor that can be
// rewound. A Text is not safe for concurrent use.
type Text struct {
	segments []string
	limit    int
	idx      int
	size     int
}

// New returns an empty pooled text with segments capped at DefaultLimit.
func New() *Text {
	return NewWithLimit(DefaultLimit)
}

// NewWithLimit returns an empty pooled text with the given segment cap.
// Non-positive limits fall back to DefaultLimit.
func NewWithLimit(limit int) *Text {
	if limit <= 0 {
		limit = DefaultLimit
	}
	t := getText()
	t.limit = limit
	return t
}

// FromString returns a pooled text seeded with s, split at DefaultLimit.
func FromString(s string) *Text {
	t := New()
	t.Append(s)
	return t
}

// Append adds s to the container, topping up the last open segment and
// splitting the remainder at the segment cap.
func (t *Text) Append(s string) {
	for len(s) > 0 {
		if n := len(t.segments); n > 0 && len(t.segments[n-1]) < t.limit {
			room := t.limit - len(t.segments[n-1])
			if room > len(s) {
				room = len(s)
			}
			t.segments[n-1] += s[:room]
			t.size += room
			s = s[room:]
			continue
		}

		seg := s
		if len(seg) > t.limit {
			seg = s[:t.limit]
		}
		t.segments = append(t.segments, seg)
		t.size += len(seg)
		s = s[len(seg):]
	}
}

// More reports whether unread chunks remain.
func (t *Text) More() bool {
	return t.idx < len(t.segments)
}

// Next returns the next unread chunk and advances the cursor, or "" when the
// container is exhausted.
func (t *Text) Next() string {
	if t.idx >= len(t.segments) {
		return ""
	}
	s := t.segments[t.idx]
	t.idx++
	return s
}

// ResetRead rewinds the chunk cursor to the start.
func (t *Text) ResetRead() {
	t.idx = 0
}

// Position returns the current chunk cursor.
func (t *Text) Position() int {
	return t.idx
}

// Chunks returns the number of segments.
func (t *Text) Chunks() int {
	return len(t.segments)
}

// Len returns the total character count across all segments.
func (t *Text) Len() int {
	return t.size
}

// Limit returns the segment length cap.
func (t *Text) Limit() int {
	return t.limit
}

// Segments returns the underlying segments without copying. The caller must
// not mutate the returned slice.
func (t *Text) Segments() []string {
	return t.segments
}

// String joins all segments into a single Go string.
func (t *Text) String() string {
	return strings.Join(t.segments, "")
}

// Release resets the container and returns it to the reuse pool. The
// container must not be used afterward.
func (t *Text) Release() {
	putText(t)
}
