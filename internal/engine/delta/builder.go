package delta

import "fmt"

// Builder accumulates replacements in ascending order.
// Intervals may touch but must not overlap; a violation panics.
type Builder struct {
	baseLen int
	reps    []Replacement
	last    int
}

// NewBuilder creates a builder for a delta over a text of baseLen bytes.
func NewBuilder(baseLen int) *Builder {
	return &Builder{baseLen: baseLen}
}

// Replace replaces [start, end) with text. Replacing an empty interval
// with nothing is ignored.
func (b *Builder) Replace(start, end int, text string) {
	if start < 0 || end < start || end > b.baseLen {
		panic(fmt.Sprintf("delta: interval [%d, %d) out of bounds for length %d", start, end, b.baseLen))
	}
	if start < b.last {
		panic(fmt.Sprintf("delta: interval [%d, %d) overlaps or precedes offset %d", start, end, b.last))
	}
	b.last = end
	if start == end && text == "" {
		return
	}
	b.reps = append(b.reps, Replacement{Start: start, End: end, Text: text})
}

// Delete removes [start, end).
func (b *Builder) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Insert inserts text at offset.
func (b *Builder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// IsEmpty reports whether no replacement has been recorded.
func (b *Builder) IsEmpty() bool {
	return len(b.reps) == 0
}

// Build returns the delta and resets the builder.
func (b *Builder) Build() *Delta {
	d := &Delta{baseLen: b.baseLen, reps: b.reps}
	b.reps = nil
	b.last = 0
	return d
}
