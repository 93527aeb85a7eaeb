package rope

import (
	"strings"

	"github.com/dshills/textcore/internal/engine/sumtree"
)

// Builder assembles a rope from strings and slices of existing ropes.
// Whole chunks of a source rope are shared; partial chunks and written
// text are buffered and re-chunked together.
//
// The zero value is ready to use.
type Builder struct {
	tb     sumtree.Builder[Chunk, TextSummary]
	buffer strings.Builder
	total  int
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WriteString appends a string.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.total += len(s)
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*4 {
		b.flush()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// PushSlice appends the byte range [start, end) of r.
func (b *Builder) PushSlice(r Rope, start, end int) {
	r.checkRange(start, end)
	if start == end {
		return
	}
	b.total += end - start

	ci, ia := r.t.IndexOf(byteMetric{}, start)
	cj, ib := r.t.IndexOf(byteMetric{}, end)
	first, _ := r.t.Get(ci)
	if ci == cj {
		b.buffer.WriteString(first.data[ia:ib])
		return
	}

	b.buffer.WriteString(first.data[ia:])
	if ci+1 < cj {
		// Absorb a small neighbour rather than leave a fragment behind.
		next := ci + 1
		if b.buffer.Len() < MinChunkSize {
			c, _ := r.t.Get(next)
			b.buffer.WriteString(c.data)
			next++
		}
		if next < cj {
			b.flush()
			b.tb.PushSlice(r.t, next, cj)
		}
	}
	if ib > 0 {
		last, _ := r.t.Get(cj)
		b.buffer.WriteString(last.data[:ib])
	}
}

// Len returns the number of bytes appended so far.
func (b *Builder) Len() int {
	return b.total
}

// Build returns the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	r := Rope{t: b.tb.Build()}
	b.total = 0
	return r
}

func (b *Builder) flush() {
	if b.buffer.Len() == 0 {
		return
	}
	b.tb.PushItems(splitIntoChunks(b.buffer.String()))
	b.buffer.Reset()
}

// FromLines creates a rope from lines joined by newlines.
func FromLines(lines []string) Rope {
	var b Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	return b.Build()
}
