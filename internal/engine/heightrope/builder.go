package heightrope

import "github.com/dshills/textcore/internal/engine/sumtree"

// Builder assembles a sequence from individual entries and slices of
// existing sequences. The zero value is ready to use.
type Builder[T any] struct {
	b       sumtree.Builder[Entry[T], Height]
	pending []Entry[T]
}

// PushEntry appends a single value.
func (b *Builder[T]) PushEntry(h Height, v T) {
	b.pending = append(b.pending, Entry[T]{Height: h, Value: v})
	if len(b.pending) == sumtree.MaxLeaf {
		b.flush()
	}
}

// PushSlice appends the elements [start, end) of s, sharing its structure.
func (b *Builder[T]) PushSlice(s Sequence[T], start, end int) {
	b.flush()
	b.b.PushSlice(s.t, start, end)
}

// Build returns the sequence and resets the builder.
func (b *Builder[T]) Build() Sequence[T] {
	b.flush()
	return Sequence[T]{t: b.b.Build()}
}

func (b *Builder[T]) flush() {
	if len(b.pending) == 0 {
		return
	}
	b.b.PushItems(b.pending)
	b.pending = b.pending[:0]
}
