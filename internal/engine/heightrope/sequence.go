package heightrope

import (
	"iter"

	"github.com/dshills/textcore/internal/engine/sumtree"
)

type tree[T any] = sumtree.Tree[Entry[T], Height]

// ChunkIterator yields contiguous runs of entries.
type ChunkIterator[T any] = sumtree.ChunkIterator[Entry[T], Height]

// Sequence is a persistent sequence of height-tagged values.
//
// Mutating methods replace the receiver's contents with a new version and
// leave earlier snapshots untouched. The zero value is an empty sequence.
type Sequence[T any] struct {
	t tree[T]
}

// Len returns the number of elements.
func (s Sequence[T]) Len() int {
	return s.t.Len()
}

// IsEmpty reports whether s has no elements.
func (s Sequence[T]) IsEmpty() bool {
	return s.t.IsEmpty()
}

// Height returns the total height.
func (s Sequence[T]) Height() Height {
	return s.t.Summary()
}

// Get returns the height and value at index.
func (s Sequence[T]) Get(index int) (Height, T, bool) {
	e, ok := s.t.Get(index)
	return e.Height, e.Value, ok
}

// Snapshot returns a copy of s sharing its structure. Later mutations of
// either copy do not affect the other.
func (s Sequence[T]) Snapshot() Sequence[T] {
	return s
}

// Push appends a value.
func (s *Sequence[T]) Push(h Height, v T) {
	s.t = s.t.Replace(s.t.Len(), s.t.Len(), []Entry[T]{{Height: h, Value: v}})
}

// Insert inserts a value before index. It panics if index > Len.
func (s *Sequence[T]) Insert(index int, h Height, v T) {
	s.t = s.t.Replace(index, index, []Entry[T]{{Height: h, Value: v}})
}

// Set replaces the element at index. It panics if index >= Len.
func (s *Sequence[T]) Set(index int, h Height, v T) {
	s.t = s.t.Replace(index, index+1, []Entry[T]{{Height: h, Value: v}})
}

// Remove deletes the element at index. It panics if index >= Len.
func (s *Sequence[T]) Remove(index int) {
	s.t = s.t.Replace(index, index+1, nil)
}

// Splice replaces the elements [start, end) with entries.
func (s *Sequence[T]) Splice(start, end int, entries []Entry[T]) {
	s.t = s.t.Replace(start, end, entries)
}

// Concat returns s followed by other.
func (s Sequence[T]) Concat(other Sequence[T]) Sequence[T] {
	return Sequence[T]{t: s.t.Concat(other.t)}
}

// Slice returns the elements [start, end).
func (s Sequence[T]) Slice(start, end int) Sequence[T] {
	return Sequence[T]{t: s.t.Slice(start, end)}
}

// HeightOfIndex returns the total height of the elements before index.
func (s Sequence[T]) HeightOfIndex(index int) Height {
	return Height(s.t.Count(HeightMetric{}, index))
}

// IndexOfHeight returns the index of the element covering h.
//
// An element covers the half-open range [top, top+height). When h falls
// exactly on the top of one or more zero-height elements the first of them
// is returned. A height at or past the total yields Len unless the sequence
// ends with zero-height elements located there.
func (s Sequence[T]) IndexOfHeight(h Height) int {
	i, _ := s.t.IndexOf(HeightMetric{}, int(h))
	return i
}

// Count returns the measure of the first index elements in metric m.
func (s Sequence[T]) Count(m sumtree.Metric[Height], index int) int {
	return s.t.Count(m, index)
}

// IndexOf locates value in metric m.
func (s Sequence[T]) IndexOf(m sumtree.Metric[Height], value int) (int, int) {
	return s.t.IndexOf(m, value)
}

// Chunks returns an iterator over the elements [start, end).
func (s Sequence[T]) Chunks(start, end int) *ChunkIterator[T] {
	return s.t.Chunks(start, end)
}

// All iterates over the elements in order.
func (s Sequence[T]) All() iter.Seq2[int, Entry[T]] {
	return func(yield func(int, Entry[T]) bool) {
		it := s.t.Chunks(0, s.t.Len())
		for it.Next() {
			for i, e := range it.Items() {
				if !yield(it.Start()+i, e) {
					return
				}
			}
		}
	}
}

// Validate checks the structural invariants of the underlying tree.
func (s Sequence[T]) Validate() error {
	return s.t.Validate()
}
