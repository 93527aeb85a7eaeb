package sumtree

// ChunkIterator walks the leaves covering a range of items, yielding each
// leaf's items clipped to the range.
//
// Usage:
//
//	it := tree.Chunks(0, tree.Len())
//	for it.Next() {
//	    process(it.Start(), it.Items())
//	}
type ChunkIterator[T Item[S], S Summary[S]] struct {
	tree  Tree[T, S]
	start int
	end   int

	pos   int // index of the next item to yield
	items []T
	at    int // index of items[0]
}

// Chunks returns an iterator over the items [start, end).
// It panics if the range is out of bounds.
func (t Tree[T, S]) Chunks(start, end int) *ChunkIterator[T, S] {
	checkRange(start, end, t.Len())
	return &ChunkIterator[T, S]{tree: t, start: start, end: end, pos: start}
}

// Next advances to the next chunk. It returns false once the range is
// exhausted.
func (it *ChunkIterator[T, S]) Next() bool {
	if it.pos >= it.end {
		it.items = nil
		return false
	}
	leaf, leafStart := it.tree.root.leafAt(it.pos)
	lo := it.pos - leafStart
	hi := min(len(leaf.items), it.end-leafStart)
	it.items = leaf.items[lo:hi:hi]
	it.at = it.pos
	it.pos = leafStart + hi
	return true
}

// Items returns the items of the current chunk. The slice must not be
// modified.
func (it *ChunkIterator[T, S]) Items() []T {
	return it.items
}

// Start returns the index of the first item of the current chunk.
func (it *ChunkIterator[T, S]) Start() int {
	return it.at
}

// Reset rewinds the iterator to the start of its range.
func (it *ChunkIterator[T, S]) Reset() {
	it.pos = it.start
	it.items = nil
	it.at = 0
}
