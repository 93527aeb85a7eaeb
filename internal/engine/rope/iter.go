package rope

import "github.com/dshills/textcore/internal/engine/sumtree"

// ChunkIterator iterates over the chunks of a rope in order.
type ChunkIterator struct {
	leaves *sumtree.ChunkIterator[Chunk, TextSummary]
	items  []Chunk
	idx    int
	chunk  Chunk
	offset int
	next   int
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{leaves: r.t.Chunks(0, r.t.Len())}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	for it.idx >= len(it.items) {
		if !it.leaves.Next() {
			return false
		}
		it.items = it.leaves.Items()
		it.idx = 0
	}
	it.chunk = it.items[it.idx]
	it.idx++
	it.offset = it.next
	it.next += it.chunk.Len()
	return true
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// LineIterator iterates over the lines of a rope.
type LineIterator struct {
	rope  Rope
	line  int
	start int
	end   int
	text  string
}

// Lines returns an iterator over all lines. A rope always has at least
// one line.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r, line: -1}
}

// Next advances to the next line.
func (it *LineIterator) Next() bool {
	if it.line+1 >= it.rope.LineCount() {
		return false
	}
	it.line++
	it.start = it.rope.OffsetOfLine(it.line)
	it.end = it.rope.LineEndOffset(it.line)
	it.text = it.rope.Slice(it.start, it.end)
	return true
}

// Line returns the current 0-based line number.
func (it *LineIterator) Line() int {
	return it.line
}

// Text returns the current line without its line break.
func (it *LineIterator) Text() string {
	return it.text
}

// StartOffset returns the offset of the first byte of the line.
func (it *LineIterator) StartOffset() int {
	return it.start
}

// EndOffset returns the offset just before the line's line break.
func (it *LineIterator) EndOffset() int {
	return it.end
}
