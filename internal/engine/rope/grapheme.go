package rope

import "github.com/rivo/uniseg"

// graphemeWindow bounds how far grapheme searches look around an offset.
// Clusters longer than this are split.
const graphemeWindow = 1024

// PrevGraphemeOffset returns the start of the grapheme cluster ending at
// offset. It returns 0 when offset is 0.
func (r Rope) PrevGraphemeOffset(offset int) int {
	r.checkOffset(offset)
	if offset == 0 {
		return 0
	}

	// Segment from a line start so the cluster before offset is seen
	// whole. A newline ends a cluster except inside CR LF, which the
	// previous line's start covers.
	line := r.LineOfOffset(offset)
	if r.OffsetOfLine(line) == offset {
		line--
	}
	start := max(r.OffsetOfLine(line), offset-graphemeWindow)
	for start < offset {
		if b, _ := r.ByteAt(start); isUTF8Start(b) {
			break
		}
		start++
	}

	text := r.Slice(start, offset)
	last := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		last, _ = g.Positions()
	}
	return start + last
}

// NextGraphemeOffset returns the end of the grapheme cluster starting at
// offset. It returns Len when offset is at the end.
func (r Rope) NextGraphemeOffset(offset int) int {
	r.checkOffset(offset)
	if offset == r.Len() {
		return offset
	}

	end := min(r.OffsetOfLine(r.LineOfOffset(offset)+1), offset+graphemeWindow)
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(r.Slice(offset, end), -1)
	return offset + len(cluster)
}

// GraphemeCount returns the number of grapheme clusters in [start, end).
func (r Rope) GraphemeCount(start, end int) int {
	return uniseg.GraphemeClusterCount(r.Slice(start, end))
}
