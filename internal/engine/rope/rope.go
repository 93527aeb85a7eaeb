package rope

import (
	"fmt"
	"strings"

	"github.com/dshills/textcore/internal/engine/sumtree"
)

type chunkTree = sumtree.Tree[Chunk, TextSummary]

// Rope is an immutable text buffer.
// Operations return new Rope values; the original is never modified.
// The zero value is an empty rope.
type Rope struct {
	t chunkTree
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	return Rope{t: sumtree.FromItems[Chunk, TextSummary](splitIntoChunks(s))}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	return r.t.Summary().Bytes
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	return r.t.Summary().Lines + 1
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	return r.t.Summary()
}

// Depth returns the height of the underlying tree.
func (r Rope) Depth() int {
	return r.t.Depth()
}

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in the byte range [start, end).
// It panics if the range is out of bounds.
func (r Rope) Slice(start, end int) string {
	r.checkRange(start, end)
	if start == end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(end - start)
	ci, intra := r.t.IndexOf(byteMetric{}, start)
	it := r.t.Chunks(ci, r.t.Len())
	remaining := end - start
	for remaining > 0 && it.Next() {
		for _, c := range it.Items() {
			s := c.data[intra:]
			intra = 0
			if len(s) >= remaining {
				sb.WriteString(s[:remaining])
				return sb.String()
			}
			sb.WriteString(s)
			remaining -= len(s)
		}
	}
	return sb.String()
}

// SubRope returns the byte range [start, end) as a rope sharing
// structure with r.
func (r Rope) SubRope(start, end int) Rope {
	r.checkRange(start, end)
	var b Builder
	b.PushSlice(r, start, end)
	return b.Build()
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	return Rope{t: r.t.Concat(other.t)}
}

// Insert inserts text at offset.
func (r Rope) Insert(offset int, text string) Rope {
	return r.Replace(offset, offset, text)
}

// Delete removes the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	return r.Replace(start, end, "")
}

// Replace replaces the byte range [start, end) with text.
// It panics if the range is out of bounds.
func (r Rope) Replace(start, end int, text string) Rope {
	r.checkRange(start, end)
	if start == end && text == "" {
		return r
	}
	var b Builder
	b.PushSlice(r, 0, start)
	b.WriteString(text)
	b.PushSlice(r, end, r.Len())
	return b.Build()
}

// LineOfOffset returns the 0-based line containing offset. An offset just
// past a newline belongs to the following line.
func (r Rope) LineOfOffset(offset int) int {
	r.checkOffset(offset)
	ci, intra := r.t.IndexOf(byteMetric{}, offset)
	line := r.t.Count(lineMetric{}, ci)
	if c, ok := r.t.Get(ci); ok {
		line += strings.Count(c.data[:intra], "\n")
	}
	return line
}

// OffsetOfLine returns the byte offset of the start of line.
// Lines before the first map to 0 and lines past the last map to Len.
func (r Rope) OffsetOfLine(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	ci, rem := r.t.IndexOf(lineMetric{}, line-1)
	c, _ := r.t.Get(ci)
	return r.t.Count(byteMetric{}, ci) + findNthNewline(c.data, rem+1) + 1
}

// LineEndOffset returns the offset of the end of line, excluding its
// line break, either "\n" or "\r\n".
func (r Rope) LineEndOffset(line int) int {
	if line < 0 {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	end := r.OffsetOfLine(line+1) - 1
	// A CRLF break is one cluster; the line ends before the \r.
	if end > r.OffsetOfLine(line) {
		if b, _ := r.ByteAt(end - 1); b == '\r' {
			end--
		}
	}
	return end
}

// LineText returns the text of line without its line break.
func (r Rope) LineText(line int) string {
	if line < 0 || line >= r.LineCount() {
		return ""
	}
	return r.Slice(r.OffsetOfLine(line), r.LineEndOffset(line))
}

// ByteAt returns the byte at offset.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	ci, intra := r.t.IndexOf(byteMetric{}, offset)
	c, _ := r.t.Get(ci)
	return c.data[intra], true
}

// Equals reports whether two ropes hold the same text.
// Chunk boundaries may differ.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	a, b := r.Chunks(), other.Chunks()
	var sa, sb string
	for {
		if sa == "" {
			if !a.Next() {
				return sb == "" && !b.Next()
			}
			sa = a.Chunk().data
		}
		if sb == "" {
			if !b.Next() {
				return false
			}
			sb = b.Chunk().data
		}
		n := min(len(sa), len(sb))
		if sa[:n] != sb[:n] {
			return false
		}
		sa, sb = sa[n:], sb[n:]
	}
}

func (r Rope) checkOffset(offset int) {
	if offset < 0 || offset > r.Len() {
		panic(fmt.Sprintf("rope: offset %d out of range [0, %d]", offset, r.Len()))
	}
}

func (r Rope) checkRange(start, end int) {
	if start < 0 || end < start || end > r.Len() {
		panic(fmt.Sprintf("rope: range [%d, %d) out of bounds for length %d", start, end, r.Len()))
	}
}
