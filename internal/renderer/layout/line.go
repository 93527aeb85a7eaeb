// Package layout provides line layout computation for the renderer.
//
// A LineLayout places the grapheme clusters of one logical line on terminal
// cells, expanding tabs and wrapping at a fixed width. Layouts keeps one
// LineLayout per logical line in a height sequence so a row on screen can be
// mapped back to its line in logarithmic time.
package layout

import (
	"sort"

	"github.com/rivo/uniseg"

	"github.com/dshills/textcore/internal/engine/heightrope"
)

// DefaultTabWidth is used when a non-positive tab width is given.
const DefaultTabWidth = 4

// Cluster is one grapheme cluster placed on the grid.
type Cluster struct {
	Text   string
	Offset int // byte offset within the line
	Col    int
	Row    int
	Width  int // cells occupied; 0 for control characters
}

// LineLayout represents the visual layout of a single logical line.
type LineLayout struct {
	text     string
	clusters []Cluster
	rows     int
	width    int
}

// NewLineLayout lays out text, which must not contain a newline. A
// wrapWidth of 0 disables wrapping. Wrapping happens between clusters; a
// cluster wider than the wrap width gets a row of its own.
func NewLineLayout(text string, tabWidth, wrapWidth int) *LineLayout {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	l := &LineLayout{text: text, rows: 1}

	col, row := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		s := g.Str()
		w := clusterWidth(s, g.Width(), col, tabWidth)
		if wrapWidth > 0 && col > 0 && col+w > wrapWidth {
			row++
			col = 0
			w = clusterWidth(s, g.Width(), col, tabWidth)
		}
		l.clusters = append(l.clusters, Cluster{Text: s, Offset: from, Col: col, Row: row, Width: w})
		col += w
		l.width = max(l.width, col)
	}
	l.rows = row + 1
	return l
}

func clusterWidth(s string, w, col, tabWidth int) int {
	if s == "\t" {
		return tabWidth - col%tabWidth
	}
	return w
}

// Text returns the laid out line.
func (l *LineLayout) Text() string {
	return l.text
}

// VisualLines returns the number of rows the line occupies. It is at least 1.
func (l *LineLayout) VisualLines() int {
	return l.rows
}

// Height returns the row count as a sequence height.
func (l *LineLayout) Height() heightrope.Height {
	return heightrope.FromFloat64(float64(l.rows))
}

// Width returns the width of the widest row in cells.
func (l *LineLayout) Width() int {
	return l.width
}

// Clusters returns all placed clusters. The slice must not be modified.
func (l *LineLayout) Clusters() []Cluster {
	return l.clusters
}

// Row returns the clusters placed on row.
func (l *LineLayout) Row(row int) []Cluster {
	lo := sort.Search(len(l.clusters), func(i int) bool { return l.clusters[i].Row >= row })
	hi := sort.Search(len(l.clusters), func(i int) bool { return l.clusters[i].Row > row })
	return l.clusters[lo:hi]
}

// Pos returns the cell of the byte offset. Offsets inside a cluster map
// to the cluster's cell; the end of the line maps just past the last
// cluster.
func (l *LineLayout) Pos(offset int) (col, row int) {
	if len(l.clusters) == 0 {
		return 0, 0
	}
	if offset >= len(l.text) {
		last := l.clusters[len(l.clusters)-1]
		return last.Col + last.Width, last.Row
	}
	i := sort.Search(len(l.clusters), func(i int) bool { return l.clusters[i].Offset > offset }) - 1
	c := l.clusters[max(i, 0)]
	return c.Col, c.Row
}

// Offset returns the cluster boundary nearest to col on row. Rows out of
// range are clamped. Past the end of a wrapped row the offset of its last
// cluster is returned so the position stays on that row.
func (l *LineLayout) Offset(col float64, row int) int {
	row = min(max(row, 0), l.rows-1)
	cs := l.Row(row)
	for _, c := range cs {
		if col < float64(c.Col)+float64(c.Width)/2 {
			return c.Offset
		}
	}
	if row == l.rows-1 || len(cs) == 0 {
		return len(l.text)
	}
	return cs[len(cs)-1].Offset
}
