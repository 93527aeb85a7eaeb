package layout

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/delta"
	"github.com/dshills/textcore/internal/engine/heightrope"
	"github.com/dshills/textcore/internal/engine/rope"
)

// Layouts holds the layout of every logical line of a text. Each line's
// height is its row count, so the sequence height is the number of rows
// the whole text occupies.
//
// Layouts implements movement.Measurement.
type Layouts struct {
	seq       heightrope.Sequence[*LineLayout]
	tabWidth  int
	wrapWidth int
}

// NewLayouts creates an empty set of layouts. A wrapWidth of 0 disables
// wrapping.
func NewLayouts(tabWidth, wrapWidth int) *Layouts {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &Layouts{tabWidth: tabWidth, wrapWidth: max(wrapWidth, 0)}
}

// WrapWidth returns the wrap width (0 = no wrap).
func (l *Layouts) WrapWidth() int {
	return l.wrapWidth
}

// TabWidth returns the tab width.
func (l *Layouts) TabWidth() int {
	return l.tabWidth
}

// SetWrapWidth changes the wrap width and lays text out again.
func (l *Layouts) SetWrapWidth(width int, text rope.Rope) {
	l.wrapWidth = max(width, 0)
	l.Rebuild(text)
}

// Rebuild lays out every line of text.
func (l *Layouts) Rebuild(text rope.Rope) {
	var b heightrope.Builder[*LineLayout]
	it := text.Lines()
	for it.Next() {
		ll := NewLineLayout(it.Text(), l.tabWidth, l.wrapWidth)
		b.PushEntry(ll.Height(), ll)
	}
	l.seq = b.Build()
}

// Update lays out again only the lines touched by d. text is the result of
// applying d to the text the layouts were built from.
//
// The prefix before the delta's extent and the suffix after it are
// unchanged, so the old extent's last line follows from the line counts.
func (l *Layouts) Update(text rope.Rope, d *delta.Delta) {
	if d.NewLen() != text.Len() {
		panic(fmt.Sprintf("layout: delta produces %d bytes, text has %d", d.NewLen(), text.Len()))
	}
	start, _, newEnd, ok := d.Extent()
	if !ok {
		return
	}
	first := text.LineOfOffset(start)
	lastNew := text.LineOfOffset(newEnd)
	lastOld := lastNew + l.seq.Len() - text.LineCount()

	entries := make([]heightrope.Entry[*LineLayout], 0, lastNew-first+1)
	for line := first; line <= lastNew; line++ {
		ll := NewLineLayout(text.LineText(line), l.tabWidth, l.wrapWidth)
		entries = append(entries, heightrope.Entry[*LineLayout]{Height: ll.Height(), Value: ll})
	}
	l.seq.Splice(first, lastOld+1, entries)
}

// Len returns the number of logical lines.
func (l *Layouts) Len() int {
	return l.seq.Len()
}

// Line returns the layout of a logical line, or nil if out of range.
func (l *Layouts) Line(line int) *LineLayout {
	_, ll, ok := l.seq.Get(line)
	if !ok {
		return nil
	}
	return ll
}

// Rows returns the total number of rows.
func (l *Layouts) Rows() int {
	return rows(l.seq.Height())
}

// RowOfLine returns the first row of a logical line.
func (l *Layouts) RowOfLine(line int) int {
	line = min(max(line, 0), l.seq.Len())
	return rows(l.seq.HeightOfIndex(line))
}

// LineAtRow returns the logical line covering row and the visual line
// within it. Rows past the end map to the last row of the last line.
func (l *Layouts) LineAtRow(row int) (line, visualLine int) {
	if l.seq.IsEmpty() {
		return 0, 0
	}
	row = max(row, 0)
	line = l.seq.IndexOfHeight(heightrope.FromFloat64(float64(row)))
	if line >= l.seq.Len() {
		line = l.seq.Len() - 1
		return line, l.Line(line).VisualLines() - 1
	}
	return line, row - l.RowOfLine(line)
}

// NVisualLines implements movement.Measurement.
func (l *Layouts) NVisualLines(line int) int {
	ll := l.Line(line)
	if ll == nil {
		return 1
	}
	return ll.VisualLines()
}

// ToPos implements movement.Measurement.
func (l *Layouts) ToPos(line, offset int) (float64, int) {
	ll := l.Line(line)
	if ll == nil {
		return 0, 0
	}
	col, row := ll.Pos(offset)
	return float64(col), row
}

// FromPos implements movement.Measurement.
func (l *Layouts) FromPos(line int, horiz float64, visualLine int) int {
	ll := l.Line(line)
	if ll == nil {
		return 0
	}
	return ll.Offset(horiz, visualLine)
}

// Validate checks the structure of the underlying sequence.
func (l *Layouts) Validate() error {
	return l.seq.Validate()
}

func rows(h heightrope.Height) int {
	return int(h.RawFrac() >> heightrope.FracBits)
}
