package app

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/engine/selection"
	"github.com/dshills/textcore/internal/renderer/layout"
)

var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleCaret     = tcell.StyleDefault.Underline(true)
	styleStatus    = tcell.StyleDefault.Reverse(true).Bold(true)
)

// textRows returns the number of screen rows available for text. The
// bottom row holds the status line.
func (app *Application) textRows() int {
	return max(app.height-1, 0)
}

// Draw renders the visible part of the document and the status line.
// The last region is the primary caret and gets the terminal cursor;
// other carets are underlined.
func (app *Application) Draw() {
	s := app.screen
	if s == nil {
		return
	}
	s.Clear()

	text := app.engine.Text()
	regions := app.engine.Selection().Regions()
	secondary := make(map[int]bool, len(regions))
	for _, r := range regions[:max(len(regions)-1, 0)] {
		secondary[r.End] = true
	}

	first, last := app.view.VisibleRows()
	last = min(last, first+app.textRows(), app.layouts.Rows())
	left := app.view.Left()
	for row := first; row < last; row++ {
		line, visual := app.layouts.LineAtRow(row)
		ll := app.layouts.Line(line)
		lineStart := text.OffsetOfLine(line)
		for _, c := range ll.Row(visual) {
			x := c.Col - left
			if x < 0 || x >= app.width {
				continue
			}
			off := lineStart + c.Offset
			style := styleText
			if selected(regions, off) {
				style = styleSelection
			}
			if secondary[off] {
				style = styleCaret
			}
			drawCluster(s, c, x, row-first, style)
		}
	}

	// Carets past the last cluster of a line have no cell of their own.
	for off := range secondary {
		line := text.LineOfOffset(off)
		if off != text.LineEndOffset(line) {
			continue
		}
		if x, y, ok := app.caretCell(off); ok {
			s.SetContent(x, y, ' ', nil, styleCaret)
		}
	}

	if len(regions) > 0 {
		if x, y, ok := app.caretCell(regions[len(regions)-1].End); ok {
			s.ShowCursor(x, y)
		} else {
			s.HideCursor()
		}
	}
	app.drawStatus()
	s.Show()
}

func drawCluster(s tcell.Screen, c layout.Cluster, x, y int, style tcell.Style) {
	if c.Width == 0 {
		return
	}
	if c.Text == "\t" {
		for i := 0; i < c.Width; i++ {
			s.SetContent(x+i, y, ' ', nil, style)
		}
		return
	}
	runes := []rune(c.Text)
	s.SetContent(x, y, runes[0], runes[1:], style)
}

// selected reports whether off lies inside a non-empty region.
func selected(regions []selection.Region, off int) bool {
	i := sort.Search(len(regions), func(i int) bool { return regions[i].Max() > off })
	return i < len(regions) && regions[i].Min() <= off
}

// caretCell returns the screen cell of a caret at off and whether it is
// visible.
func (app *Application) caretCell(off int) (x, y int, ok bool) {
	line, col, row := app.caretPos(off)
	y, x, ok = app.view.ToScreen(app.layouts.RowOfLine(line)+row, app.cursorColumn(col))
	if !ok || y >= app.textRows() {
		return 0, 0, false
	}
	return x, y, true
}

// cursorColumn keeps a caret after a full wrapped row inside the window.
func (app *Application) cursorColumn(col int) int {
	if app.layouts.WrapWidth() > 0 {
		return min(col, max(app.width-1, 0))
	}
	return col
}

// caretPos returns the logical line of off with its column and row in
// that line's layout.
func (app *Application) caretPos(off int) (line, col, row int) {
	text := app.engine.Text()
	line = text.LineOfOffset(off)
	h, row := app.layouts.ToPos(line, off-text.OffsetOfLine(line))
	return line, int(h), row
}

// scrollToCaret scrolls so the primary caret is visible with the
// configured margin.
func (app *Application) scrollToCaret() {
	app.view.SetMaxRow(app.layouts.Rows() - 1)
	regions := app.engine.Selection().Regions()
	if app.textRows() == 0 || len(regions) == 0 {
		return
	}
	line, col, row := app.caretPos(regions[len(regions)-1].End)
	if app.layouts.WrapWidth() > 0 {
		col = 0
	}
	app.view.ScrollToReveal(app.layouts.RowOfLine(line)+row, col)
}

func (app *Application) drawStatus() {
	if app.height < 2 {
		return
	}
	y := app.height - 1
	for x := 0; x < app.width; x++ {
		app.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	sel := app.engine.Selection()
	status := fmt.Sprintf(" %d carets  rev %d", sel.Len(), app.engine.Revision())
	if sel.Len() > 0 {
		line, _, _ := app.caretPos(sel.At(sel.Len() - 1).End)
		text := app.engine.Text()
		end := sel.At(sel.Len() - 1).End
		status = fmt.Sprintf(" %d:%d%s", line+1, end-text.OffsetOfLine(line)+1, status)
	}
	x := 0
	for _, r := range status {
		if x >= app.width {
			break
		}
		app.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
}
