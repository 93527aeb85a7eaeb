// Package viewport tracks which part of the laid-out document is on screen.
//
// Positions are in visual rows and display columns, as produced by the
// layout package. The viewport scrolls minimally to reveal a position and
// keeps a margin of context around it.
package viewport

import "sync"

// Viewport represents the visible window onto the document.
type Viewport struct {
	mu sync.RWMutex

	// First visible row and column
	top  int
	left int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep the caret this far from the edges)
	marginRows int
	marginCols int

	maxRow int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Top returns the first visible row.
func (v *Viewport) Top() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.top
}

// Left returns the first visible column.
func (v *Viewport) Left() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.left
}

// Resize changes the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetMargins sets how many rows and columns of context ScrollToReveal
// keeps around its target.
func (v *Viewport) SetMargins(rows, cols int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.marginRows = max(rows, 0)
	v.marginCols = max(cols, 0)
}

// Margins returns the margins in effect. They are limited so a target can
// always sit between them.
func (v *Viewport) Margins() (rows, cols int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.effectiveMargins()
}

func (v *Viewport) effectiveMargins() (rows, cols int) {
	return min(v.marginRows, (v.height-1)/2), min(v.marginCols, (v.width-1)/2)
}

// SetMaxRow sets the last row of the document. The top row never scrolls
// past it.
func (v *Viewport) SetMaxRow(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.maxRow = max(row, 0)
	v.top = v.clampTop(v.top)
}

// VisibleRows returns the rows [start, end) on screen.
func (v *Viewport) VisibleRows() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.top, v.top + v.height
}

// ToScreen converts a row and column to screen coordinates. ok is false
// if the position is scrolled out of view.
func (v *Viewport) ToScreen(row, col int) (y, x int, ok bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	y, x = row-v.top, col-v.left
	ok = y >= 0 && y < v.height && x >= 0 && x < v.width
	return y, x, ok
}

// ScrollTo shows row at the top.
func (v *Viewport) ScrollTo(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.top = v.clampTop(row)
}

// ScrollToReveal scrolls minimally so row and col are visible with the
// margins around them. Returns true if scrolling occurred.
func (v *Viewport) ScrollToReveal(row, col int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	mr, mc := v.effectiveMargins()
	top, left := v.top, v.left

	if row < top+mr {
		top = row - mr
	} else if row > top+v.height-1-mr {
		top = row - v.height + 1 + mr
	}
	if col < left+mc {
		left = col - mc
	} else if col > left+v.width-1-mc {
		left = col - v.width + 1 + mc
	}

	top, left = v.clampTop(top), max(left, 0)
	if top == v.top && left == v.left {
		return false
	}
	v.top, v.left = top, left
	return true
}

func (v *Viewport) clampTop(top int) int {
	return min(max(top, 0), v.maxRow)
}
