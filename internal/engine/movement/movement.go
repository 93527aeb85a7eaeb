// Package movement moves carets and extends selections.
//
// Horizontal moves step over grapheme clusters of the text. Vertical
// moves are resolved against a Measurement supplied by the presentation
// layer, which knows how logical lines wrap into visual lines.
package movement

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/rope"
	"github.com/dshills/textcore/internal/engine/selection"
)

// Measurement maps between text offsets and positions on screen.
type Measurement interface {
	// NVisualLines returns the number of visual lines logical line
	// wraps into.
	NVisualLines(line int) int

	// ToPos returns the horizontal position and visual line of the
	// offset relative to the start of logical line.
	ToPos(line, offset int) (horiz float64, visualLine int)

	// FromPos returns the offset, relative to the start of logical
	// line, closest to horiz on the given visual line.
	FromPos(line int, horiz float64, visualLine int) int
}

// Movement is a kind of caret motion.
type Movement uint8

// Movements.
const (
	// Left moves left by one grapheme cluster.
	Left Movement = iota
	// Right moves right by one grapheme cluster.
	Right
	// LeftWord moves left by one word.
	LeftWord
	// RightWord moves right by one word.
	RightWord
	// LeftOfLine moves to the left end of the visual line.
	LeftOfLine
	// RightOfLine moves to the right end of the visual line.
	RightOfLine
	// Up moves up one visual line.
	Up
	// Down moves down one visual line.
	Down
	// UpPage moves up one viewport height.
	UpPage
	// DownPage moves down one viewport height.
	DownPage
	// UpExactPosition moves up to the next line that can keep the
	// horizontal position.
	UpExactPosition
	// DownExactPosition moves down to the next line that can keep the
	// horizontal position.
	DownExactPosition
	// StartOfParagraph moves to the start of the logical line.
	StartOfParagraph
	// EndOfParagraph moves to the end of the logical line.
	EndOfParagraph
	// EndOfParagraphKill moves to the end of the logical line, or past
	// its newline when already there.
	EndOfParagraphKill
	// StartOfDocument moves to offset 0.
	StartOfDocument
	// EndOfDocument moves to the end of the text.
	EndOfDocument
)

var movementNames = [...]string{
	Left:               "Left",
	Right:              "Right",
	LeftWord:           "LeftWord",
	RightWord:          "RightWord",
	LeftOfLine:         "LeftOfLine",
	RightOfLine:        "RightOfLine",
	Up:                 "Up",
	Down:               "Down",
	UpPage:             "UpPage",
	DownPage:           "DownPage",
	UpExactPosition:    "UpExactPosition",
	DownExactPosition:  "DownExactPosition",
	StartOfParagraph:   "StartOfParagraph",
	EndOfParagraph:     "EndOfParagraph",
	EndOfParagraphKill: "EndOfParagraphKill",
	StartOfDocument:    "StartOfDocument",
	EndOfDocument:      "EndOfDocument",
}

// String returns the name of the movement.
func (m Movement) String() string {
	if int(m) < len(movementNames) {
		return movementNames[m]
	}
	return fmt.Sprintf("Movement(%d)", uint8(m))
}

// Implemented reports whether UpdateRegion supports m.
func (m Movement) Implemented() bool {
	switch m {
	case Left, Right, Up, Down:
		return true
	}
	return false
}

// UpdateRegion applies m to r.
//
// Without modify a non-empty region first collapses to the edge in the
// direction of motion and the result is a caret. With modify only the
// active edge moves. Vertical moves remember the horizontal position they
// aimed for so consecutive vertical moves keep the same column.
//
// It panics for movements that are not implemented.
func UpdateRegion(m Movement, r selection.Region, text rope.Rope, meas Measurement, modify bool) selection.Region {
	var (
		offset   int
		horiz    float64
		hasHoriz bool
	)

	switch m {
	case Left:
		switch {
		case !r.IsCaret() && !modify:
			offset = r.Min()
		case r.End == 0:
			horiz, hasHoriz = r.Horiz()
		default:
			offset = text.PrevGraphemeOffset(r.End)
		}

	case Right:
		switch {
		case !r.IsCaret() && !modify:
			offset = r.Max()
		case r.End == text.Len():
			offset = r.End
			horiz, hasHoriz = r.Horiz()
		default:
			offset = text.NextGraphemeOffset(r.End)
		}

	case Up:
		info := posInfo(r, text, meas, true, modify)
		horiz, hasHoriz = info.horiz, true
		switch {
		case info.visualLine > 0:
			offset = info.lineStart + meas.FromPos(info.line, info.horiz, info.visualLine-1)
		case info.line == 0:
			offset = 0
		default:
			prev := info.line - 1
			last := visualLines(meas, prev) - 1
			offset = text.OffsetOfLine(prev) + meas.FromPos(prev, info.horiz, last)
		}

	case Down:
		info := posInfo(r, text, meas, false, modify)
		horiz, hasHoriz = info.horiz, true
		if info.visualLine+1 < visualLines(meas, info.line) {
			offset = info.lineStart + meas.FromPos(info.line, info.horiz, info.visualLine+1)
			break
		}
		offset = text.OffsetOfLine(info.line + 1)
		if offset != text.Len() {
			offset += meas.FromPos(info.line+1, info.horiz, 0)
		}

	default:
		panic(fmt.Sprintf("movement: %v is not implemented", m))
	}

	start := offset
	if modify {
		start = r.Start
	}
	out := selection.NewRegion(start, offset)
	if hasHoriz {
		out = out.WithHoriz(horiz)
	}
	return out
}

// UpdateSelection applies m to every region of sel. Regions that meet
// after moving are merged.
func UpdateSelection(m Movement, sel selection.Selection, text rope.Rope, meas Measurement, modify bool) selection.Selection {
	var out selection.Selection
	for r := range sel.All() {
		out = out.MergeRegion(UpdateRegion(m, r, text, meas, modify))
	}
	return out
}

type position struct {
	line       int
	lineStart  int
	visualLine int
	horiz      float64
}

// posInfo locates the edge of r a vertical move starts from. A remembered
// horizontal position wins over the measured one.
func posInfo(r selection.Region, text rope.Rope, meas Measurement, up, modify bool) position {
	var offset int
	switch {
	case modify:
		offset = r.End
	case up:
		offset = r.Min()
	default:
		offset = r.Max()
	}

	line := text.LineOfOffset(offset)
	lineStart := text.OffsetOfLine(line)
	horiz, visualLine := meas.ToPos(line, offset-lineStart)
	if h, ok := r.Horiz(); ok {
		horiz = h
	}
	return position{line: line, lineStart: lineStart, visualLine: visualLine, horiz: horiz}
}

// visualLines returns the visual line count of line. A line reporting no
// visual lines is treated as one.
func visualLines(meas Measurement, line int) int {
	return max(meas.NVisualLines(line), 1)
}
