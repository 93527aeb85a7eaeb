package engine

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/edit"
	"github.com/dshills/textcore/internal/engine/movement"
	"github.com/dshills/textcore/internal/engine/rope"
	"github.com/dshills/textcore/internal/engine/selection"
)

// State is the document text together with its selection.
type State struct {
	Text      rope.Rope
	Selection selection.Selection
}

// NewState returns a state holding text with a single caret at its end.
func NewState(text string) State {
	r := rope.FromString(text)
	return State{
		Text:      r,
		Selection: selection.NewSimple(selection.Caret(r.Len())),
	}
}

// Edit applies op and returns the resulting state with the edit result.
// A no-op returns s unchanged.
func (s State) Edit(op edit.Op) (State, edit.Result) {
	res := edit.Apply(op, s.Text, s.Selection)
	if res.NoOp {
		return s, res
	}
	return State{Text: res.Text, Selection: res.Selection}, res
}

// Move returns s with every region moved by m. The text is unchanged.
// It panics if m is not implemented.
func (s State) Move(m movement.Movement, meas movement.Measurement, modify bool) State {
	s.Selection = movement.UpdateSelection(m, s.Selection, s.Text, meas, modify)
	return s
}

// Validate reports whether every region lies within the text.
func (s State) Validate() error {
	for r := range s.Selection.All() {
		if r.Min() < 0 || r.Max() > s.Text.Len() {
			return fmt.Errorf("%w: %v in text of length %d", ErrSelectionOutOfRange, r, s.Text.Len())
		}
	}
	return nil
}
