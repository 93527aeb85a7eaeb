package engine

import (
	"fmt"
	"slices"

	"github.com/dshills/textcore/internal/engine/edit"
	"github.com/dshills/textcore/internal/engine/movement"
	"github.com/dshills/textcore/internal/engine/rope"
	"github.com/dshills/textcore/internal/engine/selection"
)

// Logger receives debug traces of engine activity.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Engine is the mutable facade over State.
//
// Every successful edit replaces the current state and bumps the revision.
// Movements replace the selection but leave the revision alone.
type Engine struct {
	state    State
	revision uint64
	logger   Logger

	// Initialization
	initContent string
	initSel     *selection.Selection
}

// New creates an Engine with the given options. It fails with
// ErrSelectionOutOfRange if the initial selection does not fit the content.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{logger: nopLogger{}}
	for _, opt := range opts {
		opt(e)
	}

	e.state = NewState(e.initContent)
	if e.initSel != nil {
		e.state.Selection = *e.initSel
	}
	if err := e.state.Validate(); err != nil {
		return nil, err
	}
	e.initSel = nil
	return e, nil
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	return e.state
}

// Text returns the current text.
func (e *Engine) Text() rope.Rope {
	return e.state.Text
}

// Selection returns the current selection.
func (e *Engine) Selection() selection.Selection {
	return e.state.Selection
}

// Revision returns the number of edits applied so far.
func (e *Engine) Revision() uint64 {
	return e.revision
}

// SetSelection replaces the selection.
func (e *Engine) SetSelection(sel selection.Selection) error {
	next := State{Text: e.state.Text, Selection: sel}
	if err := next.Validate(); err != nil {
		return err
	}
	e.state = next
	return nil
}

// Apply runs op against the current state and returns the full result.
func (e *Engine) Apply(op edit.Op) edit.Result {
	next, res := e.state.Edit(op)
	if res.NoOp {
		e.logger.Debug("edit was a no-op", "op", op, "revision", e.revision)
		return res
	}
	e.state = next
	e.revision++
	e.logger.Debug("applied edit",
		"op", op,
		"type", res.Type,
		"delta", res.Delta,
		"revision", e.revision)
	return res
}

// Do runs op and reports whether the state changed.
func (e *Engine) Do(op edit.Op) bool {
	return !e.Apply(op).NoOp
}

// Move moves every region by m using meas for vertical geometry and
// reports whether the selection changed.
func (e *Engine) Move(m movement.Movement, meas movement.Measurement, modify bool) (bool, error) {
	if !m.Implemented() {
		return false, fmt.Errorf("%w: %v", ErrUnimplementedMovement, m)
	}
	next := e.state.Move(m, meas, modify)
	if slices.Equal(next.Selection.Regions(), e.state.Selection.Regions()) {
		return false, nil
	}
	e.state = next
	e.logger.Debug("moved", "movement", m, "modify", modify, "selection", next.Selection)
	return true, nil
}
