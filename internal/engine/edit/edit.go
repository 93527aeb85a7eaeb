// Package edit turns editing commands into deltas over every region of a
// selection at once.
//
// A command yields at most one delta, so a buffer with several carets
// changes in a single step and every caret is remapped through the same
// delta.
package edit

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/delta"
	"github.com/dshills/textcore/internal/engine/rope"
	"github.com/dshills/textcore/internal/engine/selection"
)

// Op is an editing command. The set of operations is closed.
type Op interface {
	request(ctx Context) Request
	fmt.Stringer
}

// Insert replaces every region with Text. A caret becomes an insertion
// point.
type Insert struct {
	Text string
}

func (op Insert) request(ctx Context) Request {
	return ctx.Insert(op.Text)
}

// String returns a human-readable representation of the op.
func (op Insert) String() string {
	return fmt.Sprintf("Insert(%q)", op.Text)
}

// DeleteBackward deletes every non-empty region, and the grapheme cluster
// before every caret.
type DeleteBackward struct{}

func (DeleteBackward) request(ctx Context) Request {
	return ctx.DeleteBackward()
}

// String returns a human-readable representation of the op.
func (DeleteBackward) String() string {
	return "DeleteBackward"
}

// Type classifies an edit so callers can group consecutive edits.
type Type uint8

const (
	// TypeOther is a catchall for edits that should stand alone.
	TypeOther Type = iota

	// TypeInsertChars is typed text.
	TypeInsertChars

	// TypeInsertNewline is a typed line break.
	TypeInsertNewline

	// TypeDelete is a deletion.
	TypeDelete
)

// String returns a string representation of the edit type.
func (t Type) String() string {
	switch t {
	case TypeOther:
		return "other"
	case TypeInsertChars:
		return "insert"
	case TypeInsertNewline:
		return "newline"
	case TypeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Request is the delta a command proposes. A nil Delta means the command
// has nothing to do.
type Request struct {
	Delta *delta.Delta
	Type  Type
}

// IsNoOp reports whether the request changes nothing.
func (r Request) IsNoOp() bool {
	return r.Delta == nil
}

// Context is the text and selection a command runs against.
// Regions must be sorted and non-overlapping.
type Context struct {
	Text rope.Rope
	Sel  selection.Selection
}

// Insert proposes replacing every region with text.
func (ctx Context) Insert(text string) Request {
	b := delta.NewBuilder(ctx.Text.Len())
	for r := range ctx.Sel.All() {
		b.Replace(r.Min(), r.Max(), text)
	}
	if b.IsEmpty() {
		return Request{}
	}
	typ := TypeInsertChars
	if text == "\n" {
		typ = TypeInsertNewline
	}
	return Request{Delta: b.Build(), Type: typ}
}

// DeleteBackward proposes deleting every non-empty region and the
// grapheme cluster before every caret. Carets at the start of the text
// contribute nothing.
func (ctx Context) DeleteBackward() Request {
	b := delta.NewBuilder(ctx.Text.Len())
	for r := range ctx.Sel.All() {
		start := r.Min()
		if r.IsCaret() {
			start = ctx.Text.PrevGraphemeOffset(r.End)
		}
		if start < r.Max() {
			b.Delete(start, r.Max())
		}
	}
	if b.IsEmpty() {
		return Request{}
	}
	return Request{Delta: b.Build(), Type: TypeDelete}
}

// Result is the outcome of applying an op.
type Result struct {
	Text      rope.Rope
	Selection selection.Selection
	Delta     *delta.Delta
	Type      Type
	NoOp      bool
}

// Apply runs op against text and sel. The new text and selection are
// derived from one delta; when op has nothing to do both are returned
// unchanged with NoOp set.
func Apply(op Op, text rope.Rope, sel selection.Selection) Result {
	req := op.request(Context{Text: text, Sel: sel})
	if req.IsNoOp() {
		return Result{Text: text, Selection: sel, NoOp: true}
	}
	return Result{
		Text:      req.Delta.Apply(text),
		Selection: sel.Transform(req.Delta, true),
		Delta:     req.Delta,
		Type:      req.Type,
	}
}
