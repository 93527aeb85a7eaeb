package edit

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textcore/internal/engine/rope"
	"github.com/dshills/textcore/internal/engine/selection"
)

func carets(offsets ...int) selection.Selection {
	var s selection.Selection
	for _, o := range offsets {
		s = s.AddRegion(selection.Caret(o))
	}
	return s
}

func TestInsertAtCaret(t *testing.T) {
	f := func(raw string, at uint16) bool {
		text := rope.FromString(strings.ToValidUTF8(raw, ""))
		o := int(at) % (text.Len() + 1)
		for o < text.Len() {
			if b, _ := text.ByteAt(o); b&0xC0 != 0x80 {
				break
			}
			o++
		}

		res := Apply(Insert{Text: "x"}, text, carets(o))
		return !res.NoOp &&
			res.Text.Len() == text.Len()+1 &&
			res.Selection.Len() == 1 &&
			res.Selection.At(0) == selection.Caret(o+1)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestInsertMultiCaret(t *testing.T) {
	text := rope.FromString("0123456789")
	res := Apply(Insert{Text: "Q"}, text, carets(3, 7))

	if got := res.Text.String(); got != "012Q3456Q789" {
		t.Errorf("Text = %q", got)
	}
	if res.Text.Len() != 12 {
		t.Errorf("Len() = %d, want 12", res.Text.Len())
	}
	if diff := cmp.Diff([]int{4, 9}, res.Selection.Carets()); diff != "" {
		t.Errorf("carets (-want +got):\n%s", diff)
	}
	if n := len(res.Delta.Replacements()); n != 2 {
		t.Errorf("delta has %d replacements, want 2 in one delta", n)
	}
	if res.Type != TypeInsertChars {
		t.Errorf("Type = %v, want insert", res.Type)
	}
}

func TestInsertReplacesRange(t *testing.T) {
	text := rope.FromString("hello world")
	sel := selection.NewSimple(selection.NewRegion(11, 6))
	res := Apply(Insert{Text: "there"}, text, sel)

	if got := res.Text.String(); got != "hello there" {
		t.Errorf("Text = %q", got)
	}
	if res.Selection.At(0) != selection.Caret(11) {
		t.Errorf("Selection = %v, want caret at 11", res.Selection)
	}
}

func TestInsertNewlineType(t *testing.T) {
	res := Apply(Insert{Text: "\n"}, rope.FromString("ab"), carets(1))
	if res.Type != TypeInsertNewline {
		t.Errorf("Type = %v, want newline", res.Type)
	}
}

func TestInsertEmptyAtCaretIsNoOp(t *testing.T) {
	text := rope.FromString("abc")
	res := Apply(Insert{}, text, carets(1))
	if !res.NoOp {
		t.Error("empty insert at caret should be a no-op")
	}
}

func TestDeleteBackwardAtStartIsNoOp(t *testing.T) {
	text := rope.FromString("abc")
	sel := carets(0)
	res := Apply(DeleteBackward{}, text, sel)

	if !res.NoOp {
		t.Fatal("expected no-op")
	}
	if res.Delta != nil {
		t.Error("no-op result carries a delta")
	}
	if !res.Text.Equals(text) || res.Selection.String() != sel.String() {
		t.Errorf("no-op changed state: %q %v", res.Text.String(), res.Selection)
	}
}

func TestDeleteBackward(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sel      selection.Selection
		wantText string
		wantSel  []int
	}{
		{"caret", "abc", carets(2), "ac", []int{1}},
		{"grapheme", "ae\u0301c", carets(4), "ac", []int{1}},
		{"emoji", "x🎉", carets(5), "x", []int{1}},
		{"crlf", "a\r\nb", carets(3), "ab", []int{1}},
		{"range", "hello world", selection.NewSimple(selection.NewRegion(5, 11)), "hello", []int{5}},
		{"multi with start", "abcd", carets(0, 2, 4), "ac", []int{0, 1, 2}},
		{"adjacent carets", "abcd", carets(1, 2), "cd", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Apply(DeleteBackward{}, rope.FromString(tt.text), tt.sel)
			if res.NoOp {
				t.Fatal("unexpected no-op")
			}
			if got := res.Text.String(); got != tt.wantText {
				t.Errorf("Text = %q, want %q", got, tt.wantText)
			}
			if diff := cmp.Diff(tt.wantSel, res.Selection.Carets()); diff != "" {
				t.Errorf("carets (-want +got):\n%s", diff)
			}
			if res.Type != TypeDelete {
				t.Errorf("Type = %v, want delete", res.Type)
			}
		})
	}
}

func TestRequestDoesNotApply(t *testing.T) {
	text := rope.FromString("abc")
	ctx := Context{Text: text, Sel: carets(3)}
	req := ctx.DeleteBackward()
	if req.IsNoOp() {
		t.Fatal("unexpected no-op")
	}
	if text.String() != "abc" {
		t.Error("building a request modified the text")
	}
	if got := req.Delta.Apply(text).String(); got != "ab" {
		t.Errorf("Apply = %q", got)
	}
}

func TestOpString(t *testing.T) {
	if got := (Insert{Text: "a"}).String(); got != `Insert("a")` {
		t.Errorf("String() = %s", got)
	}
	if got := (DeleteBackward{}).String(); got != "DeleteBackward" {
		t.Errorf("String() = %s", got)
	}
}
