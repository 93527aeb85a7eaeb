// Package delta describes a set of disjoint replacements applied to a text
// buffer in one step, and maps offsets from the old text to the new one.
package delta

import (
	"fmt"
	"strings"

	"github.com/dshills/textcore/internal/engine/rope"
)

// Replacement replaces the bytes [Start, End) of the base text with Text.
type Replacement struct {
	Start int
	End   int
	Text  string
}

// String returns a human-readable representation of the replacement.
func (r Replacement) String() string {
	switch {
	case r.Start == r.End:
		return fmt.Sprintf("Insert(%d, %q)", r.Start, r.Text)
	case r.Text == "":
		return fmt.Sprintf("Delete[%d, %d)", r.Start, r.End)
	default:
		return fmt.Sprintf("Replace[%d, %d) with %q", r.Start, r.End, r.Text)
	}
}

// Growth returns the change in length caused by the replacement.
func (r Replacement) Growth() int {
	return len(r.Text) - (r.End - r.Start)
}

// Delta is an immutable set of replacements over a base text of BaseLen
// bytes. Replacements are sorted and do not overlap.
type Delta struct {
	baseLen int
	reps    []Replacement
}

// BaseLen returns the length of the text the delta applies to.
func (d *Delta) BaseLen() int {
	return d.baseLen
}

// NewLen returns the length of the text after applying the delta.
func (d *Delta) NewLen() int {
	n := d.baseLen
	for _, r := range d.reps {
		n += r.Growth()
	}
	return n
}

// Replacements returns a copy of the replacements in ascending order.
func (d *Delta) Replacements() []Replacement {
	out := make([]Replacement, len(d.reps))
	copy(out, d.reps)
	return out
}

// IsIdentity reports whether the delta changes nothing.
func (d *Delta) IsIdentity() bool {
	return len(d.reps) == 0
}

// Apply returns text with every replacement applied. The new rope is
// built in a single pass over text.
// It panics if text is not BaseLen bytes long.
func (d *Delta) Apply(text rope.Rope) rope.Rope {
	if text.Len() != d.baseLen {
		panic(fmt.Sprintf("delta: applying delta for length %d to text of length %d", d.baseLen, text.Len()))
	}
	if len(d.reps) == 0 {
		return text
	}

	var b rope.Builder
	pos := 0
	for _, r := range d.reps {
		b.PushSlice(text, pos, r.Start)
		b.WriteString(r.Text)
		pos = r.End
	}
	b.PushSlice(text, pos, d.baseLen)
	return b.Build()
}

// Transform maps an offset in the base text to the new text.
//
// Offsets before a replacement are unchanged by it and offsets after it
// shift by its growth. An offset inside a replaced interval collapses to
// the interval's start. An offset exactly at an insertion point, or inside
// a replaced interval, lands after the new content when after is set and
// before it otherwise.
func (d *Delta) Transform(offset int, after bool) int {
	shift := 0
	for _, r := range d.reps {
		switch {
		case r.Start > offset:
			return offset + shift
		case r.Start == r.End:
			if r.Start < offset || after {
				shift += len(r.Text)
				continue
			}
			return offset + shift
		case r.End <= offset:
			shift += r.Growth()
		default:
			if after {
				return r.Start + shift + len(r.Text)
			}
			return r.Start + shift
		}
	}
	return offset + shift
}

// Extent returns the smallest interval of the base text touched by the
// delta and its image in the new text. ok is false for an identity delta.
func (d *Delta) Extent() (start, oldEnd, newEnd int, ok bool) {
	if len(d.reps) == 0 {
		return 0, 0, 0, false
	}
	first, last := d.reps[0], d.reps[len(d.reps)-1]
	grow := d.NewLen() - d.baseLen
	return first.Start, last.End, last.End + grow, true
}

// String returns a human-readable representation of the delta.
func (d *Delta) String() string {
	parts := make([]string, len(d.reps))
	for i, r := range d.reps {
		parts[i] = r.String()
	}
	return fmt.Sprintf("Delta(%d->%d)[%s]", d.baseLen, d.NewLen(), strings.Join(parts, ", "))
}
