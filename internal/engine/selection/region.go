// Package selection models the carets and selected ranges of an editor
// view as an ordered set of non-overlapping regions.
package selection

import "fmt"

// Region is a caret or a selected range of byte offsets.
//
// Start is the anchor and End is the active edge that moves when the
// selection is extended; Start may exceed End. A region also remembers the
// horizontal position vertical movement aims for.
// Region is an immutable value type.
type Region struct {
	Start int
	End   int

	horiz    float64
	hasHoriz bool
}

// NewRegion creates a region from anchor start to active edge end.
func NewRegion(start, end int) Region {
	return Region{Start: start, End: end}
}

// Caret creates an empty region at offset.
func Caret(offset int) Region {
	return Region{Start: offset, End: offset}
}

// Min returns the lower bound of the region.
func (r Region) Min() int {
	return min(r.Start, r.End)
}

// Max returns the upper bound of the region.
func (r Region) Max() int {
	return max(r.Start, r.End)
}

// IsCaret returns true if the region has no extent.
func (r Region) IsCaret() bool {
	return r.Start == r.End
}

// IsForward returns true if the active edge is at or after the anchor.
func (r Region) IsForward() bool {
	return r.End >= r.Start
}

// Horiz returns the remembered horizontal position, if any.
func (r Region) Horiz() (float64, bool) {
	return r.horiz, r.hasHoriz
}

// WithHoriz returns r remembering horizontal position h.
func (r Region) WithHoriz(h float64) Region {
	r.horiz, r.hasHoriz = h, true
	return r
}

// WithoutHoriz returns r with no remembered horizontal position.
func (r Region) WithoutHoriz() Region {
	r.horiz, r.hasHoriz = 0, false
	return r
}

// conflicts reports whether r and other cannot coexist in a selection:
// they overlap, or a caret touches the other region.
func (r Region) conflicts(other Region) bool {
	if r.IsCaret() || other.IsCaret() {
		return r.Min() <= other.Max() && other.Min() <= r.Max()
	}
	return r.Min() < other.Max() && other.Min() < r.Max()
}

// String returns a string representation of the region.
func (r Region) String() string {
	var s string
	if r.IsCaret() {
		s = fmt.Sprintf("Caret(%d)", r.Start)
	} else {
		s = fmt.Sprintf("Region(%d->%d)", r.Start, r.End)
	}
	if r.hasHoriz {
		s += fmt.Sprintf("@%g", r.horiz)
	}
	return s
}
