package selection

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/dshills/textcore/internal/engine/delta"
)

// Selection is an ordered set of non-overlapping regions.
// Selection is an immutable value type; the zero value is empty.
type Selection struct {
	regions []Region
}

// New returns an empty selection.
func New() Selection {
	return Selection{}
}

// NewSimple returns a selection holding the single region r.
func NewSimple(r Region) Selection {
	return Selection{regions: []Region{r}}
}

// Len returns the number of regions.
func (s Selection) Len() int {
	return len(s.regions)
}

// At returns the region at index i in ascending order.
func (s Selection) At(i int) Region {
	return s.regions[i]
}

// Regions returns a copy of the regions in ascending order.
func (s Selection) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// All iterates over the regions in ascending order.
func (s Selection) All() iter.Seq[Region] {
	return func(yield func(Region) bool) {
		for _, r := range s.regions {
			if !yield(r) {
				return
			}
		}
	}
}

// AddRegion returns s with r added.
// It panics if r overlaps an existing region.
func (s Selection) AddRegion(r Region) Selection {
	i := s.search(r)
	if i > 0 && s.regions[i-1].conflicts(r) {
		panic(fmt.Sprintf("selection: %v overlaps %v", r, s.regions[i-1]))
	}
	if i < len(s.regions) && s.regions[i].conflicts(r) {
		panic(fmt.Sprintf("selection: %v overlaps %v", r, s.regions[i]))
	}

	out := make([]Region, 0, len(s.regions)+1)
	out = append(out, s.regions[:i]...)
	out = append(out, r)
	out = append(out, s.regions[i:]...)
	return Selection{regions: out}
}

// MergeRegion returns s with r added, absorbing every region r conflicts
// with. The merged region spans all of them and keeps r's direction and
// horizontal position.
func (s Selection) MergeRegion(r Region) Selection {
	lo := r.Min()
	hi := r.Max()
	out := make([]Region, 0, len(s.regions)+1)
	inserted := false
	merged := r
	for _, cur := range s.regions {
		if cur.conflicts(merged) {
			lo = min(lo, cur.Min())
			hi = max(hi, cur.Max())
			merged = span(r, lo, hi)
			continue
		}
		if !inserted && cur.Min() >= merged.Max() {
			out = append(out, merged)
			inserted = true
		}
		out = append(out, cur)
	}
	if !inserted {
		out = append(out, merged)
	}
	return Selection{regions: out}
}

// span returns a region covering [lo, hi] oriented like r.
func span(r Region, lo, hi int) Region {
	out := r
	if r.IsForward() {
		out.Start, out.End = lo, hi
	} else {
		out.Start, out.End = hi, lo
	}
	return out
}

// Transform maps every region through d. Carets at an insertion point
// land after the inserted text when after is set. Regions that collapse
// onto each other are merged and remembered horizontal positions are
// dropped.
func (s Selection) Transform(d *delta.Delta, after bool) Selection {
	var out Selection
	for _, r := range s.regions {
		out = out.MergeRegion(NewRegion(d.Transform(r.Start, after), d.Transform(r.End, after)))
	}
	return out
}

// Carets returns the active edge of every region.
func (s Selection) Carets() []int {
	out := make([]int, len(s.regions))
	for i, r := range s.regions {
		out[i] = r.End
	}
	return out
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	parts := make([]string, len(s.regions))
	for i, r := range s.regions {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// search returns the index at which r would be inserted.
func (s Selection) search(r Region) int {
	return sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].Min() > r.Min() ||
			(s.regions[i].Min() == r.Min() && s.regions[i].Max() >= r.Max())
	})
}
