package sumtree

import "fmt"

// Tree is an immutable sequence of items stored in a balanced tree whose
// nodes cache the item count and aggregated summary of their subtree.
//
// Tree values are cheap to copy and safe for concurrent reads. Every
// operation that changes the sequence returns a new Tree sharing unchanged
// subtrees with the old one.
type Tree[T Item[S], S Summary[S]] struct {
	root *node[T, S]
}

// New returns an empty tree.
func New[T Item[S], S Summary[S]]() Tree[T, S] {
	return Tree[T, S]{}
}

// FromItems builds a tree holding a copy of items.
func FromItems[T Item[S], S Summary[S]](items []T) Tree[T, S] {
	var b Builder[T, S]
	b.PushItems(items)
	return b.Build()
}

// Len returns the number of items.
func (t Tree[T, S]) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.count
}

// IsEmpty reports whether the tree holds no items.
func (t Tree[T, S]) IsEmpty() bool {
	return t.Len() == 0
}

// Summary returns the aggregated summary of all items.
func (t Tree[T, S]) Summary() S {
	if t.root == nil {
		var zero S
		return zero
	}
	return t.root.summary
}

// Depth returns the height of the root. A tree of a single leaf has depth 0.
func (t Tree[T, S]) Depth() int {
	if t.root == nil {
		return 0
	}
	return int(t.root.height)
}

// Get returns the item at index.
func (t Tree[T, S]) Get(index int) (T, bool) {
	if index < 0 || index >= t.Len() {
		var zero T
		return zero, false
	}
	leaf, start := t.root.leafAt(index)
	return leaf.items[index-start], true
}

// Items returns a copy of all items in order.
func (t Tree[T, S]) Items() []T {
	out := make([]T, 0, t.Len())
	it := t.Chunks(0, t.Len())
	for it.Next() {
		out = append(out, it.Items()...)
	}
	return out
}

// Concat returns the concatenation of t and other.
func (t Tree[T, S]) Concat(other Tree[T, S]) Tree[T, S] {
	switch {
	case t.IsEmpty():
		return other
	case other.IsEmpty():
		return t
	}
	return Tree[T, S]{root: concat(t.root, other.root)}
}

// Slice returns the items [start, end).
// It panics if the range is out of bounds.
func (t Tree[T, S]) Slice(start, end int) Tree[T, S] {
	checkRange(start, end, t.Len())
	if start == 0 && end == t.Len() {
		return t
	}
	var b Builder[T, S]
	b.PushSlice(t, start, end)
	return b.Build()
}

// Replace returns a tree with the items [start, end) replaced by items.
// It panics if the range is out of bounds.
func (t Tree[T, S]) Replace(start, end int, items []T) Tree[T, S] {
	checkRange(start, end, t.Len())
	var b Builder[T, S]
	b.PushSlice(t, 0, start)
	b.PushItems(items)
	b.PushSlice(t, end, t.Len())
	return b.Build()
}

// Measure returns the measure of the whole tree in metric m.
func (t Tree[T, S]) Measure(m Metric[S]) int {
	if t.root == nil {
		return 0
	}
	return m.Measure(t.root.summary, t.root.count)
}

// Count returns the measure in metric m of the first index items.
// It panics if index is out of bounds.
func (t Tree[T, S]) Count(m Metric[S], index int) int {
	if index < 0 || index > t.Len() {
		panic(fmt.Sprintf("sumtree: index %d out of range [0, %d]", index, t.Len()))
	}
	if index == t.Len() {
		return t.Measure(m)
	}

	total := 0
	n := t.root
	for !n.isLeaf() {
		for _, c := range n.children {
			if index < c.count {
				n = c
				break
			}
			total += m.Measure(c.summary, c.count)
			index -= c.count
		}
	}
	for _, it := range n.items[:index] {
		total += m.Measure(it.Summary(), 1)
	}
	return total
}

// IndexOf locates value in metric m. It returns the index of the item
// holding the position and the remainder of value inside that item.
//
// Items are skipped while value is at or beyond their end. When the metric
// locates empty items, the first item starting exactly at value stops the
// search even if it has zero measure. A value at or past the total measure yields
// Len and the unconsumed remainder.
func (t Tree[T, S]) IndexOf(m Metric[S], value int) (index, remainder int) {
	if t.root == nil {
		return 0, value
	}
	empty := m.LocatesEmpty()

	n := t.root
	for !n.isLeaf() {
		last := len(n.children) - 1
		next := n.children[last]
		for i, c := range n.children {
			if i == last {
				break
			}
			cm := m.Measure(c.summary, c.count)
			if value < cm || (empty && value == cm) {
				next = c
				break
			}
			value -= cm
			index += c.count
		}
		n = next
	}

	for _, it := range n.items {
		im := m.Measure(it.Summary(), 1)
		if value < im || (empty && value == 0) {
			return index, value
		}
		value -= im
		index++
	}
	return index, value
}

// Validate checks the structural invariants of the tree: uniform leaf
// depth, node occupancy bounds and cached counts.
func (t Tree[T, S]) Validate() error {
	if t.root == nil {
		return nil
	}
	_, err := validateNode(t.root, true)
	return err
}

func validateNode[T Item[S], S Summary[S]](n *node[T, S], root bool) (int, error) {
	if n.isLeaf() {
		if len(n.children) != 0 {
			return 0, fmt.Errorf("leaf has %d children", len(n.children))
		}
		if !root && (len(n.items) < MinLeaf || len(n.items) > MaxLeaf) {
			return 0, fmt.Errorf("leaf holds %d items, want [%d, %d]", len(n.items), MinLeaf, MaxLeaf)
		}
		if root && len(n.items) > MaxLeaf {
			return 0, fmt.Errorf("root leaf holds %d items, want at most %d", len(n.items), MaxLeaf)
		}
		if n.count != len(n.items) {
			return 0, fmt.Errorf("leaf count %d, holds %d items", n.count, len(n.items))
		}
		return n.count, nil
	}

	lo := MinChildren
	if root {
		lo = 2
	}
	if len(n.children) < lo || len(n.children) > MaxChildren {
		return 0, fmt.Errorf("node at height %d has %d children, want [%d, %d]",
			n.height, len(n.children), lo, MaxChildren)
	}
	total := 0
	for _, c := range n.children {
		if c.height+1 != n.height {
			return 0, fmt.Errorf("child height %d under node at height %d", c.height, n.height)
		}
		cnt, err := validateNode(c, false)
		if err != nil {
			return 0, err
		}
		total += cnt
	}
	if total != n.count {
		return 0, fmt.Errorf("node count %d, children hold %d", n.count, total)
	}
	return total, nil
}

func checkRange(start, end, length int) {
	if start < 0 || end < start || end > length {
		panic(fmt.Sprintf("sumtree: range [%d, %d) out of bounds for length %d", start, end, length))
	}
}
