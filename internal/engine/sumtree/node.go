package sumtree

// Tree structure constants.
const (
	// MinLeaf is the minimum number of items in a leaf (except the root).
	MinLeaf = 16

	// MaxLeaf is the maximum number of items in a leaf before splitting.
	MaxLeaf = 32

	// MinChildren is the minimum children per internal node (except the root).
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8
)

// Summary is the monoid aggregated over a subtree.
// The zero value of S must be the identity element.
type Summary[S any] interface {
	Add(other S) S
}

// Item is an element stored in a leaf.
type Item[S any] interface {
	Summary() S
}

// node is a node of the tree. Leaf nodes (height == 0) hold items,
// internal nodes (height > 0) hold children of height-1.
// A node is never modified after it has been linked into a tree.
type node[T Item[S], S Summary[S]] struct {
	height  uint8
	count   int // number of items in the subtree
	summary S   // aggregated summary of the subtree

	children []*node[T, S] // internal nodes
	items    []T           // leaf nodes
}

// newLeaf creates a leaf holding items. The slice is owned by the leaf.
func newLeaf[T Item[S], S Summary[S]](items []T) *node[T, S] {
	n := &node[T, S]{
		count: len(items),
		items: items,
	}
	for _, it := range items {
		n.summary = n.summary.Add(it.Summary())
	}
	return n
}

// fromNodes creates an internal node over children of equal height.
func fromNodes[T Item[S], S Summary[S]](children []*node[T, S]) *node[T, S] {
	n := &node[T, S]{
		height:   children[0].height + 1,
		children: children,
	}
	for _, c := range children {
		n.count += c.count
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node[T, S]) isLeaf() bool {
	return n.height == 0
}

// isOkChild reports whether n satisfies the size bounds of a non-root node.
func (n *node[T, S]) isOkChild() bool {
	if n.isLeaf() {
		return len(n.items) >= MinLeaf
	}
	return len(n.children) >= MinChildren
}

// pushMaybeSplit appends b to a. When the result exceeds MaxLeaf it is split
// at its midpoint and the right half is returned separately.
func pushMaybeSplit[T any](a, b []T) ([]T, []T) {
	combined := make([]T, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	if len(combined) <= MaxLeaf {
		return combined, nil
	}
	mid := len(combined) / 2
	return combined[:mid:mid], combined[mid:]
}

// concat joins two non-empty trees, keeping every node but the returned
// root within its size bounds.
func concat[T Item[S], S Summary[S]](a, b *node[T, S]) *node[T, S] {
	h1, h2 := a.height, b.height

	switch {
	case h1 < h2:
		children := b.children
		if h1 == h2-1 && a.isOkChild() {
			return mergeNodes([]*node[T, S]{a}, children)
		}
		n := concat(a, children[0])
		if n.height == h2-1 {
			return mergeNodes([]*node[T, S]{n}, children[1:])
		}
		return mergeNodes(n.children, children[1:])

	case h1 > h2:
		children := a.children
		if h2 == h1-1 && b.isOkChild() {
			return mergeNodes(children, []*node[T, S]{b})
		}
		last := len(children) - 1
		n := concat(children[last], b)
		if n.height == h1-1 {
			return mergeNodes(children[:last], []*node[T, S]{n})
		}
		return mergeNodes(children[:last], n.children)

	default:
		if a.isOkChild() && b.isOkChild() {
			return fromNodes([]*node[T, S]{a, b})
		}
		if h1 == 0 {
			return mergeLeaves(a, b)
		}
		return mergeNodes(a.children, b.children)
	}
}

// mergeNodes builds a node over c1 followed by c2, splitting into two
// siblings under a new parent when there are too many children.
func mergeNodes[T Item[S], S Summary[S]](c1, c2 []*node[T, S]) *node[T, S] {
	total := len(c1) + len(c2)
	all := make([]*node[T, S], 0, total)
	all = append(all, c1...)
	all = append(all, c2...)
	if total <= MaxChildren {
		return fromNodes(all)
	}
	split := min(MaxChildren, total-MinChildren)
	left := fromNodes(all[:split:split])
	right := fromNodes(all[split:])
	return fromNodes([]*node[T, S]{left, right})
}

// mergeLeaves joins two leaves, rebalancing undersized ones.
func mergeLeaves[T Item[S], S Summary[S]](a, b *node[T, S]) *node[T, S] {
	if a.isOkChild() && b.isOkChild() {
		return fromNodes([]*node[T, S]{a, b})
	}
	left, right := pushMaybeSplit(a.items, b.items)
	if right == nil {
		return newLeaf[T, S](left)
	}
	return fromNodes([]*node[T, S]{newLeaf[T, S](left), newLeaf[T, S](right)})
}

// leafAt descends to the leaf holding index and returns it along with the
// index of its first item.
func (n *node[T, S]) leafAt(index int) (*node[T, S], int) {
	start := 0
	for !n.isLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			c := n.children[i]
			if index < c.count {
				break
			}
			index -= c.count
			start += c.count
		}
		n = n.children[i]
	}
	return n, start
}
