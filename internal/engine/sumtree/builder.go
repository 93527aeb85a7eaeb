package sumtree

// Builder provides efficient incremental construction of a tree from items
// and slices of existing trees. Leaf size invariants are restored where
// adjacent pieces meet rather than after every item.
//
// The zero value is ready to use.
type Builder[T Item[S], S Summary[S]] struct {
	// stack holds runs of same-height nodes, tallest first.
	stack [][]*node[T, S]
}

// NewBuilder creates a new tree builder.
func NewBuilder[T Item[S], S Summary[S]]() *Builder[T, S] {
	return &Builder[T, S]{}
}

// Push appends an entire tree. Its nodes are shared, not copied.
func (b *Builder[T, S]) Push(t Tree[T, S]) {
	if t.root == nil || t.root.count == 0 {
		return
	}
	b.push(t.root)
}

// PushSlice appends the items [start, end) of t.
// Whole subtrees inside the range are shared with t.
func (b *Builder[T, S]) PushSlice(t Tree[T, S], start, end int) {
	checkRange(start, end, t.Len())
	if t.root == nil {
		return
	}
	b.pushSubseq(t.root, start, end)
}

// PushItems appends items. The slice is copied.
func (b *Builder[T, S]) PushItems(items []T) {
	for len(items) > 0 {
		k := min(MaxLeaf, len(items))
		leaf := make([]T, k)
		copy(leaf, items[:k])
		b.push(newLeaf[T, S](leaf))
		items = items[k:]
	}
}

// Build returns the accumulated tree and resets the builder.
func (b *Builder[T, S]) Build() Tree[T, S] {
	if len(b.stack) == 0 {
		return Tree[T, S]{}
	}
	n := b.pop()
	for len(b.stack) > 0 {
		n = concat(b.pop(), n)
	}
	b.stack = nil
	return Tree[T, S]{root: n}
}

// pushSubseq appends the items [start, end) of the subtree rooted at n.
func (b *Builder[T, S]) pushSubseq(n *node[T, S], start, end int) {
	if start >= end {
		return
	}
	if start == 0 && end == n.count {
		b.push(n)
		return
	}
	if n.isLeaf() {
		b.push(newLeaf[T, S](n.items[start:end:end]))
		return
	}

	offset := 0
	for _, child := range n.children {
		if end <= offset {
			break
		}
		childEnd := offset + child.count
		if start < childEnd {
			b.pushSubseq(child, max(start-offset, 0), min(end, childEnd)-offset)
		}
		offset = childEnd
	}
}

// push appends a subtree, merging it with the top of the stack as needed.
func (b *Builder[T, S]) push(n *node[T, S]) {
	for {
		if len(b.stack) == 0 {
			b.stack = append(b.stack, []*node[T, S]{n})
			return
		}

		top := len(b.stack) - 1
		tos := b.stack[top]
		height := tos[0].height

		switch {
		case height < n.height:
			n = concat(b.pop(), n)
			continue

		case height > n.height:
			b.stack = append(b.stack, []*node[T, S]{n})
			return
		}

		last := tos[len(tos)-1]
		switch {
		case last.isOkChild() && n.isOkChild():
			tos = append(tos, n)

		case n.isLeaf():
			left, right := pushMaybeSplit(last.items, n.items)
			tos[len(tos)-1] = newLeaf[T, S](left)
			if right != nil {
				tos = append(tos, newLeaf[T, S](right))
			}

		default:
			tos = tos[:len(tos)-1]
			total := len(last.children) + len(n.children)
			all := make([]*node[T, S], 0, total)
			all = append(all, last.children...)
			all = append(all, n.children...)
			if total <= MaxChildren {
				tos = append(tos, fromNodes(all))
			} else {
				split := min(MaxChildren, total-MinChildren)
				tos = append(tos, fromNodes(all[:split:split]), fromNodes(all[split:]))
			}
		}

		b.stack[top] = tos
		if len(tos) < MaxChildren {
			return
		}
		n = b.pop()
	}
}

// pop removes the top run of the stack and returns it as a single node.
func (b *Builder[T, S]) pop() *node[T, S] {
	top := len(b.stack) - 1
	nodes := b.stack[top]
	b.stack = b.stack[:top]
	if len(nodes) == 1 {
		return nodes[0]
	}
	return fromNodes(nodes)
}
