// Package sumtree provides a persistent B+ tree whose nodes cache an
// aggregated summary of their subtree.
//
// Leaves hold runs of items; internal nodes hold child references, the
// element count of the subtree, and the monoid sum of the item summaries.
// The same tree can be indexed by several independent metrics (element
// count, byte length, height, newline count, ...) without keeping more than
// one structure in sync.
//
// Trees are immutable. Every operation that changes the sequence returns a
// new tree that shares all untouched subtrees with the original, so taking a
// snapshot is just copying a Tree value. A snapshot may be read from any
// goroutine as long as nobody mutates it, which nobody can.
//
// Basic usage:
//
//	t := sumtree.FromItems[Entry, Size](entries)
//	left := t.Slice(0, 10)
//	t = left.Concat(t.Slice(11, t.Len())) // remove element 10
//	n := t.Count(5, SizeMetric{})         // size of the first five elements
//
// Out-of-range indexes are programmer errors and panic.
package sumtree
