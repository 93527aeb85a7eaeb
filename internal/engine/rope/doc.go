// Package rope provides an immutable text buffer for the editing engine.
//
// Text is held in bounded UTF-8 chunks stored in the leaves of a
// summary tree. Each node caches the byte and newline counts of its
// subtree, so offset/line conversion, slicing and replacement run in
// O(log n) and share untouched subtrees between versions.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Delete(0, 7)             // "world"
//	line := r.LineOfOffset(3)      // 0
//
// Offsets are byte offsets and must fall on UTF-8 boundaries. Grapheme
// cluster boundaries are found with github.com/rivo/uniseg.
package rope
