// Package engine ties the document model together.
//
// A State pairs a rope with a selection. Edits and movements never mutate a
// State; they return a new one, so the text and the selection always change
// together or not at all. Engine is the mutable facade the front end talks
// to: it owns the current State, counts revisions and traces edits.
//
// # Sub-packages
//
//   - sumtree: persistent B-tree with cached summaries and metrics
//   - rope: UTF-8 text on sumtree with byte and line metrics
//   - heightrope: sequence of items with fixed-point heights
//   - delta: sorted replacements and offset transformation
//   - selection: ordered, non-overlapping regions
//   - edit: edit operations turned into deltas
//   - movement: caret movement over a layout measurement
//
// # Basic Usage
//
//	e, err := engine.New(engine.WithContent("hello"))
//	if err != nil {
//	    return err
//	}
//	e.Do(edit.Insert{Text: ", world"})
//	e.Move(movement.Left, layouts, false)
//	fmt.Println(e.Text().String())
//
// # Thread Safety
//
// State values are immutable and safe to share. Engine is not synchronized;
// it is meant to be driven from a single event loop.
package engine
