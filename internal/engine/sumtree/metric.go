package sumtree

// Metric measures a tree along one dimension of its summary.
//
// Item counts are the base units of every tree. A metric maps a span of
// items to its own unit (bytes, lines, fixed-point height) through the
// summaries, so Count and IndexOf convert between the two in O(log n).
type Metric[S any] interface {
	// Measure returns the measure of a run of count items whose
	// aggregated summary is s.
	Measure(s S, count int) int

	// LocatesEmpty reports whether IndexOf should stop at items of
	// zero measure. When true, a value falling exactly on a boundary
	// resolves to the first item starting there, even an empty one.
	// When false, empty items are skipped.
	LocatesEmpty() bool
}

// CountMetric measures a tree in items.
type CountMetric[S any] struct{}

// Measure implements Metric.
func (CountMetric[S]) Measure(_ S, count int) int { return count }

// LocatesEmpty implements Metric.
func (CountMetric[S]) LocatesEmpty() bool { return false }

// MetricFunc adapts a summary projection to a Metric.
type MetricFunc[S any] func(S) int

// Measure implements Metric.
func (f MetricFunc[S]) Measure(s S, _ int) int { return f(s) }

// LocatesEmpty implements Metric.
func (MetricFunc[S]) LocatesEmpty() bool { return false }
