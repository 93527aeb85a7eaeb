// Package heightrope provides a persistent sequence of values tagged with
// fixed-point heights.
//
// The sequence is indexed two ways: by element position (BaseMetric) and by
// cumulative height (HeightMetric). Both conversions run in O(log n), which
// lets a view map a vertical scroll offset to the element covering it and
// back without walking the whole sequence.
//
// Basic usage:
//
//	var s heightrope.Sequence[string]
//	s.Push(heightrope.FromFloat64(1.5), "a")
//	s.Push(heightrope.FromFloat64(2), "b")
//	i := s.IndexOfHeight(heightrope.FromFloat64(1.5)) // 1
package heightrope

import "math"

// Height is a non-negative fixed-point measure with FracBits fractional
// bits. Sums of heights are exact.
type Height uint64

const (
	// FracBits is the number of fractional bits in a Height.
	FracBits = 8

	// ScaleFactor converts between Height and float64.
	ScaleFactor = 1 << FracBits

	// Zero is the empty height.
	Zero Height = 0

	// Max is the largest representable height.
	Max Height = math.MaxUint64
)

// FromFloat64 converts f to the nearest representable height.
// Negative and NaN values map to Zero; values too large to represent,
// including +Inf, map to Max.
func FromFloat64(f float64) Height {
	if !(f > 0) {
		return Zero
	}
	raw := math.Round(f * ScaleFactor)
	// float64(math.MaxUint64) rounds up to 2^64, which is out of range.
	if raw >= float64(math.MaxUint64) {
		return Max
	}
	return Height(raw)
}

// FromRawFrac creates a height from its raw fixed-point representation.
func FromRawFrac(frac uint64) Height {
	return Height(frac)
}

// RawFrac returns the raw fixed-point representation.
func (h Height) RawFrac() uint64 {
	return uint64(h)
}

// Float64 converts h to a float64.
func (h Height) Float64() float64 {
	return float64(h) / ScaleFactor
}

// Add returns h + other. Height is the summary of a sequence.
func (h Height) Add(other Height) Height {
	return h + other
}

// Entry is a value with its height.
type Entry[T any] struct {
	Height Height
	Value  T
}

// Summary returns the entry's height.
func (e Entry[T]) Summary() Height {
	return e.Height
}

// BaseMetric measures a sequence in elements.
type BaseMetric struct{}

// Measure implements sumtree.Metric.
func (BaseMetric) Measure(_ Height, count int) int { return count }

// LocatesEmpty implements sumtree.Metric.
func (BaseMetric) LocatesEmpty() bool { return false }

// HeightMetric measures a sequence in raw height fractions. A height
// landing exactly on the start of zero-height elements locates the first
// of them.
type HeightMetric struct{}

// Measure implements sumtree.Metric.
func (HeightMetric) Measure(h Height, _ int) int { return int(h) }

// LocatesEmpty implements sumtree.Metric.
func (HeightMetric) LocatesEmpty() bool { return true }
