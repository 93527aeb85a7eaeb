package rope

import "strings"

// TextSummary holds aggregated metrics for a span of text.
// It is the summary monoid of the rope's tree; the zero value is the
// identity.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Lines is the number of newline characters.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all bytes are ASCII.
	FlagASCII TextFlags = 1 << iota

	// FlagHasTabs indicates the text contains tab characters.
	FlagHasTabs
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines + other.Lines,
		Flags: (s.Flags & other.Flags & FlagASCII) | ((s.Flags | other.Flags) & FlagHasTabs),
	}
}

// IsASCII reports whether the summarized text is pure ASCII.
func (s TextSummary) IsASCII() bool {
	return s.Bytes == 0 || s.Flags&FlagASCII != 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\n':
			sum.Lines++
		case c == '\t':
			sum.Flags |= FlagHasTabs
		case c >= 0x80:
			sum.Flags &^= FlagASCII
		}
	}
	return sum
}

// byteMetric measures text in bytes.
type byteMetric struct{}

func (byteMetric) Measure(s TextSummary, _ int) int { return s.Bytes }
func (byteMetric) LocatesEmpty() bool               { return false }

// lineMetric measures text in newlines.
type lineMetric struct{}

func (lineMetric) Measure(s TextSummary, _ int) int { return s.Lines }
func (lineMetric) LocatesEmpty() bool               { return false }

// findNthNewline returns the byte position of the nth newline in s
// (1-indexed), or -1.
func findNthNewline(s string, n int) int {
	pos := -1
	for ; n > 0; n-- {
		i := strings.IndexByte(s[pos+1:], '\n')
		if i < 0 {
			return -1
		}
		pos += i + 1
	}
	return pos
}
