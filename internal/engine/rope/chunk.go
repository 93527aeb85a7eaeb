package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the size below which a rewritten chunk absorbs its
	// right neighbour.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when splitting text.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a non-empty run of text stored in a leaf of the tree.
// Chunks are immutable once created.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// splitIntoChunks cuts s into chunks of at most MaxChunkSize bytes.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		at := findSplitPoint(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:at]))
		s = s[at:]
	}
	return append(chunks, NewChunk(s))
}

// findSplitPoint picks a cut near target, preferring the byte after a
// newline and never splitting a UTF-8 sequence.
func findSplitPoint(s string, target int) int {
	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		// A run of continuation bytes; cut forward instead.
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start reports whether b begins a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
