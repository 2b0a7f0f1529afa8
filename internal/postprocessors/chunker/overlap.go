package chunker

import "strings"

// Overlap splits text into fixed-size word windows.
// Consecutive windows share overlap words.
type Overlap struct {
	chunkSize int
	overlap   int
}

// NewOverlap creates an overlap chunker.
func NewOverlap(opts ...Option) *Overlap {
	c := defaults()
	for _, opt := range opts {
		opt(&c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return &Overlap{chunkSize: c.chunkSize, overlap: c.overlap}
}

// Name returns the strategy name.
func (o *Overlap) Name() string {
	return "overlap"
}

// Split returns windows of chunkSize words advancing by chunkSize-overlap.
// The final window may be shorter.
func (o *Overlap) Split(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	words := strings.Fields(text)
	stride := o.chunkSize - o.overlap

	chunks := make([]string, 0, len(words)/stride+1)
	for i := 0; i < len(words); i += stride {
		end := min(i+o.chunkSize, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
