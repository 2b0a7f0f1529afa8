package chunker

import (
	"regexp"
	"strings"
)

// paragraphBreak matches runs of two or more newlines or periods,
// or two or more carriage returns or newlines.
var paragraphBreak = regexp.MustCompile(`[\n\.]{2,}|[\r\n]{2,}`)

// Paragraph splits text on paragraph boundaries.
// Every emitted chunk has between minWords and maxWords words inclusive.
type Paragraph struct {
	maxWords int
	minWords int
}

// NewParagraph creates a paragraph chunker.
// If minWords exceeds maxWords it is lowered to maxWords.
func NewParagraph(opts ...Option) *Paragraph {
	c := defaults()
	for _, opt := range opts {
		opt(&c)
	}
	if c.minWords > c.maxWords {
		c.minWords = c.maxWords
	}
	return &Paragraph{maxWords: c.maxWords, minWords: c.minWords}
}

// Name returns the strategy name.
func (p *Paragraph) Name() string {
	return "paragraph"
}

// Split returns the paragraph chunks of text.
// Paragraphs shorter than minWords are discarded. Paragraphs within bounds
// are emitted verbatim. Longer paragraphs are cut into non-overlapping
// windows of maxWords and windows shorter than minWords are discarded.
func (p *Paragraph) Split(text string) []string {
	chunks := []string{}
	for _, para := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(para) == "" {
			continue
		}
		words := strings.Fields(para)
		switch {
		case len(words) < p.minWords:
			continue
		case len(words) <= p.maxWords:
			chunks = append(chunks, strings.TrimSpace(para))
		default:
			for i := 0; i < len(words); i += p.maxWords {
				end := min(i+p.maxWords, len(words))
				if end-i >= p.minWords {
					chunks = append(chunks, strings.Join(words[i:end], " "))
				}
			}
		}
	}
	return chunks
}
