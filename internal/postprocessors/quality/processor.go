// Package quality drops chunks too short to be useful evidence.
package quality

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// DefaultMinChars is the default character floor.
const DefaultMinChars = 40

// Processor drops chunks whose trimmed text is shorter than a character floor.
// It implements the PostProcessor interface.
type Processor struct {
	minChars int
}

// Option configures the quality processor.
type Option func(*Processor)

// WithMinChars sets the character floor. Zero disables the filter.
func WithMinChars(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minChars = n
		}
	}
}

// New creates a quality processor.
func New(opts ...Option) *Processor {
	p := &Processor{minChars: DefaultMinChars}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "quality"
}

// Process returns the chunks that meet the character floor, in order.
func (p *Processor) Process(_ context.Context, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, 0, len(chunks))
	for i := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(chunks[i].Text)) < p.minChars {
			continue
		}
		out = append(out, chunks[i])
	}
	return out, nil
}
