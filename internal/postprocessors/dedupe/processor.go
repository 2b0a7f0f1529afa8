// Package dedupe removes chunks whose text has already been seen.
package dedupe

import (
	"context"
	"crypto/sha256"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// Processor drops chunks with duplicate text, keeping the first occurrence.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a deduplication processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "dedupe"
}

// Process returns chunks with duplicates removed, in first-seen order.
// Duplicates are detected by a SHA-256 digest of the exact chunk text.
func (p *Processor) Process(ctx context.Context, chunks []domain.Chunk) ([]domain.Chunk, error) {
	seen := make(map[[sha256.Size]byte]struct{}, len(chunks))
	out := make([]domain.Chunk, 0, len(chunks))
	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := sha256.Sum256([]byte(chunks[i].Text))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, chunks[i])
	}
	return out, nil
}
