// Package chunker splits sanitised document text into retrievable passages.
//
// Two strategies are provided behind the driven.Chunker interface:
// Paragraph (bounded word counts, the default) and Overlap
// (fixed-size word windows with a stride).
package chunker

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// Paragraph strategy defaults, in words.
const (
	DefaultMaxWords = 180
	DefaultMinWords = 32
)

// Overlap strategy defaults, in words.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
)

// namespace scopes chunk IDs so they never collide with other SHA-1 UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("casegen:chunk"))

// ChunkID returns the stable identifier for the ordinal-th chunk of source.
// The same source and ordinal always yield the same ID.
func ChunkID(source string, ordinal int) string {
	return uuid.NewSHA1(namespace, []byte(source+":"+strconv.Itoa(ordinal))).String()
}

type config struct {
	maxWords  int
	minWords  int
	chunkSize int
	overlap   int
}

func defaults() config {
	return config{
		maxWords:  DefaultMaxWords,
		minWords:  DefaultMinWords,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
}

// Option configures a chunker.
type Option func(*config)

// WithMaxWords sets the maximum words per paragraph chunk.
func WithMaxWords(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWords = n
		}
	}
}

// WithMinWords sets the minimum words per paragraph chunk.
func WithMinWords(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minWords = n
		}
	}
}

// WithChunkSize sets the window size of the overlap strategy in words.
func WithChunkSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the words shared by consecutive overlap windows.
func WithOverlap(overlap int) Option {
	return func(c *config) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New returns the chunker for strategy.
func New(strategy domain.ChunkStrategy, opts ...Option) (driven.Chunker, error) {
	switch strategy {
	case domain.ChunkStrategyParagraph, "":
		return NewParagraph(opts...), nil
	case domain.ChunkStrategyOverlap:
		return NewOverlap(opts...), nil
	default:
		return nil, fmt.Errorf("%w: chunk strategy %q", domain.ErrUnsupportedType, strategy)
	}
}

// FromSettings returns the chunker configured by s.
func FromSettings(s domain.ChunkingSettings) (driven.Chunker, error) {
	return New(s.Strategy,
		WithMaxWords(s.MaxWords),
		WithMinWords(s.MinWords),
		WithChunkSize(s.ChunkSize),
		WithOverlap(s.Overlap),
	)
}
