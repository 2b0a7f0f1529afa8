package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
	"github.com/custodia-labs/casegen/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// Result cache timings.
const (
	DefaultCacheTTL = 10 * time.Minute
	cacheCleanup    = 20 * time.Minute
)

// generationSource reports the index generation used in cache keys.
type generationSource interface {
	Generation() uint64
}

// QueryService answers queries: retrieve, gate, generate.
type QueryService struct {
	retriever driving.RetrievalService
	generator *Generator
	index     generationSource
	topK      int
	cache     *cache.Cache
}

// NewQueryService creates a query service. Results are cached per index
// generation so a rebuild or re-ingest never serves stale answers.
func NewQueryService(retriever driving.RetrievalService, generator *Generator, index generationSource, topK int) *QueryService {
	return &QueryService{
		retriever: retriever,
		generator: generator,
		index:     index,
		topK:      topK,
		cache:     cache.New(DefaultCacheTTL, cacheCleanup),
	}
}

// Query always returns a well-formed result; the error return is only
// set when ctx is cancelled.
func (s *QueryService) Query(ctx context.Context, text string, opts driving.QueryOptions) (*domain.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Query")
	query := strings.TrimSpace(text)
	if query == "" {
		return &domain.GenerationResult{
			Status:  domain.StatusError,
			Query:   text,
			Message: fmt.Sprintf("%v: query must not be empty", domain.ErrInvalidInput),
		}, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.topK
	}

	key := s.cacheKey(query, topK)
	if cached, ok := s.cache.Get(key); ok {
		logger.Debug("Cache hit for %q", query)
		return present(cached.(*cachedResult), opts.Debug), nil
	}

	start := time.Now()
	evidence, err := s.retriever.Retrieve(ctx, query, topK)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Error("Retrieval failed: %v", err)
		return &domain.GenerationResult{
			Status:  domain.StatusError,
			Query:   query,
			Message: err.Error(),
		}, nil
	}
	logger.Debug("Retrieved %d evidence items", len(evidence))

	result := s.generator.Generate(ctx, query, evidence, topK)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result.Status == domain.StatusSuccess {
		result.GenerationTime = time.Since(start)
	}
	logger.Info("Query %q -> %s (mean %.3f)", query, result.Status, result.AvgEvidenceScore)

	entry := &cachedResult{result: *result, retrieved: evidence}
	if result.Status != domain.StatusError {
		// A lazy index build during retrieval bumps the generation.
		s.cache.Set(s.cacheKey(query, topK), entry, cache.DefaultExpiration)
	}
	return present(entry, opts.Debug), nil
}

// Flush drops every cached result.
func (s *QueryService) Flush() {
	s.cache.Flush()
}

func (s *QueryService) cacheKey(query string, topK int) string {
	var gen uint64
	if s.index != nil {
		gen = s.index.Generation()
	}
	return fmt.Sprintf("%d|%d|%s", gen, topK, query)
}

type cachedResult struct {
	result    domain.GenerationResult
	retrieved []domain.EvidenceItem
}

// present copies a cached result, attaching the ranked evidence in debug mode.
func present(c *cachedResult, debug bool) *domain.GenerationResult {
	out := c.result
	if debug {
		out.Retrieved = c.retrieved
		if out.Retrieved == nil {
			out.Retrieved = []domain.EvidenceItem{}
		}
	}
	return &out
}
