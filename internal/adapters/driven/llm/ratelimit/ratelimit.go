// Package ratelimit throttles calls to an LLM service.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultBackoff is applied after the provider answers 429.
const DefaultBackoff = 60 * time.Second

// LLMService wraps another LLM service with a token bucket.
// Generate waits for a token; Ping and ModelName are not throttled.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
	backoff time.Duration
}

// Wrap returns next throttled to requestsPerMinute Generate calls.
// A non-positive rate disables throttling and returns next unchanged.
func Wrap(next driven.LLMService, requestsPerMinute int) driven.LLMService {
	if next == nil || requestsPerMinute <= 0 {
		return next
	}
	return &LLMService{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		backoff: DefaultBackoff,
	}
}

// Generate waits for the rate limit, then delegates.
// If the wait cannot finish before ctx is done, it returns domain.ErrRateLimited.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	out, err := s.next.Generate(ctx, prompt, opts)
	if err != nil && strings.Contains(err.Error(), "status 429") {
		s.recordRateLimitError()
	}
	return out, err
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping checks the wrapped service.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}

func (s *LLMService) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if time.Now().Before(retryAt) {
		if deadline, ok := ctx.Deadline(); ok && deadline.Before(retryAt) {
			return fmt.Errorf("provider backoff until %s", retryAt.Format(time.RFC3339))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return s.limiter.Wait(ctx)
}

func (s *LLMService) recordRateLimitError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retryAt = time.Now().Add(s.backoff)
}
