package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/postprocessors/chunker"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	lastOpts driven.GenerateOptions
	prompt   string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompt = prompt
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockRetriever implements driving.RetrievalService for testing.
type mockRetriever struct {
	mu    sync.Mutex
	items []domain.EvidenceItem
	err   error
	calls int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int) ([]domain.EvidenceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if topK < len(m.items) {
		return m.items[:topK], nil
	}
	return m.items, nil
}

// staticGeneration implements generationSource for testing.
type staticGeneration struct {
	gen uint64
}

func (s *staticGeneration) Generation() uint64 { return s.gen }

// --- Fixtures ---

const (
	signupText = "The signup form asks for an email address and a password. " +
		"Passwords must have at least eight characters including a digit."
	verifyText = "After signup the user must verify the email address using the link. " +
		"Verification links expire after 24 hours and can be resent."
	passwordRuleText = "Users must enter email and password. " +
		"Passwords must be at least 8 characters with one digit."
	billingText = "Invoices are generated monthly and sent to the billing contact " +
		"listed on the account settings page."
)

// corpus builds chunks from texts with one source per text.
func corpus(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		source := "docs/" + string(rune('a'+i)) + ".md"
		chunks[i] = domain.Chunk{
			ID:      chunker.ChunkID(source, 0),
			Source:  source,
			Text:    text,
			Ordinal: 0,
		}
	}
	return chunks
}

// evidence wraps texts as ranked evidence with the given scores.
func evidence(scores []float64, texts ...string) []domain.EvidenceItem {
	chunks := corpus(texts...)
	items := make([]domain.EvidenceItem, len(chunks))
	for i := range chunks {
		items[i] = domain.EvidenceItem{Chunk: chunks[i], Score: scores[i], Rank: i + 1}
	}
	return items
}
