package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/logger"
	"github.com/custodia-labs/casegen/internal/usecases"
)

// Delegate generation defaults.
const (
	DefaultDelegateTimeout   = 120 * time.Second
	DefaultDelegateMaxTokens = 2000
	delegateTemperature      = 0.2
)

// fallbackGeneratePrompt is used when no PromptStore is configured.
const fallbackGeneratePrompt = `Generate use-cases for: %s

Evidence:
%s

Respond with {"use_cases": [...]} only.`

// Delegate asks an LLM for use-cases grounded in the evidence.
type Delegate struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	timeout time.Duration
}

// Ensure Delegate can take a prompt store.
var _ driven.PromptStoreAware = (*Delegate)(nil)

// NewDelegate creates a delegate over llm. A zero timeout uses
// DefaultDelegateTimeout.
func NewDelegate(llm driven.LLMService, timeout time.Duration) *Delegate {
	if timeout <= 0 {
		timeout = DefaultDelegateTimeout
	}
	return &Delegate{llm: llm, timeout: timeout}
}

// SetPromptStore sets the store for the editable prompts.
func (d *Delegate) SetPromptStore(store driven.PromptStore) {
	d.prompts = store
}

// ModelName returns the delegate model.
func (d *Delegate) ModelName() string {
	return d.llm.ModelName()
}

// Generate calls the model once under the delegate timeout and decodes the
// first JSON value of the answer. Any failure wraps domain.ErrGenerationFailed.
func (d *Delegate) Generate(ctx context.Context, query string, evidence []domain.EvidenceItem) ([]domain.UseCase, error) {
	system, prompt := d.buildPrompts(query, evidence)

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	logger.Debug("Delegating to %s (%d evidence items)", d.llm.ModelName(), len(evidence))
	start := time.Now()
	resp, err := d.llm.Generate(ctx, prompt, driven.GenerateOptions{
		System:      system,
		MaxTokens:   DefaultDelegateMaxTokens,
		Temperature: delegateTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrGenerationFailed, d.llm.ModelName(), err)
	}
	logger.Debug("Delegate answered in %s (%d bytes)", time.Since(start).Round(time.Millisecond), len(resp))

	ucs, err := usecases.DecodeUseCases(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return ucs, nil
}

func (d *Delegate) buildPrompts(query string, evidence []domain.EvidenceItem) (system, prompt string) {
	template := fallbackGeneratePrompt
	if d.prompts != nil {
		if s, err := d.prompts.Load(driven.PromptUseCaseSystem); err == nil {
			system = s
		}
		if p, err := d.prompts.Load(driven.PromptUseCaseGenerate); err == nil {
			template = p
		}
	}
	return system, fmt.Sprintf(template, query, EvidenceContext(evidence))
}

// EvidenceContext numbers evidence texts for a prompt.
func EvidenceContext(evidence []domain.EvidenceItem) string {
	var b strings.Builder
	for i := range evidence {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] (source: %s)\n%s", i+1, evidence[i].Chunk.Source, strings.TrimSpace(evidence[i].Chunk.Text))
	}
	return b.String()
}
