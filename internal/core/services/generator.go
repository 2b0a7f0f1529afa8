package services

import (
	"context"
	"time"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/logger"
	"github.com/custodia-labs/casegen/internal/usecases"
)

// Fixed result texts.
const (
	MessageNoEvidence = "No relevant evidence found in the ingested documents."
	MessageClarify    = "Insufficient high-confidence evidence to fully ground answers. " +
		"Please provide more documents or confirm I should proceed with assumptions."

	// TemplateModel is reported as model_used for template output.
	TemplateModel = "template"
)

// ClarifyingQuestions are returned with insufficient_evidence results.
func ClarifyingQuestions() []string {
	return []string{
		"Which documents describe this feature?",
		"Can you ingest the relevant specification or requirements files?",
		"Can you rephrase the query using terms from the documents?",
	}
}

// DefaultAssumptions are offered with clarify results.
func DefaultAssumptions() []string {
	return []string{
		"Standard signup flow with email + password",
		"Email verification is supported",
	}
}

// Generator turns ranked evidence into a GenerationResult.
type Generator struct {
	gate     *Gate
	table    usecases.Table
	delegate *Delegate
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFeatureTable replaces the built-in keyword table.
func WithFeatureTable(t usecases.Table) GeneratorOption {
	return func(g *Generator) {
		if len(t) > 0 {
			g.table = t
		}
	}
}

// WithDelegate routes grounded generation through an LLM delegate.
// A nil delegate keeps template generation.
func WithDelegate(d *Delegate) GeneratorOption {
	return func(g *Generator) {
		g.delegate = d
	}
}

// NewGenerator creates a generator gated at gate.
func NewGenerator(gate *Gate, opts ...GeneratorOption) *Generator {
	g := &Generator{
		gate:  gate,
		table: usecases.DefaultTable(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ModelName returns the model that produces grounded use-cases.
func (g *Generator) ModelName() string {
	if g.delegate != nil {
		return g.delegate.ModelName()
	}
	return TemplateModel
}

// Generate runs the query state machine over evidence. Exactly one
// status is set on the result; topK bounds the citations.
func (g *Generator) Generate(ctx context.Context, query string, evidence []domain.EvidenceItem, topK int) *domain.GenerationResult {
	start := time.Now()
	avg := g.gate.AggregateScore(evidence)

	if len(evidence) == 0 {
		logger.Debug("Gate: no evidence")
		return &domain.GenerationResult{
			Status:              domain.StatusInsufficientEvidence,
			Query:               query,
			Message:             MessageNoEvidence,
			ClarifyingQuestions: ClarifyingQuestions(),
		}
	}

	citations := domain.Citations(evidence, topK)

	if usecases.IsCourseNameQuery(query) {
		if name, ok := usecases.ExtractCourseName(evidence); ok {
			logger.Debug("Extracted course name %q", name)
			return &domain.GenerationResult{
				Status:           domain.StatusExtracted,
				Query:            query,
				AvgEvidenceScore: avg,
				CourseName:       name,
				Citations:        citations,
			}
		}
		logger.Debug("No course name in evidence; continuing")
	}

	decision := g.gate.Decide(evidence)
	logger.Debug("Gate: mean %.3f threshold %.3f -> %s", avg, g.gate.Threshold(), decision)
	if decision != GateGrounded {
		return &domain.GenerationResult{
			Status:           domain.StatusClarify,
			Query:            query,
			AvgEvidenceScore: avg,
			Message:          MessageClarify,
			Assumptions:      DefaultAssumptions(),
			Evidence:         evidence,
		}
	}

	var (
		ucs   []domain.UseCase
		model = TemplateModel
	)
	if g.delegate != nil {
		var err error
		ucs, err = g.delegate.Generate(ctx, query, evidence)
		if err != nil {
			logger.Warn("Delegate failed: %v", err)
			return &domain.GenerationResult{
				Status:           domain.StatusError,
				Query:            query,
				AvgEvidenceScore: avg,
				Message:          err.Error(),
				Citations:        citations,
			}
		}
		model = g.delegate.ModelName()
		for i := range ucs {
			ucs[i].Citations = append([]domain.Citation(nil), citations...)
			ucs[i].Normalise()
		}
	} else {
		ucs = usecases.Build(g.table.Detect(evidence), citations)
	}

	return &domain.GenerationResult{
		Status:              domain.StatusSuccess,
		Query:               query,
		AvgEvidenceScore:    avg,
		UseCases:            ucs,
		Citations:           citations,
		ModelUsed:           model,
		TotalEvidenceChunks: len(evidence),
		GenerationTime:      time.Since(start),
	}
}
