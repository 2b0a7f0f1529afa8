package domain

import (
	"encoding/json"
	"math"
	"time"
)

// ResultStatus tags the outcome of a query.
type ResultStatus string

// Result statuses. Exactly one is set per result.
const (
	// StatusInsufficientEvidence means retrieval found nothing relevant.
	StatusInsufficientEvidence ResultStatus = "insufficient_evidence"

	// StatusClarify means evidence exists but its mean score is below the threshold.
	StatusClarify ResultStatus = "clarify"

	// StatusSuccess means grounded use-cases were generated.
	StatusSuccess ResultStatus = "success"

	// StatusExtracted means a course name was extracted from the evidence.
	StatusExtracted ResultStatus = "extracted"

	// StatusError means generation failed; Message explains why.
	StatusError ResultStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s ResultStatus) IsValid() bool {
	switch s {
	case StatusInsufficientEvidence, StatusClarify, StatusSuccess, StatusExtracted, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ResultStatus) String() string {
	return string(s)
}

// GenerationResult is the outcome of a query.
// Which fields are serialised depends on Status.
type GenerationResult struct {
	Status              ResultStatus
	Query               string
	AvgEvidenceScore    float64
	Message             string
	ClarifyingQuestions []string
	Assumptions         []string

	// Evidence is the raw evidence returned with a clarify result.
	Evidence []EvidenceItem

	// Citations reference the top-K evidence for the other statuses.
	Citations []Citation

	UseCases            []UseCase
	CourseName          string
	ModelUsed           string
	TotalEvidenceChunks int
	GenerationTime      time.Duration

	// Retrieved is the full ranked evidence, attached in debug mode.
	Retrieved []EvidenceItem
}

type insufficientView struct {
	Status              ResultStatus   `json:"status" yaml:"status"`
	Query               string         `json:"query" yaml:"query"`
	AvgEvidenceScore    float64        `json:"avg_evidence_score" yaml:"avg_evidence_score"`
	Clarify             bool           `json:"clarify" yaml:"clarify"`
	Message             string         `json:"message" yaml:"message"`
	ClarifyingQuestions []string       `json:"clarifying_questions" yaml:"clarifying_questions"`
	Evidence            []EvidenceItem `json:"evidence" yaml:"evidence"`
	Retrieved           []EvidenceItem `json:"retrieved,omitempty" yaml:"retrieved,omitempty"`
}

type clarifyView struct {
	Status           ResultStatus   `json:"status" yaml:"status"`
	Query            string         `json:"query" yaml:"query"`
	AvgEvidenceScore float64        `json:"avg_evidence_score" yaml:"avg_evidence_score"`
	Clarify          bool           `json:"clarify" yaml:"clarify"`
	Message          string         `json:"message" yaml:"message"`
	Assumptions      []string       `json:"assumptions" yaml:"assumptions"`
	Evidence         []EvidenceItem `json:"evidence" yaml:"evidence"`
	Retrieved        []EvidenceItem `json:"retrieved,omitempty" yaml:"retrieved,omitempty"`
}

type successView struct {
	Status                ResultStatus   `json:"status" yaml:"status"`
	Query                 string         `json:"query" yaml:"query"`
	AvgEvidenceScore      float64        `json:"avg_evidence_score" yaml:"avg_evidence_score"`
	UseCases              []UseCase      `json:"use_cases" yaml:"use_cases"`
	Evidence              []Citation     `json:"evidence" yaml:"evidence"`
	ModelUsed             string         `json:"model_used" yaml:"model_used"`
	TotalEvidenceChunks   int            `json:"total_evidence_chunks" yaml:"total_evidence_chunks"`
	GenerationTimeSeconds float64        `json:"generation_time_seconds" yaml:"generation_time_seconds"`
	Retrieved             []EvidenceItem `json:"retrieved,omitempty" yaml:"retrieved,omitempty"`
}

type extractedView struct {
	Status     ResultStatus   `json:"status" yaml:"status"`
	Query      string         `json:"query" yaml:"query"`
	CourseName string         `json:"course_name" yaml:"course_name"`
	Evidence   []Citation     `json:"evidence" yaml:"evidence"`
	Retrieved  []EvidenceItem `json:"retrieved,omitempty" yaml:"retrieved,omitempty"`
}

type errorView struct {
	Status           ResultStatus   `json:"status" yaml:"status"`
	Query            string         `json:"query" yaml:"query"`
	AvgEvidenceScore float64        `json:"avg_evidence_score" yaml:"avg_evidence_score"`
	Message          string         `json:"message" yaml:"message"`
	Evidence         []Citation     `json:"evidence" yaml:"evidence"`
	Retrieved        []EvidenceItem `json:"retrieved,omitempty" yaml:"retrieved,omitempty"`
}

// view selects the wire shape for the active status.
func (r *GenerationResult) view() any {
	switch r.Status {
	case StatusInsufficientEvidence:
		return insufficientView{
			Status:              r.Status,
			Query:               r.Query,
			AvgEvidenceScore:    r.AvgEvidenceScore,
			Clarify:             true,
			Message:             r.Message,
			ClarifyingQuestions: orEmpty(r.ClarifyingQuestions),
			Evidence:            []EvidenceItem{},
			Retrieved:           r.Retrieved,
		}
	case StatusClarify:
		evidence := r.Evidence
		if evidence == nil {
			evidence = []EvidenceItem{}
		}
		return clarifyView{
			Status:           r.Status,
			Query:            r.Query,
			AvgEvidenceScore: r.AvgEvidenceScore,
			Clarify:          true,
			Message:          r.Message,
			Assumptions:      orEmpty(r.Assumptions),
			Evidence:         evidence,
			Retrieved:        r.Retrieved,
		}
	case StatusSuccess:
		useCases := r.UseCases
		if useCases == nil {
			useCases = []UseCase{}
		}
		return successView{
			Status:                r.Status,
			Query:                 r.Query,
			AvgEvidenceScore:      r.AvgEvidenceScore,
			UseCases:              useCases,
			Evidence:              citationsOrEmpty(r.Citations),
			ModelUsed:             r.ModelUsed,
			TotalEvidenceChunks:   r.TotalEvidenceChunks,
			GenerationTimeSeconds: math.Round(r.GenerationTime.Seconds()*100) / 100,
			Retrieved:             r.Retrieved,
		}
	case StatusExtracted:
		return extractedView{
			Status:     r.Status,
			Query:      r.Query,
			CourseName: r.CourseName,
			Evidence:   citationsOrEmpty(r.Citations),
			Retrieved:  r.Retrieved,
		}
	default:
		return errorView{
			Status:           StatusError,
			Query:            r.Query,
			AvgEvidenceScore: r.AvgEvidenceScore,
			Message:          r.Message,
			Evidence:         citationsOrEmpty(r.Citations),
			Retrieved:        r.Retrieved,
		}
	}
}

// MarshalJSON renders the shape of the active status.
func (r *GenerationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view())
}

// MarshalYAML renders the shape of the active status.
func (r *GenerationResult) MarshalYAML() (any, error) {
	return r.view(), nil
}

// IsGrounded reports whether the result carries evidence-grounded output.
func (r *GenerationResult) IsGrounded() bool {
	return r.Status == StatusSuccess || r.Status == StatusExtracted
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func citationsOrEmpty(c []Citation) []Citation {
	if c == nil {
		return []Citation{}
	}
	return c
}
