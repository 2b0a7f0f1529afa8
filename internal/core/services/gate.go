package services

import "github.com/custodia-labs/casegen/internal/core/domain"

// GateDecision is the outcome of the evidence gate.
type GateDecision int

// Gate decisions.
const (
	// GateInsufficient means there is no evidence at all.
	GateInsufficient GateDecision = iota

	// GateClarify means the mean evidence score is below the threshold.
	GateClarify

	// GateGrounded means generation may proceed.
	GateGrounded
)

// String returns the decision name for logging.
func (d GateDecision) String() string {
	switch d {
	case GateInsufficient:
		return "insufficient"
	case GateClarify:
		return "clarify"
	case GateGrounded:
		return "grounded"
	default:
		return "unknown"
	}
}

// Gate decides whether evidence is strong enough to ground generation.
type Gate struct {
	threshold float64
}

// NewGate creates a gate with the given mean-score threshold.
func NewGate(threshold float64) *Gate {
	return &Gate{threshold: threshold}
}

// Threshold returns the configured threshold.
func (g *Gate) Threshold() float64 {
	return g.threshold
}

// AggregateScore returns the mean evidence score, 0 for no evidence.
func (g *Gate) AggregateScore(items []domain.EvidenceItem) float64 {
	return domain.MeanScore(items)
}

// Sufficient reports whether items is non-empty with a mean at or above
// the threshold.
func (g *Gate) Sufficient(items []domain.EvidenceItem) bool {
	return len(items) > 0 && g.AggregateScore(items) >= g.threshold
}

// Decide classifies items.
func (g *Gate) Decide(items []domain.EvidenceItem) GateDecision {
	switch {
	case len(items) == 0:
		return GateInsufficient
	case !g.Sufficient(items):
		return GateClarify
	default:
		return GateGrounded
	}
}
