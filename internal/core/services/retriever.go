package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
	"github.com/custodia-labs/casegen/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrievalService = (*Retriever)(nil)

// Retriever ranks corpus chunks against a query.
type Retriever struct {
	index    *IndexService
	alpha    float64
	floor    float64
	defaultK int
}

// NewRetriever creates a retriever over the index service's snapshots.
func NewRetriever(index *IndexService, settings domain.RetrievalSettings) *Retriever {
	return &Retriever{
		index:    index,
		alpha:    settings.Alpha,
		floor:    settings.BM25Floor,
		defaultK: settings.TopK,
	}
}

// Retrieve returns at most topK evidence items, best first. Ties keep
// corpus order. A topK of zero or less uses the configured default.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.EvidenceItem, error) {
	if topK <= 0 {
		topK = r.defaultK
	}

	snap, err := r.index.Snapshot(ctx)
	if err != nil {
		if snap == nil || !errors.Is(err, domain.ErrIndexUnavailable) {
			return nil, fmt.Errorf("retrieve: %w", err)
		}
		logger.Warn("Falling back to keyword scoring: %v", err)
	}
	if len(snap.Chunks) == 0 {
		return []domain.EvidenceItem{}, nil
	}

	mode := domain.RetrievalKeywordOnly
	if snap.Index != nil {
		if snap.Index.Len() == len(snap.Chunks) {
			mode = snap.Index.Backend().RetrievalMode()
		} else {
			logger.Warn("Index has %d rows for %d chunks; using keyword scoring", snap.Index.Len(), len(snap.Chunks))
		}
	}
	logger.Debug("Retrieval mode: %s", mode.Description())

	items := r.score(mode, snap, query)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > topK {
		items = items[:topK]
	}
	for i := range items {
		items[i].Rank = i + 1
	}
	return items, nil
}

func (r *Retriever) score(mode domain.RetrievalMode, snap *Snapshot, query string) []domain.EvidenceItem {
	qTokens := tokenSet(query)
	items := make([]domain.EvidenceItem, 0, len(snap.Chunks))

	switch mode {
	case domain.RetrievalHybrid:
		cos := snap.Index.Score(query)
		for i := range snap.Chunks {
			v := cos[i]
			if v < 0 {
				v = 0
			}
			kw := keywordOverlap(qTokens, snap.Chunks[i].Text)
			items = append(items, domain.EvidenceItem{
				Chunk: snap.Chunks[i],
				Score: r.alpha*v + (1-r.alpha)*kw,
			})
		}

	case domain.RetrievalBM25:
		norm, ok := minMax(snap.Index.Score(query))
		if !ok {
			break
		}
		for i := range snap.Chunks {
			if norm[i] < r.floor {
				continue
			}
			items = append(items, domain.EvidenceItem{Chunk: snap.Chunks[i], Score: norm[i]})
		}

	default:
		for i := range snap.Chunks {
			items = append(items, domain.EvidenceItem{
				Chunk: snap.Chunks[i],
				Score: keywordOverlap(qTokens, snap.Chunks[i].Text),
			})
		}
	}
	return items
}

// keywordOverlap returns the share of distinct query tokens present in text.
// Tokens are lower-cased whitespace-separated words. An empty query scores 0.
func keywordOverlap(q map[string]struct{}, text string) float64 {
	if len(q) == 0 {
		return 0
	}
	c := tokenSet(text)
	var hits int
	for tok := range q {
		if _, ok := c[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(q))
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// minMax rescales scores to [0,1]. When every score is equal it yields
// 1 for a positive score and reports false for zero, since no chunk
// shares a term with the query.
func minMax(scores []float64) ([]float64, bool) {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out, false
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if hi == lo {
		if hi <= 0 {
			return out, false
		}
		for i := range out {
			out[i] = 1
		}
		return out, true
	}
	for i, s := range scores {
		out[i] = (s - lo) / (hi - lo)
	}
	return out, true
}
