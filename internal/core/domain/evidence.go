package domain

import "encoding/json"

// EvidenceItem is a chunk scored against a query.
// Evidence is produced per query and never persisted.
type EvidenceItem struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Score is the relevance score in [0, 1].
	Score float64

	// Rank is the 1-based position in the ranked result.
	Rank int
}

type evidenceView struct {
	ID     string  `json:"id" yaml:"id"`
	Source string  `json:"source" yaml:"source"`
	Text   string  `json:"text" yaml:"text"`
	Score  float64 `json:"score" yaml:"score"`
	Rank   int     `json:"rank" yaml:"rank"`
}

func (e EvidenceItem) view() evidenceView {
	return evidenceView{
		ID:     e.Chunk.ID,
		Source: e.Chunk.Source,
		Text:   e.Chunk.Text,
		Score:  e.Score,
		Rank:   e.Rank,
	}
}

// MarshalJSON flattens the chunk into the evidence record.
func (e EvidenceItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

// MarshalYAML flattens the chunk into the evidence record.
func (e EvidenceItem) MarshalYAML() (any, error) {
	return e.view(), nil
}

// Citation returns the citation for this evidence item.
func (e EvidenceItem) Citation() Citation {
	return Citation{
		ID:     e.Chunk.ID,
		Source: e.Chunk.Source,
		Score:  e.Score,
	}
}

// Citation links generated output back to the evidence it came from.
type Citation struct {
	ID     string  `json:"id" yaml:"id"`
	Source string  `json:"source" yaml:"source"`
	Score  float64 `json:"score" yaml:"score"`
}

// Citations returns citations for the first k items.
// k <= 0 cites every item. The result is never nil.
func Citations(items []EvidenceItem, k int) []Citation {
	if k <= 0 || k > len(items) {
		k = len(items)
	}
	out := make([]Citation, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, items[i].Citation())
	}
	return out
}

// MeanScore returns the arithmetic mean of the scores, or 0 for no items.
func MeanScore(items []EvidenceItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for i := range items {
		sum += items[i].Score
	}
	return sum / float64(len(items))
}
