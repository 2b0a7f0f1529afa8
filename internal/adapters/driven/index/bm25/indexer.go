// Package bm25 provides an Okapi BM25 term index.
package bm25

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// Default BM25 parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Verify interface compliance.
var (
	_ driven.Indexer = (*Indexer)(nil)
	_ driven.Index   = (*Index)(nil)
)

// Indexer fits BM25 models.
type Indexer struct {
	k1  float64
	b   float64
	now func() time.Time
}

// Option configures the indexer.
type Option func(*Indexer)

// WithParams sets the k1 saturation and b length normalisation parameters.
func WithParams(k1, b float64) Option {
	return func(i *Indexer) {
		if k1 > 0 {
			i.k1 = k1
		}
		if b >= 0 && b <= 1 {
			i.b = b
		}
	}
}

// New creates a BM25 indexer.
func New(opts ...Option) *Indexer {
	i := &Indexer{k1: DefaultK1, b: DefaultB, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Backend returns the index backend.
func (i *Indexer) Backend() domain.IndexBackend {
	return domain.IndexBackendBM25
}

// Build counts stemmed terms per text. Matrix rows hold raw term
// frequencies; the model holds IDF and the average document length.
func (i *Indexer) Build(ctx context.Context, texts []string) (*domain.TermModel, *domain.WeightMatrix, error) {
	docs := make([]map[string]int, len(texts))
	df := make(map[string]int)
	var totalLen int
	for d, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		tokens := Tokenize(text)
		totalLen += len(tokens)
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		for tok := range counts {
			df[tok]++
		}
		docs[d] = counts
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(texts))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for k, term := range terms {
		vocab[term] = k
		d := float64(df[term])
		idf[k] = math.Log(1 + (n-d+0.5)/(d+0.5))
	}

	var avg float64
	if len(texts) > 0 {
		avg = float64(totalLen) / n
	}
	model := &domain.TermModel{
		Backend:      domain.IndexBackendBM25,
		Vocabulary:   terms,
		IDF:          idf,
		CorpusSize:   len(texts),
		AvgDocLength: avg,
		K1:           i.k1,
		B:            i.b,
		BuiltAt:      i.now().UTC(),
	}

	matrix := &domain.WeightMatrix{Rows: make([]domain.SparseVector, len(docs))}
	for d, counts := range docs {
		row := domain.SparseVector{
			Indices: make([]int, 0, len(counts)),
			Values:  make([]float64, 0, len(counts)),
		}
		for tok := range counts {
			row.Indices = append(row.Indices, vocab[tok])
		}
		sort.Ints(row.Indices)
		for _, k := range row.Indices {
			row.Values = append(row.Values, float64(counts[terms[k]]))
		}
		matrix.Rows[d] = row
	}
	return model, matrix, nil
}

// Open wraps a persisted model and matrix in a queryable index.
func (i *Indexer) Open(model *domain.TermModel, matrix *domain.WeightMatrix) (driven.Index, error) {
	if model == nil || matrix == nil {
		return nil, fmt.Errorf("%w: bm25 artifacts missing", domain.ErrIndexUnavailable)
	}
	if model.Backend != domain.IndexBackendBM25 {
		return nil, fmt.Errorf("%w: model built by %q", domain.ErrIndexUnavailable, model.Backend)
	}
	if len(model.IDF) != len(model.Vocabulary) || matrix.Len() != model.CorpusSize {
		return nil, fmt.Errorf("%w: bm25 artifacts out of step", domain.ErrIndexUnavailable)
	}
	vocab := make(map[string]int, len(model.Vocabulary))
	for k, term := range model.Vocabulary {
		vocab[term] = k
	}
	lengths := make([]float64, len(matrix.Rows))
	for r, row := range matrix.Rows {
		lengths[r] = row.Sum()
	}
	return &Index{model: model, matrix: matrix, vocab: vocab, lengths: lengths}, nil
}

// Index scores queries with BM25.
type Index struct {
	model   *domain.TermModel
	matrix  *domain.WeightMatrix
	vocab   map[string]int
	lengths []float64
}

// Backend returns the index backend.
func (x *Index) Backend() domain.IndexBackend {
	return domain.IndexBackendBM25
}

// Len returns the number of indexed rows.
func (x *Index) Len() int {
	return x.matrix.Len()
}

// Score returns the raw BM25 score of query against every row.
// Repeated query terms contribute once per occurrence.
func (x *Index) Score(query string) []float64 {
	scores := make([]float64, len(x.matrix.Rows))
	k1, b, avg := x.model.K1, x.model.B, x.model.AvgDocLength
	if avg == 0 {
		return scores
	}
	for _, tok := range Tokenize(query) {
		k, ok := x.vocab[tok]
		if !ok {
			continue
		}
		idf := x.model.IDF[k]
		for r, row := range x.matrix.Rows {
			j := sort.SearchInts(row.Indices, k)
			if j == len(row.Indices) || row.Indices[j] != k {
				continue
			}
			tf := row.Values[j]
			norm := k1 * (1 - b + b*x.lengths[r]/avg)
			scores[r] += idf * tf * (k1 + 1) / (tf + norm)
		}
	}
	return scores
}
