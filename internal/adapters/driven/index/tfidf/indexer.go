// Package tfidf provides a TF-IDF term index.
package tfidf

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 20000

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text and returns its word tokens in order.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Verify interface compliance.
var (
	_ driven.Indexer = (*Indexer)(nil)
	_ driven.Index   = (*Index)(nil)
)

// Indexer fits TF-IDF models.
type Indexer struct {
	maxFeatures int
	now         func() time.Time
}

// Option configures the indexer.
type Option func(*Indexer)

// WithMaxFeatures caps the vocabulary at n terms.
func WithMaxFeatures(n int) Option {
	return func(i *Indexer) {
		if n > 0 {
			i.maxFeatures = n
		}
	}
}

// New creates a TF-IDF indexer.
func New(opts ...Option) *Indexer {
	i := &Indexer{maxFeatures: DefaultMaxFeatures, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Backend returns the index backend.
func (i *Indexer) Backend() domain.IndexBackend {
	return domain.IndexBackendTFIDF
}

// Build fits the vocabulary and IDF over texts and returns one
// L2-normalised TF-IDF row per text.
//
// When the corpus has more distinct terms than the cap, the terms with the
// highest total frequency are kept, ties broken lexicographically. The kept
// vocabulary is sorted so the same corpus always yields the same model.
func (i *Indexer) Build(ctx context.Context, texts []string) (*domain.TermModel, *domain.WeightMatrix, error) {
	docs := make([][]string, len(texts))
	df := make(map[string]int)
	tf := make(map[string]int)
	for d, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		docs[d] = Tokenize(text)
		seen := make(map[string]struct{}, len(docs[d]))
		for _, tok := range docs[d] {
			tf[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if len(terms) > i.maxFeatures {
		sort.Slice(terms, func(a, b int) bool {
			if tf[terms[a]] != tf[terms[b]] {
				return tf[terms[a]] > tf[terms[b]]
			}
			return terms[a] < terms[b]
		})
		terms = terms[:i.maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(texts))
	idf := make([]float64, len(terms))
	vocab := make(map[string]int, len(terms))
	for k, term := range terms {
		vocab[term] = k
		// Smoothed IDF
		idf[k] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	model := &domain.TermModel{
		Backend:    domain.IndexBackendTFIDF,
		Vocabulary: terms,
		IDF:        idf,
		CorpusSize: len(texts),
		BuiltAt:    i.now().UTC(),
	}
	matrix := &domain.WeightMatrix{Rows: make([]domain.SparseVector, len(docs))}
	for d, tokens := range docs {
		matrix.Rows[d] = vectorize(tokens, vocab, idf)
	}
	return model, matrix, nil
}

// Open wraps a persisted model and matrix in a queryable index.
func (i *Indexer) Open(model *domain.TermModel, matrix *domain.WeightMatrix) (driven.Index, error) {
	if model == nil || matrix == nil {
		return nil, fmt.Errorf("%w: tfidf artifacts missing", domain.ErrIndexUnavailable)
	}
	if model.Backend != domain.IndexBackendTFIDF {
		return nil, fmt.Errorf("%w: model built by %q", domain.ErrIndexUnavailable, model.Backend)
	}
	if len(model.IDF) != len(model.Vocabulary) || matrix.Len() != model.CorpusSize {
		return nil, fmt.Errorf("%w: tfidf artifacts out of step", domain.ErrIndexUnavailable)
	}
	vocab := make(map[string]int, len(model.Vocabulary))
	for k, term := range model.Vocabulary {
		vocab[term] = k
	}
	return &Index{model: model, matrix: matrix, vocab: vocab}, nil
}

// Index scores queries by cosine similarity against TF-IDF rows.
type Index struct {
	model  *domain.TermModel
	matrix *domain.WeightMatrix
	vocab  map[string]int
}

// Backend returns the index backend.
func (x *Index) Backend() domain.IndexBackend {
	return domain.IndexBackendTFIDF
}

// Len returns the number of indexed rows.
func (x *Index) Len() int {
	return x.matrix.Len()
}

// Score returns the cosine similarity of query with every row.
// A query with no vocabulary terms scores 0 everywhere.
func (x *Index) Score(query string) []float64 {
	q := vectorize(Tokenize(query), x.vocab, x.model.IDF)
	scores := make([]float64, len(x.matrix.Rows))
	if len(q.Indices) == 0 {
		return scores
	}
	for r, row := range x.matrix.Rows {
		scores[r] = row.Dot(q)
	}
	return scores
}

// vectorize returns the L2-normalised tf-idf vector of tokens.
// Out-of-vocabulary tokens are ignored.
func vectorize(tokens []string, vocab map[string]int, idf []float64) domain.SparseVector {
	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		if k, ok := vocab[tok]; ok {
			counts[k]++
		}
	}
	v := domain.SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for k := range counts {
		v.Indices = append(v.Indices, k)
	}
	sort.Ints(v.Indices)

	var norm float64
	for _, k := range v.Indices {
		w := float64(counts[k]) * idf[k]
		v.Values = append(v.Values, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for j := range v.Values {
			v.Values[j] /= norm
		}
	}
	return v
}
