package domain

import "time"

// SparseVector is a row of term weights keyed by vocabulary position.
// Indices are strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the inner product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Sum returns the sum of the row values.
func (v SparseVector) Sum() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x
	}
	return sum
}

// TermModel is the fitted vocabulary and weights of a term index.
// It is persisted alongside a WeightMatrix; the two are valid only together.
type TermModel struct {
	// Backend names the indexer that built the model.
	Backend IndexBackend

	// Vocabulary is the ordered term list; positions are matrix columns.
	Vocabulary []string

	// IDF holds one inverse document frequency per vocabulary term.
	IDF []float64

	// CorpusSize is the number of chunks the model was fitted on.
	CorpusSize int

	// AvgDocLength is the mean document length in terms (BM25).
	AvgDocLength float64

	// K1 and B are the BM25 saturation and length parameters.
	K1 float64
	B  float64

	// BuiltAt records when the model was fitted.
	BuiltAt time.Time
}

// VocabularySize returns the number of terms in the model.
func (m *TermModel) VocabularySize() int {
	if m == nil {
		return 0
	}
	return len(m.Vocabulary)
}

// WeightMatrix holds one sparse row per chunk, row-aligned with the corpus.
type WeightMatrix struct {
	Rows []SparseVector
}

// Len returns the number of rows.
func (m *WeightMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// IndexStats reports the state of the corpus and its index.
type IndexStats struct {
	CorpusStats `yaml:",inline"`

	// Backend is the configured index backend.
	Backend IndexBackend `json:"backend" yaml:"backend"`

	// Retrieval is the active scoring path.
	Retrieval RetrievalMode `json:"retrieval" yaml:"retrieval"`

	// Built is true when an index is loaded in memory.
	Built bool `json:"built" yaml:"built"`

	// VocabularySize is the number of indexed terms.
	VocabularySize int `json:"vocabulary_size" yaml:"vocabulary_size"`

	// BuiltAt records when the loaded index was fitted.
	BuiltAt time.Time `json:"built_at,omitzero" yaml:"built_at,omitempty"`

	// Generation increments on every build or invalidation.
	Generation uint64 `json:"generation" yaml:"generation"`
}

// IngestReport summarises an ingestion run.
type IngestReport struct {
	// Root is the ingested path.
	Root string `json:"root" yaml:"root"`

	// FilesSeen counts discovered files.
	FilesSeen int `json:"files_seen" yaml:"files_seen"`

	// FilesSkipped counts files that yielded no text.
	FilesSkipped int `json:"files_skipped" yaml:"files_skipped"`

	// LinesDropped counts lines removed by the sanitizer.
	LinesDropped int `json:"lines_dropped" yaml:"lines_dropped"`

	// ChunksEmitted counts chunks produced before filtering.
	ChunksEmitted int `json:"chunks_emitted" yaml:"chunks_emitted"`

	// ChunksStored counts chunks persisted after filtering and deduplication.
	ChunksStored int `json:"chunks_stored" yaml:"chunks_stored"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
