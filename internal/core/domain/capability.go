package domain

// RetrievalMode is the scoring path selected at startup.
type RetrievalMode string

// Available retrieval modes.
const (
	// RetrievalHybrid blends TF-IDF cosine similarity with keyword overlap.
	RetrievalHybrid RetrievalMode = "hybrid"

	// RetrievalBM25 ranks by normalised BM25 with a relevance floor.
	RetrievalBM25 RetrievalMode = "bm25"

	// RetrievalKeywordOnly scores by keyword overlap alone.
	RetrievalKeywordOnly RetrievalMode = "keyword_only"
)

// IsValid returns true if the retrieval mode is recognised.
func (m RetrievalMode) IsValid() bool {
	switch m {
	case RetrievalHybrid, RetrievalBM25, RetrievalKeywordOnly:
		return true
	default:
		return false
	}
}

// UsesIndex returns true if this mode needs a term index.
func (m RetrievalMode) UsesIndex() bool {
	return m == RetrievalHybrid || m == RetrievalBM25
}

// String returns the string representation.
func (m RetrievalMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m RetrievalMode) Description() string {
	switch m {
	case RetrievalHybrid:
		return "Hybrid (TF-IDF cosine + keyword overlap)"
	case RetrievalBM25:
		return "BM25 (normalised, floored)"
	case RetrievalKeywordOnly:
		return "Keyword only (token overlap)"
	default:
		return unknownDescription
	}
}

// Capabilities are the optional collaborators found at startup.
// They are resolved once and passed to the components that branch on them.
type Capabilities struct {
	// Retrieval is the scoring path.
	Retrieval RetrievalMode

	// PDFExtraction is true when pdftotext is on PATH.
	PDFExtraction bool

	// OCR is true when tesseract is on PATH.
	OCR bool

	// LLM is true when the LLM delegate is configured and reachable.
	LLM bool

	// LLMModel names the delegate model when LLM is true.
	LLMModel string
}

// DefaultCapabilities returns the capabilities of a bare install:
// TF-IDF retrieval and template generation.
func DefaultCapabilities() Capabilities {
	return Capabilities{Retrieval: RetrievalHybrid}
}
