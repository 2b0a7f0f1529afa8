package domain

import "time"

const unknownDescription = "Unknown"

// ChunkStrategy selects the chunking policy.
type ChunkStrategy string

// Available chunking strategies.
const (
	// ChunkStrategyParagraph splits on paragraph boundaries and windows long paragraphs.
	ChunkStrategyParagraph ChunkStrategy = "paragraph"

	// ChunkStrategyOverlap emits fixed-size word windows with overlap.
	ChunkStrategyOverlap ChunkStrategy = "overlap"
)

// IsValid returns true if the chunk strategy is recognised.
func (s ChunkStrategy) IsValid() bool {
	switch s {
	case ChunkStrategyParagraph, ChunkStrategyOverlap:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s ChunkStrategy) Description() string {
	switch s {
	case ChunkStrategyParagraph:
		return "Paragraph (bounded word counts, no overlap)"
	case ChunkStrategyOverlap:
		return "Overlap (fixed word windows with stride)"
	default:
		return unknownDescription
	}
}

// IndexBackend selects the term index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendTFIDF is a capped TF-IDF vector space.
	IndexBackendTFIDF IndexBackend = "tfidf"

	// IndexBackendBM25 is Okapi BM25 over stemmed tokens.
	IndexBackendBM25 IndexBackend = "bm25"

	// IndexBackendKeyword disables the term index.
	IndexBackendKeyword IndexBackend = "keyword"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendTFIDF, IndexBackendBM25, IndexBackendKeyword:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// RetrievalMode returns the scoring path this backend provides.
func (b IndexBackend) RetrievalMode() RetrievalMode {
	switch b {
	case IndexBackendTFIDF:
		return RetrievalHybrid
	case IndexBackendBM25:
		return RetrievalBM25
	default:
		return RetrievalKeywordOnly
	}
}

// StoreBackend selects the persistence format for chunks and index artifacts.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendJSON keeps chunks.json and gob index artifacts on disk.
	StoreBackendJSON StoreBackend = "json"

	// StoreBackendSQLite keeps chunks and artifacts in a SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the store backend is recognised.
func (b StoreBackend) IsValid() bool {
	return b == StoreBackendJSON || b == StoreBackendSQLite
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API or any OpenAI-compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud or compatible)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// ChunkingSettings holds chunker configuration.
type ChunkingSettings struct {
	// Strategy selects the chunking policy.
	Strategy ChunkStrategy

	// MaxWords and MinWords bound paragraph chunks.
	MaxWords int
	MinWords int

	// ChunkSize and Overlap configure the overlap policy, in words.
	ChunkSize int
	Overlap   int

	// MinChars is the quality floor applied after chunking.
	MinChars int
}

// RetrievalSettings holds retrieval and index configuration.
type RetrievalSettings struct {
	// Backend selects the term index.
	Backend IndexBackend

	// Alpha weights cosine similarity against keyword overlap.
	Alpha float64

	// TopK is the default number of evidence items returned.
	TopK int

	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int

	// BM25Floor excludes normalised BM25 scores below it.
	BM25Floor float64
}

// GateSettings holds evidence gate configuration.
type GateSettings struct {
	// Threshold is the minimum mean evidence score for grounded output.
	Threshold float64
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Dir is the data directory holding chunks and index artifacts.
	Dir string

	// Backend selects the persistence format.
	Backend StoreBackend
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (Ollama or an OpenAI-compatible host).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Timeout bounds a single delegate call.
	Timeout time.Duration

	// RequestsPerMinute throttles delegate calls.
	RequestsPerMinute int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	Chunking  ChunkingSettings
	Retrieval RetrievalSettings
	Gate      GateSettings
	Storage   StorageSettings

	// LLM holds delegate settings.
	LLM LLMSettings

	// FeaturesFile optionally overrides the keyword feature table.
	FeaturesFile string

	// LogFile optionally mirrors log output to a rotating file.
	LogFile string
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM delegate is left unconfigured; use-cases come from templates
// until a provider is set via the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			Strategy:  ChunkStrategyParagraph,
			MaxWords:  180,
			MinWords:  32,
			ChunkSize: 800,
			Overlap:   100,
			MinChars:  40,
		},
		Retrieval: RetrievalSettings{
			Backend:     IndexBackendTFIDF,
			Alpha:       0.8,
			TopK:        5,
			MaxFeatures: 20000,
			BM25Floor:   0.1,
		},
		Gate: GateSettings{
			Threshold: 0.2,
		},
		Storage: StorageSettings{
			Backend: StoreBackendJSON,
		},
		LLM: LLMSettings{
			Timeout:           120 * time.Second,
			RequestsPerMinute: 30,
		},
	}
}

// AllChunkStrategies returns all available chunk strategies.
func AllChunkStrategies() []ChunkStrategy {
	return []ChunkStrategy{ChunkStrategyParagraph, ChunkStrategyOverlap}
}

// AllIndexBackends returns all available index backends.
func AllIndexBackends() []IndexBackend {
	return []IndexBackend{IndexBackendTFIDF, IndexBackendBM25, IndexBackendKeyword}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor returns the post-chunking pipeline for the settings:
// the quality floor followed by deduplication.
func PipelineConfigFor(s ChunkingSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"quality", "dedupe"},
		ProcessorConfigs: map[string]map[string]any{
			"quality": {
				"min_chars": s.MinChars,
			},
		},
	}
}
