package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/casegen/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyChunkStrategy  = "chunking.strategy"
	keyChunkMaxWords  = "chunking.max_words"
	keyChunkMinWords  = "chunking.min_words"
	keyChunkSize      = "chunking.chunk_size"
	keyChunkOverlap   = "chunking.overlap"
	keyQualityMin     = "quality.min_chars"
	keyRetrBackend    = "retrieval.backend"
	keyRetrAlpha      = "retrieval.alpha"
	keyRetrTopK       = "retrieval.top_k"
	keyRetrMaxFeat    = "retrieval.max_features"
	keyRetrBM25Floor  = "retrieval.bm25_floor"
	keyGateThreshold  = "gate.threshold"
	keyStorageDir     = "storage.dir"
	keyStorageBackend = "storage.backend"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMTimeout     = "llm.timeout_seconds"
	keyLLMRPM         = "llm.requests_per_minute"
	keyFeaturesFile   = "features.file"
	keyLogFile        = "log.file"
)

// EnvAPIKey overrides the configured LLM API key for every provider.
//
//nolint:gosec // G101: environment variable name.
const EnvAPIKey = "CASEGEN_LLM_API_KEY"

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
)

var settingKinds = map[string]keyKind{
	keyChunkStrategy:  kindString,
	keyChunkMaxWords:  kindInt,
	keyChunkMinWords:  kindInt,
	keyChunkSize:      kindInt,
	keyChunkOverlap:   kindInt,
	keyQualityMin:     kindInt,
	keyRetrBackend:    kindString,
	keyRetrAlpha:      kindFloat,
	keyRetrTopK:       kindInt,
	keyRetrMaxFeat:    kindInt,
	keyRetrBM25Floor:  kindFloat,
	keyGateThreshold:  kindFloat,
	keyStorageDir:     kindString,
	keyStorageBackend: kindString,
	keyLLMProvider:    kindString,
	keyLLMModel:       kindString,
	keyLLMBaseURL:     kindString,
	keyLLMAPIKey:      kindString,
	keyLLMTimeout:     kindInt,
	keyLLMRPM:         kindInt,
	keyFeaturesFile:   kindString,
	keyLogFile:        kindString,
}

// SettingKeys returns every key accepted by Set, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			Strategy:  domain.ChunkStrategy(s.getString(keyChunkStrategy, defaults.Chunking.Strategy.String())),
			MaxWords:  s.getInt(keyChunkMaxWords, defaults.Chunking.MaxWords),
			MinWords:  s.getInt(keyChunkMinWords, defaults.Chunking.MinWords),
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
			MinChars:  s.getInt(keyQualityMin, defaults.Chunking.MinChars),
		},
		Retrieval: domain.RetrievalSettings{
			Backend:     domain.IndexBackend(s.getString(keyRetrBackend, defaults.Retrieval.Backend.String())),
			Alpha:       s.getFloat(keyRetrAlpha, defaults.Retrieval.Alpha),
			TopK:        s.getInt(keyRetrTopK, defaults.Retrieval.TopK),
			MaxFeatures: s.getInt(keyRetrMaxFeat, defaults.Retrieval.MaxFeatures),
			BM25Floor:   s.getFloat(keyRetrBM25Floor, defaults.Retrieval.BM25Floor),
		},
		Gate: domain.GateSettings{
			Threshold: s.getFloat(keyGateThreshold, defaults.Gate.Threshold),
		},
		Storage: domain.StorageSettings{
			Dir:     s.getString(keyStorageDir, defaults.Storage.Dir),
			Backend: domain.StoreBackend(s.getString(keyStorageBackend, defaults.Storage.Backend.String())),
		},
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:             s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			Timeout:           time.Duration(s.getInt(keyLLMTimeout, int(defaults.LLM.Timeout/time.Second))) * time.Second,
			RequestsPerMinute: s.getInt(keyLLMRPM, defaults.LLM.RequestsPerMinute),
		},
		FeaturesFile: s.configStore.GetString(keyFeaturesFile),
		LogFile:      s.configStore.GetString(keyLogFile),
	}

	if key := s.envAPIKey(settings.LLM.Provider); key != "" {
		settings.LLM.APIKey = key
	}

	return settings, nil
}

// envAPIKey returns the API key from the environment for provider.
func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	if key := s.getenv(EnvAPIKey); key != "" {
		return key
	}
	switch provider {
	case domain.AIProviderOpenAI:
		if key := s.getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
		return s.getenv("GROQ_API_KEY")
	case domain.AIProviderAnthropic:
		return s.getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyChunkStrategy, settings.Chunking.Strategy.String()},
		{keyChunkMaxWords, settings.Chunking.MaxWords},
		{keyChunkMinWords, settings.Chunking.MinWords},
		{keyChunkSize, settings.Chunking.ChunkSize},
		{keyChunkOverlap, settings.Chunking.Overlap},
		{keyQualityMin, settings.Chunking.MinChars},
		{keyRetrBackend, settings.Retrieval.Backend.String()},
		{keyRetrAlpha, settings.Retrieval.Alpha},
		{keyRetrTopK, settings.Retrieval.TopK},
		{keyRetrMaxFeat, settings.Retrieval.MaxFeatures},
		{keyRetrBM25Floor, settings.Retrieval.BM25Floor},
		{keyGateThreshold, settings.Gate.Threshold},
		{keyStorageDir, settings.Storage.Dir},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMTimeout, int(settings.LLM.Timeout / time.Second)},
		{keyLLMRPM, settings.LLM.RequestsPerMinute},
		{keyFeaturesFile, settings.FeaturesFile},
		{keyLogFile, settings.LogFile},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Keys that came from the environment are not written back.
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// Set parses value according to key and stores it. The resulting
// settings must pass Validate.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		parsed = f
	default:
		parsed = strings.TrimSpace(value)
	}

	// Validate against a copy so a bad value never reaches the store.
	values := make(map[string]any, len(settingKinds))
	for k := range settingKinds {
		if v, ok := s.configStore.Get(k); ok {
			values[k] = v
		}
	}
	values[key] = parsed
	probe := &SettingsService{configStore: memory.NewConfigStore(values), getenv: s.getenv}
	if err := probe.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every key accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" && s.envAPIKey(provider) == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else if provider == domain.AIProviderAnthropic {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that current settings are within range.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	c := settings.Chunking
	if !c.Strategy.IsValid() {
		return fmt.Errorf("%w: chunking strategy %q", domain.ErrInvalidInput, c.Strategy)
	}
	if c.MinWords < 1 || c.MaxWords < c.MinWords {
		return fmt.Errorf("%w: chunking requires 1 <= min_words <= max_words", domain.ErrInvalidInput)
	}
	if c.ChunkSize < 1 || c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunking requires 0 <= overlap < chunk_size", domain.ErrInvalidInput)
	}
	if c.MinChars < 0 {
		return fmt.Errorf("%w: quality.min_chars must not be negative", domain.ErrInvalidInput)
	}

	r := settings.Retrieval
	if !r.Backend.IsValid() {
		return fmt.Errorf("%w: retrieval backend %q", domain.ErrInvalidInput, r.Backend)
	}
	if r.Alpha < 0 || r.Alpha > 1 {
		return fmt.Errorf("%w: retrieval.alpha must be in [0, 1]", domain.ErrInvalidInput)
	}
	if r.TopK < 1 {
		return fmt.Errorf("%w: retrieval.top_k must be positive", domain.ErrInvalidInput)
	}
	if r.MaxFeatures < 1 {
		return fmt.Errorf("%w: retrieval.max_features must be positive", domain.ErrInvalidInput)
	}
	if r.BM25Floor < 0 || r.BM25Floor > 1 {
		return fmt.Errorf("%w: retrieval.bm25_floor must be in [0, 1]", domain.ErrInvalidInput)
	}

	if settings.Gate.Threshold < 0 || settings.Gate.Threshold > 1 {
		return fmt.Errorf("%w: gate.threshold must be in [0, 1]", domain.ErrInvalidInput)
	}

	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	l := settings.LLM
	if raw := s.configStore.GetString(keyLLMProvider); raw != "" && !domain.AIProvider(raw).IsValid() {
		return fmt.Errorf("%w: llm provider %q", domain.ErrInvalidInput, raw)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout_seconds must be positive", domain.ErrInvalidInput)
	}
	if l.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: llm.requests_per_minute must not be negative", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.LLM.IsConfigured() {
		return nil
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
