package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// mockIngestService implements driving.IngestService for tests.
type mockIngestService struct {
	report   *domain.IngestReport
	err      error
	lastPath string
	watched  bool
}

func (m *mockIngestService) Ingest(_ context.Context, path string) (*domain.IngestReport, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	report := *m.report
	report.Root = path
	return &report, nil
}

func (m *mockIngestService) Watch(
	_ context.Context, path string, onIngest func(*domain.IngestReport, error),
) error {
	m.watched = true
	report := *m.report
	report.Root = path
	onIngest(&report, nil)
	return nil
}

// mockIndexService implements driving.IndexService for tests.
type mockIndexService struct {
	stats       *domain.IndexStats
	err         error
	builds      int
	invalidated int
}

func (m *mockIndexService) Build(_ context.Context) (*domain.IndexStats, error) {
	m.builds++
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func (m *mockIndexService) Invalidate(_ context.Context) error {
	m.invalidated++
	return m.err
}

func (m *mockIndexService) Status(_ context.Context) (*domain.IndexStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

// mockQueryService implements driving.QueryService for tests.
type mockQueryService struct {
	result   *domain.GenerationResult
	err      error
	lastText string
	lastOpts driving.QueryOptions
}

func (m *mockQueryService) Query(
	_ context.Context, text string, opts driving.QueryOptions,
) (*domain.GenerationResult, error) {
	m.lastText = text
	m.lastOpts = opts
	return m.result, m.err
}

// mockSettingsService implements driving.SettingsService for tests.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	setErr      error
	sets        map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), sets: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"chunking.strategy", "gate.threshold", "retrieval.backend"}
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return nil
}

// Compile-time interface checks.
var (
	_ driving.IngestService   = (*mockIngestService)(nil)
	_ driving.IndexService    = (*mockIndexService)(nil)
	_ driving.QueryService    = (*mockQueryService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s Services) {
	t.Helper()
	saved := Services{
		Ingest:       ingestService,
		Index:        indexService,
		Query:        queryService,
		Retrieval:    retrievalService,
		Settings:     settingsService,
		Capabilities: capabilities,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(saved) })
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		queryTopK, queryDebug, queryFormat = 0, false, formatJSON
		indexRebuild, ingestWatch = false, false
		for _, c := range append(rootCmd.Commands(), rootCmd) {
			if c.Flags().Lookup("help") != nil {
				_ = c.Flags().Set("help", "false")
			}
		}
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
