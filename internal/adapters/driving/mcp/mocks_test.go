package mcp

import (
	"context"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result   *domain.GenerationResult
	err      error
	lastText string
	lastOpts driving.QueryOptions
}

func (m *mockQueryService) Query(
	_ context.Context,
	text string,
	opts driving.QueryOptions,
) (*domain.GenerationResult, error) {
	m.lastText = text
	m.lastOpts = opts
	return m.result, m.err
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	items []domain.EvidenceItem
	err   error
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, _ int) ([]domain.EvidenceItem, error) {
	return m.items, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report   *domain.IngestReport
	err      error
	lastPath string
}

func (m *mockIngestService) Ingest(_ context.Context, path string) (*domain.IngestReport, error) {
	m.lastPath = path
	return m.report, m.err
}

func (m *mockIngestService) Watch(
	_ context.Context,
	_ string,
	_ func(*domain.IngestReport, error),
) error {
	return m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	stats *domain.IndexStats
	err   error
}

func (m *mockIndexService) Build(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockIndexService) Invalidate(_ context.Context) error {
	return m.err
}

func (m *mockIndexService) Status(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}
