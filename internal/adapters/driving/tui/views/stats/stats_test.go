package stats

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casegen/internal/core/domain"
)

// mockIndexService implements driving.IndexService for testing.
type mockIndexService struct {
	stats  *domain.IndexStats
	err    error
	builds int
}

func (m *mockIndexService) Build(_ context.Context) (*domain.IndexStats, error) {
	m.builds++
	return m.stats, m.err
}

func (m *mockIndexService) Invalidate(_ context.Context) error {
	return m.err
}

func (m *mockIndexService) Status(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func builtStats() *domain.IndexStats {
	return &domain.IndexStats{
		CorpusStats:    domain.CorpusStats{TotalChunks: 42, UniqueSources: 3},
		Backend:        domain.IndexBackendTFIDF,
		Retrieval:      domain.RetrievalHybrid,
		Built:          true,
		VocabularySize: 512,
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Stats())
	assert.Contains(t, view.View(), "Loading statistics...")
}

func TestView_InitLoadsStats(t *testing.T) {
	svc := &mockIndexService{stats: builtStats()}
	view := NewView(nil, svc)

	cmd := view.Init()
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())

	require.NotNil(t, view.Stats())
	output := view.View()
	assert.Contains(t, output, "42")
	assert.Contains(t, output, "hybrid")
	assert.Contains(t, output, "512 terms")
}

func TestView_NoIndexService(t *testing.T) {
	view := NewView(nil, nil)

	view, _ = view.Update(view.Init()())

	assert.ErrorIs(t, view.Err(), ErrNoIndexService)
	assert.Contains(t, view.View(), "index service is required")
}

func TestView_EmptyCorpusHint(t *testing.T) {
	view := NewView(nil, nil)

	view, _ = view.Update(messages.StatsLoaded{Stats: &domain.IndexStats{
		Backend:   domain.IndexBackendBM25,
		Retrieval: domain.RetrievalBM25,
	}})

	output := view.View()
	assert.Contains(t, output, "not built")
	assert.Contains(t, output, "casegen ingest")
}

func TestView_BuildIndex(t *testing.T) {
	svc := &mockIndexService{stats: builtStats()}
	view := NewView(nil, svc)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	require.NotNil(t, cmd)
	assert.True(t, view.Building())
	assert.Contains(t, view.View(), "Building index...")

	_, again := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Nil(t, again)

	view, _ = view.Update(cmd())

	assert.False(t, view.Building())
	assert.Equal(t, 1, svc.builds)
	assert.Contains(t, view.View(), "Index built")
}

func TestView_BuildError(t *testing.T) {
	svc := &mockIndexService{err: errors.New("disk full")}
	view := NewView(nil, svc)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	view, _ = view.Update(cmd())

	assert.EqualError(t, view.Err(), "disk full")
	assert.False(t, view.Building())
}

func TestView_Refresh(t *testing.T) {
	svc := &mockIndexService{stats: builtStats()}
	view := NewView(nil, svc)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	require.NotNil(t, cmd)
	assert.IsType(t, messages.StatsLoaded{}, cmd())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil)
	view, _ = view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	view.Reset()

	assert.NoError(t, view.Err())
}
