package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

func newTestPorts() *Ports {
	return NewPorts(&MockQueryService{}, &MockIndexService{}, nil)
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Index: &MockIndexService{}})

	assert.ErrorIs(t, err, ErrMissingQueryService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_View_BeforeReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
	assert.Contains(t, app.View(), "casegen")
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_MenuSelectsQueryView(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, messages.ViewChanged{}, msg)
	app.Update(msg)

	assert.Equal(t, messages.ViewQuery, app.CurrentView())
}

func TestApp_QueryFlow(t *testing.T) {
	var gotText string
	query := &MockQueryService{
		QueryFunc: func(_ context.Context, text string, _ driving.QueryOptions) (*domain.GenerationResult, error) {
			gotText = text
			return &domain.GenerationResult{
				Status: domain.StatusSuccess,
				Query:  text,
				UseCases: []domain.UseCase{
					{Title: "Reset a forgotten password", Goal: "Regain access"},
				},
				ModelUsed: "template",
			}, nil
		},
	}
	app := newTestApp(t, NewPorts(query, &MockIndexService{}, nil))
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	app.Update(runes("password reset"))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	app.Update(cmd())

	assert.Equal(t, "password reset", gotText)
	require.NotNil(t, app.Result())
	assert.Equal(t, domain.StatusSuccess, app.Result().Status)
	assert.NoError(t, app.Err())
	assert.Contains(t, app.View(), "Reset a forgotten password")
}

func TestApp_QueryError(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	app.Update(messages.QueryCompleted{Err: context.Canceled})

	assert.ErrorIs(t, app.Err(), context.Canceled)
	assert.Nil(t, app.Result())
}

func TestApp_StatsView_LoadsOnEnter(t *testing.T) {
	index := &MockIndexService{
		StatusFunc: func(context.Context) (*domain.IndexStats, error) {
			return &domain.IndexStats{
				CorpusStats: domain.CorpusStats{TotalChunks: 12, UniqueSources: 3},
				Backend:     domain.IndexBackendBM25,
				Retrieval:   domain.RetrievalBM25,
			}, nil
		},
	}
	app := newTestApp(t, NewPorts(&MockQueryService{}, index, nil))

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewStats})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewStats, app.CurrentView())
	assert.Contains(t, app.View(), "bm25")
}

func TestApp_StatsView_BuildError(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.Update(messages.ViewChanged{View: messages.ViewStats})

	app.Update(messages.IndexBuilt{Err: errors.New("empty corpus")})

	assert.EqualError(t, app.Err(), "empty corpus")
}

func TestApp_SettingsView_NoService(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "settings service not available")
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Generate use-cases")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_EscFromQueryReturnsToMenu(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "boom")
}
