package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.Len(t, view.items, 5)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil)
	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyUp}

	for range 10 {
		view.Update(down)
	}
	assert.Equal(t, 4, view.Selected())

	view.Update(up)
	assert.Equal(t, 3, view.Selected())

	for range 10 {
		view.Update(up)
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_EnterChangesView(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		expected messages.ViewType
	}{
		{"query", 0, messages.ViewQuery},
		{"stats", 1, messages.ViewStats},
		{"settings", 2, messages.ViewSettings},
		{"help", 3, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.selected

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.expected, changed.View)
		})
	}
}

func TestView_Update_Quit(t *testing.T) {
	t.Run("quit item", func(t *testing.T) {
		view := NewView(nil)
		view.selected = 4

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("q key", func(t *testing.T) {
		view := NewView(nil)

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Contains(t, view.View(), "Initialising")

	view.SetDimensions(80, 24)
	output := view.View()

	assert.Contains(t, output, "casegen")
	assert.Contains(t, output, "Grounded use-cases from local documents")
	assert.Contains(t, output, "> Generate use-cases")
	assert.Contains(t, output, "Corpus & index")
	assert.Contains(t, output, "Quit")
}

func TestMenuItem_Properties(t *testing.T) {
	view := NewView(nil)

	labels := make([]string, 0, len(view.items))
	for _, item := range view.items {
		labels = append(labels, item.Label)
	}

	assert.Equal(t, []string{"Generate use-cases", "Corpus & index", "Settings", "Help", "Quit"}, labels)
	assert.True(t, view.items[4].Quit)
	assert.False(t, view.items[0].Quit)
}

func TestView_ShowsHintForSelectedItem(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "Ask about the ingested documents")

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	out := view.View()
	assert.Contains(t, out, "Chunk counts, index state, rebuild")
	assert.NotContains(t, out, "Ask about the ingested documents")
}
