package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Nil(t, bar.Init())
}

func TestBar_View_States(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		contains []string
	}{
		{
			name:     "ready",
			setup:    func(*Bar) {},
			contains: []string{"Ready", "generate"},
		},
		{
			name:     "generating",
			setup:    func(b *Bar) { b.SetState(StateGenerating) },
			contains: []string{"Generating..."},
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("connection refused")
			},
			contains: []string{"Error: connection refused"},
		},
		{
			name: "success result",
			setup: func(b *Bar) {
				b.SetResult(&domain.GenerationResult{
					Status:    domain.StatusSuccess,
					UseCases:  []domain.UseCase{{Title: "a"}, {Title: "b"}},
					ModelUsed: "template",
				})
			},
			contains: []string{"success", "2 use-cases", "via template", "new query"},
		},
		{
			name: "clarify result",
			setup: func(b *Bar) {
				b.SetResult(&domain.GenerationResult{Status: domain.StatusClarify})
			},
			contains: []string{"clarify"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			tt.setup(bar)

			view := bar.View()
			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
		})
	}
}

func TestBar_SetResult(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetMessage("old")

	bar.SetResult(&domain.GenerationResult{
		Status:   domain.StatusSuccess,
		UseCases: []domain.UseCase{{Title: "a"}},
	})

	assert.Equal(t, StateResults, bar.State())
	assert.Equal(t, 1, bar.Count())
	assert.Empty(t, bar.Message())
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetResult(&domain.GenerationResult{Status: domain.StatusSuccess, UseCases: []domain.UseCase{{}}})

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Zero(t, bar.Count())
	assert.Empty(t, bar.Message())
}
