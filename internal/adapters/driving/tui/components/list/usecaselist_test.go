package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func sampleUseCases() []domain.UseCase {
	return []domain.UseCase{
		{
			Title:           "Successful signup",
			Goal:            "A new user creates an account",
			Preconditions:   []string{"User is not registered"},
			TestData:        map[string]string{"password": "Str0ng!pass", "email": "a@b.co"},
			Steps:           []string{"Open signup", "Submit the form"},
			ExpectedResults: []string{"Account is created"},
			NegativeCases:   []string{"Duplicate email"},
			Citations:       []domain.Citation{{ID: "c1", Source: "docs/signup.md"}},
		},
		{Title: "Password policy validation"},
		{Title: "Email verification"},
	}
}

func TestNewUseCaseList(t *testing.T) {
	l := NewUseCaseList(nil)

	require.NotNil(t, l)
	assert.Zero(t, l.Count())
	assert.Nil(t, l.SelectedUseCase())
	assert.Nil(t, l.Init())
}

func TestUseCaseList_Navigation(t *testing.T) {
	l := NewUseCaseList(nil)
	l.SetUseCases(sampleUseCases())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Selected())
	assert.Equal(t, "Email verification", l.SelectedUseCase().Title)
}

func TestUseCaseList_SetUseCasesResetsCursor(t *testing.T) {
	l := NewUseCaseList(nil)
	l.SetUseCases(sampleUseCases())
	l.MoveDown()

	l.SetUseCases(sampleUseCases()[:1])

	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 1, l.Count())
}

func TestUseCaseList_ViewEmpty(t *testing.T) {
	l := NewUseCaseList(nil)

	assert.Contains(t, l.View(), "No use-cases")
}

func TestUseCaseList_View(t *testing.T) {
	l := NewUseCaseList(nil)
	l.SetDimensions(120, 40)
	l.SetUseCases(sampleUseCases())

	view := l.View()

	assert.Contains(t, view, "Use-cases (3)")
	assert.Contains(t, view, "Password policy validation")
	assert.Contains(t, view, "A new user creates an account")
}

func TestUseCaseList_Detail(t *testing.T) {
	l := NewUseCaseList(nil)
	l.SetDimensions(120, 40)
	l.SetUseCases(sampleUseCases())

	detail := l.Detail()

	assert.Contains(t, detail, "1. Open signup")
	assert.Contains(t, detail, "2. Submit the form")
	assert.Contains(t, detail, "- Account is created")
	assert.Contains(t, detail, "Cited: docs/signup.md")
	assert.Less(t, strings.Index(detail, "email: a@b.co"), strings.Index(detail, "password: Str0ng!pass"))
	assert.NotContains(t, detail, "Boundary")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 2))
}
