// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casegen/internal/core/domain"
)

// UseCaseList displays generated use-cases in a navigable list
// with the selected use-case expanded below it.
type UseCaseList struct {
	useCases []domain.UseCase
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewUseCaseList creates a new use-case list component.
func NewUseCaseList(s *styles.Styles) *UseCaseList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &UseCaseList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *UseCaseList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *UseCaseList) Update(msg tea.Msg) (*UseCaseList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the titles followed by the selected use-case.
func (l *UseCaseList) View() string {
	if len(l.useCases) == 0 {
		return l.styles.Muted.Render("No use-cases")
	}

	lines := make([]string, 0, len(l.useCases)+4)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Use-cases (%d)", len(l.useCases))), "")

	for i := range l.useCases {
		title := truncate(l.useCases[i].Title, l.width-6)
		if i == l.selected {
			lines = append(lines, l.styles.Selected.Render("> "+title))
		} else {
			lines = append(lines, l.styles.Normal.Render("  "+title))
		}
	}

	lines = append(lines, "", l.Detail())
	return strings.Join(lines, "\n")
}

// Detail renders every field of the selected use-case.
func (l *UseCaseList) Detail() string {
	uc := l.SelectedUseCase()
	if uc == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(l.styles.Title.Render(uc.Title))
	b.WriteString("\n")
	b.WriteString(l.styles.Muted.Render(uc.Goal))
	b.WriteString("\n")

	l.writeSection(&b, "Preconditions", uc.Preconditions, false)
	l.writeTestData(&b, uc.TestData)
	l.writeSection(&b, "Steps", uc.Steps, true)
	l.writeSection(&b, "Expected", uc.ExpectedResults, false)
	l.writeSection(&b, "Negative", uc.NegativeCases, false)
	l.writeSection(&b, "Boundary", uc.BoundaryCases, false)

	if len(uc.Citations) > 0 {
		sources := make([]string, 0, len(uc.Citations))
		for _, c := range uc.Citations {
			sources = append(sources, c.Source)
		}
		b.WriteString("\n")
		b.WriteString(l.styles.Muted.Render("Cited: " + strings.Join(sources, ", ")))
	}

	return b.String()
}

func (l *UseCaseList) writeSection(b *strings.Builder, heading string, items []string, numbered bool) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(l.styles.Subtitle.Render(heading))
	b.WriteString("\n")
	for i, item := range items {
		prefix := "  - "
		if numbered {
			prefix = fmt.Sprintf("  %d. ", i+1)
		}
		b.WriteString(l.styles.Normal.Render(prefix + truncate(item, l.width-6)))
		b.WriteString("\n")
	}
}

func (l *UseCaseList) writeTestData(b *strings.Builder, data map[string]string) {
	if len(data) == 0 {
		return
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("\n")
	b.WriteString(l.styles.Subtitle.Render("Test data"))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(l.styles.Normal.Render(fmt.Sprintf("  %s: %s", k, data[k])))
		b.WriteString("\n")
	}
}

func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetUseCases replaces the list contents and resets the cursor.
func (l *UseCaseList) SetUseCases(useCases []domain.UseCase) {
	l.useCases = useCases
	l.selected = 0
}

// UseCases returns the current use-cases.
func (l *UseCaseList) UseCases() []domain.UseCase {
	return l.useCases
}

// Selected returns the index of the selected use-case.
func (l *UseCaseList) Selected() int {
	return l.selected
}

// SelectedUseCase returns the selected use-case, or nil if the list is empty.
func (l *UseCaseList) SelectedUseCase() *domain.UseCase {
	if l.selected < 0 || l.selected >= len(l.useCases) {
		return nil
	}
	return &l.useCases[l.selected]
}

// MoveUp moves selection up.
func (l *UseCaseList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *UseCaseList) MoveDown() {
	if l.selected < len(l.useCases)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *UseCaseList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of use-cases.
func (l *UseCaseList) Count() int {
	return len(l.useCases)
}
