// Package query provides the use-case generation view for the TUI.
package query

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// View is the query view: an input, the generated use-cases and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.UseCaseList
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	result       *domain.GenerationResult
	showEvidence bool

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new query view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQueryInput(s),
		list:         list.NewUseCaseList(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context used for queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(v.input.Value())
			if text == "" {
				return v, nil
			}
			v.err = nil
			v.statusbar.SetState(status.StateGenerating)
			v.focusInput = false
			v.input.Blur()
			return v, v.performQuery(text)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.Evidence):
		v.showEvidence = !v.showEvidence
	case keymap.Matches(msg.String(), v.keymap.NewQuery):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}
	return v, nil
}

// performQuery runs the query off the update loop.
func (v *View) performQuery(text string) tea.Cmd {
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}
		result, err := v.queryService.Query(v.ctx, text, driving.QueryOptions{})
		return messages.QueryCompleted{Result: result, Err: err}
	}
}

func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.result = msg.Result
	v.showEvidence = false
	v.list.SetUseCases(msg.Result.UseCases)
	v.statusbar.SetResult(msg.Result)
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.focusInput = true
	v.input.Focus()
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("casegen"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.result != nil {
		sections = append(sections, v.renderResult())
		if v.showEvidence {
			sections = append(sections, "", v.renderEvidence())
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderResult renders the body for the result status.
func (v *View) renderResult() string {
	r := v.result
	var b strings.Builder

	b.WriteString(v.styles.StatusBadge(r.Status))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" avg score %.3f", r.AvgEvidenceScore)))
	b.WriteString("\n\n")

	switch r.Status {
	case domain.StatusSuccess:
		b.WriteString(v.list.View())
	case domain.StatusExtracted:
		b.WriteString(v.styles.Normal.Render("Course name: "))
		b.WriteString(v.styles.Subtitle.Render(r.CourseName))
	case domain.StatusClarify, domain.StatusInsufficientEvidence:
		b.WriteString(v.styles.Warning.Render(r.Message))
		for _, q := range r.ClarifyingQuestions {
			b.WriteString("\n  ? " + v.styles.Normal.Render(q))
		}
		for _, a := range r.Assumptions {
			b.WriteString("\n  - " + v.styles.Muted.Render(a))
		}
	default:
		b.WriteString(v.styles.Error.Render(r.Message))
	}

	return b.String()
}

// renderEvidence lists the evidence behind the result.
func (v *View) renderEvidence() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Evidence"))

	if len(v.result.Evidence) > 0 {
		for i := range v.result.Evidence {
			e := &v.result.Evidence[i]
			fmt.Fprintf(&b, "\n  [%d] %.3f %s", e.Rank, e.Score, e.Chunk.Source)
		}
		return b.String()
	}

	if len(v.result.Citations) == 0 {
		b.WriteString("\n" + v.styles.Muted.Render("  none"))
		return b.String()
	}
	for _, c := range v.result.Citations {
		fmt.Fprintf(&b, "\n  %.3f %s", c.Score, c.Source)
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the text in the input.
func (v *View) SetQuery(text string) {
	v.input.SetValue(text)
}

// Result returns the last generation result.
func (v *View) Result() *domain.GenerationResult {
	return v.result
}

// SelectedIndex returns the index of the selected use-case.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// EvidenceVisible returns whether the evidence panel is shown.
func (v *View) EvidenceVisible() bool {
	return v.showEvidence
}

// Reset returns the view to an empty input.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetUseCases(nil)
	v.result = nil
	v.showEvidence = false
	v.err = nil
	v.statusbar.Clear()
}
