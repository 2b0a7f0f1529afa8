// Package stats provides the corpus and index statistics view for the TUI.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// ErrNoIndexService indicates that no index service was provided.
var ErrNoIndexService = errors.New("index service is required")

// View shows corpus statistics and the state of the term index.
type View struct {
	styles       *styles.Styles
	indexService driving.IndexService
	ctx          context.Context

	stats    *domain.IndexStats
	building bool
	notice   string
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new statistics view.
func NewView(s *styles.Styles, indexService driving.IndexService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		indexService: indexService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context used for index calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current statistics.
func (v *View) Init() tea.Cmd {
	return v.loadStats()
}

func (v *View) loadStats() tea.Cmd {
	return func() tea.Msg {
		if v.indexService == nil {
			return messages.StatsLoaded{Err: ErrNoIndexService}
		}
		stats, err := v.indexService.Status(v.ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

func (v *View) buildIndex() tea.Cmd {
	return func() tea.Msg {
		if v.indexService == nil {
			return messages.IndexBuilt{Err: ErrNoIndexService}
		}
		stats, err := v.indexService.Build(v.ctx)
		return messages.IndexBuilt{Stats: stats, Err: err}
	}
}

// Update handles messages for the statistics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StatsLoaded:
		v.stats, v.err = msg.Stats, msg.Err
		return v, nil

	case messages.IndexBuilt:
		v.building = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.stats, v.err = msg.Stats, nil
		v.notice = "Index built"
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "r":
		v.notice = ""
		return v, v.loadStats()
	case "b":
		if v.building {
			return v, nil
		}
		v.building = true
		v.notice = ""
		return v, v.buildIndex()
	}
	return v, nil
}

func (v *View) formatField(label, value string) string {
	return v.styles.Subtitle.Render(fmt.Sprintf("%-12s", label+":")) + " " + v.styles.Normal.Render(value)
}

// View renders the statistics view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Corpus & Index"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(0, min(v.width-4, 60))))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case v.building:
		b.WriteString(v.styles.Muted.Render("Building index..."))
		b.WriteString("\n\n")
	case v.stats == nil:
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("Loading statistics..."))
			b.WriteString("\n\n")
		}
	default:
		for _, line := range v.lines() {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[b] build index  [r] refresh  [esc] back"))
	return b.String()
}

func (v *View) lines() []string {
	s := v.stats
	lines := []string{
		v.formatField("Chunks", fmt.Sprintf("%d", s.TotalChunks)),
		v.formatField("Sources", fmt.Sprintf("%d", s.UniqueSources)),
		v.formatField("Backend", s.Backend.String()),
		v.formatField("Retrieval", s.Retrieval.String()),
	}

	if !s.Built {
		lines = append(lines, v.formatField("Index", "not built"))
		if s.TotalChunks == 0 {
			lines = append(lines, "", v.styles.Warning.Render("The corpus is empty. Run 'casegen ingest <path>' first."))
		}
		return lines
	}

	lines = append(lines, v.formatField("Vocabulary", fmt.Sprintf("%d terms", s.VocabularySize)))
	if !s.BuiltAt.IsZero() {
		lines = append(lines, v.formatField("Built at", s.BuiltAt.Local().Format("2006-01-02 15:04:05")))
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Stats returns the loaded statistics.
func (v *View) Stats() *domain.IndexStats {
	return v.stats
}

// Building reports whether an index build is in flight.
func (v *View) Building() bool {
	return v.building
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.err = nil
	v.notice = ""
}
