// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casegen/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionStrategy
	SectionBackend
	SectionLLM
)

// Setting keys edited from this view.
const (
	keyChunkStrategy = "chunking.strategy"
	keyIndexBackend  = "retrieval.backend"
)

const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	section      Section
	selected     int
	focusedField int

	apiKeyInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "Enter API key (blank uses the environment)"
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		apiKeyInput:     apiKeyInput,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.backToOverview()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.backToOverview()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionStrategy:
		strategies := domain.AllChunkStrategies()
		return v.handleChoiceKeys(msg, len(strategies), func(i int) tea.Cmd {
			return v.set(keyChunkStrategy, strategies[i].String())
		})
	case SectionBackend:
		backends := domain.AllIndexBackends()
		return v.handleChoiceKeys(msg, len(backends), func(i int) tea.Cmd {
			return v.set(keyIndexBackend, backends[i].String())
		})
	case SectionLLM:
		return v.handleLLMKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	const items = 3

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < items-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case 0:
			v.section = SectionStrategy
			v.selected = indexOf(domain.AllChunkStrategies(), v.settings.Chunking.Strategy)
		case 1:
			v.section = SectionBackend
			v.selected = indexOf(domain.AllIndexBackends(), v.settings.Retrieval.Backend)
		case 2:
			v.section = SectionLLM
			v.selected = indexOf(domain.AllLLMProviders(), v.settings.LLM.Provider)
		}
	}
	return v, nil
}

// handleChoiceKeys moves through n options and applies the chosen one.
func (v *View) handleChoiceKeys(msg tea.KeyMsg, n int, apply func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < n-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < n {
			return v, apply(v.selected)
		}
	}
	return v, nil
}

func (v *View) handleLLMKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllLLMProviders()

	if v.focusedField == 1 {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.focusedField = 0
			v.apiKeyInput.Blur()
			return v, nil
		case keyEnter:
			return v, v.setLLMProvider(providers[v.selected], v.apiKeyInput.Value())
		default:
			var cmd tea.Cmd
			v.apiKeyInput, cmd = v.apiKeyInput.Update(msg)
			return v, cmd
		}
	}

	if msg.String() == keyEnter || msg.String() == keyTab {
		provider := providers[v.selected]
		if provider.RequiresAPIKey() {
			v.focusedField = 1
			return v, v.apiKeyInput.Focus()
		}
		if msg.String() == keyEnter {
			return v, v.setLLMProvider(provider, "")
		}
		return v, nil
	}

	return v.handleChoiceKeys(msg, len(providers), func(int) tea.Cmd { return nil })
}

func (v *View) set(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) setLLMProvider(provider domain.AIProvider, apiKey string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		model := domain.DefaultLLMModels()[provider]
		return messages.SettingsSaved{Err: v.settingsService.SetLLMProvider(provider, model, apiKey)}
	}
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.apiKeyInput.SetValue("")
	v.apiKeyInput.Blur()
}

func indexOf[T comparable](items []T, want T) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionStrategy:
		b.WriteString(v.renderChoices("Chunking Strategy", descriptions(domain.AllChunkStrategies()),
			indexOf(domain.AllChunkStrategies(), v.settings.Chunking.Strategy)))
	case SectionBackend:
		backends := domain.AllIndexBackends()
		labels := make([]string, len(backends))
		for i, be := range backends {
			labels[i] = fmt.Sprintf("%s (%s)", be, be.RetrievalMode())
		}
		b.WriteString(v.renderChoices("Index Backend", labels, indexOf(backends, v.settings.Retrieval.Backend)))
	case SectionLLM:
		b.WriteString(v.renderLLMSelect())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func descriptions(strategies []domain.ChunkStrategy) []string {
	out := make([]string, len(strategies))
	for i, s := range strategies {
		out[i] = s.Description()
	}
	return out
}

func (v *View) renderOverview() string {
	var b strings.Builder

	llmValue := "Templates (no LLM)"
	if v.settings.LLM.Provider != "" {
		llmValue = fmt.Sprintf("%s (%s)", v.settings.LLM.Provider.Description(), v.settings.LLM.Model)
	}

	items := []struct {
		label  string
		value  string
		status string
	}{
		{label: "Chunking", value: v.settings.Chunking.Strategy.Description()},
		{label: "Index Backend", value: fmt.Sprintf("%s (%s)", v.settings.Retrieval.Backend, v.settings.Retrieval.Backend.RetrievalMode())},
		{label: "LLM Provider", value: llmValue, status: v.llmStatus()},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if item.status != "" {
			line += " " + item.status
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  top-k %d  gate %.2f  alpha %.2f",
		v.settings.Retrieval.TopK, v.settings.Gate.Threshold, v.settings.Retrieval.Alpha)))
	b.WriteString("\n\n")

	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render("Warning: " + err.Error()))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) llmStatus() string {
	if v.settings.LLM.Provider == "" {
		return ""
	}
	if v.settings.LLM.IsConfigured() {
		return v.styles.Success.Render("[configured]")
	}
	return v.styles.Warning.Render("[needs API key]")
}

func (v *View) renderChoices(title string, labels []string, current int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select " + title))
	b.WriteString("\n\n")

	for i, label := range labels {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		if i == current {
			label += v.styles.Success.Render(" (current)")
		}

		line := indicator + label
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderLLMSelect() string {
	providers := domain.AllLLMProviders()
	defaults := domain.DefaultLLMModels()

	labels := make([]string, len(providers))
	for i, p := range providers {
		labels[i] = fmt.Sprintf("%s, %s", p.Description(), defaults[p])
	}

	var b strings.Builder
	b.WriteString(v.renderChoices("LLM Provider", labels, indexOf(providers, v.settings.LLM.Provider)))

	if providers[v.selected].RequiresAPIKey() {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(v.apiKeyInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionStrategy, SectionBackend:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionLLM:
		if v.focusedField == 1 {
			return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [tab] API key  [enter] select  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to the overview.
func (v *View) Reset() {
	v.backToOverview()
	v.err = nil
}
