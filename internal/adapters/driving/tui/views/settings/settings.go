// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionBackend
	SectionExtractor
)

const (
	keyDown  = "down"
	keyEnter = "enter"
)

var errNoService = errors.New("settings service not available")

// View shows the current settings and edits the storage backend and the
// extractor token.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	section  Section
	selected int

	tokenInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	tokenInput := textinput.New()
	tokenInput.Placeholder = "Enter extractor token"
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		tokenInput:      tokenInput,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoService}
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
		v.section = SectionOverview
		v.selected = 0
		v.tokenInput.SetValue("")
		v.tokenInput.Blur()
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
		v.section = SectionOverview
		v.selected = 0
		v.tokenInput.Blur()
		return v, nil
	}
	if v.settings == nil {
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionBackend:
		return v.handleBackendKeys(msg)
	case SectionExtractor:
		return v.handleExtractorKeys(msg)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	const items = 2

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
		switch v.selected {
		case 0:
			v.section = SectionBackend
			v.selected = v.backendIndex()
		case 1:
			v.section = SectionExtractor
			return v, v.tokenInput.Focus()
		}
	}
	return v, nil
}

func (v *View) handleBackendKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	backends := domain.AllStoreBackends()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(backends)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(backends) {
			return v, v.set("store.backend", backends[v.selected].String())
		}
	}
	return v, nil
}

func (v *View) handleExtractorKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		token := strings.TrimSpace(v.tokenInput.Value())
		if token == "" {
			return v, nil
		}
		return v, v.set("extractor.token", token)
	}
	var cmd tea.Cmd
	v.tokenInput, cmd = v.tokenInput.Update(msg)
	return v, cmd
}

func (v *View) set(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoService}
		}
		return messages.SettingsSaved{Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) backendIndex() int {
	for i, b := range domain.AllStoreBackends() {
		if b == v.settings.Store.Backend {
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
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionBackend:
		b.WriteString(v.renderBackendSelect())
	case SectionExtractor:
		b.WriteString(v.renderExtractor())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder
	s := v.settings

	extractor := "Not Set"
	if s.Extractor.Endpoint != "" {
		extractor = s.Extractor.Endpoint
	}
	items := []struct {
		label  string
		value  string
		status string
	}{
		{label: "Storage Backend", value: s.Store.Backend.Description(), status: configured(s.Store.IsConfigured(), "needs DSN")},
		{label: "Receipt Extractor", value: extractor, status: configured(s.Extractor.IsConfigured(), "needs token")},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s [%s]", indicator, item.label, item.value, item.status)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	user := s.UserID
	if user == "" {
		user = "local"
	}
	b.WriteString(v.styles.Muted.Render("  User: " + user))
	b.WriteString("\n")
	if s.Locale.File != "" {
		b.WriteString(v.styles.Muted.Render("  Locale: " + s.Locale.File))
		b.WriteString("\n")
	}
	if s.HTTP.Addr != "" {
		b.WriteString(v.styles.Muted.Render("  HTTP API: " + s.HTTP.Addr))
		b.WriteString("\n")
	}

	if v.settingsService != nil {
		b.WriteString("\n")
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Cheaper.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func configured(ok bool, missing string) string {
	if ok {
		return "configured"
	}
	return missing
}

func (v *View) renderBackendSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Storage Backend"))
	b.WriteString("\n\n")

	for i, backend := range domain.AllStoreBackends() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		current := ""
		if backend == v.settings.Store.Backend {
			current = " (current)"
		}
		line := indicator + backend.Description() + current
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
		if backend.RequiresDSN() {
			b.WriteString(v.styles.Muted.Render("    Requires: store.postgres_dsn"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *View) renderExtractor() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Extractor Token"))
	b.WriteString("\n\n")
	b.WriteString(v.tokenInput.View())
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionBackend:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionExtractor:
		return v.styles.Help.Render("[enter] save  [esc] back")
	default:
		return ""
	}
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.tokenInput.Width = width - 10
}

// Reset resets the view to its initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.tokenInput.SetValue("")
	v.tokenInput.Blur()
}
