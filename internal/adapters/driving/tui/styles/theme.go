// Package styles holds the colour palette and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
	Error      lipgloss.Color

	// Cheaper and Pricier colour a price against the previous purchase.
	Cheaper lipgloss.Color
	Pricier lipgloss.Color
}

// DefaultTheme is an orange and cyan palette for dark terminals.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F97316"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Border:     lipgloss.Color("#4B5563"),
		Bar:        lipgloss.Color("#1F2937"),
		Error:      lipgloss.Color("#F38BA8"),
		Cheaper:    lipgloss.Color("#A6E3A1"),
		Pricier:    lipgloss.Color("#F9E2AF"),
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style

	// Price renders amounts; Cheaper and Pricier render price movements.
	Price   lipgloss.Style
	Cheaper lipgloss.Style
	Pricier lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:    fg(theme.Error),
		Price:    fg(theme.Secondary),
		Cheaper:  fg(theme.Cheaper),
		Pricier:  fg(theme.Pricier),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
