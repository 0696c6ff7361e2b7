// Package categories provides the spending category picker for the TUI.
package categories

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// View lists the user's spending categories.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	userID   string

	list   *list.List
	bar    *status.Bar
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new categories view.
func NewView(s *styles.Styles, analysis driving.AnalysisService, userID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		analysis: analysis,
		userID:   userID,
		list:     list.New(s, "Categories"),
		bar:      status.NewBar(s, nil),
		width:    80,
		height:   24,
	}
}

// Init loads the categories.
func (v *View) Init() tea.Cmd {
	v.bar.SetState(status.StateLoading)
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.analysis == nil {
			return messages.CategoriesLoaded{Err: errors.New("analysis service not available")}
		}
		categories, err := v.analysis.Categories(context.Background(), v.userID)
		return messages.CategoriesLoaded{Categories: categories, Err: err}
	}
}

// Update handles messages for the categories view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CategoriesLoaded:
		v.err = msg.Err
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		rows := make([]list.Row, len(msg.Categories))
		for i, c := range msg.Categories {
			rows[i] = list.Row{Key: c, Title: c}
		}
		v.list.SetRows(rows)
		v.bar.SetCount(len(rows), "categories")
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "r":
			return v, v.Init()
		case "enter":
			row, ok := v.list.SelectedRow()
			if !ok {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.CategorySelected{Category: row.Key}
			}
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// View renders the categories view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Products by category"))
	b.WriteString("\n\n")
	if v.err == nil && v.list.IsEmpty() && v.bar.State() == status.StateList {
		b.WriteString(v.styles.Muted.Render("No receipts yet. Add some with 'receipta receipt add' or import a file."))
	} else {
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-4)
	v.bar.SetWidth(width)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
