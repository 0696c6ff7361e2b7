// Package products lists the product groups of one category.
package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// View lists the products of a category with their price ranges.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	userID   string

	category  string
	list      *list.List
	filter    *input.FilterInput
	bar       *status.Bar
	filtering bool
	width     int
	height    int
	ready     bool
	err       error
}

// NewView creates a new products view.
func NewView(s *styles.Styles, analysis driving.AnalysisService, userID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		analysis: analysis,
		userID:   userID,
		list:     list.New(s, "Products"),
		filter:   input.NewFilterInput(s, "Filter"),
		bar:      status.NewBar(s, nil),
		width:    80,
		height:   24,
	}
}

// SetCategory switches to a category and loads its products.
func (v *View) SetCategory(category string) tea.Cmd {
	v.category = category
	v.err = nil
	v.filtering = false
	v.filter.Reset()
	v.filter.Blur()
	v.list.SetFilter("")
	v.list.SetRows(nil)
	return v.Init()
}

// Category returns the category being shown.
func (v *View) Category() string {
	return v.category
}

// Init loads the products of the current category.
func (v *View) Init() tea.Cmd {
	v.bar.SetState(status.StateLoading)
	category := v.category
	return func() tea.Msg {
		if v.analysis == nil {
			return messages.ProductsLoaded{Category: category, Err: errors.New("analysis service not available")}
		}
		products, err := v.analysis.Products(context.Background(), v.userID, category)
		return messages.ProductsLoaded{Category: category, Products: products, Err: err}
	}
}

// Update handles messages for the products view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProductsLoaded:
		if msg.Category != v.category {
			return v, nil
		}
		return v, v.loaded(msg)

	case tea.KeyMsg:
		if v.filtering {
			return v, v.updateFilter(msg)
		}
		switch msg.String() {
		case "esc":
			if v.list.Filter() != "" {
				v.filter.Reset()
				v.list.SetFilter("")
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewCategories}
			}
		case "/":
			v.filtering = true
			return v, v.filter.Focus()
		case "r":
			return v, v.Init()
		case "enter":
			row, ok := v.list.SelectedRow()
			if !ok {
				return v, nil
			}
			category := v.category
			return v, func() tea.Msg {
				return messages.ProductSelected{Category: category, Label: row.Key}
			}
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) loaded(msg messages.ProductsLoaded) tea.Cmd {
	v.err = msg.Err
	if errors.Is(msg.Err, domain.ErrEmptyCategory) {
		v.err = nil
		v.list.SetRows(nil)
		v.bar.SetCount(0, "products")
		return nil
	}
	if msg.Err != nil {
		v.bar.SetError(msg.Err)
		return nil
	}

	rows := make([]list.Row, len(msg.Products))
	for i, p := range msg.Products {
		rows[i] = list.Row{
			Key:    p.Label,
			Title:  p.Label,
			Detail: purchases(p.Purchases),
			Value:  priceRange(p),
		}
	}
	v.list.SetRows(rows)
	v.bar.SetCount(len(rows), "products")
	return nil
}

func (v *View) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		v.filtering = false
		v.filter.Blur()
		return nil
	case "esc":
		v.filtering = false
		v.filter.Blur()
		v.filter.Reset()
		v.list.SetFilter("")
		return nil
	}
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.list.SetFilter(v.filter.Value())
	return cmd
}

func purchases(n int) string {
	if n == 1 {
		return "1 purchase"
	}
	return fmt.Sprintf("%d purchases", n)
}

func priceRange(p domain.ProductSummary) string {
	if p.LowestPrice.Equal(p.HighestPrice) {
		return p.LowestPrice.StringFixed(2)
	}
	return p.LowestPrice.StringFixed(2) + " - " + p.HighestPrice.StringFixed(2)
}

// View renders the products view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.category))
	b.WriteString("\n\n")
	if v.filtering || v.list.Filter() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}
	if v.err == nil && v.list.IsEmpty() && v.list.Filter() == "" && v.bar.State() == status.StateList {
		b.WriteString(v.styles.Muted.Render("No products in this category."))
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
	v.list.SetDimensions(width, height-7)
	v.filter.SetWidth(width)
	v.bar.SetWidth(width)
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.filtering
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
