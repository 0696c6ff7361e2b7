// Package history shows the purchases of a single product.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// View is a product's price history, most recent first.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	userID   string

	category string
	label    string
	entries  []domain.HistoryEntry
	list     *list.List
	bar      *status.Bar
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new history view.
func NewView(s *styles.Styles, analysis driving.AnalysisService, userID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		analysis: analysis,
		userID:   userID,
		list:     list.New(s, "Purchases"),
		bar:      status.NewBar(s, nil),
		width:    80,
		height:   24,
	}
}

// SetProduct switches to a product and loads its history.
func (v *View) SetProduct(category, label string) tea.Cmd {
	v.category = category
	v.label = label
	v.entries = nil
	v.err = nil
	v.list.SetRows(nil)
	return v.Init()
}

// Init loads the history of the current product.
func (v *View) Init() tea.Cmd {
	v.bar.SetState(status.StateLoading)
	category, label := v.category, v.label
	return func() tea.Msg {
		if v.analysis == nil {
			return messages.HistoryLoaded{Label: label, Err: errors.New("analysis service not available")}
		}
		entries, err := v.analysis.History(context.Background(), v.userID, category, label)
		return messages.HistoryLoaded{Label: label, Entries: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		if msg.Label != v.label {
			return v, nil
		}
		v.err = msg.Err
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.entries = msg.Entries
		v.list.SetRows(rows(msg.Entries))
		v.bar.SetCount(len(msg.Entries), "purchases")
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewProducts}
			}
		case "r":
			return v, v.Init()
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// rows renders entries with a trend marker against the previous purchase.
// Entries arrive most recent first, so the previous purchase is the next entry.
func rows(entries []domain.HistoryEntry) []list.Row {
	out := make([]list.Row, len(entries))
	for i, e := range entries {
		value := e.UnitPrice.StringFixed(2)
		if i+1 < len(entries) {
			value += trend(e.UnitPrice, entries[i+1].UnitPrice)
		}
		detail := e.Description
		if !e.Quantity.IsZero() && !e.Quantity.Equal(decimal.NewFromInt(1)) {
			detail = fmt.Sprintf("%s x %s", detail, e.Quantity.String())
		}
		out[i] = list.Row{
			Key:    e.ReceiptID,
			Title:  fmt.Sprintf("%-10s  %s", e.Date, e.MerchantName),
			Detail: detail,
			Value:  value,
		}
	}
	return out
}

func trend(current, previous decimal.Decimal) string {
	switch current.Cmp(previous) {
	case 1:
		return " ▲"
	case -1:
		return " ▼"
	default:
		return "  "
	}
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.label))
	b.WriteString(v.styles.Muted.Render("  in " + v.category))
	b.WriteString("\n")
	if low, high, ok := v.Range(); ok {
		b.WriteString(v.styles.Cheaper.Render("lowest " + low.StringFixed(2)))
		b.WriteString("  ")
		b.WriteString(v.styles.Pricier.Render("highest " + high.StringFixed(2)))
	}
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// Range returns the lowest and highest unit price in the history.
func (v *View) Range() (low, high decimal.Decimal, ok bool) {
	if len(v.entries) == 0 {
		return low, high, false
	}
	low, high = v.entries[0].UnitPrice, v.entries[0].UnitPrice
	for _, e := range v.entries[1:] {
		low = decimal.Min(low, e.UnitPrice)
		high = decimal.Max(high, e.UnitPrice)
	}
	return low, high, true
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-5)
	v.bar.SetWidth(width)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
