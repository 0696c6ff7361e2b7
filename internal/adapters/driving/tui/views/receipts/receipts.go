// Package receipts lists stored receipts and their line items.
package receipts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// View lists receipts, most recent first. Enter expands the highlighted
// receipt, s toggles its public link and d then y deletes it.
type View struct {
	styles  *styles.Styles
	service driving.ReceiptService
	userID  string

	receipts      map[string]domain.Receipt
	list          *list.List
	bar           *status.Bar
	expanded      string
	confirmDelete string
	notice        string
	width         int
	height        int
	ready         bool
	err           error
}

// NewView creates a new receipts view.
func NewView(s *styles.Styles, service driving.ReceiptService, userID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		service:  service,
		userID:   userID,
		receipts: make(map[string]domain.Receipt),
		list:     list.New(s, "Receipts"),
		bar:      status.NewBar(s, nil),
		width:    80,
		height:   24,
	}
}

// Init loads the receipts.
func (v *View) Init() tea.Cmd {
	v.bar.SetState(status.StateLoading)
	v.expanded = ""
	v.confirmDelete = ""
	return func() tea.Msg {
		if v.service == nil {
			return messages.ReceiptsLoaded{Err: errors.New("receipt service not available")}
		}
		receipts, err := v.service.List(context.Background(), v.userID)
		return messages.ReceiptsLoaded{Receipts: receipts, Err: err}
	}
}

func (v *View) deleteReceipt(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.service.Delete(context.Background(), v.userID, id)
		return messages.ReceiptDeleted{ID: id, Err: err}
	}
}

func (v *View) toggleShare(r domain.Receipt) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if r.IsShared {
			err := v.service.Unshare(ctx, v.userID, r.ID)
			return messages.ReceiptShareChanged{ID: r.ID, Err: err}
		}
		shareID, err := v.service.Share(ctx, v.userID, r.ID)
		return messages.ReceiptShareChanged{ID: r.ID, ShareID: shareID, Err: err}
	}
}

// Update handles messages for the receipts view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReceiptsLoaded:
		v.err = msg.Err
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.setReceipts(msg.Receipts)
		return v, nil

	case messages.ReceiptDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetError(msg.Err)
			return v, nil
		}
		return v, v.Init()

	case messages.ReceiptShareChanged:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.notice = "Receipt is private"
		if msg.ShareID != "" {
			v.notice = "Shared at /api/shared/" + msg.ShareID
		}
		return v, v.Init()

	case tea.KeyMsg:
		if v.confirmDelete != "" {
			id := v.confirmDelete
			v.confirmDelete = ""
			if msg.String() == "y" && v.service != nil {
				return v, v.deleteReceipt(id)
			}
			v.bar.SetCount(v.list.Count(), "receipts")
			return v, nil
		}
		switch msg.String() {
		case "esc":
			if v.expanded != "" {
				v.expanded = ""
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "r":
			return v, v.Init()
		case "enter":
			if row, ok := v.list.SelectedRow(); ok {
				if v.expanded == row.Key {
					v.expanded = ""
				} else {
					v.expanded = row.Key
				}
			}
			return v, nil
		case "s":
			if row, ok := v.list.SelectedRow(); ok && v.service != nil {
				return v, v.toggleShare(v.receipts[row.Key])
			}
			return v, nil
		case "d":
			if row, ok := v.list.SelectedRow(); ok {
				v.confirmDelete = row.Key
				v.bar.SetMessage(fmt.Sprintf("Delete receipt from %s? (y/n)", row.Title))
				v.bar.SetState(status.StateReady)
			}
			return v, nil
		}
		v.list, _ = v.list.Update(msg)
		v.expanded = ""
	}
	return v, nil
}

func (v *View) setReceipts(receipts []domain.Receipt) {
	v.receipts = make(map[string]domain.Receipt, len(receipts))
	rows := make([]list.Row, len(receipts))
	for i := range receipts {
		r := receipts[i]
		v.receipts[r.ID] = r
		when := r.TransactionDate
		if r.TransactionTime != "" {
			when += " " + r.TransactionTime
		}
		detail := fmt.Sprintf("%s  %s  %d items", when, r.Category, len(r.Items))
		if r.IsShared {
			detail += "  shared"
		}
		rows[i] = list.Row{
			Key:    r.ID,
			Title:  r.MerchantName,
			Detail: detail,
			Value:  r.TotalAmount.StringFixed(2),
		}
	}
	v.list.SetRows(rows)
	v.bar.SetMessage("")
	v.bar.SetCount(len(rows), "receipts")
	if v.notice != "" {
		v.bar.SetMessage(v.notice)
		v.bar.SetState(status.StateReady)
		v.notice = ""
	}
}

// View renders the receipts view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Receipts"))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	if r, ok := v.receipts[v.expanded]; ok && v.expanded != "" {
		b.WriteString("\n\n")
		b.WriteString(v.renderItems(&r))
	}
	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderItems(r *domain.Receipt) string {
	lines := []string{v.styles.Subtitle.Render(r.MerchantName + " " + r.TransactionDate)}
	for _, item := range r.Items {
		lines = append(lines, fmt.Sprintf("  %-32s %5s x %8s = %s",
			item.Description, item.Quantity.String(), item.UnitPrice.StringFixed(2),
			v.styles.Price.Render(item.LineTotal().StringFixed(2))))
	}
	if !r.TotalVAT.IsZero() {
		lines = append(lines, v.styles.Muted.Render("  VAT "+r.TotalVAT.StringFixed(2)))
	}
	lines = append(lines, v.styles.Normal.Render("  Total "+r.TotalAmount.StringFixed(2)))
	if r.IsShared {
		lines = append(lines, v.styles.Muted.Render("  Shared at /api/shared/"+r.ShareID))
	}
	return strings.Join(lines, "\n")
}

// Expanded returns the ID of the expanded receipt, if any.
func (v *View) Expanded() string {
	return v.expanded
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height/2)
	v.bar.SetWidth(width)
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
