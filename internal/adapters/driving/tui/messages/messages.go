// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/receipta/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCategories lists spending categories.
	ViewCategories
	// ViewProducts lists the product groups of one category.
	ViewProducts
	// ViewHistory shows the purchases of one product.
	ViewHistory
	// ViewReceipts lists stored receipts.
	ViewReceipts
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings shows the current settings.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCategories:
		return "categories"
	case ViewProducts:
		return "products"
	case ViewHistory:
		return "history"
	case ViewReceipts:
		return "receipts"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CategoriesLoaded carries the user's spending categories.
type CategoriesLoaded struct {
	Categories []string
	Err        error
}

// CategorySelected signals a category was chosen for product listing.
type CategorySelected struct {
	Category string
}

// ProductsLoaded carries the product groups of a category.
type ProductsLoaded struct {
	Category string
	Products []domain.ProductSummary
	Err      error
}

// ProductSelected signals a product was chosen for its price history.
type ProductSelected struct {
	Category string
	Label    string
}

// HistoryLoaded carries the purchases of one product.
type HistoryLoaded struct {
	Label   string
	Entries []domain.HistoryEntry
	Err     error
}

// ReceiptsLoaded carries the user's receipts.
type ReceiptsLoaded struct {
	Receipts []domain.Receipt
	Err      error
}

// ReceiptDeleted signals a receipt was removed.
type ReceiptDeleted struct {
	ID  string
	Err error
}

// ReceiptShareChanged reports a share toggle. ShareID is empty once the
// receipt is private again.
type ReceiptShareChanged struct {
	ID      string
	ShareID string
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a settings change was written.
type SettingsSaved struct {
	Err error
}
