package driving

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// AnalysisService answers product questions over a user's receipts.
// Every call clusters from scratch; nothing is cached between calls.
type AnalysisService interface {
	// Categories returns the distinct categories in use, sorted.
	Categories(ctx context.Context, userID string) ([]string, error)

	// Products clusters the category's line items and summarises each
	// product group, sorted by label.
	Products(ctx context.Context, userID, category string) ([]domain.ProductSummary, error)

	// History returns the purchases of one product, most recent first.
	// Returns domain.ErrNotFound if no group has the label.
	History(ctx context.Context, userID, category, label string) ([]domain.HistoryEntry, error)

	// Summary aggregates spending across all receipts.
	Summary(ctx context.Context, userID string) (*domain.SpendingSummary, error)
}
