package driven

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// ReceiptStore persists receipts together with their line items.
type ReceiptStore interface {
	// Save stores or replaces a receipt and all of its line items.
	Save(ctx context.Context, receipt *domain.Receipt) error

	// Get retrieves a receipt by ID.
	// Returns domain.ErrNotFound if the receipt does not exist.
	Get(ctx context.Context, id string) (*domain.Receipt, error)

	// GetShared retrieves the receipt whose share link is shareID.
	// Returns domain.ErrNotFound unless the receipt exists and is shared.
	GetShared(ctx context.Context, shareID string) (*domain.Receipt, error)

	// Delete removes a receipt and its line items.
	Delete(ctx context.Context, id string) error

	// List returns every receipt owned by userID, most recent transaction
	// first. Ties are broken by creation time, then ID.
	List(ctx context.Context, userID string) ([]domain.Receipt, error)
}
