package driving

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// ReceiptService manages stored receipts.
type ReceiptService interface {
	// Add validates and stores a new receipt, assigning IDs, the default
	// category and the total when they are missing.
	Add(ctx context.Context, receipt *domain.Receipt) error

	// Get retrieves one of the user's receipts. Receipts owned by another
	// user are reported as domain.ErrNotFound.
	Get(ctx context.Context, userID, id string) (*domain.Receipt, error)

	// List returns the user's receipts, most recent first.
	List(ctx context.Context, userID string) ([]domain.Receipt, error)

	// Delete removes one of the user's receipts.
	Delete(ctx context.Context, userID, id string) error

	// Share enables the public link of a receipt and returns its share ID.
	Share(ctx context.Context, userID, id string) (string, error)

	// Unshare disables the public link and discards the share ID.
	Unshare(ctx context.Context, userID, id string) error

	// GetShared retrieves a shared receipt by share ID, for any caller.
	GetShared(ctx context.Context, shareID string) (*domain.Receipt, error)

	// Import reads receipts from a file and adds them for userID.
	// Returns the number of receipts stored.
	Import(ctx context.Context, userID, path string) (int, error)

	// Scan extracts a receipt from an image and adds it for userID.
	Scan(ctx context.Context, userID string, image []byte, contentType, category string) (*domain.Receipt, error)
}
