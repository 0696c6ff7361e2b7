package driven

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// ReceiptReader parses receipts from an import file.
type ReceiptReader interface {
	// Extensions returns the lower-case file extensions handled, with dot.
	Extensions() []string

	// Read parses every receipt in the file at path.
	// Returns domain.ErrUnsupportedFormat for unhandled extensions.
	Read(ctx context.Context, path string) ([]domain.Receipt, error)
}
