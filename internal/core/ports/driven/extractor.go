package driven

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// ReceiptExtractor turns a photographed receipt into structured data.
// The returned receipt has no ID or UserID; the caller assigns them.
type ReceiptExtractor interface {
	Extract(ctx context.Context, image []byte, contentType string) (*domain.Receipt, error)
}
