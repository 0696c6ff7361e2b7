package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
)

// Ensure ReceiptStore implements the interface.
var _ driven.ReceiptStore = (*ReceiptStore)(nil)

// ReceiptStore is an in-memory implementation of driven.ReceiptStore.
// Receipts are copied on the way in and out so callers never share the
// stored item slices.
type ReceiptStore struct {
	mu       sync.RWMutex
	receipts map[string]domain.Receipt
}

// NewReceiptStore creates a new in-memory receipt store.
func NewReceiptStore() *ReceiptStore {
	return &ReceiptStore{
		receipts: make(map[string]domain.Receipt),
	}
}

// Save stores or replaces a receipt.
func (s *ReceiptStore) Save(_ context.Context, receipt *domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[receipt.ID] = clone(*receipt)
	return nil
}

// Get retrieves a receipt by ID.
func (s *ReceiptStore) Get(_ context.Context, id string) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	receipt, ok := s.receipts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(receipt)
	return &out, nil
}

// GetShared retrieves a shared receipt by its share ID.
func (s *ReceiptStore) GetShared(_ context.Context, shareID string) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, receipt := range s.receipts {
		if receipt.IsShared && receipt.ShareID == shareID {
			out := clone(receipt)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a receipt.
func (s *ReceiptStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.receipts, id)
	return nil
}

// List returns the user's receipts, most recent first.
func (s *ReceiptStore) List(_ context.Context, userID string) ([]domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Receipt, 0, len(s.receipts))
	for _, receipt := range s.receipts {
		if receipt.UserID != userID {
			continue
		}
		result = append(result, clone(receipt))
	}
	domain.SortByRecency(result)
	return result, nil
}

func clone(r domain.Receipt) domain.Receipt {
	if r.Items != nil {
		r.Items = append([]domain.LineItem(nil), r.Items...)
	}
	return r
}
