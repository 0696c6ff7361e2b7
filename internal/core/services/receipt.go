package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
	"github.com/custodia-labs/receipta/internal/logger"
)

// Ensure ReceiptService implements the interface.
var _ driving.ReceiptService = (*ReceiptService)(nil)

// ReceiptService manages stored receipts.
type ReceiptService struct {
	store     driven.ReceiptStore
	reader    driven.ReceiptReader
	extractor driven.ReceiptExtractor
	now       func() time.Time
}

// NewReceiptService creates a new receipt service.
// reader and extractor may be nil; Import and Scan then report that the
// capability is unavailable.
func NewReceiptService(
	store driven.ReceiptStore,
	reader driven.ReceiptReader,
	extractor driven.ReceiptExtractor,
) *ReceiptService {
	return &ReceiptService{
		store:     store,
		reader:    reader,
		extractor: extractor,
		now:       time.Now,
	}
}

// Add validates and stores a new receipt.
func (s *ReceiptService) Add(ctx context.Context, receipt *domain.Receipt) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if receipt == nil {
		return fmt.Errorf("%w: receipt is required", domain.ErrInvalidInput)
	}

	s.prepare(receipt)
	if err := receipt.Validate(); err != nil {
		return err
	}

	if err := s.store.Save(ctx, receipt); err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}
	logger.Debug("Stored receipt %s (%d items) from %s", receipt.ID, len(receipt.Items), receipt.MerchantName)
	return nil
}

// prepare fills in everything the caller may leave out.
func (s *ReceiptService) prepare(receipt *domain.Receipt) {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = s.now().UTC()
	}
	receipt.MerchantName = strings.TrimSpace(receipt.MerchantName)
	receipt.Category = strings.TrimSpace(receipt.Category)
	if receipt.Category == "" {
		receipt.Category = domain.DefaultCategory
	}
	receipt.TransactionDate = domain.CanonicalDate(receipt.TransactionDate)
	for i := range receipt.Items {
		if receipt.Items[i].ID == "" {
			receipt.Items[i].ID = uuid.New().String()
		}
	}
	if receipt.TotalAmount.IsZero() {
		receipt.TotalAmount = receipt.ItemsTotal()
	}
}

// Get retrieves one of the user's receipts. A receipt owned by someone
// else is reported as domain.ErrNotFound.
func (s *ReceiptService) Get(ctx context.Context, userID, id string) (*domain.Receipt, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	receipt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !receipt.OwnedBy(userID) {
		return nil, domain.ErrNotFound
	}
	return receipt, nil
}

// List returns the user's receipts, most recent first.
func (s *ReceiptService) List(ctx context.Context, userID string) ([]domain.Receipt, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx, userID)
}

// Delete removes one of the user's receipts.
func (s *ReceiptService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Share turns on the public link of a receipt and returns its share ID.
// An already shared receipt keeps its ID.
func (s *ReceiptService) Share(ctx context.Context, userID, id string) (string, error) {
	receipt, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if receipt.IsShared && receipt.ShareID != "" {
		return receipt.ShareID, nil
	}

	receipt.IsShared = true
	receipt.ShareID = uuid.New().String()
	if err := s.store.Save(ctx, receipt); err != nil {
		return "", fmt.Errorf("share receipt: %w", err)
	}
	logger.Debug("Shared receipt %s as %s", receipt.ID, receipt.ShareID)
	return receipt.ShareID, nil
}

// Unshare turns off the public link. The share ID is discarded, so sharing
// again yields a new link.
func (s *ReceiptService) Unshare(ctx context.Context, userID, id string) error {
	receipt, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if !receipt.IsShared && receipt.ShareID == "" {
		return nil
	}

	receipt.IsShared = false
	receipt.ShareID = ""
	if err := s.store.Save(ctx, receipt); err != nil {
		return fmt.Errorf("unshare receipt: %w", err)
	}
	return nil
}

// GetShared retrieves a receipt through its public link.
func (s *ReceiptService) GetShared(ctx context.Context, shareID string) (*domain.Receipt, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(shareID) == "" {
		return nil, domain.ErrNotFound
	}
	return s.store.GetShared(ctx, shareID)
}

// Import reads receipts from a file and adds them for userID.
// Receipts that fail validation are skipped and logged; the count covers
// stored receipts only.
func (s *ReceiptService) Import(ctx context.Context, userID, path string) (int, error) {
	if s.store == nil || s.reader == nil {
		return 0, domain.ErrNotImplemented
	}

	receipts, err := s.reader.Read(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	stored := 0
	for i := range receipts {
		receipt := &receipts[i]
		if receipt.UserID == "" {
			receipt.UserID = userID
		}
		if err := s.Add(ctx, receipt); err != nil {
			if ctx.Err() != nil {
				return stored, ctx.Err()
			}
			logger.Warn("Skipping receipt %d in %s: %v", i+1, path, err)
			continue
		}
		stored++
	}

	logger.Info("Imported %d of %d receipts from %s", stored, len(receipts), path)
	return stored, nil
}

// Scan extracts a receipt from an image and adds it for userID.
func (s *ReceiptService) Scan(
	ctx context.Context, userID string, image []byte, contentType, category string,
) (*domain.Receipt, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if s.extractor == nil {
		return nil, domain.ErrExtractorUnavailable
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is empty", domain.ErrInvalidInput)
	}

	receipt, err := s.extractor.Extract(ctx, image, contentType)
	if err != nil {
		return nil, err
	}
	receipt.UserID = userID
	if category != "" {
		receipt.Category = category
	}
	if err := s.Add(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}
