package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/receipta/internal/core/domain"
)

func newReceipt(merchant, date, category string, items ...string) *domain.Receipt {
	r := &domain.Receipt{
		UserID:          "u-1",
		MerchantName:    merchant,
		TransactionDate: date,
		Category:        category,
	}
	for _, desc := range items {
		r.Items = append(r.Items, domain.LineItem{
			Description: desc,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString("10.00"),
		})
	}
	return r
}

func TestReceiptService_Add_FillsDefaults(t *testing.T) {
	store := memory.NewReceiptStore()
	service := NewReceiptService(store, nil, nil)
	fixed := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	receipt := newReceipt(" Migros ", "02.03.2024", "", "PINAR SUT 1L", "Ekmek")
	require.NoError(t, service.Add(context.Background(), receipt))

	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, "Migros", receipt.MerchantName)
	assert.Equal(t, domain.DefaultCategory, receipt.Category)
	assert.Equal(t, "2024-03-02", receipt.TransactionDate)
	assert.Equal(t, fixed, receipt.CreatedAt)
	assert.True(t, decimal.RequireFromString("20").Equal(receipt.TotalAmount))
	for _, item := range receipt.Items {
		assert.NotEmpty(t, item.ID)
	}

	stored, err := store.Get(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.Category, stored.Category)
}

func TestReceiptService_Add_KeepsExplicitTotal(t *testing.T) {
	service := NewReceiptService(memory.NewReceiptStore(), nil, nil)
	receipt := newReceipt("BIM", "2024-03-02", "Market", "Ekmek")
	receipt.TotalAmount = decimal.RequireFromString("9.95")

	require.NoError(t, service.Add(context.Background(), receipt))

	assert.True(t, decimal.RequireFromString("9.95").Equal(receipt.TotalAmount))
}

func TestReceiptService_Add_Invalid(t *testing.T) {
	service := NewReceiptService(memory.NewReceiptStore(), nil, nil)

	tests := []struct {
		name    string
		receipt *domain.Receipt
	}{
		{"nil", nil},
		{"no merchant", newReceipt("", "2024-03-02", "Market")},
		{"bad date", newReceipt("Migros", "yesterday", "Market")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Add(context.Background(), tt.receipt)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestReceiptService_NilStore(t *testing.T) {
	service := NewReceiptService(nil, nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, service.Add(ctx, newReceipt("Migros", "2024-03-02", "")), domain.ErrNotImplemented)
	_, err := service.Get(ctx, "u-1", "x")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.GetShared(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.Share(ctx, "u-1", "x")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.List(ctx, "u-1")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Delete(ctx, "u-1", "x"), domain.ErrNotImplemented)
	_, err = service.Import(ctx, "u-1", "a.json")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestReceiptService_ListAndDelete(t *testing.T) {
	service := NewReceiptService(memory.NewReceiptStore(), nil, nil)
	ctx := context.Background()
	older := newReceipt("Migros", "2024-01-10", "Market", "Süt")
	newer := newReceipt("BIM", "2024-03-02", "Market", "Süt")
	require.NoError(t, service.Add(ctx, older))
	require.NoError(t, service.Add(ctx, newer))

	list, err := service.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	require.NoError(t, service.Delete(ctx, "u-1", older.ID))
	assert.ErrorIs(t, service.Delete(ctx, "u-1", older.ID), domain.ErrNotFound)

	list, err = service.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReceiptService_OtherUsersReceiptIsNotFound(t *testing.T) {
	store := memory.NewReceiptStore()
	service := NewReceiptService(store, nil, nil)
	ctx := context.Background()
	receipt := newReceipt("Migros", "2024-01-10", "Market", "Süt")
	require.NoError(t, service.Add(ctx, receipt))

	_, err := service.Get(ctx, "u-2", receipt.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "u-2", receipt.ID), domain.ErrNotFound)
	_, err = service.Share(ctx, "u-2", receipt.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(ctx, receipt.ID)
	assert.NoError(t, err, "receipt must survive a foreign delete")

	got, err := service.Get(ctx, "u-1", receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, got.ID)
}

func TestReceiptService_ShareLifecycle(t *testing.T) {
	service := NewReceiptService(memory.NewReceiptStore(), nil, nil)
	ctx := context.Background()
	receipt := newReceipt("Migros", "2024-01-10", "Market", "Süt")
	require.NoError(t, service.Add(ctx, receipt))

	shareID, err := service.Share(ctx, "u-1", receipt.ID)
	require.NoError(t, err)
	require.NotEmpty(t, shareID)

	again, err := service.Share(ctx, "u-1", receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, shareID, again)

	shared, err := service.GetShared(ctx, shareID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, shared.ID)
	assert.True(t, shared.IsShared)

	require.NoError(t, service.Unshare(ctx, "u-1", receipt.ID))
	_, err = service.GetShared(ctx, shareID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := service.Get(ctx, "u-1", receipt.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsShared)
	assert.Empty(t, stored.ShareID)

	reshared, err := service.Share(ctx, "u-1", receipt.ID)
	require.NoError(t, err)
	assert.NotEqual(t, shareID, reshared)

	_, err = service.GetShared(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptService_Import(t *testing.T) {
	reader := &fakeReader{receipts: []domain.Receipt{
		*newReceipt("Migros", "2024-03-02", "Market", "Süt"),
		*newReceipt("", "2024-03-02", "Market", "Süt"),
		*newReceipt("BIM", "2024-03-05", "", "Ekmek"),
	}}
	reader.receipts[0].UserID = ""
	store := memory.NewReceiptStore()
	service := NewReceiptService(store, reader, nil)

	n, err := service.Import(context.Background(), "u-9", "receipts.json")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"receipts.json"}, reader.paths)

	mine, err := store.List(context.Background(), "u-9")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestReceiptService_Import_ReaderError(t *testing.T) {
	reader := &fakeReader{err: domain.ErrUnsupportedFormat}
	service := NewReceiptService(memory.NewReceiptStore(), reader, nil)

	_, err := service.Import(context.Background(), "u-1", "receipts.pdf")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestReceiptService_Scan(t *testing.T) {
	extractor := &fakeExtractor{receipt: newReceipt("Carrefour", "2024-03-02", "", "Yoğurt")}
	service := NewReceiptService(memory.NewReceiptStore(), nil, extractor)

	receipt, err := service.Scan(context.Background(), "u-3", []byte{0xFF, 0xD8}, "image/jpeg", "Market")

	require.NoError(t, err)
	assert.Equal(t, "u-3", receipt.UserID)
	assert.Equal(t, "Market", receipt.Category)
	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, "image/jpeg", extractor.contentType)
}

func TestReceiptService_Scan_Errors(t *testing.T) {
	ctx := context.Background()
	image := []byte{0xFF}

	_, err := NewReceiptService(memory.NewReceiptStore(), nil, nil).Scan(ctx, "u", image, "image/png", "")
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)

	extractor := &fakeExtractor{err: errors.New("boom")}
	service := NewReceiptService(memory.NewReceiptStore(), nil, extractor)
	_, err = service.Scan(ctx, "u", nil, "image/png", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, extractor.calls)

	_, err = service.Scan(ctx, "u", image, "image/png", "")
	assert.EqualError(t, err, "boom")
}
