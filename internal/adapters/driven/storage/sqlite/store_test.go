package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func testReceipt(id, user, date string) *domain.Receipt {
	return &domain.Receipt{
		ID:              id,
		UserID:          user,
		MerchantName:    "Migros",
		TransactionDate: date,
		TransactionTime: "10:15",
		Category:        "Market",
		Items: []domain.LineItem{
			{ID: id + "-1", Description: "PINAR SUT 1L", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("24.50")},
			{ID: id + "-2", Description: "Ekmek", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("10")},
		},
		TotalVAT:    decimal.RequireFromString("5.90"),
		TotalAmount: decimal.RequireFromString("59.00"),
		CreatedAt:   time.Date(2024, 3, 2, 10, 20, 0, 123, time.UTC),
	}
}

// ==================== Store Creation Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "receipts.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

// ==================== Receipt Store Tests ====================

func TestReceiptStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()
	ctx := context.Background()
	want := testReceipt("r-1", "u-1", "2024-03-02")

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Get(ctx, "r-1")

	require.NoError(t, err)
	assert.Equal(t, "Migros", got.MerchantName)
	assert.Equal(t, "10:15", got.TransactionTime)
	assert.True(t, want.TotalVAT.Equal(got.TotalVAT))
	assert.True(t, want.TotalAmount.Equal(got.TotalAmount))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "PINAR SUT 1L", got.Items[0].Description)
	assert.True(t, decimal.NewFromInt(2).Equal(got.Items[0].Quantity))
	assert.True(t, decimal.RequireFromString("24.50").Equal(got.Items[0].UnitPrice))
	assert.Equal(t, "Ekmek", got.Items[1].Description)
}

func TestReceiptStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptStore_Save_ReplacesItems(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()
	ctx := context.Background()
	receipt := testReceipt("r-1", "u-1", "2024-03-02")
	require.NoError(t, store.Save(ctx, receipt))

	receipt.Category = "Restoran"
	receipt.Items = receipt.Items[1:]
	require.NoError(t, store.Save(ctx, receipt))

	got, err := store.Get(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Restoran", got.Category)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Ekmek", got.Items[0].Description)
}

func TestReceiptStore_Save_SetsCreatedAt(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()
	receipt := testReceipt("r-1", "u-1", "2024-03-02")
	receipt.CreatedAt = time.Time{}

	require.NoError(t, store.Save(context.Background(), receipt))

	assert.False(t, receipt.CreatedAt.IsZero())
}

func TestReceiptStore_Delete_CascadesItems(t *testing.T) {
	s := setupTestStore(t)
	store := s.ReceiptStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testReceipt("r-1", "u-1", "2024-03-02")))

	require.NoError(t, store.Delete(ctx, "r-1"))

	_, err := store.Get(ctx, "r-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM line_items").Scan(&count))
	assert.Zero(t, count)
}

func TestReceiptStore_List_OrderAndFilter(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()
	ctx := context.Background()

	jan := testReceipt("jan", "u-1", "2024-01-10")
	mar := testReceipt("mar", "u-1", "2024-03-02")
	marLate := testReceipt("mar-late", "u-1", "2024-03-02")
	marLate.TransactionTime = "18:00"
	feb := testReceipt("feb", "u-1", "2024-02-15")
	other := testReceipt("other", "u-2", "2024-05-01")
	for _, r := range []*domain.Receipt{jan, mar, marLate, feb, other} {
		require.NoError(t, store.Save(ctx, r))
	}

	list, err := store.List(ctx, "u-1")

	require.NoError(t, err)
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.ID
		assert.Len(t, r.Items, 2)
	}
	assert.Equal(t, []string{"mar-late", "mar", "feb", "jan"}, ids)
}

func TestReceiptStore_List_Empty(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()

	list, err := store.List(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReceiptStore_GetShared(t *testing.T) {
	store := setupTestStore(t).ReceiptStore()
	ctx := context.Background()

	shared := testReceipt("r-1", "ayse", "2024-03-02")
	shared.IsShared, shared.ShareID = true, "share-1"
	require.NoError(t, store.Save(ctx, shared))
	require.NoError(t, store.Save(ctx, testReceipt("r-2", "ayse", "2024-03-03")))

	got, err := store.GetShared(ctx, "share-1")
	require.NoError(t, err)
	assert.Equal(t, "r-1", got.ID)
	assert.True(t, got.IsShared)
	assert.Len(t, got.Items, 2)

	// Private receipts keep a NULL share id, so several may coexist.
	require.NoError(t, store.Save(ctx, testReceipt("r-3", "ayse", "2024-03-04")))
	private, err := store.Get(ctx, "r-3")
	require.NoError(t, err)
	assert.False(t, private.IsShared)
	assert.Empty(t, private.ShareID)

	shared.IsShared, shared.ShareID = false, ""
	require.NoError(t, store.Save(ctx, shared))
	_, err = store.GetShared(ctx, "share-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
