package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/locale"
)

func item(desc, price string) domain.LineItem {
	return domain.LineItem{
		ID:          desc + "@" + price,
		Description: desc,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func seedAnalysis(t *testing.T) *AnalysisService {
	t.Helper()
	store := memory.NewReceiptStore()
	ctx := context.Background()
	receipts := []domain.Receipt{
		{ID: "r-jan", UserID: "u-1", MerchantName: "Migros", TransactionDate: "2024-01-10", Category: "Market",
			Items: []domain.LineItem{item("PINAR SUT 1L", "3.50")}, TotalAmount: decimal.RequireFromString("3.50")},
		{ID: "r-mar", UserID: "u-1", MerchantName: "Şok", TransactionDate: "2024-03-02", Category: "Market",
			Items: []domain.LineItem{item("SUT 1 LT", "4.25")}, TotalAmount: decimal.RequireFromString("4.25")},
		{ID: "r-feb", UserID: "u-1", MerchantName: "BIM", TransactionDate: "2024-02-15", Category: "Market",
			Items:       []domain.LineItem{item("Tam Yağlı Süt 1Lt", "3.75"), item("Ekmek", "5.00")},
			TotalAmount: decimal.RequireFromString("8.75")},
		{ID: "r-food", UserID: "u-1", MerchantName: "Köfteci", TransactionDate: "2024-02-01", Category: "Restoran",
			Items: []domain.LineItem{item("Köfte", "120")}, TotalAmount: decimal.RequireFromString("120")},
		{ID: "r-other", UserID: "u-2", MerchantName: "Migros", TransactionDate: "2024-02-01", Category: "Giyim",
			Items: []domain.LineItem{item("Gömlek", "300")}, TotalAmount: decimal.RequireFromString("300")},
	}
	for i := range receipts {
		require.NoError(t, store.Save(ctx, &receipts[i]))
	}
	return NewAnalysisService(store, locale.Default())
}

func TestAnalysisService_Categories(t *testing.T) {
	service := seedAnalysis(t)

	categories, err := service.Categories(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Market", "Restoran"}, categories)
}

func TestAnalysisService_Products(t *testing.T) {
	service := seedAnalysis(t)

	products, err := service.Products(context.Background(), "u-1", "Market")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Ekmek", products[0].Label)
	// Receipts are clustered newest first, so the March line founds the group.
	assert.Equal(t, "SUT 1 LT", products[1].Label)
	assert.Equal(t, "sut", products[1].NormalizedKey)
	assert.Equal(t, 3, products[1].Purchases)
	assert.True(t, decimal.RequireFromString("3.50").Equal(products[1].LowestPrice))
	assert.True(t, decimal.RequireFromString("4.25").Equal(products[1].HighestPrice))
}

func TestAnalysisService_Products_EmptyCategory(t *testing.T) {
	service := seedAnalysis(t)

	_, err := service.Products(context.Background(), "u-1", "Elektronik")

	assert.ErrorIs(t, err, domain.ErrEmptyCategory)
}

func TestAnalysisService_History(t *testing.T) {
	service := seedAnalysis(t)

	history, err := service.History(context.Background(), "u-1", "Market", "SUT 1 LT")

	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2024-03-02", history[0].Date)
	assert.Equal(t, "2024-02-15", history[1].Date)
	assert.Equal(t, "2024-01-10", history[2].Date)
	assert.Equal(t, "BIM", history[1].MerchantName)
	assert.Equal(t, "Tam Yağlı Süt 1Lt", history[1].Description)
}

func TestAnalysisService_History_UnknownLabel(t *testing.T) {
	service := seedAnalysis(t)

	_, err := service.History(context.Background(), "u-1", "Market", "Peynir")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalysisService_History_SeesNewReceipts(t *testing.T) {
	store := memory.NewReceiptStore()
	service := NewAnalysisService(store, locale.Default())
	ctx := context.Background()
	first := domain.Receipt{ID: "r-1", UserID: "u", MerchantName: "Migros", TransactionDate: "2024-01-01",
		Category: "Market", Items: []domain.LineItem{item("Ekmek", "5")}}
	require.NoError(t, store.Save(ctx, &first))

	history, err := service.History(ctx, "u", "Market", "Ekmek")
	require.NoError(t, err)
	require.Len(t, history, 1)

	second := domain.Receipt{ID: "r-2", UserID: "u", MerchantName: "BIM", TransactionDate: "2023-12-01",
		Category: "Market", Items: []domain.LineItem{item("EKMEK", "4")}}
	require.NoError(t, store.Save(ctx, &second))

	history, err = service.History(ctx, "u", "Market", "Ekmek")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestAnalysisService_Summary(t *testing.T) {
	service := seedAnalysis(t)
	fixed := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	summary, err := service.Summary(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, 4, summary.ReceiptCount)
	assert.True(t, decimal.RequireFromString("136.50").Equal(summary.TotalSpent))
	assert.Equal(t, fixed, summary.GeneratedAt)
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Market", summary.Categories[0].Category)
	assert.Equal(t, 3, summary.Categories[0].ReceiptCount)
	assert.True(t, decimal.RequireFromString("16.50").Equal(summary.Categories[0].TotalSpent))
	assert.Equal(t, "Restoran", summary.Categories[1].Category)
	require.Len(t, summary.Achievements, 3)
	assert.True(t, summary.Achievements[0].Unlocked)
	assert.False(t, summary.Achievements[1].Unlocked)
}

func TestAnalysisService_Summary_NoReceipts(t *testing.T) {
	service := NewAnalysisService(memory.NewReceiptStore(), locale.Default())

	summary, err := service.Summary(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Equal(t, 0, summary.ReceiptCount)
	assert.True(t, summary.TotalSpent.IsZero())
	assert.Empty(t, summary.Categories)
	for _, a := range summary.Achievements {
		assert.False(t, a.Unlocked, a.ID)
	}
}

func TestAnalysisService_NilStore(t *testing.T) {
	service := NewAnalysisService(nil, domain.LocaleTables{})

	_, err := service.Categories(context.Background(), "u")

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
