package clustering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

func TestPrepare_FiltersCategoryAndKeepsOrder(t *testing.T) {
	n := turkishNormalizer()
	receipts := []domain.Receipt{
		{ID: "r-1", Category: "Market", MerchantName: "Migros", TransactionDate: "2024-03-02", Items: []domain.LineItem{
			{ID: "i-1", Description: "PINAR SUT 1L"},
			{ID: "i-2", Description: "500 GR"},
		}},
		{ID: "r-2", Category: "Restoran", Items: []domain.LineItem{{ID: "i-3", Description: "Lahmacun"}}},
		{ID: "r-3", Category: "Market", MerchantName: "BIM", Items: []domain.LineItem{{ID: "i-4", Description: "Ekmek"}}},
	}

	inputs := Prepare(n, receipts, "Market")

	require.Len(t, inputs, 3)
	assert.Equal(t, "i-1", inputs[0].Item.ID)
	assert.Equal(t, "sut", inputs[0].Canonical)
	assert.Equal(t, "Migros", inputs[0].Context.MerchantName)
	assert.Equal(t, "2024-03-02", inputs[0].Context.TransactionDate)
	assert.Equal(t, "r-1", inputs[0].Context.ReceiptID)
	assert.Equal(t, "i-2", inputs[1].Item.ID)
	assert.Equal(t, "", inputs[1].Canonical)
	assert.Equal(t, "i-4", inputs[2].Item.ID)
}

func TestPrepare_UnknownCategory(t *testing.T) {
	receipts := []domain.Receipt{{Category: "Market", Items: []domain.LineItem{{Description: "Ekmek"}}}}

	assert.Empty(t, Prepare(turkishNormalizer(), receipts, "Giyim"))
}

func TestCategories(t *testing.T) {
	receipts := []domain.Receipt{
		{Category: "Restoran"},
		{Category: "Market"},
		{Category: "Market"},
		{Category: "  "},
		{Category: "Elektronik"},
	}

	assert.Equal(t, []string{"Elektronik", "Market", "Restoran"}, Categories(receipts))
}

func TestCategories_Empty(t *testing.T) {
	assert.Empty(t, Categories(nil))
}
