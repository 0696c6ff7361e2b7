package clustering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

func member(id, date string) domain.GroupMember {
	return domain.GroupMember{
		Item:    domain.LineItem{ID: id, Description: "Süt " + id},
		Context: domain.ReceiptContext{ReceiptID: "r-" + id, MerchantName: "Migros", TransactionDate: date},
	}
}

func ids(members []domain.GroupMember) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Item.ID
	}
	return out
}

func TestHistory_MostRecentFirst(t *testing.T) {
	result := domain.NewClusteringResult()
	result.Add(&domain.ProductGroup{
		Label:         "PINAR SUT 1L",
		NormalizedKey: "sut",
		Members: []domain.GroupMember{
			member("a", "2024-01-10"),
			member("b", "2024-03-02"),
			member("c", "2024-02-15"),
		},
	})

	history, err := History(result, "PINAR SUT 1L")

	require.NoError(t, err)
	dates := []string{history[0].Context.TransactionDate, history[1].Context.TransactionDate, history[2].Context.TransactionDate}
	assert.Equal(t, []string{"2024-03-02", "2024-02-15", "2024-01-10"}, dates)
}

func TestHistory_UnknownLabel(t *testing.T) {
	_, err := History(domain.NewClusteringResult(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSortByDateDesc_StableOnTies(t *testing.T) {
	members := []domain.GroupMember{
		member("a", "2024-01-10"),
		member("b", "2024-01-10"),
		member("c", "2024-05-01"),
		member("d", "2024-01-10"),
	}

	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(SortByDateDesc(members)))
}

func TestSortByDateDesc_MalformedDatesSortLast(t *testing.T) {
	members := []domain.GroupMember{
		member("bad1", "someday"),
		member("a", "2024-01-10"),
		member("bad2", ""),
		member("b", "15.02.2024"),
	}

	assert.Equal(t, []string{"b", "a", "bad1", "bad2"}, ids(SortByDateDesc(members)))
}

func TestSortByDateDesc_DoesNotMutateInput(t *testing.T) {
	members := []domain.GroupMember{member("a", "2024-01-10"), member("b", "2024-03-02")}

	_ = SortByDateDesc(members)

	assert.Equal(t, []string{"a", "b"}, ids(members))
}

func TestEntries(t *testing.T) {
	m := member("a", "2024-01-10")
	m.Item.Quantity = decimal.NewFromInt(2)
	m.Item.UnitPrice = decimal.RequireFromString("3.50")

	entries := Entries([]domain.GroupMember{m})

	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-10", entries[0].Date)
	assert.Equal(t, "Migros", entries[0].MerchantName)
	assert.Equal(t, "Süt a", entries[0].Description)
	assert.Equal(t, "r-a", entries[0].ReceiptID)
	assert.True(t, decimal.RequireFromString("3.50").Equal(entries[0].UnitPrice))
}

func TestSummarize(t *testing.T) {
	result := domain.NewClusteringResult()
	milk := member("a", "2024-01-10")
	milk.Item.UnitPrice = decimal.RequireFromString("3.50")
	milk2 := member("b", "2024-02-10")
	milk2.Item.UnitPrice = decimal.RequireFromString("4.25")
	milk3 := member("c", "2024-03-10")
	milk3.Item.UnitPrice = decimal.RequireFromString("3.75")
	bread := member("d", "2024-01-10")
	bread.Item.UnitPrice = decimal.RequireFromString("5")

	result.Add(&domain.ProductGroup{Label: "Süt", NormalizedKey: "sut", Members: []domain.GroupMember{milk, milk2, milk3}})
	result.Add(&domain.ProductGroup{Label: "Ekmek", NormalizedKey: "ekmek", Members: []domain.GroupMember{bread}})

	summaries := Summarize(result)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Ekmek", summaries[0].Label)
	assert.Equal(t, 1, summaries[0].Purchases)
	assert.Equal(t, "Süt", summaries[1].Label)
	assert.Equal(t, 3, summaries[1].Purchases)
	assert.True(t, decimal.RequireFromString("3.50").Equal(summaries[1].LowestPrice))
	assert.True(t, decimal.RequireFromString("4.25").Equal(summaries[1].HighestPrice))
}
