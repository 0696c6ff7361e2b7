package clustering

import (
	"sort"
	"time"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// History returns the members of the labelled group, most recent first.
func History(result *domain.ClusteringResult, label string) ([]domain.GroupMember, error) {
	group, ok := result.Get(label)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return SortByDateDesc(group.Members), nil
}

// SortByDateDesc returns a copy of members ordered by transaction date,
// newest first. Equal dates keep their assignment order. Members whose date
// cannot be parsed sort after every dated member, in assignment order.
func SortByDateDesc(members []domain.GroupMember) []domain.GroupMember {
	type keyed struct {
		member domain.GroupMember
		date   time.Time
		valid  bool
	}

	rows := make([]keyed, len(members))
	for i, m := range members {
		d, err := domain.ParseTransactionDate(m.Context.TransactionDate)
		rows[i] = keyed{member: m, date: d, valid: err == nil}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return false
		}
		return a.date.After(b.date)
	})

	out := make([]domain.GroupMember, len(rows))
	for i := range rows {
		out[i] = rows[i].member
	}
	return out
}

// Entries converts sorted members to display rows.
func Entries(members []domain.GroupMember) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(members))
	for i, m := range members {
		out[i] = domain.HistoryEntry{
			Date:         m.Context.TransactionDate,
			MerchantName: m.Context.MerchantName,
			Description:  m.Item.Description,
			Quantity:     m.Item.Quantity,
			UnitPrice:    m.Item.UnitPrice,
			ReceiptID:    m.Context.ReceiptID,
		}
	}
	return out
}

// Summarize lists every group with its purchase count and price range,
// sorted by label.
func Summarize(result *domain.ClusteringResult) []domain.ProductSummary {
	out := make([]domain.ProductSummary, 0, result.Len())
	for _, label := range result.Labels() {
		group, _ := result.Get(label)
		s := domain.ProductSummary{
			Label:         group.Label,
			NormalizedKey: group.NormalizedKey,
			Purchases:     len(group.Members),
		}
		for i, m := range group.Members {
			price := m.Item.UnitPrice
			if i == 0 || price.LessThan(s.LowestPrice) {
				s.LowestPrice = price
			}
			if i == 0 || price.GreaterThan(s.HighestPrice) {
				s.HighestPrice = price
			}
		}
		out = append(out, s)
	}
	return out
}
