package clustering

import (
	"sort"
	"strings"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// Prepare selects the receipts in category and flattens their line items
// into clustering inputs. Receipt order and item order are kept exactly as
// given since clustering depends on them.
func Prepare(n *Normalizer, receipts []domain.Receipt, category string) []Input {
	var inputs []Input
	for i := range receipts {
		r := &receipts[i]
		if r.Category != category {
			continue
		}
		ctx := r.Context()
		for _, item := range r.Items {
			inputs = append(inputs, Input{
				Raw:       item.Description,
				Canonical: n.Normalize(item.Description),
				Item:      item,
				Context:   ctx,
			})
		}
	}
	return inputs
}

// Categories returns the distinct non-blank categories of receipts, sorted.
func Categories(receipts []domain.Receipt) []string {
	seen := make(map[string]struct{})
	for i := range receipts {
		c := receipts[i].Category
		if strings.TrimSpace(c) == "" {
			continue
		}
		seen[c] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
