package importer

import "strings"

// Column and JSON key aliases, matched case-insensitively with spaces,
// dashes and underscores ignored. The first alias present wins.
var (
	aliasReceiptID   = []string{"receiptid", "receipt"}
	aliasMerchant    = []string{"merchantname", "merchant", "storename", "store"}
	aliasDate        = []string{"transactiondate", "date"}
	aliasTime        = []string{"transactiontime", "time"}
	aliasCategory    = []string{"category"}
	aliasTotalVAT    = []string{"totalvat", "vat", "taxprice", "tax"}
	aliasTotalAmount = []string{"totalamount", "totalprice", "total"}
	aliasItems       = []string{"items", "menu"}
	aliasDescription = []string{"description", "nm", "name", "product"}
	aliasQuantity    = []string{"quantity", "cnt", "qty"}
	aliasUnitPrice   = []string{"unitprice", "price"}
)

// fieldKey folds a header or key for alias matching.
func fieldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
