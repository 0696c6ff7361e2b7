package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// columns maps each known field to its index in a header row, or -1.
type columns struct {
	receiptID, merchant, date, time, category int
	totalVAT, totalAmount                     int
	description, quantity, unitPrice          int
}

func newColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := fieldKey(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}

	c := columns{
		receiptID:   find(aliasReceiptID),
		merchant:    find(aliasMerchant),
		date:        find(aliasDate),
		time:        find(aliasTime),
		category:    find(aliasCategory),
		totalVAT:    find(aliasTotalVAT),
		totalAmount: find(aliasTotalAmount),
		description: find(aliasDescription),
		quantity:    find(aliasQuantity),
		unitPrice:   find(aliasUnitPrice),
	}
	if c.merchant < 0 || c.date < 0 || c.description < 0 {
		return c, fmt.Errorf("%w: header needs merchant, date and description columns", domain.ErrInvalidInput)
	}
	return c, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellAmount(row []string, i int) (decimal.Decimal, error) {
	s := cell(row, i)
	if s == "" {
		return decimal.Zero, nil
	}
	return domain.ParseAmount(s)
}

// assemble groups line item rows into receipts. Rows sharing a receipt id
// column, or when there is none the same merchant, date and time, belong
// to one receipt. Receipts and items keep their first-seen order.
func assemble(header []string, rows [][]string) ([]domain.Receipt, error) {
	cols, err := newColumns(header)
	if err != nil {
		return nil, err
	}

	var receipts []domain.Receipt
	byKey := make(map[string]int)
	for n, row := range rows {
		line := n + 2 // 1-based, after the header
		if isBlank(row) {
			continue
		}

		key := cell(row, cols.receiptID)
		if key == "" {
			key = strings.Join([]string{cell(row, cols.merchant), cell(row, cols.date), cell(row, cols.time)}, "\x00")
		}
		idx, ok := byKey[key]
		if !ok {
			r := domain.Receipt{
				MerchantName:    cell(row, cols.merchant),
				TransactionDate: cell(row, cols.date),
				TransactionTime: cell(row, cols.time),
				Category:        cell(row, cols.category),
			}
			if r.TotalVAT, err = cellAmount(row, cols.totalVAT); err != nil {
				return nil, fmt.Errorf("row %d total vat: %w", line, err)
			}
			if r.TotalAmount, err = cellAmount(row, cols.totalAmount); err != nil {
				return nil, fmt.Errorf("row %d total: %w", line, err)
			}
			receipts = append(receipts, r)
			idx = len(receipts) - 1
			byKey[key] = idx
		}

		desc := cell(row, cols.description)
		if desc == "" {
			continue
		}
		item := domain.LineItem{Description: desc}
		if item.Quantity, err = cellAmount(row, cols.quantity); err != nil {
			return nil, fmt.Errorf("row %d quantity: %w", line, err)
		}
		if item.Quantity.IsZero() {
			item.Quantity = decimal.NewFromInt(1)
		}
		if item.UnitPrice, err = cellAmount(row, cols.unitPrice); err != nil {
			return nil, fmt.Errorf("row %d price: %w", line, err)
		}
		receipts[idx].Items = append(receipts[idx].Items, item)
	}
	return receipts, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
