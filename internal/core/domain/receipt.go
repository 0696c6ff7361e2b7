package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to receipts saved without a category.
const DefaultCategory = "Market"

// Receipt is a single purchase as captured from a paper or digital receipt.
type Receipt struct {
	// ID is the unique identifier for the receipt.
	ID string

	// UserID is the owner of the receipt.
	UserID string

	// MerchantName is the store or vendor name as printed.
	MerchantName string

	// TransactionDate is the purchase date as an ISO calendar date (YYYY-MM-DD).
	// It is kept as text so malformed dates survive storage untouched.
	TransactionDate string

	// TransactionTime is the optional purchase time (HH:MM).
	TransactionTime string

	// Category is the user-chosen spending category (e.g. "Market").
	Category string

	// Items are the purchased line items in printed order.
	Items []LineItem

	// TotalVAT is the tax portion of the total.
	TotalVAT decimal.Decimal

	// TotalAmount is the amount paid.
	TotalAmount decimal.Decimal

	// CreatedAt is when the receipt was first stored.
	CreatedAt time.Time

	// IsShared marks a receipt readable by anyone holding ShareID.
	IsShared bool

	// ShareID is the public link token. Empty while the receipt is private.
	ShareID string
}

// LineItem is one purchased product line. It carries no stable product
// identifier; Description is free text as printed or typed.
type LineItem struct {
	// ID is the unique identifier for the line item.
	ID string

	// Description is the raw product text.
	Description string

	// Quantity is the number of units bought.
	Quantity decimal.Decimal

	// UnitPrice is the price of a single unit.
	UnitPrice decimal.Decimal
}

// LineTotal returns quantity times unit price.
// A zero quantity is treated as one unit.
func (i LineItem) LineTotal() decimal.Decimal {
	if i.Quantity.IsZero() {
		return i.UnitPrice
	}
	return i.UnitPrice.Mul(i.Quantity)
}

// ReceiptContext is the receipt metadata shown next to a line item in a
// purchase history.
type ReceiptContext struct {
	// ReceiptID links back to the owning receipt.
	ReceiptID string

	// MerchantName is the store name.
	MerchantName string

	// TransactionDate is the purchase date (ISO calendar date).
	TransactionDate string
}

// Context returns the ReceiptContext for this receipt's line items.
func (r *Receipt) Context() ReceiptContext {
	return ReceiptContext{
		ReceiptID:       r.ID,
		MerchantName:    r.MerchantName,
		TransactionDate: r.TransactionDate,
	}
}

// OwnedBy reports whether userID owns the receipt.
func (r *Receipt) OwnedBy(userID string) bool {
	return r.UserID == userID
}

// ItemsTotal sums the line totals of all items.
func (r *Receipt) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Validate checks the fields a receipt needs before it is stored.
func (r *Receipt) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.MerchantName) == "" {
		return fmt.Errorf("%w: merchant name is required", ErrInvalidInput)
	}
	if _, err := ParseTransactionDate(r.TransactionDate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i := range r.Items {
		if r.Items[i].UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative price", ErrInvalidInput, i+1)
		}
	}
	return nil
}

// SortByRecency orders receipts most recent first: by transaction date,
// then transaction time, then creation time, all descending. Remaining
// ties are broken by ascending ID so the order is total.
func SortByRecency(receipts []Receipt) {
	sort.SliceStable(receipts, func(i, j int) bool {
		a, b := &receipts[i], &receipts[j]
		if a.TransactionDate != b.TransactionDate {
			return a.TransactionDate > b.TransactionDate
		}
		if a.TransactionTime != b.TransactionTime {
			return a.TransactionTime > b.TransactionTime
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
