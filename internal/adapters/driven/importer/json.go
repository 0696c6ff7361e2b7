package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// JSONReader reads .json receipt files.
type JSONReader struct{}

// Extensions returns the handled extensions.
func (JSONReader) Extensions() []string { return []string{".json"} }

// Read parses every receipt in the file.
func (JSONReader) Read(_ context.Context, path string) ([]domain.Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a receipt object or an array of receipt objects.
// Unknown keys are ignored.
func DecodeJSON(data []byte) ([]domain.Receipt, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty JSON document", domain.ErrInvalidInput)
	}

	var objects []map[string]json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &objects); err != nil {
			return nil, fmt.Errorf("%w: decoding receipts: %v", domain.ErrInvalidInput, err)
		}
	} else {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("%w: decoding receipt: %v", domain.ErrInvalidInput, err)
		}
		objects = append(objects, obj)
	}

	receipts := make([]domain.Receipt, 0, len(objects))
	for i, obj := range objects {
		receipt, err := decodeReceipt(fold(obj))
		if err != nil {
			return nil, fmt.Errorf("receipt %d: %w", i+1, err)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func decodeReceipt(obj map[string]json.RawMessage) (domain.Receipt, error) {
	r := domain.Receipt{
		ID:              text(pick(obj, "id")),
		MerchantName:    text(pick(obj, aliasMerchant...)),
		TransactionDate: text(pick(obj, aliasDate...)),
		TransactionTime: text(pick(obj, aliasTime...)),
		Category:        text(pick(obj, aliasCategory...)),
	}

	var err error
	if r.TotalVAT, err = amount(pick(obj, aliasTotalVAT...)); err != nil {
		return r, fmt.Errorf("total vat: %w", err)
	}

	// Donut nests the total: {"total": {"total_price": "..."}}.
	total := pick(obj, aliasTotalAmount...)
	if nested := object(total); nested != nil {
		total = pick(nested, aliasTotalAmount...)
	}
	if r.TotalAmount, err = amount(total); err != nil {
		return r, fmt.Errorf("total amount: %w", err)
	}

	items, err := decodeItems(pick(obj, aliasItems...))
	if err != nil {
		return r, err
	}
	r.Items = items
	return r, nil
}

// decodeItems accepts an array of items or, as Donut emits for a single
// line, one bare item object.
func decodeItems(raw json.RawMessage) ([]domain.LineItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var objects []map[string]json.RawMessage
	if raw[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: decoding item: %v", domain.ErrInvalidInput, err)
		}
		objects = append(objects, obj)
	} else if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("%w: decoding items: %v", domain.ErrInvalidInput, err)
	}

	items := make([]domain.LineItem, 0, len(objects))
	for i, obj := range objects {
		obj = fold(obj)
		item := domain.LineItem{
			ID:          text(pick(obj, "id")),
			Description: text(pick(obj, aliasDescription...)),
		}
		if item.Description == "" {
			continue
		}
		var err error
		if item.Quantity, err = amount(pick(obj, aliasQuantity...)); err != nil {
			return nil, fmt.Errorf("item %d quantity: %w", i+1, err)
		}
		if item.Quantity.IsZero() {
			item.Quantity = decimal.NewFromInt(1)
		}
		if item.UnitPrice, err = amount(pick(obj, aliasUnitPrice...)); err != nil {
			return nil, fmt.Errorf("item %d price: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func fold(obj map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(obj))
	for k, v := range obj {
		out[fieldKey(k)] = v
	}
	return out
}

func pick(obj map[string]json.RawMessage, aliases ...string) json.RawMessage {
	for _, alias := range aliases {
		if v, ok := obj[alias]; ok {
			return v
		}
	}
	return nil
}

// text returns a JSON string's value, or the literal for numbers.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

func object(raw json.RawMessage) map[string]json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return fold(obj)
}

// amount parses a money or quantity value. Missing values are zero.
func amount(raw json.RawMessage) (decimal.Decimal, error) {
	s := text(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	return domain.ParseAmount(s)
}
