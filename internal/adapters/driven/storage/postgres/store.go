// Package postgres provides a driven.ReceiptStore backed by a managed
// Postgres database, for users who sync receipts across devices.
//
// The schema is created on open if missing. Money columns are NUMERIC and
// are read back through shopspring/decimal.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
)

//go:embed schema.sql
var schema string

// Ensure Store implements the interface.
var _ driven.ReceiptStore = (*Store)(nil)

// Store is a Postgres-backed receipt store.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is empty", domain.ErrInvalidInput)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores or replaces a receipt and all of its line items.
func (s *Store) Save(ctx context.Context, receipt *domain.Receipt) error {
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, user_id, merchant_name, transaction_date, transaction_time,
			category, total_vat, total_amount, created_at, is_shared, share_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			merchant_name = EXCLUDED.merchant_name,
			transaction_date = EXCLUDED.transaction_date,
			transaction_time = EXCLUDED.transaction_time,
			category = EXCLUDED.category,
			total_vat = EXCLUDED.total_vat,
			total_amount = EXCLUDED.total_amount,
			is_shared = EXCLUDED.is_shared,
			share_id = EXCLUDED.share_id
	`, receipt.ID, receipt.UserID, receipt.MerchantName, receipt.TransactionDate, receipt.TransactionTime,
		receipt.Category, receipt.TotalVAT.String(), receipt.TotalAmount.String(), receipt.CreatedAt.UTC(),
		receipt.IsShared, sql.NullString{String: receipt.ShareID, Valid: receipt.ShareID != ""})
	if err != nil {
		return fmt.Errorf("saving receipt: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE receipt_id = $1`, receipt.ID); err != nil {
		return fmt.Errorf("clearing line items: %w", err)
	}

	for i, item := range receipt.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO line_items (id, receipt_id, position, description, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.ID, receipt.ID, i, item.Description, item.Quantity.String(), item.UnitPrice.String())
		if err != nil {
			return fmt.Errorf("saving line item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing receipt: %w", err)
	}
	return nil
}

// Get retrieves a receipt by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Receipt, error) {
	return s.getOne(ctx, ` WHERE id = $1`, id)
}

// GetShared retrieves a shared receipt by its share ID.
func (s *Store) GetShared(ctx context.Context, shareID string) (*domain.Receipt, error) {
	return s.getOne(ctx, ` WHERE share_id = $1 AND is_shared`, shareID)
}

func (s *Store) getOne(ctx context.Context, where string, arg string) (*domain.Receipt, error) {
	receipt, err := scanReceipt(s.db.QueryRowContext(ctx, selectReceipts+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	items, err := s.items(ctx, []string{receipt.ID})
	if err != nil {
		return nil, err
	}
	receipt.Items = items[receipt.ID]
	return receipt, nil
}

// Delete removes a receipt. Line items cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}
	return nil
}

// List returns the user's receipts, most recent first.
func (s *Store) List(ctx context.Context, userID string) ([]domain.Receipt, error) {
	rows, err := s.db.QueryContext(ctx, selectReceipts+`
		WHERE user_id = $1
		ORDER BY transaction_date DESC, transaction_time DESC, created_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt //nolint:prealloc // size unknown from query
	var ids []string
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}
		receipts = append(receipts, *receipt)
		ids = append(ids, receipt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating receipts: %w", err)
	}
	if len(ids) == 0 {
		return receipts, nil
	}

	items, err := s.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		receipts[i].Items = items[receipts[i].ID]
	}
	return receipts, nil
}

const selectReceipts = `
	SELECT id, user_id, merchant_name, transaction_date, transaction_time,
		category, total_vat::text, total_amount::text, created_at, is_shared, share_id
	FROM receipts`

func (s *Store) items(ctx context.Context, receiptIDs []string) (map[string][]domain.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT receipt_id, id, description, quantity::text, unit_price::text
		FROM line_items
		WHERE receipt_id = ANY($1)
		ORDER BY receipt_id, position
	`, pq.Array(receiptIDs))
	if err != nil {
		return nil, fmt.Errorf("querying line items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.LineItem, len(receiptIDs))
	for rows.Next() {
		var receiptID, quantity, unitPrice string
		var item domain.LineItem
		if err := rows.Scan(&receiptID, &item.ID, &item.Description, &quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		if item.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("parsing quantity of %s: %w", item.ID, err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parsing unit price of %s: %w", item.ID, err)
		}
		out[receiptID] = append(out[receiptID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row scanner) (*domain.Receipt, error) {
	var r domain.Receipt
	var totalVAT, totalAmount string
	var shareID sql.NullString
	if err := row.Scan(&r.ID, &r.UserID, &r.MerchantName, &r.TransactionDate, &r.TransactionTime,
		&r.Category, &totalVAT, &totalAmount, &r.CreatedAt, &r.IsShared, &shareID); err != nil {
		return nil, err
	}
	r.ShareID = shareID.String

	var err error
	if r.TotalVAT, err = decimal.NewFromString(totalVAT); err != nil {
		return nil, fmt.Errorf("parsing total vat: %w", err)
	}
	if r.TotalAmount, err = decimal.NewFromString(totalAmount); err != nil {
		return nil, fmt.Errorf("parsing total amount: %w", err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}
