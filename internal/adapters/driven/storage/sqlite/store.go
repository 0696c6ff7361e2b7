package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
)

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const receiptColumns = `id, user_id, merchant_name, transaction_date, transaction_time,
	category, total_vat, total_amount, created_at, is_shared, share_id`

// Store is a SQLite database holding receipts and line items.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.receipta/data/receipts.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".receipta", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "receipts.db")

	// WAL lets the HTTP and MCP servers read while the watcher imports.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReceiptStore returns a ReceiptStore interface backed by this store.
func (s *Store) ReceiptStore() driven.ReceiptStore {
	return &receiptStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Receipt Store ====================

// receiptStore implements driven.ReceiptStore.
type receiptStore struct {
	store *Store
}

var _ driven.ReceiptStore = (*receiptStore)(nil)

// Save stores or replaces a receipt and all of its line items.
func (s *receiptStore) Save(ctx context.Context, receipt *domain.Receipt) error {
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (`+receiptColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			merchant_name = excluded.merchant_name,
			transaction_date = excluded.transaction_date,
			transaction_time = excluded.transaction_time,
			category = excluded.category,
			total_vat = excluded.total_vat,
			total_amount = excluded.total_amount,
			is_shared = excluded.is_shared,
			share_id = excluded.share_id
	`, receipt.ID, receipt.UserID, receipt.MerchantName, receipt.TransactionDate, receipt.TransactionTime,
		receipt.Category, receipt.TotalVAT.String(), receipt.TotalAmount.String(),
		receipt.CreatedAt.UTC().Format(timeLayout), receipt.IsShared, nullString(receipt.ShareID))
	if err != nil {
		return fmt.Errorf("saving receipt: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE receipt_id = ?", receipt.ID); err != nil {
		return fmt.Errorf("clearing line items: %w", err)
	}

	for i, item := range receipt.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO line_items (id, receipt_id, position, description, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?)
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
func (s *receiptStore) Get(ctx context.Context, id string) (*domain.Receipt, error) {
	return s.getOne(ctx, "WHERE id = ?", id)
}

// GetShared retrieves a shared receipt by its share ID.
func (s *receiptStore) GetShared(ctx context.Context, shareID string) (*domain.Receipt, error) {
	return s.getOne(ctx, "WHERE share_id = ? AND is_shared = 1", shareID)
}

func (s *receiptStore) getOne(ctx context.Context, where string, args ...any) (*domain.Receipt, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+receiptColumns+" FROM receipts "+where, args...)

	receipt, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	items, err := s.items(ctx, "WHERE receipt_id = ?", receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items[receipt.ID]

	return receipt, nil
}

// Delete removes a receipt. Line items cascade.
func (s *receiptStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}
	return nil
}

// List returns the user's receipts, most recent first.
func (s *receiptStore) List(ctx context.Context, userID string) ([]domain.Receipt, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+receiptColumns+`
		FROM receipts
		WHERE user_id = ?
		ORDER BY transaction_date DESC, transaction_time DESC, created_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt //nolint:prealloc // size unknown from query
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}
		receipts = append(receipts, *receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating receipts: %w", err)
	}

	items, err := s.items(ctx,
		"WHERE receipt_id IN (SELECT id FROM receipts WHERE user_id = ?)", userID)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		receipts[i].Items = items[receipts[i].ID]
	}

	return receipts, nil
}

// items loads line items matching where, grouped by receipt in printed order.
func (s *receiptStore) items(ctx context.Context, where string, args ...any) (map[string][]domain.LineItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT receipt_id, id, description, quantity, unit_price
		FROM line_items `+where+`
		ORDER BY receipt_id, position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying line items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.LineItem)
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

// ==================== Helper Functions ====================

// nullString stores an empty share ID as NULL so the unique index ignores it.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row scanner) (*domain.Receipt, error) {
	var r domain.Receipt
	var totalVAT, totalAmount, createdAt string
	var shareID sql.NullString
	if err := row.Scan(&r.ID, &r.UserID, &r.MerchantName, &r.TransactionDate, &r.TransactionTime,
		&r.Category, &totalVAT, &totalAmount, &createdAt, &r.IsShared, &shareID); err != nil {
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
	if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &r, nil
}
