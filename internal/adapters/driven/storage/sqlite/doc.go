// Package sqlite provides the SQLite implementation of driven.ReceiptStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Amounts are stored as decimal text and parsed with shopspring/decimal.
//
// # Data Location
//
// By default, the database is stored at ~/.receipta/data/receipts.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Saving a receipt replaces its line items in one transaction.
package sqlite
