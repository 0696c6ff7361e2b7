// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ReceiptStore: Receipt and line item persistence (SQLite, Postgres or memory)
//   - ConfigStore: Application configuration
//   - LocaleStore: Loads linguistic tables for the normaliser
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReceiptReader: Parses import files. Without it, import is disabled.
//   - ReceiptExtractor: OCR for receipt images. Without it, scanning is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
