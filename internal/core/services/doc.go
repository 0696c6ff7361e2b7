// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Clustering itself lives in internal/clustering; the analysis service
// loads receipts, runs the engine and shapes the result for callers.
package services
