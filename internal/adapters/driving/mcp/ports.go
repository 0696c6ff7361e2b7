package mcp

import (
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis answers product and spending questions.
	Analysis driving.AnalysisService

	// Receipt exposes stored receipts as resources. Optional.
	Receipt driving.ReceiptService

	// UserID selects whose receipts are read.
	UserID string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}

func (p *Ports) user() string {
	if p.UserID == "" {
		return "local"
	}
	return p.UserID
}
