// Package tui provides an interactive terminal user interface for receipta.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Analysis groups purchases into products and builds histories.
	Analysis driving.AnalysisService

	// Receipt lists and deletes stored receipts.
	Receipt driving.ReceiptService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// UserID is whose receipts are browsed. Empty means "local".
	UserID string
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(analysis driving.AnalysisService, receipt driving.ReceiptService, userID string) *Ports {
	return &Ports{
		Analysis: analysis,
		Receipt:  receipt,
		UserID:   userID,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Receipt == nil {
		return ErrMissingReceiptService
	}
	return nil
}

func (p *Ports) user() string {
	if p.UserID == "" {
		return "local"
	}
	return p.UserID
}
