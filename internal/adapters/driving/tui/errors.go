package tui

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrMissingReceiptService is returned when the receipt service is not provided.
var ErrMissingReceiptService = errors.New("tui: receipt service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
