package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an import file type that no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyCategory indicates a category selection with no line items.
	ErrEmptyCategory = errors.New("no line items in category")

	// Extractor Errors.

	// ErrExtractorUnavailable indicates no OCR endpoint is configured.
	// Receipt scanning is disabled; import and manual entry still work.
	ErrExtractorUnavailable = errors.New("receipt extractor unavailable")

	// ErrExtractionFailed indicates the OCR service rejected or failed the image.
	ErrExtractionFailed = errors.New("receipt extraction failed")

	// ErrRateLimited indicates the OCR service rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
