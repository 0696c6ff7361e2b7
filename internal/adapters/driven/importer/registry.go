package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ReceiptReader = (*Registry)(nil)

// Registry selects a reader by file extension.
type Registry struct {
	readers map[string]driven.ReceiptReader
}

// NewRegistry creates a registry of the given readers. Later readers
// replace earlier ones for the same extension.
func NewRegistry(readers ...driven.ReceiptReader) *Registry {
	r := &Registry{readers: make(map[string]driven.ReceiptReader)}
	for _, reader := range readers {
		r.Register(reader)
	}
	return r
}

// Default returns a registry with the JSON, CSV and XLSX readers.
func Default() *Registry {
	return NewRegistry(JSONReader{}, CSVReader{}, XLSXReader{})
}

// Register adds a reader for all of its extensions.
func (r *Registry) Register(reader driven.ReceiptReader) {
	for _, ext := range reader.Extensions() {
		r.readers[strings.ToLower(ext)] = reader
	}
}

// Extensions returns every handled extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether path has a handled extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.readers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Read parses the file with the reader for its extension.
func (r *Registry) Read(ctx context.Context, path string) ([]domain.Receipt, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	return reader.Read(ctx, path)
}
