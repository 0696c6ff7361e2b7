package services

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
)

var (
	_ driven.ReceiptReader    = (*fakeReader)(nil)
	_ driven.ReceiptExtractor = (*fakeExtractor)(nil)
)

type fakeReader struct {
	receipts []domain.Receipt
	err      error
	paths    []string
}

func (f *fakeReader) Extensions() []string { return []string{".json"} }

func (f *fakeReader) Read(_ context.Context, path string) ([]domain.Receipt, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Receipt, len(f.receipts))
	copy(out, f.receipts)
	return out, nil
}

type fakeExtractor struct {
	receipt     *domain.Receipt
	err         error
	contentType string
	calls       int
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, contentType string) (*domain.Receipt, error) {
	f.calls++
	f.contentType = contentType
	if f.err != nil {
		return nil, f.err
	}
	r := *f.receipt
	return &r, nil
}
