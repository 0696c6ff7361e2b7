package mcp

import (
	"context"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	categories []string
	products   []domain.ProductSummary
	history    []domain.HistoryEntry
	summary    *domain.SpendingSummary
	err        error

	lastUser     string
	lastCategory string
	lastLabel    string
}

func (m *mockAnalysisService) Categories(_ context.Context, userID string) ([]string, error) {
	m.lastUser = userID
	return m.categories, m.err
}

func (m *mockAnalysisService) Products(_ context.Context, userID, category string) ([]domain.ProductSummary, error) {
	m.lastUser, m.lastCategory = userID, category
	return m.products, m.err
}

func (m *mockAnalysisService) History(
	_ context.Context, userID, category, label string,
) ([]domain.HistoryEntry, error) {
	m.lastUser, m.lastCategory, m.lastLabel = userID, category, label
	return m.history, m.err
}

func (m *mockAnalysisService) Summary(_ context.Context, userID string) (*domain.SpendingSummary, error) {
	m.lastUser = userID
	return m.summary, m.err
}

// mockReceiptService is a mock implementation of driving.ReceiptService.
type mockReceiptService struct {
	receipts []domain.Receipt
	receipt  *domain.Receipt
	err      error
}

func (m *mockReceiptService) Add(_ context.Context, _ *domain.Receipt) error {
	return m.err
}

func (m *mockReceiptService) Get(_ context.Context, userID, _ string) (*domain.Receipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.receipt == nil || !m.receipt.OwnedBy(userID) {
		return nil, domain.ErrNotFound
	}
	return m.receipt, nil
}

func (m *mockReceiptService) List(_ context.Context, _ string) ([]domain.Receipt, error) {
	return m.receipts, m.err
}

func (m *mockReceiptService) Delete(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockReceiptService) Share(_ context.Context, _, _ string) (string, error) {
	return "", m.err
}

func (m *mockReceiptService) Unshare(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockReceiptService) GetShared(_ context.Context, _ string) (*domain.Receipt, error) {
	return nil, domain.ErrNotFound
}

func (m *mockReceiptService) Import(_ context.Context, _, _ string) (int, error) {
	return 0, m.err
}

func (m *mockReceiptService) Scan(
	_ context.Context, _ string, _ []byte, _, _ string,
) (*domain.Receipt, error) {
	return m.receipt, m.err
}
