package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/receipta/internal/clustering"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
	"github.com/custodia-labs/receipta/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService answers product questions by clustering a user's line
// items on demand.
type AnalysisService struct {
	store      driven.ReceiptStore
	normalizer *clustering.Normalizer
	engine     *clustering.Engine
	now        func() time.Time
}

// NewAnalysisService creates an analysis service normalising descriptions
// with the given locale tables.
func NewAnalysisService(
	store driven.ReceiptStore,
	tables domain.LocaleTables,
	opts ...clustering.Option,
) *AnalysisService {
	return &AnalysisService{
		store:      store,
		normalizer: clustering.NewNormalizer(tables),
		engine:     clustering.NewEngine(opts...),
		now:        time.Now,
	}
}

// Categories returns the distinct categories in use, sorted.
func (s *AnalysisService) Categories(ctx context.Context, userID string) ([]string, error) {
	receipts, err := s.receipts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return clustering.Categories(receipts), nil
}

// Products clusters the category's line items and summarises each group.
func (s *AnalysisService) Products(ctx context.Context, userID, category string) ([]domain.ProductSummary, error) {
	result, err := s.cluster(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	return clustering.Summarize(result), nil
}

// History returns the purchases of one product, most recent first.
func (s *AnalysisService) History(
	ctx context.Context, userID, category, label string,
) ([]domain.HistoryEntry, error) {
	result, err := s.cluster(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	members, err := clustering.History(result, label)
	if err != nil {
		return nil, err
	}
	return clustering.Entries(members), nil
}

// Summary aggregates spending across all receipts and reports which
// achievements the receipt count has unlocked.
func (s *AnalysisService) Summary(ctx context.Context, userID string) (*domain.SpendingSummary, error) {
	receipts, err := s.receipts(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &domain.SpendingSummary{
		TotalSpent:   decimal.Zero,
		ReceiptCount: len(receipts),
		Achievements: domain.Achievements(len(receipts)),
		GeneratedAt:  s.now().UTC(),
	}
	byCategory := make(map[string]*domain.CategoryTotal)
	for i := range receipts {
		r := &receipts[i]
		summary.TotalSpent = summary.TotalSpent.Add(r.TotalAmount)

		total, ok := byCategory[r.Category]
		if !ok {
			total = &domain.CategoryTotal{Category: r.Category, TotalSpent: decimal.Zero}
			byCategory[r.Category] = total
		}
		total.TotalSpent = total.TotalSpent.Add(r.TotalAmount)
		total.ReceiptCount++
	}

	summary.Categories = make([]domain.CategoryTotal, 0, len(byCategory))
	for _, total := range byCategory {
		summary.Categories = append(summary.Categories, *total)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	return summary, nil
}

// cluster runs the engine over one category. The result is never cached
// so newly stored receipts are always reflected.
func (s *AnalysisService) cluster(ctx context.Context, userID, category string) (*domain.ClusteringResult, error) {
	receipts, err := s.receipts(ctx, userID)
	if err != nil {
		return nil, err
	}

	inputs := clustering.Prepare(s.normalizer, receipts, category)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrEmptyCategory, category)
	}

	start := s.now()
	result := s.engine.Cluster(inputs)
	logger.Debug("Clustered %d items in %q into %d groups (%s)",
		len(inputs), category, result.Len(), s.now().Sub(start))
	return result, nil
}

func (s *AnalysisService) receipts(ctx context.Context, userID string) ([]domain.Receipt, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	receipts, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return receipts, nil
}
