package clustering

import (
	"fmt"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/logger"
)

// Threshold is the minimum score for an item to join an existing group.
// A score exactly at the threshold joins.
const Threshold = 0.45

// Input is one line item queued for clustering.
type Input struct {
	// Raw is the description as printed. It becomes the label of any
	// group this item founds.
	Raw string

	// Canonical is the normalised form of Raw.
	Canonical string

	Item    domain.LineItem
	Context domain.ReceiptContext
}

// Engine assigns line items to product groups.
type Engine struct {
	scorer Scorer
}

// Option configures an Engine.
type Option func(*Engine)

// WithScorer replaces the default Dice scorer.
func WithScorer(s Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// NewEngine creates an engine using Dice similarity unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{scorer: Dice}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cluster groups items in a single greedy pass over the given order.
//
// Each item is scored against the representative key of every existing
// group in creation order. The first group reaching the maximum score wins
// and the item joins it if that score is at least Threshold. Otherwise the
// item founds a new group appended after all others. Items whose canonical
// form is empty are skipped.
func (e *Engine) Cluster(items []Input) *domain.ClusteringResult {
	result := domain.NewClusteringResult()
	var groups []*domain.ProductGroup
	skipped := 0

	for i := range items {
		in := &items[i]
		if in.Canonical == "" {
			skipped++
			continue
		}

		best := -1
		bestScore := 0.0
		for g, group := range groups {
			score := e.scorer.Score(in.Canonical, group.NormalizedKey)
			if best < 0 || score > bestScore {
				best = g
				bestScore = score
			}
		}

		member := domain.GroupMember{Item: in.Item, Context: in.Context}
		if best >= 0 && bestScore >= Threshold {
			groups[best].Members = append(groups[best].Members, member)
			logger.Debug("%q joined %q (%.2f)", in.Raw, groups[best].Label, bestScore)
			continue
		}

		group := &domain.ProductGroup{
			Label:         uniqueLabel(result, in.Raw),
			NormalizedKey: in.Canonical,
			Members:       []domain.GroupMember{member},
		}
		groups = append(groups, group)
		result.Add(group)
		logger.Debug("%q founded group %q", in.Raw, in.Canonical)
	}

	logger.Debug("clustered %d items into %d groups, skipped %d", len(items)-skipped, result.Len(), skipped)
	return result
}

// uniqueLabel returns raw, or raw with a " (n)" suffix when an earlier
// group already owns that label.
func uniqueLabel(result *domain.ClusteringResult, raw string) string {
	if !result.Has(raw) {
		return raw
	}
	for n := 2; ; n++ {
		label := fmt.Sprintf("%s (%d)", raw, n)
		if !result.Has(label) {
			return label
		}
	}
}
