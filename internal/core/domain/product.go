package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// GroupMember is a line item assigned to a product group together with the
// receipt it came from.
type GroupMember struct {
	Item    LineItem
	Context ReceiptContext
}

// ProductGroup is a cluster of line items believed to be the same product.
// Label and NormalizedKey are frozen when the group is created; members are
// only ever appended.
type ProductGroup struct {
	// Label is the raw description of the first item assigned to the group.
	Label string

	// NormalizedKey is the canonical form of that first item. Every later
	// item is compared against it.
	NormalizedKey string

	// Members are the assigned items in assignment order.
	Members []GroupMember
}

// ClusteringResult maps unique group labels to their groups for one category.
// It also remembers creation order so runs can be compared exactly.
type ClusteringResult struct {
	groups map[string]*ProductGroup
	order  []string
}

// NewClusteringResult creates an empty result.
func NewClusteringResult() *ClusteringResult {
	return &ClusteringResult{groups: make(map[string]*ProductGroup)}
}

// Add registers a new group. The caller guarantees the label is unused.
func (r *ClusteringResult) Add(group *ProductGroup) {
	r.groups[group.Label] = group
	r.order = append(r.order, group.Label)
}

// Get returns the group with the given label.
func (r *ClusteringResult) Get(label string) (*ProductGroup, bool) {
	g, ok := r.groups[label]
	return g, ok
}

// Has reports whether a label is taken.
func (r *ClusteringResult) Has(label string) bool {
	_, ok := r.groups[label]
	return ok
}

// Len returns the number of groups.
func (r *ClusteringResult) Len() int {
	return len(r.order)
}

// Groups returns the groups in creation order.
func (r *ClusteringResult) Groups() []*ProductGroup {
	out := make([]*ProductGroup, 0, len(r.order))
	for _, label := range r.order {
		out = append(out, r.groups[label])
	}
	return out
}

// Labels returns all labels sorted lexicographically for display.
func (r *ClusteringResult) Labels() []string {
	labels := make([]string, len(r.order))
	copy(labels, r.order)
	sort.Strings(labels)
	return labels
}

// MemberCount returns the total number of clustered items.
func (r *ClusteringResult) MemberCount() int {
	n := 0
	for _, g := range r.groups {
		n += len(g.Members)
	}
	return n
}

// ProductSummary describes one product group for listing.
type ProductSummary struct {
	Label         string
	NormalizedKey string
	Purchases     int
	LowestPrice   decimal.Decimal
	HighestPrice  decimal.Decimal
}

// HistoryEntry is one purchase in a product's price history.
type HistoryEntry struct {
	Date         string
	MerchantName string
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	ReceiptID    string
}

// SpendingSummary aggregates spending across all of a user's receipts.
type SpendingSummary struct {
	TotalSpent   decimal.Decimal
	ReceiptCount int
	Categories   []CategoryTotal
	Achievements []Achievement
	GeneratedAt  time.Time
}

// CategoryTotal is the spending within one category.
type CategoryTotal struct {
	Category     string
	TotalSpent   decimal.Decimal
	ReceiptCount int
}
