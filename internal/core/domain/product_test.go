package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusteringResult_Empty(t *testing.T) {
	r := NewClusteringResult()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Labels())
	assert.Empty(t, r.Groups())
	assert.Equal(t, 0, r.MemberCount())
}

func TestClusteringResult_AddAndGet(t *testing.T) {
	r := NewClusteringResult()
	r.Add(&ProductGroup{Label: "PINAR SUT 1L", NormalizedKey: "sut", Members: []GroupMember{{}, {}}})
	r.Add(&ProductGroup{Label: "Ekmek", NormalizedKey: "ekmek", Members: []GroupMember{{}}})

	g, ok := r.Get("PINAR SUT 1L")
	require.True(t, ok)
	assert.Equal(t, "sut", g.NormalizedKey)
	assert.True(t, r.Has("Ekmek"))
	assert.False(t, r.Has("Peynir"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3, r.MemberCount())
}

func TestClusteringResult_OrderAndSortedLabels(t *testing.T) {
	r := NewClusteringResult()
	r.Add(&ProductGroup{Label: "Yumurta"})
	r.Add(&ProductGroup{Label: "Ekmek"})
	r.Add(&ProductGroup{Label: "Peynir"})

	groups := r.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "Yumurta", groups[0].Label)
	assert.Equal(t, "Ekmek", groups[1].Label)
	assert.Equal(t, "Peynir", groups[2].Label)

	assert.Equal(t, []string{"Ekmek", "Peynir", "Yumurta"}, r.Labels())
	// Sorting labels must not disturb creation order.
	assert.Equal(t, "Yumurta", r.Groups()[0].Label)
}
