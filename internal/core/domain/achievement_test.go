package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func unlocked(list []Achievement) []string {
	var ids []string
	for _, a := range list {
		if a.Unlocked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestAchievements_Thresholds(t *testing.T) {
	tests := []struct {
		count int
		want  []string
	}{
		{0, nil},
		{1, []string{"first-receipt"}},
		{4, []string{"first-receipt"}},
		{5, []string{"first-receipt", "five-receipts"}},
		{10, []string{"first-receipt", "five-receipts", "ten-receipts"}},
		{42, []string{"first-receipt", "five-receipts", "ten-receipts"}},
	}

	for _, tt := range tests {
		got := Achievements(tt.count)
		assert.Len(t, got, 3)
		assert.Equal(t, tt.want, unlocked(got), "count %d", tt.count)
	}
}

func TestAchievements_DoesNotMutateCatalog(t *testing.T) {
	_ = Achievements(100)

	for _, a := range Achievements(0) {
		assert.False(t, a.Unlocked, a.ID)
	}
}
