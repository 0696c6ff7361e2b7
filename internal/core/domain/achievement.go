package domain

// Achievement is a milestone unlocked by the number of stored receipts.
type Achievement struct {
	ID          string
	Title       string
	Description string

	// Threshold is the receipt count that unlocks the achievement.
	Threshold int
	Unlocked  bool
}

var achievementCatalog = []Achievement{
	{ID: "first-receipt", Title: "First Receipt", Description: "Stored your first receipt.", Threshold: 1},
	{ID: "five-receipts", Title: "Five Receipts", Description: "Stored 5 receipts in total.", Threshold: 5},
	{ID: "ten-receipts", Title: "Ten Receipts", Description: "Stored 10 receipts in total.", Threshold: 10},
}

// Achievements returns the full catalog, in threshold order, with Unlocked
// set for every milestone receiptCount has reached.
func Achievements(receiptCount int) []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	for i, a := range achievementCatalog {
		a.Unlocked = receiptCount >= a.Threshold
		out[i] = a
	}
	return out
}
