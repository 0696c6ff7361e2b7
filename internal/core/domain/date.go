package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical transaction date layout.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing a transaction date.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"02.01.2006",
	"02/01/2006",
}

// ParseTransactionDate parses an ISO calendar date. Dotted and slashed
// day-first dates as printed on Turkish receipts are also accepted.
func ParseTransactionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("transaction date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised transaction date %q", s)
}

// CanonicalDate rewrites any accepted date form to DateLayout.
// Unparseable input is returned unchanged.
func CanonicalDate(s string) string {
	t, err := ParseTransactionDate(s)
	if err != nil {
		return s
	}
	return t.Format(DateLayout)
}
