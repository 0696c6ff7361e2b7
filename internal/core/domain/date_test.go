package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionDate(t *testing.T) {
	want := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2024-03-02", " 2024-03-02 ", "02.03.2024", "02/03/2024", "2024-03-02T00:00:00Z"} {
		got, err := ParseTransactionDate(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), input)
	}
}

func TestParseTransactionDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2024-13-45", "03-02"} {
		_, err := ParseTransactionDate(input)
		assert.Error(t, err, input)
	}
}

func TestCanonicalDate(t *testing.T) {
	assert.Equal(t, "2024-03-02", CanonicalDate("02.03.2024"))
	assert.Equal(t, "2024-03-02", CanonicalDate("2024-03-02"))
	assert.Equal(t, "garbage", CanonicalDate("garbage"))
}
