package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocaleTables_IsEmpty(t *testing.T) {
	assert.True(t, LocaleTables{}.IsEmpty())
	assert.False(t, LocaleTables{Locale: "tr"}.IsEmpty())
	assert.False(t, LocaleTables{Units: []string{"kg"}}.IsEmpty())
}

func TestLocaleTables_Merge(t *testing.T) {
	base := LocaleTables{
		Locale:    "tr",
		Folding:   map[string]string{"ş": "s"},
		Units:     []string{"kg"},
		StopWords: []string{"pinar"},
	}

	merged := base.Merge(LocaleTables{StopWords: []string{"migros"}})

	assert.Equal(t, "tr", merged.Locale)
	assert.Equal(t, map[string]string{"ş": "s"}, merged.Folding)
	assert.Equal(t, []string{"kg"}, merged.Units)
	assert.Equal(t, []string{"migros"}, merged.StopWords)
	// Base is untouched.
	assert.Equal(t, []string{"pinar"}, base.StopWords)
}
