package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurkish(t *testing.T) {
	tables := Turkish()

	assert.Equal(t, "tr", tables.Locale)
	assert.Equal(t, "i", tables.Folding["ı"])
	assert.Equal(t, "s", tables.Folding["ş"])
	assert.Contains(t, tables.Units, "kg")
	assert.Contains(t, tables.Units, "lt")
	assert.Contains(t, tables.StopWords, "pınar")
	assert.Contains(t, tables.StopWords, "migros")
}

func TestDefault_IsTurkish(t *testing.T) {
	assert.Equal(t, Turkish(), Default())
}

func TestParse(t *testing.T) {
	data := []byte(`
locale: de
folding:
  "ä": "a"
units: [kg, stk]
stop_words: [aldi]
`)

	tables, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "de", tables.Locale)
	assert.Equal(t, map[string]string{"ä": "a"}, tables.Folding)
	assert.Equal(t, []string{"kg", "stk"}, tables.Units)
	assert.Equal(t, []string{"aldi"}, tables.StopWords)
}

func TestParse_Empty(t *testing.T) {
	tables, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, tables.IsEmpty())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("units: [kg"))
	assert.Error(t, err)
}
