package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestFilterInput_TypingWhenFocused(t *testing.T) {
	f := NewFilterInput(nil, "Filter")
	assert.False(t, f.Focused())

	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("süt")})

	assert.True(t, f.Focused())
	assert.Equal(t, "süt", f.Value())
	assert.Contains(t, f.View(), "Filter:")
}

func TestFilterInput_Reset(t *testing.T) {
	f := NewFilterInput(nil, "Filter")
	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ekmek")})

	f.Reset()
	f.Blur()

	assert.Empty(t, f.Value())
	assert.False(t, f.Focused())
}

func TestFilterInput_SetWidth(t *testing.T) {
	f := NewFilterInput(nil, "Filter")

	f.SetWidth(10)
	assert.Equal(t, 20, f.textinput.Width)

	f.SetWidth(100)
	assert.Equal(t, 86, f.textinput.Width)
}
