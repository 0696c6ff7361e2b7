package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView_Defaults(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v.styles)
	require.NotNil(t, v.keys)
	assert.Equal(t, 0, v.Selected())
	assert.Nil(t, v.Init())

	labels := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"Products", "Receipts", "Settings", "Help", "Quit"}, labels)
}

func TestView_CursorStaysInBounds(t *testing.T) {
	v := NewView(nil)

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.Selected())

	for range 10 {
		v.Update(runes("j"))
	}
	assert.Equal(t, len(v.entries)-1, v.Selected())

	v.Update(runes("k"))
	assert.Equal(t, len(v.entries)-2, v.Selected())
}

func TestView_EnterOpensSelectedEntry(t *testing.T) {
	v := NewView(nil)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewReceipts}, cmd())
}

func TestView_Shortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want messages.ViewType
	}{
		{"p", messages.ViewCategories},
		{"r", messages.ViewReceipts},
		{"s", messages.ViewSettings},
		{"?", messages.ViewHelp},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := NewView(nil)
			_, cmd := v.Update(runes(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_QuitEntries(t *testing.T) {
	v := NewView(nil)
	_, cmd := v.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	v = NewView(nil)
	v.cursor = len(v.entries) - 1
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_UnknownKeyIgnored(t *testing.T) {
	v := NewView(nil)
	_, cmd := v.Update(runes("z"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, v.Selected())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	assert.Equal(t, "Initialising...", v.View())

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := v.View()
	assert.Contains(t, out, "Receipta")
	assert.Contains(t, out, "[p]")
	assert.Contains(t, out, "price history per product")

	v.SetDimensions(40, 20)
	assert.NotContains(t, v.View(), "price history per product")
}
