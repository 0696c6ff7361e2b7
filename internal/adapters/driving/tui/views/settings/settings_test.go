package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/services"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T) (*View, *services.SettingsService) {
	t.Helper()
	service := services.NewSettingsService(memory.NewConfigStore())
	v := NewView(nil, service)
	v.SetDimensions(100, 30)
	v.Update(v.Init()())
	require.NoError(t, v.Err())
	return v, service
}

func TestView_OverviewShowsDefaults(t *testing.T) {
	v, _ := loaded(t)

	view := v.View()
	assert.Contains(t, view, "Storage Backend: SQLite (local file) [configured]")
	assert.Contains(t, view, "Receipt Extractor: Not Set [needs token]")
	assert.Contains(t, view, "User: local")
	assert.Contains(t, view, "Configuration is valid")
}

func TestView_NilServiceShowsError(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "settings service not available")
}

func TestView_SelectBackend(t *testing.T) {
	v, service := loaded(t)

	v.Update(key("enter"))
	require.Equal(t, SectionBackend, v.Section())
	v.Update(key("down"))
	v.Update(key("down"))
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	saved := cmd()
	assert.Equal(t, messages.SettingsSaved{}, saved)

	_, cmd = v.Update(saved)
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, SectionOverview, v.Section())
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)
	assert.Contains(t, v.View(), "Memory (not persisted)")
}

func TestView_PostgresWithoutDSNWarns(t *testing.T) {
	v, _ := loaded(t)

	v.Update(key("enter"))
	v.Update(key("down"))
	_, cmd := v.Update(key("enter"))
	_, cmd = v.Update(cmd())
	v.Update(cmd())

	view := v.View()
	assert.Contains(t, view, "[needs DSN]")
	assert.Contains(t, view, "Warning:")
}

func TestView_ExtractorToken(t *testing.T) {
	v, service := loaded(t)

	v.Update(key("down"))
	v.Update(key("enter"))
	require.Equal(t, SectionExtractor, v.Section())

	// Empty token is ignored
	_, cmd := v.Update(key("enter"))
	assert.Nil(t, cmd)

	v.Update(key("secret"))
	_, cmd = v.Update(key("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "secret", settings.Extractor.Token)
	assert.NotContains(t, v.View(), "secret")
}

func TestView_EscNavigation(t *testing.T) {
	v, _ := loaded(t)

	v.Update(key("enter"))
	_, cmd := v.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.Equal(t, SectionOverview, v.Section())

	_, cmd = v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v, _ := loaded(t)
	v.Update(key("enter"))

	v.Reset()

	assert.Equal(t, SectionOverview, v.Section())
	assert.NoError(t, v.Err())
}
