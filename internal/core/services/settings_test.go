package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/novella-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultReaderSettings()
	assert.Equal(t, defaults.Theme, settings.Theme)
	assert.Equal(t, defaults.ShowProgress, settings.ShowProgress)
	assert.Equal(t, defaults.ResumeOnOpen, settings.ResumeOnOpen)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("reader.theme", "light")
	_ = store.Set("reader.show_progress", false)
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.Theme)
	assert.False(t, settings.ShowProgress)
}

func TestSettingsService_Get_InvalidThemeReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("reader.theme", "neon")
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReaderSettings().Theme, settings.Theme)
}

func TestSettingsService_Save(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.Save(&domain.ReaderSettings{
		Theme:        domain.ThemeLight,
		ShowProgress: false,
		ResumeOnOpen: false,
	})
	require.NoError(t, err)

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, retrieved.Theme)
	assert.False(t, retrieved.ShowProgress)
	assert.False(t, retrieved.ResumeOnOpen)
}

func TestSettingsService_Save_InvalidTheme(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.Save(&domain.ReaderSettings{Theme: "neon"})
	assert.Error(t, err)
}

func TestSettingsService_SetTheme(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetTheme(domain.ThemeLight))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.Theme)

	// Other settings keep their defaults.
	defaults := domain.DefaultReaderSettings()
	assert.Equal(t, defaults.ShowProgress, settings.ShowProgress)
	assert.Equal(t, defaults.ResumeOnOpen, settings.ResumeOnOpen)
}

func TestSettingsService_SetTheme_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Error(t, service.SetTheme("neon"))
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	defaults := service.GetDefaults()
	assert.Equal(t, domain.DefaultReaderSettings(), defaults)
}
