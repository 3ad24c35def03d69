package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	settings := newMockSettingsService()
	cleanup := setupCLITest(&mockLibraryService{}, settings)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "theme:           dark")
	assert.Contains(t, out, "show_progress:   true")
	assert.Contains(t, out, "resume_on_open:  true")
}

func TestSettingsCmd_GetOne(t *testing.T) {
	settings := newMockSettingsService()
	settings.settings.Theme = domain.ThemeLight
	cleanup := setupCLITest(&mockLibraryService{}, settings)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "get", "theme"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "light")
}

func TestSettingsCmd_GetUnknown(t *testing.T) {
	cleanup := setupCLITest(&mockLibraryService{}, newMockSettingsService())
	defer cleanup()

	rootCmd.SetArgs([]string{"settings", "get", "font"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_SetTheme(t *testing.T) {
	settings := newMockSettingsService()
	cleanup := setupCLITest(&mockLibraryService{}, settings)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "theme", "light"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.settings.Theme)
	assert.Contains(t, buf.String(), "theme set to light")
}

func TestSettingsCmd_SetInvalidTheme(t *testing.T) {
	cleanup := setupCLITest(&mockLibraryService{}, newMockSettingsService())
	defer cleanup()

	rootCmd.SetArgs([]string{"settings", "set", "theme", "sepia"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_SetBoolean(t *testing.T) {
	settings := newMockSettingsService()
	cleanup := setupCLITest(&mockLibraryService{}, settings)
	defer cleanup()

	rootCmd.SetArgs([]string{"settings", "set", "show_progress", "false"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.False(t, settings.settings.ShowProgress)
	// The untouched settings keep their values.
	assert.True(t, settings.settings.ResumeOnOpen)
}

func TestSettingsCmd_SetInvalidBoolean(t *testing.T) {
	cleanup := setupCLITest(&mockLibraryService{}, newMockSettingsService())
	defer cleanup()

	rootCmd.SetArgs([]string{"settings", "set", "resume_on_open", "maybe"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Reset(t *testing.T) {
	settings := newMockSettingsService()
	settings.settings.Theme = domain.ThemeLight
	settings.settings.ShowProgress = false
	cleanup := setupCLITest(&mockLibraryService{}, settings)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "reset"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReaderSettings(), settings.settings)
	assert.Contains(t, buf.String(), "restored to defaults")
}
