package driving

import "github.com/custodia-labs/novella-cli/internal/core/domain"

// SettingsService manages reader display preferences.
type SettingsService interface {
	// Get retrieves current reader settings.
	Get() (*domain.ReaderSettings, error)

	// Save persists reader settings.
	Save(settings *domain.ReaderSettings) error

	// SetTheme updates the colour theme.
	SetTheme(theme domain.Theme) error

	// GetDefaults returns default settings.
	GetDefaults() domain.ReaderSettings
}
