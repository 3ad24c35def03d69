package services

import (
	"fmt"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTheme        = "reader.theme"
	keyShowProgress = "reader.show_progress"
	keyResumeOnOpen = "reader.resume_on_open"
)

// SettingsService manages reader display preferences.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current reader settings, falling back to defaults for
// anything not present in the config file.
func (s *SettingsService) Get() (*domain.ReaderSettings, error) {
	defaults := domain.DefaultReaderSettings()

	settings := &domain.ReaderSettings{
		Theme:        s.getTheme(defaults.Theme),
		ShowProgress: s.getBool(keyShowProgress, defaults.ShowProgress),
		ResumeOnOpen: s.getBool(keyResumeOnOpen, defaults.ResumeOnOpen),
	}

	return settings, nil
}

// Save persists reader settings.
func (s *SettingsService) Save(settings *domain.ReaderSettings) error {
	if !settings.Theme.IsValid() {
		return fmt.Errorf("invalid theme: %s", settings.Theme)
	}

	if err := s.configStore.Set(keyTheme, settings.Theme.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := s.configStore.Set(keyShowProgress, settings.ShowProgress); err != nil {
		return fmt.Errorf("save show_progress: %w", err)
	}
	if err := s.configStore.Set(keyResumeOnOpen, settings.ResumeOnOpen); err != nil {
		return fmt.Errorf("save resume_on_open: %w", err)
	}

	return nil
}

// SetTheme updates the colour theme.
func (s *SettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("invalid theme: %s", theme)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Theme = theme
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ReaderSettings {
	return domain.DefaultReaderSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getTheme(defaultVal domain.Theme) domain.Theme {
	val := s.configStore.GetString(keyTheme)
	if val == "" {
		return defaultVal
	}
	theme := domain.Theme(val)
	if !theme.IsValid() {
		return defaultVal
	}
	return theme
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
