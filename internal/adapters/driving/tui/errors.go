package tui

import "errors"

// Validation errors for TUI construction.
var (
	// ErrMissingReaderService indicates no reader service was provided.
	ErrMissingReaderService = errors.New("reader service is required")

	// ErrMissingLibraryService indicates no library service was provided.
	ErrMissingLibraryService = errors.New("library service is required")

	// ErrMissingSettingsService indicates no settings service was provided.
	ErrMissingSettingsService = errors.New("settings service is required")
)
