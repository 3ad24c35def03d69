package tui

import (
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI depends on.
// This keeps the TUI decoupled from service construction.
type Ports struct {
	// Reader is the chunked reading engine.
	Reader driving.ReaderService

	// Library manages the novel library.
	Library driving.LibraryService

	// Settings manages reader settings.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate.
func NewPorts(reader driving.ReaderService, library driving.LibraryService, settings driving.SettingsService) *Ports {
	return &Ports{
		Reader:   reader,
		Library:  library,
		Settings: settings,
	}
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p.Reader == nil {
		return ErrMissingReaderService
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
