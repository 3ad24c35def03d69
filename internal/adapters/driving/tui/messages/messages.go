// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLibrary is the novel library list.
	ViewLibrary ViewType = iota
	// ViewReader is the chunked reading view.
	ViewReader
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "library"
	case ViewReader:
		return "reader"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// NovelsLoaded carries the list of library novels from the service.
// Progress maps novel ID to the saved reading progress in [0,1];
// novels never opened are absent.
type NovelsLoaded struct {
	Novels   []domain.Novel
	Progress map[string]float64
	Err      error
}

// NovelSelected signals a novel was chosen for reading.
type NovelSelected struct {
	Novel domain.Novel
}

// NovelImported signals an import finished.
type NovelImported struct {
	Novel *domain.Novel
	Err   error
}

// NovelRemoved signals a novel was removed from the library.
type NovelRemoved struct {
	ID  string
	Err error
}

// ReaderStateChanged carries a snapshot from the reading engine.
// The reader view re-arms its subscription command after each one.
type ReaderStateChanged struct {
	State driving.ReaderState
}

// SettingsLoaded carries the reader settings.
type SettingsLoaded struct {
	Settings *domain.ReaderSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
