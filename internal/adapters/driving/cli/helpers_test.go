package cli

import (
	"context"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// mockLibraryService implements driving.LibraryService for CLI tests.
type mockLibraryService struct {
	ImportFunc  func(ctx context.Context, path string) (*domain.Novel, error)
	ListFunc    func(ctx context.Context) ([]domain.Novel, error)
	ResolveFunc func(ctx context.Context, ref string) (*domain.Novel, error)
	RemoveFunc  func(ctx context.Context, id string) error
}

func (m *mockLibraryService) Import(ctx context.Context, path string) (*domain.Novel, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, path)
	}
	return &domain.Novel{ID: "n1", Title: "Mock Novel", Path: path}, nil
}

func (m *mockLibraryService) List(ctx context.Context) ([]domain.Novel, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockLibraryService) Get(ctx context.Context, id string) (*domain.Novel, error) {
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) Resolve(ctx context.Context, ref string) (*domain.Novel, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ref)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) Remove(ctx context.Context, id string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return nil
}

func (m *mockLibraryService) SavePosition(ctx context.Context, pos *domain.ReadingPosition) error {
	return nil
}

func (m *mockLibraryService) Position(ctx context.Context, novelID string) (*domain.ReadingPosition, error) {
	return nil, domain.ErrNotFound
}

// mockSettingsService implements driving.SettingsService for CLI tests.
type mockSettingsService struct {
	settings domain.ReaderSettings
	saveErr  error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultReaderSettings()}
}

func (m *mockSettingsService) Get() (*domain.ReaderSettings, error) {
	out := m.settings
	return &out, nil
}

func (m *mockSettingsService) Save(settings *domain.ReaderSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return domain.ErrInvalidInput
	}
	m.settings.Theme = theme
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.ReaderSettings {
	return domain.DefaultReaderSettings()
}

// mockReaderService implements driving.ReaderService for CLI tests.
type mockReaderService struct{}

func (m *mockReaderService) Load(ctx context.Context, novelID string) {}
func (m *mockReaderService) LoadChunk(index int)                      {}
func (m *mockReaderService) NextChunk()                               {}
func (m *mockReaderService) PreviousChunk()                           {}
func (m *mockReaderService) Progress() float64                        { return 0 }
func (m *mockReaderService) State() driving.ReaderState               { return driving.ReaderState{} }
func (m *mockReaderService) Subscribe(fn func(driving.ReaderState))   {}
func (m *mockReaderService) Close()                                   {}

// setupCLITest swaps the package services for mocks and returns a
// restore function. All three services are replaced so initServices
// stays a no-op during command execution.
func setupCLITest(library *mockLibraryService, settings *mockSettingsService) func() {
	oldLibrary := libraryService
	oldSettings := settingsService
	oldReader := readerService

	libraryService = library
	settingsService = settings
	readerService = &mockReaderService{}

	return func() {
		libraryService = oldLibrary
		settingsService = oldSettings
		readerService = oldReader
	}
}
