package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
	"github.com/custodia-labs/novella-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the novel library and reading positions.
type LibraryService struct {
	store     driven.LibraryStore
	positions driven.PositionStore
	source    driven.ByteSource
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	store driven.LibraryStore,
	positions driven.PositionStore,
	source driven.ByteSource,
) *LibraryService {
	return &LibraryService{
		store:     store,
		positions: positions,
		source:    source,
	}
}

// Import adds a text file to the library. The path is normalised to an
// absolute path before lookup, so importing the same file twice (even
// through different relative spellings) returns the existing entry.
func (s *LibraryService) Import(ctx context.Context, path string) (*domain.Novel, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	existing, err := s.store.GetNovelByPath(ctx, abs)
	if err == nil {
		logger.Debug("import: %s already in library as %s", abs, existing.ID)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking library: %w", err)
	}

	// Read the file now so a bad path fails at import time, not on the
	// first open.
	if _, err := s.source.Read(ctx, abs); err != nil {
		return nil, fmt.Errorf("reading novel file: %w", err)
	}

	novel := &domain.Novel{
		ID:         uuid.NewString(),
		Title:      domain.TitleFromPath(abs),
		Path:       abs,
		ImportedAt: time.Now(),
	}
	if err := novel.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.SaveNovel(ctx, novel); err != nil {
		return nil, fmt.Errorf("saving novel: %w", err)
	}

	logger.Info("imported %s as %q (%s)", abs, novel.Title, novel.ID)
	return novel, nil
}

// List returns all novels in the library.
func (s *LibraryService) List(ctx context.Context) ([]domain.Novel, error) {
	return s.store.ListNovels(ctx)
}

// Get retrieves a novel by ID.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.Novel, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetNovel(ctx, id)
}

// Resolve finds a novel by ID first, then by file path. This lets CLI
// commands accept either form of reference.
func (s *LibraryService) Resolve(ctx context.Context, ref string) (*domain.Novel, error) {
	if ref == "" {
		return nil, domain.ErrInvalidInput
	}

	novel, err := s.store.GetNovel(ctx, ref)
	if err == nil {
		return novel, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	abs, err := filepath.Abs(ref)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return s.store.GetNovelByPath(ctx, abs)
}

// Remove deletes a novel and its reading position.
func (s *LibraryService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.DeleteNovel(ctx, id); err != nil {
		return err
	}
	if err := s.positions.DeletePosition(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("deleting position: %w", err)
	}
	return nil
}

// SavePosition records the reading position for a novel and bumps the
// novel's last-read time.
func (s *LibraryService) SavePosition(ctx context.Context, pos *domain.ReadingPosition) error {
	if pos == nil {
		return domain.ErrInvalidInput
	}
	if pos.UpdatedAt.IsZero() {
		pos.UpdatedAt = time.Now()
	}
	if err := pos.Validate(); err != nil {
		return err
	}
	if err := s.positions.SavePosition(ctx, pos); err != nil {
		return fmt.Errorf("saving position: %w", err)
	}

	novel, err := s.store.GetNovel(ctx, pos.NovelID)
	if err != nil {
		return nil
	}
	novel.LastReadAt = pos.UpdatedAt
	if err := s.store.SaveNovel(ctx, novel); err != nil {
		logger.Warn("updating last-read time for %s: %v", pos.NovelID, err)
	}
	return nil
}

// Position returns the saved reading position for a novel.
func (s *LibraryService) Position(ctx context.Context, novelID string) (*domain.ReadingPosition, error) {
	if novelID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.positions.GetPosition(ctx, novelID)
}
