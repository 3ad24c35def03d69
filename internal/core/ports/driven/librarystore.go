package driven

import (
	"context"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

// LibraryStore persists novel metadata.
// Backed by SQLite for the real application.
type LibraryStore interface {
	// SaveNovel stores or updates a novel.
	SaveNovel(ctx context.Context, novel *domain.Novel) error

	// GetNovel retrieves a novel by ID.
	GetNovel(ctx context.Context, id string) (*domain.Novel, error)

	// GetNovelByPath retrieves a novel by its file path.
	GetNovelByPath(ctx context.Context, path string) (*domain.Novel, error)

	// ListNovels returns all novels in the library.
	ListNovels(ctx context.Context) ([]domain.Novel, error)

	// DeleteNovel removes a novel and its reading position.
	DeleteNovel(ctx context.Context, id string) error
}
