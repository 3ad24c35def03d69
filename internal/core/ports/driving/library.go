package driving

import (
	"context"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

// LibraryService manages the novel library and reading positions.
type LibraryService interface {
	// Import adds a text file to the library.
	// Importing a path that is already in the library returns the
	// existing entry rather than a duplicate.
	Import(ctx context.Context, path string) (*domain.Novel, error)

	// List returns all novels in the library.
	List(ctx context.Context) ([]domain.Novel, error)

	// Get retrieves a novel by ID.
	Get(ctx context.Context, id string) (*domain.Novel, error)

	// Resolve finds a novel by ID or by file path.
	Resolve(ctx context.Context, ref string) (*domain.Novel, error)

	// Remove deletes a novel and its reading position.
	Remove(ctx context.Context, id string) error

	// SavePosition records the reading position for a novel.
	SavePosition(ctx context.Context, pos *domain.ReadingPosition) error

	// Position returns the saved reading position for a novel,
	// or domain.ErrNotFound if none was saved.
	Position(ctx context.Context, novelID string) (*domain.ReadingPosition, error)
}
