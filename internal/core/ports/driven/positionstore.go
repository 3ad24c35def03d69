package driven

import (
	"context"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

// PositionStore persists per-novel reading positions.
// The reading engine reports positions through its caller; this store
// is the sink that makes them survive across sessions.
type PositionStore interface {
	// SavePosition stores or updates the position for a novel.
	SavePosition(ctx context.Context, pos *domain.ReadingPosition) error

	// GetPosition retrieves the saved position for a novel.
	GetPosition(ctx context.Context, novelID string) (*domain.ReadingPosition, error)

	// DeletePosition removes the saved position for a novel.
	DeletePosition(ctx context.Context, novelID string) error
}
