package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
)

// Ensure PositionStore implements the interface.
var _ driven.PositionStore = (*PositionStore)(nil)

// PositionStore is an in-memory implementation of driven.PositionStore.
type PositionStore struct {
	mu        sync.RWMutex
	positions map[string]domain.ReadingPosition
}

// NewPositionStore creates a new in-memory position store.
func NewPositionStore() *PositionStore {
	return &PositionStore{
		positions: make(map[string]domain.ReadingPosition),
	}
}

// SavePosition stores or updates the position for a novel.
func (s *PositionStore) SavePosition(_ context.Context, pos *domain.ReadingPosition) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[pos.NovelID] = *pos
	return nil
}

// GetPosition retrieves the saved position for a novel.
func (s *PositionStore) GetPosition(_ context.Context, novelID string) (*domain.ReadingPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.positions[novelID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pos, nil
}

// DeletePosition removes the saved position for a novel.
func (s *PositionStore) DeletePosition(_ context.Context, novelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, novelID)
	return nil
}
