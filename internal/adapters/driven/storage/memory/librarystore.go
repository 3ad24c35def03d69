package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
type LibraryStore struct {
	mu     sync.RWMutex
	novels map[string]domain.Novel
}

// NewLibraryStore creates a new in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{
		novels: make(map[string]domain.Novel),
	}
}

// SaveNovel stores or updates a novel.
func (s *LibraryStore) SaveNovel(_ context.Context, novel *domain.Novel) error {
	if err := novel.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.novels[novel.ID] = *novel
	return nil
}

// GetNovel retrieves a novel by ID.
func (s *LibraryStore) GetNovel(_ context.Context, id string) (*domain.Novel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	novel, ok := s.novels[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &novel, nil
}

// GetNovelByPath retrieves a novel by its file path.
func (s *LibraryStore) GetNovelByPath(_ context.Context, path string) (*domain.Novel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, novel := range s.novels {
		if novel.Path == path {
			n := novel
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListNovels returns all novels ordered by import time, newest first.
func (s *LibraryStore) ListNovels(_ context.Context) ([]domain.Novel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Novel, 0, len(s.novels))
	for _, novel := range s.novels {
		out = append(out, novel)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ImportedAt.After(out[j].ImportedAt)
	})
	return out, nil
}

// DeleteNovel removes a novel.
func (s *LibraryStore) DeleteNovel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.novels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.novels, id)
	return nil
}
