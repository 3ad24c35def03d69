package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// mockByteSource implements driven.ByteSource for testing.
type mockByteSource struct {
	ReadFunc func(ctx context.Context, uri string) ([]byte, error)
}

func (m *mockByteSource) Read(ctx context.Context, uri string) ([]byte, error) {
	return m.ReadFunc(ctx, uri)
}

// mockLibraryStore implements driven.LibraryStore for testing.
type mockLibraryStore struct {
	GetNovelFunc func(ctx context.Context, id string) (*domain.Novel, error)
}

func (m *mockLibraryStore) SaveNovel(_ context.Context, _ *domain.Novel) error { return nil }
func (m *mockLibraryStore) GetNovel(ctx context.Context, id string) (*domain.Novel, error) {
	return m.GetNovelFunc(ctx, id)
}
func (m *mockLibraryStore) GetNovelByPath(_ context.Context, _ string) (*domain.Novel, error) {
	return nil, domain.ErrNotFound
}
func (m *mockLibraryStore) ListNovels(_ context.Context) ([]domain.Novel, error) { return nil, nil }
func (m *mockLibraryStore) DeleteNovel(_ context.Context, _ string) error       { return nil }

// mockPositionStore implements driven.PositionStore for testing.
type mockPositionStore struct {
	GetPositionFunc func(ctx context.Context, novelID string) (*domain.ReadingPosition, error)
}

func (m *mockPositionStore) SavePosition(_ context.Context, _ *domain.ReadingPosition) error {
	return nil
}
func (m *mockPositionStore) GetPosition(ctx context.Context, novelID string) (*domain.ReadingPosition, error) {
	return m.GetPositionFunc(ctx, novelID)
}
func (m *mockPositionStore) DeletePosition(_ context.Context, _ string) error { return nil }

// singleNovelLibrary returns a library store holding exactly one novel.
func singleNovelLibrary(novel *domain.Novel) *mockLibraryStore {
	return &mockLibraryStore{
		GetNovelFunc: func(_ context.Context, id string) (*domain.Novel, error) {
			if id != novel.ID {
				return nil, domain.ErrNotFound
			}
			return novel, nil
		},
	}
}

// subscribeStates attaches a subscriber that forwards every snapshot
// into the returned channel.
func subscribeStates(r *ReaderService) <-chan driving.ReaderState {
	ch := make(chan driving.ReaderState, 64)
	r.Subscribe(func(s driving.ReaderState) { ch <- s })
	return ch
}

// waitForState receives snapshots until one satisfies pred.
func waitForState(t *testing.T, ch <-chan driving.ReaderState, pred func(driving.ReaderState) bool) driving.ReaderState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-ch:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for reader state")
		}
	}
}

// installDoc puts a document into the engine directly, bypassing the
// asynchronous load path, so navigation can be tested in isolation.
func installDoc(r *ReaderService, doc *domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	r.novelID = doc.NovelID
	r.title = doc.Title
	r.current = 0
	r.visible = doc.ChunkText(0)
	r.cache = map[int]string{0: r.visible}
}

func TestReaderLoad(t *testing.T) {
	novel := &domain.Novel{ID: "novel-1", Title: "Test Novel", Path: "/books/test.txt"}
	source := &mockByteSource{
		ReadFunc: func(_ context.Context, uri string) ([]byte, error) {
			assert.Equal(t, "/books/test.txt", uri)
			return []byte("First line.\r\nSecond   line."), nil
		},
	}
	r := NewReaderService(source, singleNovelLibrary(novel), nil)
	states := subscribeStates(r)

	r.Load(context.Background(), "novel-1")

	// The synchronous part of Load publishes a loading snapshot first.
	loading := waitForState(t, states, func(s driving.ReaderState) bool { return s.Loading })
	assert.Equal(t, "novel-1", loading.NovelID)

	done := waitForState(t, states, func(s driving.ReaderState) bool { return !s.Loading })
	require.NoError(t, done.Err)
	assert.Equal(t, "novel-1", done.NovelID)
	assert.Equal(t, "Test Novel", done.Title)
	assert.Equal(t, 0, done.ChunkIndex)
	assert.Equal(t, 1, done.TotalChunks)
	assert.Equal(t, "First line.\nSecond line.", done.ChunkText)
}

func TestReaderLoadError(t *testing.T) {
	novel := &domain.Novel{ID: "novel-1", Title: "Test Novel", Path: "/books/missing.txt"}
	readErr := errors.New("permission denied")
	failing := true
	source := &mockByteSource{
		ReadFunc: func(_ context.Context, _ string) ([]byte, error) {
			if failing {
				return nil, readErr
			}
			return []byte("recovered text"), nil
		},
	}
	r := NewReaderService(source, singleNovelLibrary(novel), nil)
	states := subscribeStates(r)

	r.Load(context.Background(), "novel-1")
	failed := waitForState(t, states, func(s driving.ReaderState) bool { return !s.Loading })
	require.Error(t, failed.Err)
	assert.ErrorIs(t, failed.Err, readErr)
	assert.Zero(t, failed.TotalChunks)

	// Load is retryable: a successful retry clears the error.
	failing = false
	r.Load(context.Background(), "novel-1")
	retried := waitForState(t, states, func(s driving.ReaderState) bool { return !s.Loading })
	require.NoError(t, retried.Err)
	assert.Equal(t, "recovered text", retried.ChunkText)
}

func TestReaderStaleLoadDiscarded(t *testing.T) {
	slowGate := make(chan struct{})
	novels := map[string]*domain.Novel{
		"slow": {ID: "slow", Title: "Slow", Path: "/books/slow.txt"},
		"fast": {ID: "fast", Title: "Fast", Path: "/books/fast.txt"},
	}
	library := &mockLibraryStore{
		GetNovelFunc: func(_ context.Context, id string) (*domain.Novel, error) {
			novel, ok := novels[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return novel, nil
		},
	}
	source := &mockByteSource{
		ReadFunc: func(_ context.Context, uri string) ([]byte, error) {
			if uri == "/books/slow.txt" {
				<-slowGate
				return []byte("slow content"), nil
			}
			return []byte("fast content"), nil
		},
	}
	r := NewReaderService(source, library, nil)
	states := subscribeStates(r)

	r.Load(context.Background(), "slow")
	r.Load(context.Background(), "fast")
	done := waitForState(t, states, func(s driving.ReaderState) bool { return !s.Loading })
	assert.Equal(t, "fast", done.NovelID)
	assert.Equal(t, "fast content", done.ChunkText)

	// The superseded load finishes late; its result must be dropped.
	close(slowGate)
	time.Sleep(50 * time.Millisecond)
	got := r.State()
	assert.Equal(t, "fast", got.NovelID)
	assert.Equal(t, "fast content", got.ChunkText)
}

func TestReaderResumesFromSavedPosition(t *testing.T) {
	novel := &domain.Novel{ID: "novel-1", Title: "Long Novel", Path: "/books/long.txt"}
	positions := &mockPositionStore{
		GetPositionFunc: func(_ context.Context, novelID string) (*domain.ReadingPosition, error) {
			require.Equal(t, "novel-1", novelID)
			return &domain.ReadingPosition{NovelID: novelID, ChunkIndex: 2}, nil
		},
	}
	source := &mockByteSource{
		ReadFunc: func(_ context.Context, _ string) ([]byte, error) {
			return []byte(strings.Repeat("x", domain.ChunkSize*4)), nil
		},
	}
	r := NewReaderService(source, singleNovelLibrary(novel), positions)
	states := subscribeStates(r)

	r.Load(context.Background(), "novel-1")
	done := waitForState(t, states, func(s driving.ReaderState) bool { return !s.Loading })
	assert.Equal(t, 2, done.ChunkIndex)
}

func TestReaderResumeIgnoresOutOfRangePosition(t *testing.T) {
	novel := &domain.Novel{ID: "novel-1", Title: "Short Novel", Path: "/books/short.txt"}
	positions := &mockPositionStore{
		GetPositionFunc: func(_ context.Context, novelID string) (*domain.ReadingPosition, error) {
			return &domain.ReadingPosition{NovelID: novelID, ChunkIndex: 40}, nil
		},
	}
	source := &mockByteSource{
		ReadFunc: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("just one chunk"), nil
		},
	}
	r := NewReaderService(source, singleNovelLibrary(novel), positions)
	states := subscribeStates(r)

	r.Load(context.Background(), "novel-1")
	done := waitForState(t, states, func(s driving.ReaderState) bool { return !s.Loading })
	assert.Equal(t, 0, done.ChunkIndex)
}

func TestReaderNavigation(t *testing.T) {
	r := NewReaderService(nil, nil, nil)
	installDoc(r, domain.NewDocument("novel-1", "Nav", strings.Repeat("x", domain.ChunkSize*3)))

	r.NextChunk()
	assert.Equal(t, 1, r.State().ChunkIndex)

	r.NextChunk()
	assert.Equal(t, 2, r.State().ChunkIndex)

	// At the last chunk NextChunk is a no-op.
	r.NextChunk()
	assert.Equal(t, 2, r.State().ChunkIndex)

	r.PreviousChunk()
	assert.Equal(t, 1, r.State().ChunkIndex)

	r.LoadChunk(0)
	assert.Equal(t, 0, r.State().ChunkIndex)

	// At chunk 0 PreviousChunk is a no-op.
	r.PreviousChunk()
	assert.Equal(t, 0, r.State().ChunkIndex)

	// Out-of-range requests are ignored.
	r.LoadChunk(99)
	assert.Equal(t, 0, r.State().ChunkIndex)
	r.LoadChunk(-1)
	assert.Equal(t, 0, r.State().ChunkIndex)
}

func TestReaderNavigationWithoutDocument(t *testing.T) {
	r := NewReaderService(nil, nil, nil)

	r.LoadChunk(0)
	r.NextChunk()
	r.PreviousChunk()

	state := r.State()
	assert.Empty(t, state.NovelID)
	assert.Zero(t, state.ChunkIndex)
	assert.Zero(t, state.TotalChunks)
}

func TestReaderCacheEvictsLowestIndices(t *testing.T) {
	r := NewReaderService(nil, nil, nil)
	installDoc(r, domain.NewDocument("novel-1", "Big", strings.Repeat("x", domain.ChunkSize*7)))

	for i := 1; i <= 5; i++ {
		r.LoadChunk(i)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.cache, maxCachedChunks)
	for i := 1; i <= 5; i++ {
		assert.Contains(t, r.cache, i)
	}
	assert.NotContains(t, r.cache, 0)
}

func TestReaderCacheHitServesSameText(t *testing.T) {
	r := NewReaderService(nil, nil, nil)
	installDoc(r, domain.NewDocument("novel-1", "Big", strings.Repeat("ab", domain.ChunkSize)))

	r.LoadChunk(1)
	first := r.State().ChunkText
	r.LoadChunk(0)
	r.LoadChunk(1)
	assert.Equal(t, first, r.State().ChunkText)
}

func TestReaderProgress(t *testing.T) {
	r := NewReaderService(nil, nil, nil)

	// No document.
	assert.Zero(t, r.Progress())

	// Single chunk documents report zero progress.
	installDoc(r, domain.NewDocument("novel-1", "Short", "tiny"))
	assert.Zero(t, r.Progress())

	installDoc(r, domain.NewDocument("novel-2", "Long", strings.Repeat("x", domain.ChunkSize*5)))
	assert.Zero(t, r.Progress())
	r.LoadChunk(2)
	assert.InDelta(t, 0.5, r.Progress(), 1e-9)
	r.LoadChunk(4)
	assert.InDelta(t, 1.0, r.Progress(), 1e-9)
}

func TestReaderClose(t *testing.T) {
	r := NewReaderService(nil, nil, nil)
	installDoc(r, domain.NewDocument("novel-1", "Open", strings.Repeat("x", domain.ChunkSize*2)))
	states := subscribeStates(r)

	r.Close()
	cleared := waitForState(t, states, func(s driving.ReaderState) bool { return s.NovelID == "" })
	assert.Empty(t, cleared.ChunkText)
	assert.Zero(t, cleared.TotalChunks)
	assert.False(t, cleared.Loading)

	// Idempotent.
	r.Close()
	assert.Empty(t, r.State().NovelID)
}

func TestReaderCloseInvalidatesInFlightLoad(t *testing.T) {
	gate := make(chan struct{})
	novel := &domain.Novel{ID: "novel-1", Title: "Gated", Path: "/books/gated.txt"}
	source := &mockByteSource{
		ReadFunc: func(_ context.Context, _ string) ([]byte, error) {
			<-gate
			return []byte("late content"), nil
		},
	}
	r := NewReaderService(source, singleNovelLibrary(novel), nil)

	r.Load(context.Background(), "novel-1")
	r.Close()
	close(gate)
	time.Sleep(50 * time.Millisecond)

	state := r.State()
	assert.Empty(t, state.NovelID)
	assert.Empty(t, state.ChunkText)
	assert.False(t, state.Loading)
}
