package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
	"github.com/custodia-labs/novella-cli/internal/logger"
	"github.com/custodia-labs/novella-cli/internal/normaliser"
	"github.com/custodia-labs/novella-cli/internal/textcodec"
)

// Ensure ReaderService implements the interface.
var _ driving.ReaderService = (*ReaderService)(nil)

// maxCachedChunks bounds the chunk cache. When the cache is full the
// lowest chunk indices are evicted first, so forward reading keeps the
// most recent chunks warm.
const maxCachedChunks = 5

// ReaderService is the chunked reading engine. It loads a novel's full
// text in the background, decodes and normalises it, and serves it one
// chunk at a time through a small cache.
//
// All state is guarded by mu. A monotonic generation counter stamps
// every Load; background completions compare their stamp against the
// current generation and discard themselves when a newer Load or a
// Close has superseded them.
type ReaderService struct {
	source    driven.ByteSource
	library   driven.LibraryStore
	positions driven.PositionStore

	mu         sync.Mutex
	generation uint64
	doc        *domain.Document
	novelID    string
	title      string
	cache      map[int]string
	current    int
	visible    string
	loading    bool
	lastErr    error
	subs       []func(driving.ReaderState)
}

// NewReaderService creates a reading engine.
// The position store may be nil; resume-on-open is then disabled.
func NewReaderService(
	source driven.ByteSource,
	library driven.LibraryStore,
	positions driven.PositionStore,
) *ReaderService {
	return &ReaderService{
		source:    source,
		library:   library,
		positions: positions,
		cache:     make(map[int]string),
	}
}

// Load opens a novel, replacing any previously open document.
// It returns immediately; the fetch, decode and normalise run in a
// background goroutine whose completion is discarded if another Load
// or a Close happens first.
func (r *ReaderService) Load(ctx context.Context, novelID string) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.doc = nil
	r.novelID = novelID
	r.title = ""
	r.cache = make(map[int]string)
	r.current = 0
	r.visible = ""
	r.loading = true
	r.lastErr = nil
	r.publishLocked()
	r.mu.Unlock()

	go r.load(ctx, gen, novelID)
}

// load runs the slow half of Load off the lock.
func (r *ReaderService) load(ctx context.Context, gen uint64, novelID string) {
	doc, startChunk, err := r.buildDocument(ctx, novelID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		// A newer Load or Close won the race; this result is stale.
		logger.Debug("discarding stale load for novel %s", novelID)
		return
	}

	r.loading = false
	if err != nil {
		r.lastErr = err
		r.publishLocked()
		return
	}

	r.doc = doc
	r.title = doc.Title
	r.current = startChunk
	r.visible = doc.ChunkText(startChunk)
	r.cache[startChunk] = r.visible
	r.publishLocked()
}

// buildDocument fetches, decodes and normalises the novel text and
// picks the chunk to open on.
func (r *ReaderService) buildDocument(ctx context.Context, novelID string) (*domain.Document, int, error) {
	novel, err := r.library.GetNovel(ctx, novelID)
	if err != nil {
		return nil, 0, fmt.Errorf("looking up novel: %w", err)
	}

	data, err := r.source.Read(ctx, novel.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading novel file: %w", err)
	}

	text := normaliser.Normalise(textcodec.Decode(data))
	doc := domain.NewDocument(novel.ID, novel.Title, text)
	logger.Debug("loaded novel %s: %d characters, %d chunks", novel.ID, doc.Len(), doc.TotalChunks())

	return doc, r.resumeChunk(ctx, doc, novel.ID), nil
}

// resumeChunk returns the saved chunk index when one exists and is
// still in range, otherwise 0.
func (r *ReaderService) resumeChunk(ctx context.Context, doc *domain.Document, novelID string) int {
	if r.positions == nil {
		return 0
	}
	pos, err := r.positions.GetPosition(ctx, novelID)
	if err != nil || pos == nil {
		return 0
	}
	if !doc.InRange(pos.ChunkIndex) {
		return 0
	}
	return pos.ChunkIndex
}

// LoadChunk makes chunk index the visible chunk.
// No-op when no document is open or index is out of range.
func (r *ReaderService) LoadChunk(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadChunkLocked(index)
}

func (r *ReaderService) loadChunkLocked(index int) {
	if r.doc == nil || !r.doc.InRange(index) {
		return
	}

	text, ok := r.cache[index]
	if !ok {
		text = r.doc.ChunkText(index)
		r.cache[index] = text
		r.evictLocked()
	}

	r.current = index
	r.visible = text
	r.publishLocked()
}

// evictLocked drops the lowest-indexed cache entries until the cache
// fits the bound again.
func (r *ReaderService) evictLocked() {
	for len(r.cache) > maxCachedChunks {
		lowest := -1
		for idx := range r.cache {
			if lowest < 0 || idx < lowest {
				lowest = idx
			}
		}
		delete(r.cache, lowest)
	}
}

// NextChunk advances to the following chunk; no-op at the end.
func (r *ReaderService) NextChunk() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadChunkLocked(r.current + 1)
}

// PreviousChunk moves to the preceding chunk; no-op at chunk 0.
func (r *ReaderService) PreviousChunk() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadChunkLocked(r.current - 1)
}

// Progress returns the fraction of chunks traversed, in [0,1].
// A document of at most one chunk reports 0.
func (r *ReaderService) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progressLocked()
}

func (r *ReaderService) progressLocked() float64 {
	if r.doc == nil {
		return 0
	}
	total := r.doc.TotalChunks()
	if total <= 1 {
		return 0
	}
	return float64(r.current) / float64(total-1)
}

// State returns the current snapshot.
func (r *ReaderService) State() driving.ReaderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *ReaderService) stateLocked() driving.ReaderState {
	state := driving.ReaderState{
		NovelID:    r.novelID,
		Title:      r.title,
		ChunkText:  r.visible,
		ChunkIndex: r.current,
		Loading:    r.loading,
		Err:        r.lastErr,
	}
	if r.doc != nil {
		state.TotalChunks = r.doc.TotalChunks()
	}
	return state
}

// Subscribe registers a callback invoked with a snapshot after every
// state change. Callbacks run with the engine lock held and must not
// call back into the engine.
func (r *ReaderService) Subscribe(fn func(driving.ReaderState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// publishLocked pushes the current snapshot to every subscriber.
func (r *ReaderService) publishLocked() {
	state := r.stateLocked()
	for _, fn := range r.subs {
		fn(state)
	}
}

// Close discards the document and cache. Any in-flight load is
// invalidated. Idempotent.
func (r *ReaderService) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.doc = nil
	r.novelID = ""
	r.title = ""
	r.cache = make(map[int]string)
	r.current = 0
	r.visible = ""
	r.loading = false
	r.lastErr = nil
	r.publishLocked()
}
