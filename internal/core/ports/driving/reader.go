package driving

import "context"

// ReaderState is a snapshot of the reading engine's observable fields.
// The engine publishes a fresh snapshot to subscribers after every
// state mutation, synchronously with the operation (or its background
// completion) that caused it.
type ReaderState struct {
	// NovelID identifies the open novel, empty when unloaded.
	NovelID string

	// Title is the open novel's title.
	Title string

	// ChunkText is the visible chunk content.
	ChunkText string

	// ChunkIndex is the current chunk index.
	ChunkIndex int

	// TotalChunks is the chunk count of the open document.
	TotalChunks int

	// Loading is true while a load or chunk fetch is in flight.
	Loading bool

	// Err is the last load error, nil when the engine is healthy.
	// Load errors are retryable: calling Load again clears them.
	Err error
}

// ReaderService is the chunked reading engine.
//
// Load is asynchronous: it returns immediately and reports its outcome
// through the subscriber and State. The navigation operations are
// synchronous and silently ignore out-of-range requests; none of them
// return errors because the engine has no fatal failure mode.
type ReaderService interface {
	// Load opens a novel, replacing any previously open document.
	// A Load supersedes any in-flight Load on the same engine: the
	// older load's late completion is discarded.
	Load(ctx context.Context, novelID string)

	// LoadChunk makes chunk index the visible chunk.
	// No-op when no document is open or index is out of range.
	LoadChunk(index int)

	// NextChunk advances to the following chunk; no-op at the end.
	NextChunk()

	// PreviousChunk moves to the preceding chunk; no-op at chunk 0.
	PreviousChunk()

	// Progress returns the fraction of chunks traversed, in [0,1].
	// It is 0 whenever the document has at most one chunk.
	Progress() float64

	// State returns the current snapshot.
	State() ReaderState

	// Subscribe registers a callback invoked with a snapshot after
	// every state change. Callbacks must not call back into the engine.
	Subscribe(fn func(ReaderState))

	// Close discards the document and cache; idempotent.
	Close()
}
