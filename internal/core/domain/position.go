package domain

import "time"

// ReadingPosition is the resume state for one novel.
// The reading engine reports it after each chunk navigation; persisting
// it is the job of the position store, not the engine.
type ReadingPosition struct {
	// NovelID links to the library entry.
	NovelID string

	// ChunkIndex is the chunk the reader was on.
	ChunkIndex int

	// Position is the overall progress scalar in [0,1].
	Position float64

	// ScrollOffset is the line offset within the chunk view.
	ScrollOffset int

	// UpdatedAt is when the position was last reported.
	UpdatedAt time.Time
}

// Validate checks the position has the required fields.
func (p *ReadingPosition) Validate() error {
	if p.NovelID == "" || p.ChunkIndex < 0 {
		return ErrInvalidInput
	}
	return nil
}
