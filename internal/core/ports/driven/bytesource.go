package driven

import "context"

// ByteSource fetches the raw bytes of a novel file.
// It is read-only: the core never writes novel files. Implementations
// return an error when the file is missing or unreadable; interpreting
// the bytes (encoding, normalisation) is the core's job.
type ByteSource interface {
	// Read returns the full content of the file at uri.
	Read(ctx context.Context, uri string) ([]byte, error)
}
