package filesystem

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ByteSource = (*Source)(nil)

// Source reads novel bytes from the local filesystem.
type Source struct{}

// NewSource creates a filesystem byte source.
func NewSource() *Source {
	return &Source{}
}

// Read returns the full content of the file at uri.
// Both plain paths and file:// URIs are accepted.
func (s *Source) Read(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(uri, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
