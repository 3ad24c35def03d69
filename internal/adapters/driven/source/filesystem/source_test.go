package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

func TestSourceRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "novel.txt")
	require.NoError(t, os.WriteFile(path, []byte("once upon a time"), 0o600))

	source := NewSource()

	data, err := source.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "once upon a time", string(data))
}

func TestSourceReadFileURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "novel.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	source := NewSource()

	data, err := source.Read(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestSourceReadMissing(t *testing.T) {
	source := NewSource()

	_, err := source.Read(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceReadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := NewSource()

	_, err := source.Read(ctx, "/anything")
	assert.ErrorIs(t, err, context.Canceled)
}
