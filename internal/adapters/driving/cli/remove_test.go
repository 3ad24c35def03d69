package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

func TestRemoveCmd_Use(t *testing.T) {
	assert.Equal(t, "remove <novel>", removeCmd.Use)
}

func TestRemoveCmd_ByID(t *testing.T) {
	var removedID string
	library := &mockLibraryService{
		ResolveFunc: func(ctx context.Context, ref string) (*domain.Novel, error) {
			return &domain.Novel{ID: "n1", Title: "A Novel", Path: "/books/a.txt"}, nil
		},
		RemoveFunc: func(ctx context.Context, id string) error {
			removedID = id
			return nil
		},
	}
	cleanup := setupCLITest(library, newMockSettingsService())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"remove", "n1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "n1", removedID)
	assert.Contains(t, buf.String(), `Removed "A Novel" (n1)`)
}

func TestRemoveCmd_UnknownNovel(t *testing.T) {
	cleanup := setupCLITest(&mockLibraryService{}, newMockSettingsService())
	defer cleanup()

	rootCmd.SetArgs([]string{"remove", "no-such-novel"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
