package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <novel>",
	Short: "Remove a novel from the library",
	Long: `Removes a novel and its saved reading position from the library.
The novel can be referenced by ID or by file path. The file itself is
not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ctx := context.Background()

	novel, err := libraryService.Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("finding novel: %w", err)
	}

	if err := libraryService.Remove(ctx, novel.ID); err != nil {
		return fmt.Errorf("removing novel: %w", err)
	}

	cmd.Printf("Removed %q (%s)\n", novel.Title, novel.ID)
	return nil
}
