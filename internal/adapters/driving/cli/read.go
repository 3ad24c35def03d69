package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

var readCmd = &cobra.Command{
	Use:   "read <novel>",
	Short: "Open a novel in the reader",
	Long: `Opens a novel directly in the interactive reader.

The novel can be referenced by library ID or by file path. A path that
is not in the library yet is imported first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(_ *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ctx := context.Background()

	novel, err := libraryService.Resolve(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		novel, err = libraryService.Import(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("opening novel: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(readerService, libraryService, settingsService)
	return tui.RunWithNovel(ports, *novel)
}
