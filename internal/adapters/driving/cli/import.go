package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/novella-cli/internal/adapters/driven/source/filesystem"
	"github.com/custodia-labs/novella-cli/internal/logger"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Add a novel to the library",
	Long: `Imports a plain-text novel into the library.

With --watch the path is treated as a directory: existing .txt files
are imported immediately and new ones as they appear, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "watch a directory and import novels as they appear")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if importWatch {
		return runImportWatch(cmd, args[0])
	}

	novel, err := libraryService.Import(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %q (%s)\n", novel.Title, novel.ID)
	return nil
}

func runImportWatch(cmd *cobra.Command, dir string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watcher := filesystem.NewImportWatcher(dir, func(path string) {
		novel, err := libraryService.Import(ctx, path)
		if err != nil {
			logger.Warn("import %s: %v", path, err)
			return
		}
		cmd.Printf("Imported %q (%s)\n", novel.Title, novel.ID)
	})

	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.SyncExisting(); err != nil {
		logger.Warn("scanning %s: %v", dir, err)
	}

	cmd.Printf("Watching %s for novels. Press Ctrl+C to stop.\n", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	cmd.Println("Stopping watcher.")
	return nil
}
