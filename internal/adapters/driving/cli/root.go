// Package cli implements the command-line interface using Cobra.
// Commands depend on the driving ports, which are wired up once in
// initServices before any command runs. Tests inject mock services
// through the same package-level variables.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/novella-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/novella-cli/internal/adapters/driven/source/filesystem"
	"github.com/custodia-labs/novella-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
	"github.com/custodia-labs/novella-cli/internal/core/services"
	"github.com/custodia-labs/novella-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. initServices populates them; tests
// replace them with mocks.
var (
	libraryService  driving.LibraryService
	readerService   driving.ReaderService
	settingsService driving.SettingsService
	byteSource      driven.ByteSource
)

// store is kept so the process can close the database on exit.
var store *sqlite.Store

var (
	flagVerbose   bool
	flagDataDir   string
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "novella",
	Short: "A terminal novel reader",
	Long: `Novella is a terminal reader for plain-text novels.

Import .txt files into a local library, then read them chunk by chunk
with automatic encoding detection and saved reading positions.

Running novella without a subcommand opens the interactive reader.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "database directory (default ~/.novella/data)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.novella)")
}

// initServices wires the adapters and services. It is a no-op when the
// services are already set, which lets tests inject mocks.
func initServices() error {
	if libraryService != nil && readerService != nil && settingsService != nil {
		return nil
	}

	configStore, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err = sqlite.NewStore(flagDataDir)
	if err != nil {
		return fmt.Errorf("opening library database: %w", err)
	}

	byteSource = filesystem.NewSource()
	settingsService = services.NewSettingsService(configStore)
	libraryService = services.NewLibraryService(store.LibraryStore(), store.PositionStore(), byteSource)

	// Resume-on-open is implemented by handing the engine the position
	// store; withholding it disables resume.
	positions := store.PositionStore()
	if settings, err := settingsService.Get(); err == nil && !settings.ResumeOnOpen {
		positions = nil
	}
	readerService = services.NewReaderService(byteSource, store.LibraryStore(), positions)

	return nil
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()

	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing database: %v", cerr)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
