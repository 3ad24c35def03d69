package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui"
)

// tuiCmd launches the interactive reader. The root command runs the
// same thing, so plain `novella` opens the library.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive reader",
	Long: `Launch the interactive terminal reader.

Controls:
  ↑/k, ↓/j - Scroll / navigate
  ←/h, →/l - Previous / next chunk
  Enter    - Open novel
  Esc      - Save position and go back
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Panic recovery so a rendering bug leaves a stack trace instead
	// of a corrupted terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(readerService, libraryService, settingsService)
	return tui.Run(ports)
}
