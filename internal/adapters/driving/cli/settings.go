package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage reader settings",
	Long: `View and configure reader settings.

Settings:
  theme           dark | light
  show_progress   true | false
  resume_on_open  true | false`,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [setting]",
	Short: "Show one setting, or all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  theme:           %s\n", settings.Theme)
	cmd.Printf("  show_progress:   %t\n", settings.ShowProgress)
	cmd.Printf("  resume_on_open:  %t\n", settings.ResumeOnOpen)

	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if len(args) == 0 {
		return runSettingsShow(cmd, nil)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	switch args[0] {
	case "theme":
		cmd.Println(settings.Theme)
	case "show_progress":
		cmd.Println(settings.ShowProgress)
	case "resume_on_open":
		cmd.Println(settings.ResumeOnOpen)
	default:
		return fmt.Errorf("unknown setting %q: %w", args[0], domain.ErrInvalidInput)
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	if key == "theme" {
		theme := domain.Theme(value)
		if err := settingsService.SetTheme(theme); err != nil {
			return fmt.Errorf("setting theme: %w", err)
		}
		cmd.Printf("theme set to %s\n", theme)
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	switch key {
	case "show_progress", "resume_on_open":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not a boolean: %w", value, domain.ErrInvalidInput)
		}
		if key == "show_progress" {
			settings.ShowProgress = enabled
		} else {
			settings.ResumeOnOpen = enabled
		}
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("%s set to %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}
