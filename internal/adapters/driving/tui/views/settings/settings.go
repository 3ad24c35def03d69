// Package settings implements the reader settings view.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// Setting rows, in display order.
const (
	rowTheme = iota
	rowShowProgress
	rowResumeOnOpen
	rowCount
)

// View is the settings view.
type View struct {
	service driving.SettingsService
	styles  *styles.Styles
	keys    *keymap.KeyMap

	settings domain.ReaderSettings
	cursor   int
	err      error

	width  int
	height int
}

// New creates a settings view.
func New(service driving.SettingsService, s *styles.Styles, keys *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	return &View{
		service:  service,
		styles:   s,
		keys:     keys,
		settings: service.GetDefaults(),
	}
}

// Init returns the initial command, which loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// SetStyles updates the styles, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	v.styles = s
}

// Settings returns the currently displayed settings.
func (v *View) Settings() domain.ReaderSettings {
	return v.settings
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := v.service.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSettings(settings domain.ReaderSettings) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingsSaved{Err: v.service.Save(&settings)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Settings != nil {
			v.settings = *msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case keymap.Matches(keyStr, v.keys.Down):
		if v.cursor < rowCount-1 {
			v.cursor++
		}
		return v, nil

	case keymap.Matches(keyStr, v.keys.Select), keyStr == " ":
		return v, v.toggle()

	case keymap.Matches(keyStr, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewLibrary}
		}
	}

	return v, nil
}

// toggle flips the highlighted setting and persists the result.
func (v *View) toggle() tea.Cmd {
	switch v.cursor {
	case rowTheme:
		if v.settings.Theme == domain.ThemeDark {
			v.settings.Theme = domain.ThemeLight
		} else {
			v.settings.Theme = domain.ThemeDark
		}
	case rowShowProgress:
		v.settings.ShowProgress = !v.settings.ShowProgress
	case rowResumeOnOpen:
		v.settings.ResumeOnOpen = !v.settings.ResumeOnOpen
	}
	return v.saveSettings(v.settings)
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Theme", string(v.settings.Theme)},
		{"Show progress", onOff(v.settings.ShowProgress)},
		{"Resume on open", onOff(v.settings.ResumeOnOpen)},
	}

	for i, row := range rows {
		line := fmt.Sprintf("%-16s %s", row.label, row.value)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter/space: toggle • esc: back"))

	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
