// Package tui implements the terminal user interface using Bubbletea.
// The interface follows the Elm architecture: a single App model routes
// messages to the active view, and views return commands that produce
// further messages.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/views/reader"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

// App is the root Bubbletea model.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keys   *keymap.KeyMap

	activeView   messages.ViewType
	previousView messages.ViewType

	libraryView  *library.View
	readerView   *reader.View
	settingsView *settings.View

	// initialNovel, when set, opens the reader on startup.
	initialNovel *domain.Novel

	err    error
	width  int
	height int
}

// NewApp creates the root model. The initial theme comes from the
// persisted settings; falling back to dark when they cannot be read.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("ports are required")
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	theme := domain.ThemeDark
	showProgress := true
	if s, err := ports.Settings.Get(); err == nil && s != nil {
		theme = s.Theme
		showProgress = s.ShowProgress
	}

	st := styles.NewStyles(styles.ThemeFor(theme))
	keys := keymap.DefaultKeyMap()

	app := &App{
		ports:        ports,
		styles:       st,
		keys:         keys,
		activeView:   messages.ViewLibrary,
		libraryView:  library.New(ports.Library, st, keys),
		readerView:   reader.New(ports.Reader, ports.Library, st, keys),
		settingsView: settings.New(ports.Settings, st, keys),
	}
	app.readerView.SetShowProgress(showProgress)

	return app, nil
}

// SetInitialNovel makes the app start in the reader with the given
// novel open, instead of in the library.
func (a *App) SetInitialNovel(novel domain.Novel) {
	a.initialNovel = &novel
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("novella - Novel Reader"),
		a.libraryView.Init(),
		a.readerView.Init(),
		a.settingsView.Init(),
	}

	if a.initialNovel != nil {
		a.activeView = messages.ViewReader
		cmds = append(cmds, a.readerView.SetNovel(*a.initialNovel))
	}

	return tea.Batch(cmds...)
}

// ActiveView returns the currently visible view type.
func (a *App) ActiveView() messages.ViewType {
	return a.activeView
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.libraryView.SetDimensions(msg.Width, msg.Height)
		a.readerView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.Quit:
		a.ports.Reader.Close()
		return a, tea.Quit

	case messages.ViewChanged:
		a.previousView = a.activeView
		a.activeView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.NovelSelected:
		a.previousView = a.activeView
		a.activeView = messages.ViewReader
		return a, a.readerView.SetNovel(msg.Novel)

	case messages.SettingsSaved:
		if msg.Err == nil {
			a.applySettings()
		}
		var cmd tea.Cmd
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateActiveView(msg)
}

// applySettings re-reads persisted settings and restyles the views.
func (a *App) applySettings() {
	s, err := a.ports.Settings.Get()
	if err != nil || s == nil {
		return
	}

	a.styles = styles.NewStyles(styles.ThemeFor(s.Theme))
	a.libraryView.SetStyles(a.styles)
	a.readerView.SetStyles(a.styles)
	a.settingsView.SetStyles(a.styles)
	a.readerView.SetShowProgress(s.ShowProgress)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Global keys first, then delegate to the active view.
	switch {
	case keymap.Matches(keyStr, a.keys.Quit):
		a.ports.Reader.Close()
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keys.Help) && a.activeView != messages.ViewHelp:
		a.previousView = a.activeView
		a.activeView = messages.ViewHelp
		return a, nil

	case a.activeView == messages.ViewHelp:
		// Any key leaves help.
		a.activeView = a.previousView
		return a, nil

	case keyStr == "s" && a.activeView == messages.ViewLibrary:
		a.previousView = a.activeView
		a.activeView = messages.ViewSettings
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Async results go to the view that owns them even when it is not
	// on screen. Reader snapshots in particular must always be consumed
	// or the subscription channel stalls.
	switch msg.(type) {
	case messages.ReaderStateChanged:
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd
	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	case messages.NovelsLoaded, messages.NovelRemoved, messages.NovelImported:
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd
	}

	switch a.activeView {
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	if a.err != nil {
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)))
		b.WriteString("\n\n")
	}

	switch a.activeView {
	case messages.ViewLibrary:
		b.WriteString(a.libraryView.View())
	case messages.ViewReader:
		b.WriteString(a.readerView.View())
	case messages.ViewSettings:
		b.WriteString(a.settingsView.View())
	case messages.ViewHelp:
		b.WriteString(a.helpView())
	}

	return b.String()
}

// helpView renders the keybinding reference.
func (a *App) helpView() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Library", [][2]string{
			{"↑/k ↓/j", "move"},
			{"enter", "open novel"},
			{"d", "remove novel"},
			{"s", "settings"},
		}},
		{"Reader", [][2]string{
			{"↑/k ↓/j", "scroll"},
			{"←/h →/l", "previous / next chunk"},
			{"g / G", "top / bottom of chunk"},
			{"esc", "save position and go back"},
		}},
		{"Global", [][2]string{
			{"?", "toggle help"},
			{"q", "quit"},
		}},
	}

	for _, section := range sections {
		b.WriteString(a.styles.Subtitle.Render(section.title))
		b.WriteString("\n")
		for _, row := range section.rows {
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				a.styles.Normal.Render(row[0]),
				a.styles.Muted.Render(row[1])))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("press any key to go back"))

	return b.String()
}

// Run starts the TUI event loop and blocks until it exits.
func Run(ports *Ports) error {
	return run(ports, nil)
}

// RunWithNovel starts the TUI with a novel already open in the reader.
func RunWithNovel(ports *Ports, novel domain.Novel) error {
	return run(ports, &novel)
}

func run(ports *Ports, novel *domain.Novel) error {
	app, err := NewApp(ports)
	if err != nil {
		return err
	}
	if novel != nil {
		app.SetInitialNovel(*novel)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal interface: %w", err)
	}

	return nil
}
