// Package library implements the novel library list view.
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driving"
)

// View is the library list view.
type View struct {
	library driving.LibraryService
	styles  *styles.Styles
	keys    *keymap.KeyMap

	novels   []domain.Novel
	progress map[string]float64
	cursor   int
	loading  bool
	err      error

	width  int
	height int
}

// New creates a library view.
func New(library driving.LibraryService, s *styles.Styles, keys *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	return &View{
		library: library,
		styles:  s,
		keys:    keys,
		loading: true,
	}
}

// Init returns the initial command, which loads the library.
func (v *View) Init() tea.Cmd {
	return v.loadNovels()
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

// Novels returns the currently loaded novels.
func (v *View) Novels() []domain.Novel {
	return v.novels
}

// loadNovels returns a command that lists the library with the saved
// progress of each novel.
func (v *View) loadNovels() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		novels, err := v.library.List(ctx)
		if err != nil {
			return messages.NovelsLoaded{Err: err}
		}

		progress := make(map[string]float64, len(novels))
		for _, novel := range novels {
			if pos, err := v.library.Position(ctx, novel.ID); err == nil && pos != nil {
				progress[novel.ID] = pos.Position
			}
		}

		return messages.NovelsLoaded{Novels: novels, Progress: progress}
	}
}

// removeNovel returns a command that removes a novel from the library.
func (v *View) removeNovel(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := v.library.Remove(ctx, id)
		return messages.NovelRemoved{ID: id, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.NovelsLoaded:
		v.loading = false
		v.err = msg.Err
		v.novels = msg.Novels
		v.progress = msg.Progress
		if v.cursor >= len(v.novels) {
			v.cursor = max(0, len(v.novels)-1)
		}
		return v, nil

	case messages.NovelRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadNovels()

	case messages.NovelImported:
		if msg.Err == nil {
			return v, v.loadNovels()
		}
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
		if v.cursor < len(v.novels)-1 {
			v.cursor++
		}
		return v, nil

	case keymap.Matches(keyStr, v.keys.Select):
		if v.cursor < len(v.novels) {
			novel := v.novels[v.cursor]
			return v, func() tea.Msg {
				return messages.NovelSelected{Novel: novel}
			}
		}
		return v, nil

	case keymap.Matches(keyStr, v.keys.Remove):
		if v.cursor < len(v.novels) {
			return v, v.removeNovel(v.novels[v.cursor].ID)
		}
		return v, nil
	}

	return v, nil
}

// View renders the library list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Library"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading library..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))

	case len(v.novels) == 0:
		b.WriteString(v.styles.Muted.Render("No novels yet. Import one with: novella import <path>"))

	default:
		for i, novel := range v.novels {
			line := novel.Title
			if p, ok := v.progress[novel.ID]; ok {
				line += v.styles.Muted.Render(fmt.Sprintf("  %3.0f%%", p*100))
			}
			if !novel.LastReadAt.IsZero() {
				line += v.styles.Muted.Render(
					fmt.Sprintf("  (last read %s)", novel.LastReadAt.Format("2006-01-02")))
			}

			if i == v.cursor {
				b.WriteString(v.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(v.styles.Normal.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter: open • d: remove • ?: help • q: quit"))

	return b.String()
}
