// Package reader implements the chunked reading view.
package reader

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

// stateBuffer is the subscriber channel capacity. The engine publishes
// under its lock, so the subscriber must never block; snapshots beyond
// the buffer are dropped and the next one supersedes them anyway.
const stateBuffer = 32

// View is the reading view. It renders the visible chunk of the open
// novel and turns keypresses into engine navigation.
type View struct {
	reader  driving.ReaderService
	library driving.LibraryService
	styles  *styles.Styles
	keys    *keymap.KeyMap

	novel domain.Novel
	state driving.ReaderState

	// stateCh receives engine snapshots from the subscription callback.
	stateCh chan driving.ReaderState

	lines        []string
	scrollOffset int

	// pendingScroll is a saved scroll offset to restore once the
	// resumed chunk arrives.
	pendingScroll int

	showProgress bool

	width  int
	height int
}

// New creates a reading view subscribed to the engine.
func New(reader driving.ReaderService, library driving.LibraryService, s *styles.Styles, keys *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}

	v := &View{
		reader:       reader,
		library:      library,
		styles:       s,
		keys:         keys,
		stateCh:      make(chan driving.ReaderState, stateBuffer),
		showProgress: true,
	}

	reader.Subscribe(func(st driving.ReaderState) {
		select {
		case v.stateCh <- st:
		default:
		}
	})

	return v
}

// Init returns the initial command.
func (v *View) Init() tea.Cmd {
	return v.waitForState()
}

// SetDimensions updates the view size and rewraps the chunk.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
}

// SetStyles updates the styles, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	v.styles = s
}

// SetShowProgress toggles the progress footer.
func (v *View) SetShowProgress(show bool) {
	v.showProgress = show
}

// SetNovel opens a novel in the engine and starts waiting for snapshots.
func (v *View) SetNovel(novel domain.Novel) tea.Cmd {
	v.novel = novel
	v.scrollOffset = 0
	v.pendingScroll = 0
	v.lines = nil
	v.state = driving.ReaderState{}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pos, err := v.library.Position(ctx, novel.ID); err == nil && pos != nil {
		v.pendingScroll = pos.ScrollOffset
	}

	v.reader.Load(context.Background(), novel.ID)
	return v.waitForState()
}

// State returns the last snapshot the view received.
func (v *View) State() driving.ReaderState {
	return v.state
}

// waitForState blocks on the subscription channel and delivers the next
// snapshot as a message. The Update handler re-arms it each time.
func (v *View) waitForState() tea.Cmd {
	return func() tea.Msg {
		return messages.ReaderStateChanged{State: <-v.stateCh}
	}
}

// currentPosition snapshots the position to persist.
func (v *View) currentPosition() *domain.ReadingPosition {
	return &domain.ReadingPosition{
		NovelID:      v.state.NovelID,
		ChunkIndex:   v.state.ChunkIndex,
		Position:     v.reader.Progress(),
		ScrollOffset: v.scrollOffset,
	}
}

// persistPosition saves the position quietly; navigation should not be
// interrupted by a failed write.
func (v *View) persistPosition() tea.Cmd {
	pos := v.currentPosition()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = v.library.SavePosition(ctx, pos)
		return nil
	}
}

// savePosition records the current position, then navigates back.
func (v *View) savePosition() tea.Cmd {
	var pos *domain.ReadingPosition
	if v.state.NovelID != "" {
		pos = v.currentPosition()
	}

	return func() tea.Msg {
		if pos != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := v.library.SavePosition(ctx, pos); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
		}
		return messages.ViewChanged{View: messages.ViewLibrary}
	}
}

// Update handles messages for the reading view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ReaderStateChanged:
		v.state = msg.State
		v.scrollOffset = 0
		v.wrapContent()
		if v.pendingScroll > 0 && !v.state.Loading && v.state.Err == nil {
			v.scrollOffset = minInt(v.pendingScroll, v.maxScrollOffset())
			v.pendingScroll = 0
		}
		// Persist the position after every settled snapshot so chunk
		// navigation survives a crash, not just a clean exit.
		if !v.state.Loading && v.state.Err == nil && v.state.NovelID != "" {
			return v, tea.Batch(v.waitForState(), v.persistPosition())
		}
		return v, v.waitForState()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keys.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
		return v, nil

	case keymap.Matches(keyStr, v.keys.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
		return v, nil

	case keyStr == "pgup":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
		return v, nil

	case keyStr == "pgdown", keyStr == " ":
		v.scrollOffset += v.visibleLines()
		if max := v.maxScrollOffset(); v.scrollOffset > max {
			v.scrollOffset = max
		}
		return v, nil

	case keyStr == "g":
		v.scrollOffset = 0
		return v, nil

	case keyStr == "G":
		v.scrollOffset = v.maxScrollOffset()
		return v, nil

	case keymap.Matches(keyStr, v.keys.NextChunk):
		v.reader.NextChunk()
		return v, nil

	case keymap.Matches(keyStr, v.keys.PrevChunk):
		v.reader.PreviousChunk()
		return v, nil

	case keymap.Matches(keyStr, v.keys.Back):
		return v, v.savePosition()
	}

	return v, nil
}

// wrapContent wraps the visible chunk to the view width.
func (v *View) wrapContent() {
	if v.state.ChunkText == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.state.ChunkText, "\n")
	v.lines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		runes := []rune(line)
		if len(runes) <= contentWidth {
			v.lines = append(v.lines, line)
			continue
		}
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		if len(runes) > 0 {
			v.lines = append(v.lines, string(runes))
		}
	}
}

// visibleLines returns the number of content lines that fit on screen.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, footer, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the reading view.
func (v *View) View() string {
	var b strings.Builder

	title := v.state.Title
	if title == "" {
		title = v.novel.Title
	}
	if title == "" {
		title = "Reader"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(maxInt(v.width-4, 10), 60)))
	b.WriteString("\n\n")

	if v.state.Loading {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.state.Err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.state.Err)))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(Empty chunk)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderFooter())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderFooter renders the chunk position and progress line.
func (v *View) renderFooter() string {
	if v.state.TotalChunks == 0 {
		return ""
	}

	footer := fmt.Sprintf("Chunk %d/%d", v.state.ChunkIndex+1, v.state.TotalChunks)
	if v.showProgress {
		footer += fmt.Sprintf("  %.0f%%", v.reader.Progress()*100)
	}
	return v.styles.StatusBar.Render(footer)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [←/→] chunk  [g/G] top/bottom  [esc] back")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
