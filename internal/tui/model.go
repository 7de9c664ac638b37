package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/nerdminer/internal/input"
	"github.com/rileyhilliard/nerdminer/internal/render"
	"github.com/rileyhilliard/nerdminer/internal/terminal"
)

// FrameMsg replaces the displayed frame.
type FrameMsg struct {
	Frame render.Frame
}

// Model is the Bubble Tea model. It owns no dashboard state: frames arrive
// as messages and key presses leave through the keys channel. Pressing ?
// shows the key help under a full frame; notice frames are always drawn alone.
type Model struct {
	frame     render.Frame
	theme     *terminal.Theme
	keyMap    input.KeyMap
	help      help.Model
	showHelp  bool
	keys      chan<- rune
	interrupt func()
}

// NewModel creates a model that forwards runes to keys. interrupt runs on
// Ctrl+C and may be nil.
func NewModel(theme *terminal.Theme, keyMap input.KeyMap, keys chan<- rune, interrupt func()) Model {
	if theme == nil {
		theme = terminal.PlainTheme()
	}
	h := help.New()
	h.ShowAll = true
	return Model{
		theme:     theme,
		keyMap:    keyMap,
		help:      h,
		keys:      keys,
		interrupt: interrupt,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame = msg.Frame
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.interrupt != nil {
			m.interrupt()
		}
		return m, nil
	case tea.KeyRunes:
		if msg.String() == "?" {
			m.showHelp = !m.showHelp
			return m, nil
		}
		for _, r := range msg.Runes {
			select {
			case m.keys <- r:
			default:
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(strings.Join(m.theme.Lines(m.frame), "\n"))
	b.WriteString("\n")
	if m.showHelp && !isNotice(m.frame) {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keyMap))
		b.WriteString("\n")
	}
	return b.String()
}

// isNotice reports whether f is a single status line such as the
// screen-off message.
func isNotice(f render.Frame) bool {
	return len(f.Lines) == 1 && f.Lines[0].Style == render.StyleNotice
}
