package terminal

import (
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/rileyhilliard/nerdminer/internal/render"
)

// Display repaints the terminal with one frame at a time.
type Display struct {
	mu      sync.Mutex
	out     *termenv.Output
	theme   *Theme
	newline string
	opened  bool
}

// DisplayOption configures a Display.
type DisplayOption func(*Display)

// WithRawNewlines terminates lines with "\r\n", required while the terminal
// is in raw mode and output post-processing is off.
func WithRawNewlines(raw bool) DisplayOption {
	return func(d *Display) {
		if raw {
			d.newline = "\r\n"
		} else {
			d.newline = "\n"
		}
	}
}

// NewDisplay creates a display writing to w. A nil theme renders plain text.
func NewDisplay(w io.Writer, theme *Theme, opts ...DisplayOption) *Display {
	if theme == nil {
		theme = PlainTheme()
	}
	d := &Display{
		out:     termenv.NewOutput(w),
		theme:   theme,
		newline: "\n",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open hides the cursor for the lifetime of the dashboard.
func (d *Display) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.opened {
		d.out.HideCursor()
		d.opened = true
	}
}

// Show clears the screen and writes f from the top-left corner.
func (d *Display) Show(f render.Frame) error {
	body := strings.Join(d.theme.Lines(f), d.newline) + d.newline

	d.mu.Lock()
	defer d.mu.Unlock()
	d.out.ClearScreen()
	_, err := d.out.WriteString(body)
	return err
}

// Message writes a single line without clearing the screen.
func (d *Display) Message(msg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.out.WriteString(msg + d.newline)
	return err
}

// Close restores the cursor.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opened {
		d.out.ShowCursor()
		d.opened = false
	}
	return nil
}
