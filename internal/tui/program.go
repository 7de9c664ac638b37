package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/nerdminer/internal/input"
	"github.com/rileyhilliard/nerdminer/internal/render"
	"github.com/rileyhilliard/nerdminer/internal/terminal"
)

// keyBuffer bounds presses queued between polls.
const keyBuffer = 64

// Options configures a Program.
type Options struct {
	Input  io.Reader // nil disables key input
	Output io.Writer // where the program draws
	Trail  io.Writer // receives messages shown after the last frame, once the program exits
	Theme  *terminal.Theme
	KeyMap input.KeyMap

	// AltScreen runs the dashboard in the alternate screen buffer.
	AltScreen bool

	// OnInterrupt runs on Ctrl+C and when the program exits on its own.
	OnInterrupt func()
}

// Program is a running Bubble Tea dashboard.
type Program struct {
	prog *tea.Program
	keys chan rune
	done chan struct{}
	err  error

	trailOut io.Writer
	mu       sync.Mutex
	trail    []string

	closeOnce sync.Once
}

// Start launches the program in the background.
func Start(opts Options) *Program {
	keys := make(chan rune, keyBuffer)
	model := NewModel(opts.Theme, opts.KeyMap, keys, opts.OnInterrupt)

	progOpts := []tea.ProgramOption{
		tea.WithInput(opts.Input),
		tea.WithoutSignalHandler(),
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := &Program{
		prog:     tea.NewProgram(model, progOpts...),
		keys:     keys,
		done:     make(chan struct{}),
		trailOut: opts.Trail,
	}

	go func() {
		defer close(p.done)
		_, p.err = p.prog.Run()
		if opts.OnInterrupt != nil {
			opts.OnInterrupt()
		}
	}()
	return p
}

// PollKey waits up to timeout for a key press.
func (p *Program) PollKey(timeout time.Duration) (rune, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-p.keys:
		return r, true
	case <-timer.C:
		return 0, false
	}
}

// Show replaces the displayed frame.
func (p *Program) Show(f render.Frame) error {
	p.mu.Lock()
	p.trail = p.trail[:0]
	p.mu.Unlock()

	p.prog.Send(FrameMsg{Frame: f})
	return nil
}

// Message shows msg as a notice. Messages sent after the last frame are
// printed to the trail writer once the program exits, so shutdown output
// survives the screen being torn down.
func (p *Program) Message(msg string) error {
	p.mu.Lock()
	p.trail = append(p.trail, msg)
	p.mu.Unlock()

	p.prog.Send(FrameMsg{Frame: render.Notice(msg)})
	return nil
}

// Close quits the program, waits for it to restore the terminal and then
// prints the trailing messages.
func (p *Program) Close() error {
	p.closeOnce.Do(func() {
		p.prog.Quit()
		<-p.done

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.trailOut != nil {
			for _, msg := range p.trail {
				fmt.Fprintln(p.trailOut, msg)
			}
		}
		p.trail = nil
	})
	return p.err
}
