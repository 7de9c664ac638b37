package doctor

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TTYCheck verifies stdin and stdout are terminals, which the buttons and
// the full-screen dashboard need.
type TTYCheck struct {
	In  *os.File
	Out *os.File
}

func (c *TTYCheck) Name() string     { return "tty" }
func (c *TTYCheck) Category() string { return CategoryTerminal }

func (c *TTYCheck) Run() CheckResult {
	inTTY := c.In != nil && term.IsTerminal(int(c.In.Fd()))
	outTTY := c.Out != nil && term.IsTerminal(int(c.Out.Fd()))

	switch {
	case inTTY && outTTY:
		msg := "stdin and stdout are terminals"
		if w, h, err := term.GetSize(int(c.Out.Fd())); err == nil {
			msg = fmt.Sprintf("%s (%dx%d)", msg, w, h)
		}
		return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
	case !inTTY:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "stdin is not a terminal, buttons will not respond",
			Suggestion: "Run nerdminer directly in a terminal, not through a pipe",
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "stdout is not a terminal, the plain front end will be used",
			Suggestion: "Use --plain to silence this, or run in a terminal",
		}
	}
}

// ColorCheck reports the color profile the dashboard will use.
type ColorCheck struct {
	Profile termenv.Profile
}

func (c *ColorCheck) Name() string     { return "color" }
func (c *ColorCheck) Category() string { return CategoryTerminal }

func (c *ColorCheck) Run() CheckResult {
	if c.Profile == termenv.Ascii {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusPass,
			Message:    "Color disabled",
			Suggestion: "Set display.color: always to force color",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Color profile: " + profileName(c.Profile),
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "true color"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "none"
	}
}
