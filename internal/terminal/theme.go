package terminal

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/rileyhilliard/nerdminer/internal/render"
)

// Dashboard palette
const (
	ColorAccent   = lipgloss.Color("#FF2E97") // Neon pink
	ColorHeading  = lipgloss.Color("#BF40FF") // Neon purple
	ColorGraph    = lipgloss.Color("#00FFFF") // Neon cyan
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink
	ColorLabel    = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorMuted    = lipgloss.Color("#6B6B8D") // Purple-gray
)

// Profile resolves a display.color setting to a termenv profile for w.
// "auto" honours the terminal's capabilities and NO_COLOR.
func Profile(w io.Writer, color string) termenv.Profile {
	switch color {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return termenv.ANSI256
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// Theme decorates frame lines. It is safe for concurrent use.
type Theme struct {
	banner  lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	hint    lipgloss.Style
	notice  lipgloss.Style

	good  lipgloss.Style
	bad   lipgloss.Style
	rate  lipgloss.Style
	time  lipgloss.Style
	price lipgloss.Style
	warm  lipgloss.Style
	hot   lipgloss.Style
	cool  lipgloss.Style
}

// NewTheme builds styles bound to a renderer for w with the given profile.
func NewTheme(w io.Writer, profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	fg := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c)
	}

	return &Theme{
		banner:  fg(ColorAccent).Bold(true),
		heading: fg(ColorHeading).Bold(true),
		label:   fg(ColorLabel),
		value:   r.NewStyle(),
		graph:   fg(ColorGraph),
		hint:    fg(ColorMuted),
		notice:  fg(ColorWarning).Bold(true),

		good:  fg(ColorHealthy).Bold(true),
		bad:   fg(ColorCritical).Bold(true),
		rate:  fg(ColorGraph),
		time:  fg(ColorLabel),
		price: fg(ColorHealthy),
		warm:  fg(ColorWarning),
		hot:   fg(ColorCritical),
		cool:  fg(ColorHealthy),
	}
}

// PlainTheme returns a theme that never emits escape sequences.
func PlainTheme() *Theme {
	return NewTheme(io.Discard, termenv.Ascii)
}

// Line renders one line. Stripping the escapes yields l.Text().
func (t *Theme) Line(l render.Line) string {
	switch l.Style {
	case render.StyleBanner:
		return t.banner.Render(l.Value)
	case render.StyleHeading:
		return t.heading.Render(l.Value)
	case render.StyleGraph:
		return t.graph.Render(l.Value)
	case render.StyleHint:
		return t.hint.Render(l.Value)
	case render.StyleNotice:
		return t.notice.Render(l.Value)
	case render.StyleField, render.StyleSubField:
		if l.Label == "" {
			return t.tone(l).Render(l.Value)
		}
		return t.label.Render(l.Label) + " " + t.tone(l).Render(l.Value)
	default:
		return l.Text()
	}
}

// Lines renders every line of f.
func (t *Theme) Lines(f render.Frame) []string {
	out := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		out[i] = t.Line(l)
	}
	return out
}

func (t *Theme) tone(l render.Line) lipgloss.Style {
	switch l.Tone {
	case render.ToneGood:
		return t.good
	case render.ToneBad:
		return t.bad
	case render.ToneRate:
		return t.rate
	case render.ToneTime:
		return t.time
	case render.TonePrice:
		return t.price
	case render.ToneCool:
		return t.cool
	case render.ToneWarm:
		return t.warm
	case render.ToneHot:
		return t.hot
	default:
		return t.value
	}
}
