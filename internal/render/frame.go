package render

import "strings"

// Style classifies a line for presentation. Displays may decorate by style;
// the plain text never depends on it.
type Style int

const (
	StylePlain Style = iota
	StyleBanner
	StyleHeading
	StyleField
	StyleSubField
	StyleGraph
	StyleHint
	StyleNotice
)

// Tone hints at how a field value should be colored.
type Tone int

const (
	ToneDefault Tone = iota
	ToneGood
	ToneBad
	ToneRate
	ToneTime
	TonePrice
	ToneCool
	ToneWarm
	ToneHot
)

// Line is one row of a frame.
type Line struct {
	Style Style
	Label string
	Value string
	Tone  Tone
}

// Text returns the undecorated line.
func (l Line) Text() string {
	if l.Label == "" {
		return l.Value
	}
	return l.Label + " " + l.Value
}

// Frame is a complete screen's worth of lines.
type Frame struct {
	Lines []Line
}

// String joins the plain text of every line with newlines.
func (f Frame) String() string {
	texts := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		texts[i] = l.Text()
	}
	return strings.Join(texts, "\n")
}

// Notice builds the single-line frame shown while the screen is off or
// during startup and shutdown.
func Notice(msg string) Frame {
	return Frame{Lines: []Line{{Style: StyleNotice, Value: msg}}}
}
