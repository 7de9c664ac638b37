package input

import "github.com/charmbracelet/bubbles/key"

// Button is a physical control on the emulated appliance.
type Button int

const (
	ButtonNone Button = iota
	ButtonPower
	ButtonVolume
	ButtonRefresh
	ButtonQuit
)

// String returns a human-readable button name.
func (b Button) String() string {
	switch b {
	case ButtonPower:
		return "power"
	case ButtonVolume:
		return "volume"
	case ButtonRefresh:
		return "refresh"
	case ButtonQuit:
		return "quit"
	default:
		return "none"
	}
}

// KeyMap binds keyboard characters to buttons. Both cases are bound so
// matching is case-insensitive.
type KeyMap struct {
	Power   key.Binding
	Volume  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is p/v/r/q.
var DefaultKeyMap = KeyMap{
	Power: key.NewBinding(
		key.WithKeys("p", "P"),
		key.WithHelp("p", "power (screen on/off)"),
	),
	Volume: key.NewBinding(
		key.WithKeys("v", "V"),
		key.WithHelp("v x2", "volume (start/stop mining)"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("r", "refresh network data"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.Volume, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Power, k.Volume},
		{k.Refresh, k.Quit},
	}
}

// Classify maps a character to the button it is bound to.
func (k KeyMap) Classify(r rune) Button {
	s := string(r)
	switch {
	case bound(k.Power, s):
		return ButtonPower
	case bound(k.Volume, s):
		return ButtonVolume
	case bound(k.Refresh, s):
		return ButtonRefresh
	case bound(k.Quit, s):
		return ButtonQuit
	default:
		return ButtonNone
	}
}

func bound(b key.Binding, s string) bool {
	if !b.Enabled() {
		return false
	}
	for _, k := range b.Keys() {
		if k == s {
			return true
		}
	}
	return false
}
