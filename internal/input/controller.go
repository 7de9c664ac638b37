// Package input turns raw key presses into dashboard actions.
//
// The emulated appliance has two physical buttons. Power toggles the screen
// and is debounced: presses inside the debounce window of the previous press
// belong to the same gesture. Volume toggles mining on a double press: two
// presses inside the volume window fire, and the streak then restarts, so a
// rapid triple press toggles once.
package input

import "time"

// Default gesture windows.
const (
	DefaultPowerDebounce = 500 * time.Millisecond
	DefaultVolumeWindow  = time.Second
)

// Action is a semantic command produced from key input.
type Action int

const (
	ActionNone Action = iota
	ActionToggleScreen
	ActionToggleMining
	ActionForceRefresh
	ActionQuit
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionToggleScreen:
		return "toggle-screen"
	case ActionToggleMining:
		return "toggle-mining"
	case ActionForceRefresh:
		return "force-refresh"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// ButtonState is the gesture-tracking state.
type ButtonState struct {
	LastPowerPressAt  time.Time
	LastVolumePressAt time.Time
	VolumePressStreak int
}

// Controller classifies key presses into actions. It is not safe for
// concurrent use.
type Controller struct {
	keys          KeyMap
	powerDebounce time.Duration
	volumeWindow  time.Duration
	state         ButtonState
}

// Option configures a Controller.
type Option func(*Controller)

// WithPowerDebounce overrides the power gesture window.
func WithPowerDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.powerDebounce = d
	}
}

// WithVolumeWindow overrides the double-press window.
func WithVolumeWindow(d time.Duration) Option {
	return func(c *Controller) {
		c.volumeWindow = d
	}
}

// WithKeyMap overrides the key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(c *Controller) {
		c.keys = k
	}
}

// NewController creates a controller with the default key map and windows.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		keys:          DefaultKeyMap,
		powerDebounce: DefaultPowerDebounce,
		volumeWindow:  DefaultVolumeWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleKey processes one key press at time now.
func (c *Controller) HandleKey(r rune, now time.Time) Action {
	switch c.keys.Classify(r) {
	case ButtonPower:
		return c.pressPower(now)
	case ButtonVolume:
		return c.pressVolume(now)
	case ButtonRefresh:
		return ActionForceRefresh
	case ButtonQuit:
		return ActionQuit
	default:
		return ActionNone
	}
}

func (c *Controller) pressPower(now time.Time) Action {
	action := ActionNone
	if now.Sub(c.state.LastPowerPressAt) > c.powerDebounce {
		action = ActionToggleScreen
	}
	c.state.LastPowerPressAt = now
	return action
}

func (c *Controller) pressVolume(now time.Time) Action {
	if now.Sub(c.state.LastVolumePressAt) > c.volumeWindow {
		c.state.VolumePressStreak = 0
	}
	c.state.VolumePressStreak++
	c.state.LastVolumePressAt = now

	if c.state.VolumePressStreak == 2 {
		c.state.VolumePressStreak = 0
		return ActionToggleMining
	}
	return ActionNone
}
