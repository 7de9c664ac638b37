// Package tui is the Bubble Tea front end. Program wraps a running
// tea.Program and exposes it as a key source and frame sink, so the
// supervisor drives it the same way it drives the plain terminal.
package tui
