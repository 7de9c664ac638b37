// Package terminal is the plain front end: a Display that repaints the whole
// screen with termenv, a Theme that decorates frames with lipgloss, and a
// KeyReader that captures single raw key presses from stdin.
package terminal
