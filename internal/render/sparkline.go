package render

import "strings"

// Default graph size.
const (
	DefaultGraphWidth  = 40
	DefaultGraphHeight = 8
)

// graphBlock marks a sample at or above a row's threshold.
const graphBlock = '█'

// Sparkline renders history as a width x height block graph, newest sample
// on the right. Row r (counting from the bottom, 1-based) is filled where the
// sample reaches r/height of the peak. A history whose peak is not positive
// uses a peak of 1.
func Sparkline(history []float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	blank := strings.Repeat(" ", width)
	if len(history) == 0 {
		rows := make([]string, height)
		for i := range rows {
			rows[i] = blank
		}
		return strings.Join(rows, "\n")
	}

	peak := history[0]
	for _, v := range history[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	rows := make([]string, 0, height)
	row := make([]rune, len(history))
	for h := height; h >= 1; h-- {
		threshold := float64(h) / float64(height) * peak
		for i, v := range history {
			if v >= threshold {
				row[i] = graphBlock
			} else {
				row[i] = ' '
			}
		}
		rows = append(rows, fitWidth(row, width))
	}
	return strings.Join(rows, "\n")
}

// fitWidth keeps the last width runes, or left-pads with spaces.
func fitWidth(row []rune, width int) string {
	if len(row) > width {
		return string(row[len(row)-width:])
	}
	return strings.Repeat(" ", width-len(row)) + string(row)
}
