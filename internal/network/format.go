package network

import (
	"fmt"
	"math"
)

// blockInterval is the target seconds between blocks.
const blockInterval = 600

// FormatDifficulty renders a raw difficulty with a T/G/M magnitude suffix.
func FormatDifficulty(diff float64) string {
	switch {
	case diff >= 1e12:
		return fmt.Sprintf("%.2fT", diff/1e12)
	case diff >= 1e9:
		return fmt.Sprintf("%.2fG", diff/1e9)
	default:
		return fmt.Sprintf("%.2fM", diff/1e6)
	}
}

// EstimateHashrate derives network hashes per second from difficulty,
// assuming one block every ten minutes.
func EstimateHashrate(diff float64) float64 {
	return diff * math.Exp2(32) / blockInterval
}

// FormatHashrate renders a network hashrate with an EH/PH/TH per second suffix.
func FormatHashrate(hps float64) string {
	switch {
	case hps >= 1e18:
		return fmt.Sprintf("%.2f EH/s", hps/1e18)
	case hps >= 1e15:
		return fmt.Sprintf("%.2f PH/s", hps/1e15)
	default:
		return fmt.Sprintf("%.2f TH/s", hps/1e12)
	}
}
