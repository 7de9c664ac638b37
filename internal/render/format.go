package render

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatRate renders a hash rate, switching to k H/s at 1000.
func FormatRate(rate float64) string {
	if rate >= 1000 {
		return fmt.Sprintf("%.1fk H/s", rate/1000)
	}
	return fmt.Sprintf("%.0f H/s", rate)
}

// FormatCount renders a large counter with a K or M suffix.
func FormatCount(n float64) string {
	switch {
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

// FormatUptime renders d as HH:MM:SS. Hours are not wrapped into days.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatPrice renders whole US dollars with thousands separators.
func FormatPrice(usd float64) string {
	return "$" + humanize.Comma(int64(math.Round(usd)))
}

// FormatHeight renders a block height with thousands separators.
func FormatHeight(h uint64) string {
	if h > math.MaxInt64 {
		return fmt.Sprintf("%d", h)
	}
	return humanize.Comma(int64(h))
}
