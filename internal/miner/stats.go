package miner

import "time"

// Stats is the mutable mining state. The zero value is not usable; call NewStats.
type Stats struct {
	Running        bool
	TotalHashes    uint64
	CurrentRate    float64
	AcceptedShares uint64
	StartTime      time.Time // zero until mining first starts

	history *RateHistory

	// per-second sampling window
	windowHashes uint64
	windowStart  time.Time
}

// NewStats creates idle stats whose rate history holds historySize samples.
func NewStats(historySize int) *Stats {
	return &Stats{history: NewRateHistory(historySize)}
}

// History returns the rate history buffer.
func (s *Stats) History() *RateHistory {
	return s.history
}

// Uptime returns how long the current session has been mining, or zero when idle.
func (s *Stats) Uptime(now time.Time) time.Duration {
	if !s.Running || s.StartTime.IsZero() {
		return 0
	}
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Snapshot is an immutable copy of Stats for rendering and export.
type Snapshot struct {
	Running        bool
	TotalHashes    uint64
	CurrentRate    float64
	AcceptedShares uint64
	StartTime      time.Time
	RateHistory    []float64
}

// Snapshot copies the current values, including the rate history.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Running:        s.Running,
		TotalHashes:    s.TotalHashes,
		CurrentRate:    s.CurrentRate,
		AcceptedShares: s.AcceptedShares,
		StartTime:      s.StartTime,
		RateHistory:    s.history.All(),
	}
}
