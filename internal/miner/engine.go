package miner

import (
	"strconv"
	"time"

	sha256 "github.com/minio/sha256-simd"
)

// DefaultShareProbability gives an expected 1000 ticks between shares.
const DefaultShareProbability = 0.001

// rateWindow is the sampling period for CurrentRate.
const rateWindow = time.Second

// seedPrefix marks the throwaway digest input.
const seedPrefix = "nerdminer"

// RandSource supplies randomness for seeds and share discovery.
// *math/rand/v2.Rand satisfies it.
type RandSource interface {
	Uint64() uint64
	Float64() float64
}

// Engine applies the workload algorithm to a Stats value.
// It holds configuration only and may be shared.
type Engine struct {
	shareProbability float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithShareProbability overrides the per-tick share chance.
func WithShareProbability(p float64) Option {
	return func(e *Engine) {
		e.shareProbability = p
	}
}

// NewEngine creates an engine with the default share probability.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{shareProbability: DefaultShareProbability}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick performs one unit of simulated work at time now and returns the digest.
func (e *Engine) Tick(s *Stats, rng RandSource, now time.Time) [32]byte {
	seed := make([]byte, 0, 48)
	seed = append(seed, seedPrefix...)
	seed = strconv.AppendInt(seed, now.UnixNano(), 10)
	seed = strconv.AppendUint(seed, rng.Uint64()%1000001, 10)
	digest := sha256.Sum256(seed)

	s.TotalHashes++
	s.windowHashes++

	if s.windowStart.IsZero() {
		s.windowStart = now
	}
	if now.Sub(s.windowStart) >= rateWindow {
		s.CurrentRate = float64(s.windowHashes)
		s.history.Push(s.CurrentRate)
		s.windowHashes = 0
		s.windowStart = now
	}

	if rng.Float64() < e.shareProbability {
		s.AcceptedShares++
	}

	return digest
}

// Start begins a mining session. Cumulative counters are kept.
func (e *Engine) Start(s *Stats, now time.Time) {
	s.Running = true
	s.StartTime = now
	s.CurrentRate = 0
	s.windowHashes = 0
	s.windowStart = now
}

// Stop ends the session and clears the live rate.
func (e *Engine) Stop(s *Stats) {
	s.Running = false
	s.CurrentRate = 0
}
