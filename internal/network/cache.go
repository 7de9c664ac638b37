package network

import (
	"context"
	"time"

	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
	"github.com/rileyhilliard/nerdminer/internal/logger"
)

// DefaultMinInterval is the minimum spacing between refresh cycles.
const DefaultMinInterval = 60 * time.Second

// Snapshot is the last known network data.
type Snapshot struct {
	BTCPriceUSD          float64
	BlockHeight          uint64
	DifficultyLabel      string
	NetworkHashrateLabel string
	LastFetchedAt        time.Time // zero until the first refresh cycle
}

// NewSnapshot returns the placeholder shown before any data arrives.
func NewSnapshot() Snapshot {
	return Snapshot{
		DifficultyLabel:      "0",
		NetworkHashrateLabel: "0 H/s",
	}
}

// Result holds the outcome of one refresh cycle. Price and chain data
// succeed or fail independently.
type Result struct {
	Price    float64
	PriceErr error

	Height     uint64
	Difficulty float64
	ChainErr   error
}

// Apply writes the successful parts of r into snap and stamps the cycle time.
// A failed part leaves the previous values untouched.
func (r Result) Apply(snap *Snapshot, now time.Time) {
	if r.PriceErr == nil {
		snap.BTCPriceUSD = r.Price
	}
	if r.ChainErr == nil {
		snap.BlockHeight = r.Height
		snap.DifficultyLabel = FormatDifficulty(r.Difficulty)
		snap.NetworkHashrateLabel = FormatHashrate(EstimateHashrate(r.Difficulty))
	}
	// Stamped even on total failure so a dead endpoint is retried at the
	// normal cadence.
	snap.LastFetchedAt = now
}

// Cache applies the refresh cadence policy against a Source.
type Cache struct {
	source      Source
	minInterval time.Duration
	log         logger.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMinInterval overrides the refresh gate.
func WithMinInterval(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.minInterval = d
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l logger.Logger) CacheOption {
	return func(c *Cache) {
		c.log = l
	}
}

// NewCache creates a cache over source.
func NewCache(source Source, opts ...CacheOption) *Cache {
	c := &Cache{
		source:      source,
		minInterval: DefaultMinInterval,
		log:         logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Due reports whether more than the minimum interval has passed since the
// last refresh cycle.
func (c *Cache) Due(snap Snapshot, now time.Time) bool {
	return now.Sub(snap.LastFetchedAt) > c.minInterval
}

// Fetch runs the price and chain fetches concurrently and waits for both.
// It touches no shared state, so callers may run it without holding locks.
func (c *Cache) Fetch(ctx context.Context) Result {
	var r Result
	swg := sizedwaitgroup.New(2)

	swg.Add()
	go func() {
		defer swg.Done()
		r.Price, r.PriceErr = c.source.FetchSpotPriceUSD(ctx)
	}()

	swg.Add()
	go func() {
		defer swg.Done()
		r.Height, r.Difficulty, r.ChainErr = c.source.FetchDifficultyAndHeight(ctx)
	}()

	swg.Wait()

	if r.PriceErr != nil {
		c.log.Warn("price fetch failed: %v", r.PriceErr)
	}
	if r.ChainErr != nil {
		c.log.Warn("chain fetch failed: %v", r.ChainErr)
	}
	return r
}

// Store gives the cache access to a snapshot owned by the caller. Load and
// Update run under the caller's lock; Fetch never does.
type Store interface {
	Load() Snapshot
	Update(fn func(*Snapshot))
}

// RefreshIfDue runs a cycle against st when the gate allows and reports
// whether one ran.
func (c *Cache) RefreshIfDue(ctx context.Context, st Store, now func() time.Time) bool {
	if !c.Due(st.Load(), now()) {
		return false
	}
	c.ForceRefresh(ctx, st, now)
	return true
}

// ForceRefresh runs a cycle regardless of the gate. The result is stamped
// with the time the fetch completed.
func (c *Cache) ForceRefresh(ctx context.Context, st Store, now func() time.Time) {
	if last := st.Load().LastFetchedAt; !last.IsZero() {
		c.log.Debug("refreshing network data, last cycle %s ago",
			durafmt.Parse(now().Sub(last).Round(time.Second)).LimitFirstN(2))
	}
	r := c.Fetch(ctx)
	st.Update(func(snap *Snapshot) {
		r.Apply(snap, now())
	})
}
