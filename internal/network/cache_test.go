package network

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns canned values and counts calls.
type fakeSource struct {
	mu         sync.Mutex
	price      float64
	priceErr   error
	height     uint64
	difficulty float64
	chainErr   error
	calls      int
	onFetch    func()
}

func (f *fakeSource) FetchSpotPriceUSD(ctx context.Context) (float64, error) {
	f.mu.Lock()
	hook := f.onFetch
	f.calls++
	price, err := f.price, f.priceErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return price, err
}

func (f *fakeSource) FetchDifficultyAndHeight(ctx context.Context) (uint64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height, f.difficulty, f.chainErr
}

func (f *fakeSource) priceCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// memStore is a Store over a local snapshot.
type memStore struct {
	mu   sync.Mutex
	snap Snapshot
}

func newMemStore() *memStore {
	return &memStore{snap: NewSnapshot()}
}

func (m *memStore) Load() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *memStore) Update(fn func(*Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.snap)
}

func at(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot()
	assert.Equal(t, "0", snap.DifficultyLabel)
	assert.Equal(t, "0 H/s", snap.NetworkHashrateLabel)
	assert.True(t, snap.LastFetchedAt.IsZero())
}

func TestCache_RefreshIfDue_FirstCycleRuns(t *testing.T) {
	src := &fakeSource{price: 65000, height: 870000, difficulty: 2.5e13}
	c := NewCache(src)
	st := newMemStore()

	ran := c.RefreshIfDue(context.Background(), st, at(t0))
	require.True(t, ran)
	snap := st.Load()

	assert.Equal(t, 65000.0, snap.BTCPriceUSD)
	assert.Equal(t, uint64(870000), snap.BlockHeight)
	assert.Equal(t, "25.00T", snap.DifficultyLabel)
	assert.Equal(t, "178.96 EH/s", snap.NetworkHashrateLabel)
	assert.Equal(t, t0, snap.LastFetchedAt)
}

func TestCache_RefreshIfDue_Gate(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantRun bool
	}{
		{"just after", time.Second, false},
		{"exactly sixty seconds", 60 * time.Second, false},
		{"past sixty seconds", 60*time.Second + time.Millisecond, true},
		{"long after", 10 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{price: 1}
			c := NewCache(src)
			st := newMemStore()
			st.snap.LastFetchedAt = t0

			ran := c.RefreshIfDue(context.Background(), st, at(t0.Add(tt.elapsed)))
			assert.Equal(t, tt.wantRun, ran)
			snap := st.Load()
			if tt.wantRun {
				assert.Equal(t, 1, src.priceCalls())
				assert.Equal(t, t0.Add(tt.elapsed), snap.LastFetchedAt)
			} else {
				assert.Equal(t, 0, src.priceCalls())
				assert.Equal(t, t0, snap.LastFetchedAt)
			}
		})
	}
}

func TestCache_CustomMinInterval(t *testing.T) {
	c := NewCache(&fakeSource{}, WithMinInterval(5*time.Second))
	snap := NewSnapshot()
	snap.LastFetchedAt = t0

	assert.False(t, c.Due(snap, t0.Add(5*time.Second)))
	assert.True(t, c.Due(snap, t0.Add(6*time.Second)))
}

func TestCache_PartialFailure_PriceFails(t *testing.T) {
	src := &fakeSource{price: 60000, height: 800000, difficulty: 5e12}
	c := NewCache(src)
	st := newMemStore()
	c.ForceRefresh(context.Background(), st, at(t0))
	require.Equal(t, 60000.0, st.Load().BTCPriceUSD)

	src.priceErr = ErrFetch
	src.height = 800001
	src.difficulty = 2.5e13
	c.ForceRefresh(context.Background(), st, at(t0.Add(2*time.Minute)))
	snap := st.Load()

	assert.Equal(t, 60000.0, snap.BTCPriceUSD, "failed price fetch keeps previous price")
	assert.Equal(t, uint64(800001), snap.BlockHeight)
	assert.Equal(t, "25.00T", snap.DifficultyLabel)
	assert.Equal(t, "178.96 EH/s", snap.NetworkHashrateLabel)
}

func TestCache_PartialFailure_ChainFails(t *testing.T) {
	src := &fakeSource{price: 60000, height: 800000, difficulty: 5e12}
	c := NewCache(src)
	st := newMemStore()
	c.ForceRefresh(context.Background(), st, at(t0))
	diffLabel, rateLabel := st.Load().DifficultyLabel, st.Load().NetworkHashrateLabel

	src.price = 61000
	src.chainErr = ErrFetch
	c.ForceRefresh(context.Background(), st, at(t0.Add(2*time.Minute)))
	snap := st.Load()

	assert.Equal(t, 61000.0, snap.BTCPriceUSD)
	assert.Equal(t, uint64(800000), snap.BlockHeight)
	assert.Equal(t, diffLabel, snap.DifficultyLabel)
	assert.Equal(t, rateLabel, snap.NetworkHashrateLabel)
}

func TestCache_TotalFailureStillStampsCycle(t *testing.T) {
	src := &fakeSource{priceErr: ErrFetch, chainErr: ErrFetch}
	log := logger.NewBufferLogger()
	c := NewCache(src, WithLogger(log))
	st := newMemStore()

	require.True(t, c.RefreshIfDue(context.Background(), st, at(t0)))
	assert.Equal(t, t0, st.Load().LastFetchedAt)
	assert.Equal(t, NewSnapshot().DifficultyLabel, st.Load().DifficultyLabel)
	assert.True(t, log.HasLevel("warn"))

	// A persistently failing source is not retried inside the window
	assert.False(t, c.RefreshIfDue(context.Background(), st, at(t0.Add(30*time.Second))))
	assert.Equal(t, 1, src.priceCalls())
}

func TestCache_ForceRefreshBypassesGate(t *testing.T) {
	src := &fakeSource{price: 1}
	log := logger.NewBufferLogger()
	c := NewCache(src, WithLogger(log))
	st := newMemStore()
	st.snap.LastFetchedAt = t0

	c.ForceRefresh(context.Background(), st, at(t0.Add(90*time.Second)))
	assert.Equal(t, 1, src.priceCalls())
	assert.Equal(t, t0.Add(90*time.Second), st.Load().LastFetchedAt)

	msgs := log.Messages()
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0].Message, "last cycle 1 minute 30 seconds ago")
}

func TestCache_FetchRunsOutsideStoreLock(t *testing.T) {
	src := &fakeSource{price: 2}
	c := NewCache(src)
	st := newMemStore()

	// Holding the store lock during Fetch would deadlock the Load below.
	src.onFetch = func() { _ = st.Load() }
	c.ForceRefresh(context.Background(), st, at(t0))
	assert.Equal(t, 2.0, st.Load().BTCPriceUSD)
}

func TestResult_Apply(t *testing.T) {
	snap := NewSnapshot()
	snap.BTCPriceUSD = 10
	snap.BlockHeight = 5

	Result{PriceErr: stderrors.New("x"), ChainErr: stderrors.New("y")}.Apply(&snap, t0)
	assert.Equal(t, 10.0, snap.BTCPriceUSD)
	assert.Equal(t, uint64(5), snap.BlockHeight)
	assert.Equal(t, t0, snap.LastFetchedAt)

	Result{Price: 20, Height: 6, Difficulty: 2e9}.Apply(&snap, t0.Add(time.Minute))
	assert.Equal(t, 20.0, snap.BTCPriceUSD)
	assert.Equal(t, uint64(6), snap.BlockHeight)
	assert.Equal(t, "2.00G", snap.DifficultyLabel)
}
