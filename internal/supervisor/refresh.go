package supervisor

import (
	"context"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/network"
)

// networkLoop wakes every poll interval and refreshes when the gate allows.
func (s *Supervisor) networkLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx, false)
		}
	}
}

// refresh runs one cycle unless the gate is closed and force is false.
// It reports whether a cycle ran.
func (s *Supervisor) refresh(ctx context.Context, force bool) bool {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	if force {
		s.cache.ForceRefresh(ctx, netStore{s}, s.now)
		return true
	}
	return s.cache.RefreshIfDue(ctx, netStore{s}, s.now)
}

// netStore exposes the supervisor's network snapshot to the cache under mu.
type netStore struct {
	s *Supervisor
}

func (n netStore) Load() network.Snapshot {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	return n.s.net
}

func (n netStore) Update(fn func(*network.Snapshot)) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	fn(&n.s.net)
}
