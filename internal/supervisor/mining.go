package supervisor

import (
	"context"
	"time"

	"github.com/hako/durafmt"
	"github.com/rileyhilliard/nerdminer/internal/miner"
)

func (s *Supervisor) toggleMining() {
	s.mu.Lock()
	running := s.stats.Running
	s.mu.Unlock()

	if running {
		s.stopMining()
		return
	}
	s.startMining()
}

// startMining begins a session and spawns its compute loop. Starting also
// turns the screen on.
func (s *Supervisor) startMining() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats.Running {
		return
	}

	s.engine.Start(s.stats, s.now())
	s.screenOn = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.stopCompute, s.computeDone = cancel, done

	go s.compute(ctx, done, s.newRand())
	s.log.Info("mining started")
}

// stopMining ends the session and waits for the compute loop to exit.
func (s *Supervisor) stopMining() {
	s.mu.Lock()
	if !s.stats.Running {
		s.mu.Unlock()
		return
	}
	session := s.stats.Uptime(s.now())
	s.mined += session
	s.engine.Stop(s.stats)
	cancel, done := s.stopCompute, s.computeDone
	s.stopCompute, s.computeDone = nil, nil
	s.mu.Unlock()

	cancel()
	<-done
	s.log.Info("mining stopped after %s", durafmt.Parse(session.Round(time.Second)).LimitFirstN(2))
}

// compute ticks until the session ends. The running flag is checked once
// per tick under the lock.
func (s *Supervisor) compute(ctx context.Context, done chan<- struct{}, rng miner.RandSource) {
	defer close(done)

	timer := time.NewTimer(s.tickSleep)
	defer timer.Stop()

	for {
		s.mu.Lock()
		if !s.stats.Running {
			s.mu.Unlock()
			return
		}
		s.engine.Tick(s.stats, rng, s.now())
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			timer.Reset(s.tickSleep)
		}
	}
}
