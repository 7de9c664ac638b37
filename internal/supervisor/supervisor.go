// Package supervisor runs the dashboard. It owns every piece of mutable
// state behind one mutex and coordinates three loops: the foreground
// poll/render loop, a compute loop that exists only while mining, and a
// network loop that refreshes market data on a fixed cadence.
//
// Network I/O never runs under the lock. A refresh copies the snapshot
// under the lock, fetches without it, and applies the result under it
// again, so a slow endpoint cannot stall rendering or button handling.
package supervisor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hako/durafmt"
	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/rileyhilliard/nerdminer/internal/errors"
	"github.com/rileyhilliard/nerdminer/internal/input"
	"github.com/rileyhilliard/nerdminer/internal/logger"
	"github.com/rileyhilliard/nerdminer/internal/miner"
	"github.com/rileyhilliard/nerdminer/internal/network"
	"github.com/rileyhilliard/nerdminer/internal/render"
)

// Lifecycle messages.
const (
	MsgStarting = "Initializing NerdMiner..."
	MsgStopping = "Shutting down NerdMiner..."
	MsgStopped  = "NerdMiner stopped."
)

// KeyReader polls for a single key press.
type KeyReader interface {
	PollKey(timeout time.Duration) (rune, bool)
}

// Display shows frames and one-line messages.
type Display interface {
	Show(render.Frame) error
	Message(msg string) error
}

// Status is a consistent copy of the dashboard state.
type Status struct {
	Stats       miner.Snapshot
	Network     network.Snapshot
	ScreenOn    bool
	Temperature int
	Now         time.Time
}

// Supervisor is the composition root.
type Supervisor struct {
	keys     KeyReader
	display  Display
	engine   *miner.Engine
	cache    *network.Cache
	renderer *render.Renderer
	log      logger.Logger
	now      func() time.Time
	newRand  func() miner.RandSource

	frameInterval time.Duration
	pollTimeout   time.Duration
	tickSleep     time.Duration
	pollInterval  time.Duration
	keyMap        input.KeyMap

	// mu guards everything below.
	mu          sync.Mutex
	stats       *miner.Stats
	net         network.Snapshot
	controller  *input.Controller
	screenOn    bool
	temperature int
	stopCompute context.CancelFunc
	computeDone chan struct{}
	mined       time.Duration

	// refreshMu serializes refresh cycles without blocking mu.
	refreshMu sync.Mutex
	wg        sync.WaitGroup
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Supervisor) {
		s.log = l
	}
}

// WithRandSource sets the factory for per-session randomness.
func WithRandSource(fn func() miner.RandSource) Option {
	return func(s *Supervisor) {
		s.newRand = fn
	}
}

// WithKeyMap overrides the key bindings the controller classifies.
func WithKeyMap(k input.KeyMap) Option {
	return func(s *Supervisor) {
		s.keyMap = k
	}
}

// New wires a supervisor from cfg. source supplies network data.
func New(cfg *config.Config, source network.Source, keys KeyReader, display Display, opts ...Option) *Supervisor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Supervisor{
		keys:          keys,
		display:       display,
		engine:        miner.NewEngine(miner.WithShareProbability(cfg.Mining.ShareProbability)),
		renderer:      render.NewRenderer(cfg.Display.GraphWidth, cfg.Display.GraphHeight),
		log:           logger.Noop(),
		now:           time.Now,
		newRand:       defaultRand,
		frameInterval: cfg.Display.FrameInterval,
		pollTimeout:   cfg.Display.PollTimeout,
		tickSleep:     cfg.Mining.TickSleep,
		pollInterval:  cfg.Network.PollInterval,
		keyMap:        input.DefaultKeyMap,
		stats:         miner.NewStats(cfg.Mining.HistorySize),
		net:           network.NewSnapshot(),
		screenOn:      true,
		temperature:   render.InitialTemperature,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cache = network.NewCache(source,
		network.WithMinInterval(cfg.Network.MinInterval),
		network.WithLogger(s.log))
	s.controller = input.NewController(
		input.WithKeyMap(s.keyMap),
		input.WithPowerDebounce(cfg.Input.PowerDebounce),
		input.WithVolumeWindow(cfg.Input.VolumeWindow))
	return s
}

func defaultRand() miner.RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Run blocks until quit is pressed or ctx is cancelled. Mining is always
// stopped before it returns.
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.display.Message(MsgStarting); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Cannot write to the terminal",
			"Check that stdout is attached to a terminal")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.refresh(ctx, false)

	s.wg.Add(1)
	go s.networkLoop(ctx)

	s.foreground(ctx)

	s.message(MsgStopping)
	cancel()
	s.stopMining()
	s.wg.Wait()
	s.message(MsgStopped + " " + s.summary())
	return nil
}

// Status returns a consistent copy of the current state.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Stats:       s.stats.Snapshot(),
		Network:     s.net,
		ScreenOn:    s.screenOn,
		Temperature: s.temperature,
		Now:         s.now(),
	}
}

func (s *Supervisor) foreground(ctx context.Context) {
	timer := time.NewTimer(s.frameInterval)
	defer timer.Stop()

	showingOff := false
	for {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()

		if r, ok := s.keys.PollKey(s.pollTimeout); ok {
			s.mu.Lock()
			action := s.controller.HandleKey(r, s.now())
			s.mu.Unlock()

			if action != input.ActionNone {
				s.log.Debug("key %q: %s", r, action)
			}
			if action == input.ActionQuit {
				return
			}
			s.apply(ctx, action)
		}

		frame, on := s.frame()
		switch {
		case on:
			s.show(frame)
			showingOff = false
		case !showingOff:
			s.show(render.Notice(render.ScreenOffMessage))
			showingOff = true
		}

		wait := s.frameInterval - time.Since(start)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

func (s *Supervisor) apply(ctx context.Context, action input.Action) {
	switch action {
	case input.ActionToggleScreen:
		s.mu.Lock()
		s.screenOn = !s.screenOn
		s.mu.Unlock()
	case input.ActionToggleMining:
		s.toggleMining()
	case input.ActionForceRefresh:
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.refresh(ctx, true)
		}()
	}
}

// frame renders the current temperature while the screen is on, then
// advances the temperature model. The model advances with the screen off too.
func (s *Supervisor) frame() (render.Frame, bool) {
	s.mu.Lock()
	on := s.screenOn
	view := render.View{
		Stats:       s.stats.Snapshot(),
		Network:     s.net,
		Temperature: s.temperature,
		Now:         s.now(),
	}
	s.temperature = render.NextTemperature(s.temperature, s.stats.Running, s.stats.CurrentRate)
	s.mu.Unlock()

	if !on {
		return render.Frame{}, false
	}
	return s.renderer.Render(view), true
}

func (s *Supervisor) show(f render.Frame) {
	if err := s.display.Show(f); err != nil {
		s.log.Debug("display: %v", err)
	}
}

func (s *Supervisor) message(msg string) {
	if err := s.display.Message(msg); err != nil {
		s.log.Debug("display: %v", err)
	}
}

func (s *Supervisor) summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%s hashes, %d shares, mined for %s",
		render.FormatCount(float64(s.stats.TotalHashes)),
		s.stats.AcceptedShares,
		durafmt.Parse(s.mined.Round(time.Second)).LimitFirstN(2))
}
