// Package api serves a read-only view of the dashboard over HTTP: a JSON
// status endpoint and a websocket that streams the same snapshot.
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rileyhilliard/nerdminer/internal/errors"
	"github.com/rileyhilliard/nerdminer/internal/logger"
	"github.com/rileyhilliard/nerdminer/internal/supervisor"
)

// DefaultPushInterval matches the dashboard frame interval.
const DefaultPushInterval = 500 * time.Millisecond

// StatusProvider returns a consistent snapshot of the dashboard.
type StatusProvider interface {
	Status() supervisor.Status
}

// Server is the status HTTP server.
type Server struct {
	addr     string
	provider StatusProvider
	hub      *Hub
	log      logger.Logger
	server   *http.Server
	listener net.Listener
	cancel   context.CancelFunc
	done     chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithPushInterval sets how often websocket clients receive a snapshot.
func WithPushInterval(d time.Duration) Option {
	return func(s *Server) {
		s.hub.interval = d
	}
}

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = l
		s.hub.log = l
	}
}

// NewServer creates a server for addr.
func NewServer(addr string, provider StatusProvider, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		provider: provider,
		log:      logger.Noop(),
	}
	s.hub = NewHub(provider, DefaultPushInterval, s.log)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrServer,
			"Cannot start status server on "+s.addr,
			"Pick a free address with --status-addr, or leave it empty to disable the server")
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.hub.Run(ctx)

	go func() {
		defer close(s.done)
		if err := s.server.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.log.Error("status server: %v", err)
		}
	}()

	s.log.Info("status server listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops the hub and gracefully closes the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.cancel()
	err := s.server.Shutdown(ctx)
	<-s.done
	return err
}
