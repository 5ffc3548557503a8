package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/atomic"

	"ecdhsim/internal/domain"
)

// Simulation is the controller surface the server drives.
type Simulation interface {
	Initialize(ctx context.Context) error
	ShareKeys(ctx context.Context) error
	DeriveSecret(ctx context.Context) error
	Refresh(ctx context.Context) error
	Reset(ctx context.Context) error
	SendMessage(ctx context.Context, sender domain.PeerLabel, content string) (domain.Message, error)
	Snapshot() domain.Snapshot
	Logs() []domain.LogEntry
	Messages() []domain.Message
	Message(id domain.MessageID) (domain.Message, error)
}

// Playground is the AES playground surface the server drives.
type Playground interface {
	State() domain.PlaygroundState
	Encrypt(plaintext string) (domain.PlaygroundState, error)
	Decrypt(ciphertext, iv []byte) (domain.PlaygroundState, error)
	Select(id domain.MessageID) (domain.PlaygroundState, error)
	Tamper(index int) (domain.PlaygroundState, error)
	Reset()
}

// Config contains the HTTP server parameters.
type Config struct {
	// ListenAddr is the address and port the HTTP server will listen on.
	ListenAddr string

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string

	// Log is the structured logger for server operations.
	Log *slog.Logger

	// GracefulShutdownDuration is the maximum time to wait for in-flight
	// requests to complete during shutdown.
	GracefulShutdownDuration time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the simulation API.
type Server struct {
	cfg     Config
	log     *slog.Logger
	sim     Simulation
	pg      Playground
	isReady atomic.Bool
	srv     *http.Server
}

// New creates a server. It is ready by default.
func New(cfg Config, sim Simulation, pg Playground) *Server {
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	if cfg.GracefulShutdownDuration == 0 {
		cfg.GracefulShutdownDuration = 5 * time.Second
	}
	s := &Server{cfg: cfg, log: cfg.Log, sim: sim, pg: pg}
	s.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	s.isReady.Store(true)
	return s
}

// Handler builds the router with middleware and all routes.
func (s *Server) Handler() http.Handler {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Route("/api", func(r chi.Router) {
		r.Use(s.httpLogger)

		r.Get("/state", s.handleState)
		r.Get("/logs", s.handleLogs)

		r.Post("/initialize", s.step(s.sim.Initialize))
		r.Post("/share-keys", s.step(s.sim.ShareKeys))
		r.Post("/derive-secret", s.step(s.sim.DeriveSecret))
		r.Post("/refresh", s.step(s.sim.Refresh))
		r.Post("/reset", s.handleReset)

		r.Post("/peers/{peer}/messages", s.handleSend)
		r.Get("/messages", s.handleMessages)
		r.Get("/messages/{id}", s.handleMessage)

		r.Get("/playground", s.handlePlaygroundState)
		r.Post("/playground/encrypt", s.handleEncrypt)
		r.Post("/playground/decrypt", s.handleDecrypt)
		r.Post("/playground/select/{id}", s.handleSelect)
		r.Post("/playground/tamper", s.handleTamper)
	})

	mux.Get("/livez", s.handleLivenessCheck)
	mux.Get("/readyz", s.handleReadinessCheck)
	return mux
}

// httpLogger logs HTTP requests using structured logging.
func (s *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(s.log, next)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "listenAddress", s.cfg.ListenAddr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.log.Error("HTTP server failed", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.isReady.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Graceful HTTP server shutdown failed", "err", err)
		return err
	}
	s.log.Info("HTTP server gracefully stopped")
	return nil
}
