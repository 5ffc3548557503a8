package app

import (
	"log/slog"

	"ecdhsim/internal/crypto"
	"ecdhsim/internal/journal"
	"ecdhsim/internal/relay"
	"ecdhsim/internal/services/exchange"
	"ecdhsim/internal/services/identity"
	"ecdhsim/internal/services/message"
	"ecdhsim/internal/services/playground"
	"ecdhsim/internal/services/session"
	"ecdhsim/internal/services/simulation"
	"ecdhsim/internal/store"
)

// Wire bundles the provider, relay, services and stores for the binaries.
type Wire struct {
	Crypto      *crypto.Provider
	Relay       *relay.Loopback
	Journal     *journal.Journal
	Simulation  *simulation.Controller
	Playground  *playground.Service
	Transcripts *store.TranscriptFileStore
	Log         *slog.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	provider, err := crypto.NewProvider(cfg.Curve, cfg.KDF)
	if err != nil {
		return nil, err
	}
	lb := relay.NewLoopback()
	j := journal.New(log.With("component", "journal"))

	ctrl := simulation.New(simulation.Deps{
		Identity: identity.New(provider),
		Exchange: exchange.New(lb),
		Session:  session.New(provider),
		Message:  message.New(provider, lb),
		Relay:    lb,
		Journal:  j,
		Logger:   log.With("component", "simulation"),
	})

	return &Wire{
		Crypto:      provider,
		Relay:       lb,
		Journal:     j,
		Simulation:  ctrl,
		Playground:  playground.New(provider, ctrl),
		Transcripts: store.NewTranscriptFileStore(store.KDFParams{}),
		Log:         log,
	}, nil
}
