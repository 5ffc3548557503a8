package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"ecdhsim/internal/domain"
)

// TranscriptFileStore saves transcripts as files.
type TranscriptFileStore struct {
	mu     sync.Mutex
	params KDFParams
}

// NewTranscriptFileStore returns a store sealing with the given scrypt
// parameters. A zero value selects DefaultKDFParams.
func NewTranscriptFileStore(params KDFParams) *TranscriptFileStore {
	if params == (KDFParams{}) {
		params = DefaultKDFParams()
	}
	return &TranscriptFileStore{params: params}
}

// SaveTranscript writes t to path, sealed if passphrase is non-empty.
func (s *TranscriptFileStore) SaveTranscript(path string, t domain.Transcript, passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if passphrase != "" {
		if raw, err = seal(passphrase, raw, s.params); err != nil {
			return fmt.Errorf("seal transcript: %w", err)
		}
	}
	if err := writeFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write transcript %s: %w", path, err)
	}
	return nil
}

// LoadTranscript reads a transcript written by SaveTranscript.
func (s *TranscriptFileStore) LoadTranscript(path string, passphrase string) (domain.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Transcript{}, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Transcript{}, fmt.Errorf("decode transcript %s: %w", path, err)
	}
	if env.Kind == sealedKind {
		if passphrase == "" {
			return domain.Transcript{}, ErrPassphraseRequired
		}
		if raw, err = open(passphrase, env); err != nil {
			return domain.Transcript{}, err
		}
	}

	var t domain.Transcript
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.Transcript{}, fmt.Errorf("decode transcript %s: %w", path, err)
	}
	return t, nil
}

// Compile-time assertion that TranscriptFileStore implements domain.TranscriptStore.
var _ domain.TranscriptStore = (*TranscriptFileStore)(nil)
