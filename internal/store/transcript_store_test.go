package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/domain"
	"ecdhsim/internal/store"
)

// Cheap scrypt parameters keep the tests fast.
var testParams = store.KDFParams{N: 1 << 10, R: 8, P: 1}

func sample() domain.Transcript {
	return domain.Transcript{
		SessionID:  "c0ffee",
		Step:       domain.StepSecretDerived,
		ExportedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Peers: []domain.PeerView{
			{Label: domain.PeerA, PseudoID: "Peer_A_abcdef", HasKeyPair: true},
			{Label: domain.PeerB, PseudoID: "Peer_B_123456", HasKeyPair: true},
		},
		Messages: []domain.Message{{
			ID:               1,
			Sender:           "Peer_A_abcdef",
			SenderLabel:      domain.PeerA,
			Content:          "hello",
			Ciphertext:       []byte{1, 2, 3},
			IV:               make([]byte, 12),
			DecryptedContent: "hello",
			Timestamp:        time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC),
		}},
		Logs: []domain.LogEntry{{Message: "Simulation started. Initializing peers...", Severity: domain.SeveritySystem}},
	}
}

func TestTranscript_PlainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transcript.json")
	s := store.NewTranscriptFileStore(testParams)

	require.NoError(t, s.SaveTranscript(path, sample(), ""))
	got, err := s.LoadTranscript(path, "")
	require.NoError(t, err)
	assert.Equal(t, sample().Messages[0].Ciphertext, got.Messages[0].Ciphertext)
	assert.Equal(t, sample().Peers, got.Peers)
	assert.Equal(t, sample().Step, got.Step)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTranscript_SealedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.sealed")
	s := store.NewTranscriptFileStore(testParams)

	require.NoError(t, s.SaveTranscript(path, sample(), "correct horse"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "Peer_A_abcdef"))

	got, err := s.LoadTranscript(path, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, sample().SessionID, got.SessionID)
	assert.Len(t, got.Messages, 1)
}

func TestTranscript_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.sealed")
	s := store.NewTranscriptFileStore(testParams)
	require.NoError(t, s.SaveTranscript(path, sample(), "correct"))

	_, err := s.LoadTranscript(path, "wrong")
	require.ErrorIs(t, err, store.ErrWrongPassphrase)

	_, err = s.LoadTranscript(path, "")
	require.ErrorIs(t, err, store.ErrPassphraseRequired)
}

func TestTranscript_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := store.NewTranscriptFileStore(testParams)
	require.NoError(t, s.SaveTranscript(filepath.Join(dir, "a.json"), sample(), ""))
	require.NoError(t, s.SaveTranscript(filepath.Join(dir, "a.json"), sample(), ""))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}
