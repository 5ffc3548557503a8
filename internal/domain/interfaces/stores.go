package interfaces

import domaintypes "ecdhsim/internal/domain/types"

// TranscriptStore writes and reads exported transcripts. Private keys and
// secrets are never part of a transcript.
type TranscriptStore interface {
	SaveTranscript(path string, transcript domaintypes.Transcript, passphrase string) error
	LoadTranscript(path string, passphrase string) (domaintypes.Transcript, error)
}
