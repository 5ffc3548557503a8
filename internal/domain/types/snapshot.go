package types

import "time"

// PeerView is the public, read-only view of a peer. It never carries
// private key material or the raw shared secret.
type PeerView struct {
	Label             PeerLabel `json:"label"`
	PseudoID          PseudoID  `json:"pseudo_id"`
	HasKeyPair        bool      `json:"has_key_pair"`
	PublicKey         *JWK      `json:"public_key,omitempty"`
	ReceivedPublicKey *JWK      `json:"received_public_key,omitempty"`
	HasSharedSecret   bool      `json:"has_shared_secret"`
	SecretFingerprint string    `json:"secret_fingerprint,omitempty"`
	Messages          []Message `json:"messages"`
}

// Snapshot is the full observable simulation state. AllowedActions lists
// the actions the current step permits, reset included.
type Snapshot struct {
	SessionID      SessionID `json:"session_id,omitempty"`
	Step           Step      `json:"step"`
	AllowedActions []string  `json:"allowed_actions"`
	PeerA          PeerView  `json:"peer_a"`
	PeerB          PeerView  `json:"peer_b"`
	LogCount       int       `json:"log_count"`
}

// Transcript is the exported, inspection-only record of a session.
type Transcript struct {
	SessionID  SessionID  `json:"session_id,omitempty"`
	Step       Step       `json:"step"`
	ExportedAt time.Time  `json:"exported_at"`
	Peers      []PeerView `json:"peers"`
	Messages   []Message  `json:"messages"`
	Logs       []LogEntry `json:"logs"`
}

// PlaygroundState is the scratch state of the ad hoc encrypt/decrypt view.
type PlaygroundState struct {
	Plaintext     string     `json:"plaintext"`
	IV            []byte     `json:"iv,omitempty"`
	Ciphertext    []byte     `json:"ciphertext,omitempty"`
	DecryptedText *string    `json:"decrypted_text,omitempty"`
	Error         string     `json:"error,omitempty"`
	SelectedID    *MessageID `json:"selected_id,omitempty"`
}
