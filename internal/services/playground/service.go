package playground

import (
	"fmt"
	"sync"

	"ecdhsim/internal/domain"
)

// DefaultPlaintext is the text the playground starts with.
const DefaultPlaintext = "This is a secret message."

const noSecret = "Shared secret is not available. Please complete the key agreement in the simulation."

// Service holds the playground state for one session.
type Service struct {
	mu     sync.Mutex
	keys   domain.KeyAgreement
	source domain.SecretSource
	state  domain.PlaygroundState
}

// New returns a playground reading secrets and messages from source.
func New(keys domain.KeyAgreement, source domain.SecretSource) *Service {
	return &Service{
		keys:   keys,
		source: source,
		state:  domain.PlaygroundState{Plaintext: DefaultPlaintext},
	}
}

// State returns a copy of the current playground state.
func (s *Service) State() domain.PlaygroundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Encrypt encrypts plaintext under the channel secret with a fresh IV.
// An empty plaintext reuses the current one. Previous results are cleared.
func (s *Service) Encrypt(plaintext string) (domain.PlaygroundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if plaintext != "" {
		s.state.Plaintext = plaintext
	}
	s.state.IV, s.state.Ciphertext, s.state.DecryptedText = nil, nil, nil
	s.state.Error = ""
	s.state.SelectedID = nil

	secret, err := s.secret()
	if err != nil {
		return s.snapshot(), err
	}
	defer secret.Wipe()

	ct, iv, err := s.keys.Encrypt(secret, []byte(s.state.Plaintext))
	if err != nil {
		s.state.Error = fmt.Sprintf("Encryption failed: %v", err)
		return s.snapshot(), err
	}
	s.state.Ciphertext, s.state.IV = ct, iv
	return s.snapshot(), nil
}

// Decrypt decrypts the loaded ciphertext and IV. Non-nil arguments replace
// the loaded values first.
func (s *Service) Decrypt(ciphertext, iv []byte) (domain.PlaygroundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ciphertext != nil {
		s.state.Ciphertext = append([]byte(nil), ciphertext...)
	}
	if iv != nil {
		s.state.IV = append([]byte(nil), iv...)
	}
	s.state.DecryptedText = nil
	s.state.Error = ""

	secret, err := s.secret()
	if err != nil {
		return s.snapshot(), err
	}
	defer secret.Wipe()

	if len(s.state.Ciphertext) == 0 {
		err := fmt.Errorf("%w: nothing to decrypt", domain.ErrAuthentication)
		s.state.Error = decryptFailure(err)
		return s.snapshot(), err
	}

	plain, err := s.keys.Decrypt(secret, s.state.Ciphertext, s.state.IV)
	if err != nil {
		s.state.Error = decryptFailure(err)
		return s.snapshot(), err
	}
	text := string(plain)
	s.state.DecryptedText = &text
	return s.snapshot(), nil
}

// Select loads a previously sent message for inspection.
func (s *Service) Select(id domain.MessageID) (domain.PlaygroundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.source.Message(id)
	if err != nil {
		return s.snapshot(), err
	}
	text := msg.DecryptedContent
	s.state = domain.PlaygroundState{
		Plaintext:     msg.DecryptedContent,
		IV:            msg.IV,
		Ciphertext:    msg.Ciphertext,
		DecryptedText: &text,
		SelectedID:    &msg.ID,
	}
	return s.snapshot(), nil
}

// Tamper flips every bit of the ciphertext byte at index. The stored
// message, if one is selected, is not modified.
func (s *Service) Tamper(index int) (domain.PlaygroundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Ciphertext) {
		return s.snapshot(), fmt.Errorf("tamper index %d out of range [0,%d)", index, len(s.state.Ciphertext))
	}
	ct := append([]byte(nil), s.state.Ciphertext...)
	ct[index] ^= 0xff
	s.state.Ciphertext = ct
	s.state.DecryptedText = nil
	s.state.Error = ""
	return s.snapshot(), nil
}

// Reset restores the initial playground state.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.PlaygroundState{Plaintext: DefaultPlaintext}
}

func (s *Service) secret() (domain.SharedSecret, error) {
	secret, err := s.source.ChannelSecret()
	if err != nil {
		s.state.IV, s.state.Ciphertext, s.state.DecryptedText = nil, nil, nil
		s.state.Error = noSecret
		return domain.SharedSecret{}, err
	}
	return secret, nil
}

func (s *Service) snapshot() domain.PlaygroundState {
	out := s.state
	out.IV = append([]byte(nil), s.state.IV...)
	out.Ciphertext = append([]byte(nil), s.state.Ciphertext...)
	if s.state.DecryptedText != nil {
		text := *s.state.DecryptedText
		out.DecryptedText = &text
	}
	if s.state.SelectedID != nil {
		id := *s.state.SelectedID
		out.SelectedID = &id
	}
	return out
}

func decryptFailure(err error) string {
	return fmt.Sprintf("Decryption failed: %v. This can happen if the key or IV is incorrect.", err)
}
