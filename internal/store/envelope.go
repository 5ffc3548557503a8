package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	sealedKind = "ecdhsim-sealed-transcript"

	// The current version of the sealed envelope format.
	envelopeVersion = 1
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed envelope has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted transcript")

	// ErrPassphraseRequired is returned when loading a sealed transcript
	// without a passphrase.
	ErrPassphraseRequired = errors.New("transcript is sealed; passphrase required")
)

// KDFParams are the scrypt cost parameters.
type KDFParams struct {
	N, R, P int
}

// DefaultKDFParams returns the scrypt parameters used for new envelopes.
func DefaultKDFParams() KDFParams { return KDFParams{N: 1 << 15, R: 8, P: 1} }

// envelope is the on-disk JSON structure of a sealed transcript.
type envelope struct {
	Kind   string `json:"kind"`
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw into an envelope.
// The salt is bound as associated data.
func seal(passphrase string, raw []byte, params KDFParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return json.MarshalIndent(envelope{
		Kind:   sealedKind,
		V:      envelopeVersion,
		Salt:   salt[:],
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, salt[:]),
	}, "", "  ")
}

// open decrypts an envelope using a key derived from passphrase.
func open(passphrase string, env envelope) ([]byte, error) {
	if env.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported transcript envelope version %d", env.V)
	}
	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
