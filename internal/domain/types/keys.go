package types

import (
	"crypto/ecdh"
	"crypto/subtle"
	"encoding/hex"

	"ecdhsim/internal/util/memzero"
)

// JWK is the transmittable form of an EC public key, laid out the way
// WebCrypto exports one.
type JWK struct {
	Kty    string   `json:"kty"`
	Crv    string   `json:"crv"`
	X      string   `json:"x"`
	Y      string   `json:"y"`
	Ext    bool     `json:"ext"`
	KeyOps []string `json:"key_ops"`

	// D is only decoded so that imports can reject private material.
	D string `json:"d,omitempty"`
}

// KeyPair is a peer's local asymmetric key pair. The private half never
// leaves the peer.
type KeyPair struct {
	Private *ecdh.PrivateKey
	Public  *ecdh.PublicKey
}

// SharedSecret is a symmetric key produced by key agreement. It is only used
// for AES-GCM encryption and decryption.
type SharedSecret struct {
	Key       []byte
	Algorithm string
	Usages    []string
}

// Bits returns the key length in bits.
func (s SharedSecret) Bits() int { return len(s.Key) * 8 }

// IsZero reports whether s holds no key material.
func (s SharedSecret) IsZero() bool { return len(s.Key) == 0 }

// Equal compares the raw key bytes in constant time.
func (s SharedSecret) Equal(other SharedSecret) bool {
	if len(s.Key) == 0 || len(s.Key) != len(other.Key) {
		return false
	}
	return subtle.ConstantTimeCompare(s.Key, other.Key) == 1
}

// Hex returns the raw key as lowercase hex, as the key-agreement step
// compares exported secrets.
func (s SharedSecret) Hex() string { return hex.EncodeToString(s.Key) }

// Clone returns a copy that does not share key storage with s.
func (s SharedSecret) Clone() SharedSecret {
	out := s
	out.Key = append([]byte(nil), s.Key...)
	out.Usages = append([]string(nil), s.Usages...)
	return out
}

// Wipe zeroes the key bytes in place.
func (s *SharedSecret) Wipe() {
	if s == nil {
		return
	}
	memzero.Zero(s.Key)
	s.Key = nil
}
