package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"ecdhsim/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a public JWK.
//
// It hashes crv, x and y with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(jwk domain.JWK) string {
	h := sha256.New()
	h.Write([]byte(jwk.Crv))
	h.Write([]byte{0})
	h.Write([]byte(jwk.X))
	h.Write([]byte{0})
	h.Write([]byte(jwk.Y))
	return hex.EncodeToString(h.Sum(nil)[:10])
}

// SecretFingerprint fingerprints a shared secret for display without
// revealing it.
func SecretFingerprint(secret domain.SharedSecret) string {
	if secret.IsZero() {
		return ""
	}
	sum := sha256.Sum256(secret.Key)
	return hex.EncodeToString(sum[:10])
}
