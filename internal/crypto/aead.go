package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	"ecdhsim/internal/domain"
)

// Encrypt seals plaintext under secret with AES-GCM. Every call draws a new
// 12-byte nonce; the nonce is returned alongside the ciphertext.
func (p *Provider) Encrypt(secret domain.SharedSecret, plaintext []byte) ([]byte, []byte, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, NonceBytes)
	if _, err := io.ReadFull(p.random, nonce); err != nil {
		return nil, nil, fmt.Errorf("%w: nonce: %v", domain.ErrCryptoProvider, err)
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt opens ciphertext. Any tampering with the ciphertext, the nonce or
// the key yields domain.ErrAuthentication.
func (p *Provider) Decrypt(secret domain.SharedSecret, ciphertext, nonce []byte) ([]byte, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceBytes {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", domain.ErrAuthentication, NonceBytes, len(nonce))
	}
	if len(ciphertext) < gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", domain.ErrAuthentication)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(secret domain.SharedSecret) (cipher.AEAD, error) {
	if len(secret.Key) != SecretBytes {
		return nil, fmt.Errorf("%w: shared secret must be %d bytes", domain.ErrCryptoProvider, SecretBytes)
	}
	block, err := aes.NewCipher(secret.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptoProvider, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptoProvider, err)
	}
	return gcm, nil
}
