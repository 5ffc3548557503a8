package interfaces

import (
	"context"
	"crypto/ecdh"

	domaintypes "ecdhsim/internal/domain/types"
)

// KeyAgreement is the cryptographic facade. Implementations delegate every
// operation to the platform crypto provider.
type KeyAgreement interface {
	GenerateKeyPair(ctx context.Context) (domaintypes.KeyPair, error)
	ExportPublicKey(pub *ecdh.PublicKey) (domaintypes.JWK, error)
	ImportPublicKey(jwk domaintypes.JWK) (*ecdh.PublicKey, error)
	DeriveSharedSecret(
		ctx context.Context,
		priv *ecdh.PrivateKey,
		pub *ecdh.PublicKey,
	) (domaintypes.SharedSecret, error)
	Encrypt(secret domaintypes.SharedSecret, plaintext []byte) (ciphertext, nonce []byte, err error)
	Decrypt(secret domaintypes.SharedSecret, ciphertext, nonce []byte) ([]byte, error)
}
