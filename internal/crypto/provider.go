package crypto

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"ecdhsim/internal/domain"
	"ecdhsim/internal/util/memzero"
)

const (
	// SecretBytes is the AES-256 key length produced by DeriveSharedSecret.
	SecretBytes = 32
	// NonceBytes is the AES-GCM nonce length.
	NonceBytes = 12

	algorithmAESGCM = "AES-GCM"
	hkdfInfo        = "ecdhsim aes-gcm key"
)

// KDFMode selects how the ECDH output becomes an AES key.
type KDFMode string

const (
	KDFRaw  KDFMode = "raw"
	KDFHKDF KDFMode = "hkdf-sha256"
)

var curves = map[string]ecdh.Curve{
	"P-256": ecdh.P256(),
	"P-384": ecdh.P384(),
	"P-521": ecdh.P521(),
}

// Provider implements domain.KeyAgreement over crypto/ecdh and AES-GCM.
type Provider struct {
	curveName string
	curve     ecdh.Curve
	kdf       KDFMode
	random    io.Reader
}

// Option configures a Provider.
type Option func(*Provider)

// WithRandom replaces the provider's entropy source, used for key
// generation and nonces. Tests use it to simulate an unavailable
// randomness source.
func WithRandom(r io.Reader) Option {
	return func(p *Provider) { p.random = r }
}

// NewProvider returns a provider for the named curve and KDF mode. An empty
// curve means P-256 and an empty mode means raw.
func NewProvider(curveName string, kdf KDFMode, opts ...Option) (*Provider, error) {
	if curveName == "" {
		curveName = "P-256"
	}
	curveName = strings.ToUpper(curveName)
	curve, ok := curves[curveName]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported curve %q", domain.ErrCryptoProvider, curveName)
	}
	switch kdf {
	case "":
		kdf = KDFRaw
	case KDFRaw, KDFHKDF:
	default:
		return nil, fmt.Errorf("unknown kdf mode %q", kdf)
	}
	p := &Provider{curveName: curveName, curve: curve, kdf: kdf, random: rand.Reader}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Curve returns the JWK name of the provider's curve.
func (p *Provider) Curve() string { return p.curveName }

// KDF returns the configured key-derivation mode.
func (p *Provider) KDF() KDFMode { return p.kdf }

// GenerateKeyPair returns a fresh key-agreement key pair.
func (p *Provider) GenerateKeyPair(ctx context.Context) (domain.KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return domain.KeyPair{}, err
	}
	priv, err := p.curve.GenerateKey(p.random)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: generate %s key: %v", domain.ErrCryptoProvider, p.curveName, err)
	}
	return domain.KeyPair{Private: priv, Public: priv.PublicKey()}, nil
}

// DeriveSharedSecret runs ECDH and turns the output into an AES-256-GCM key.
func (p *Provider) DeriveSharedSecret(
	ctx context.Context,
	priv *ecdh.PrivateKey,
	pub *ecdh.PublicKey,
) (domain.SharedSecret, error) {
	if err := ctx.Err(); err != nil {
		return domain.SharedSecret{}, err
	}
	if priv == nil || pub == nil {
		return domain.SharedSecret{}, fmt.Errorf("%w: missing key for derivation", domain.ErrCryptoProvider)
	}
	if priv.Curve() != p.curve || pub.Curve() != p.curve {
		return domain.SharedSecret{}, fmt.Errorf("%w: key curve does not match %s", domain.ErrCryptoProvider, p.curveName)
	}
	z, err := priv.ECDH(pub)
	if err != nil {
		return domain.SharedSecret{}, fmt.Errorf("%w: ecdh: %v", domain.ErrCryptoProvider, err)
	}
	defer memzero.Zero(z)

	key := make([]byte, SecretBytes)
	switch p.kdf {
	case KDFHKDF:
		if _, err := io.ReadFull(hkdf.New(sha256.New, z, nil, []byte(hkdfInfo)), key); err != nil {
			return domain.SharedSecret{}, fmt.Errorf("%w: hkdf: %v", domain.ErrCryptoProvider, err)
		}
	default:
		copy(key, z[:SecretBytes])
	}
	return domain.SharedSecret{
		Key:       key,
		Algorithm: algorithmAESGCM,
		Usages:    []string{"encrypt", "decrypt"},
	}, nil
}

// Compile-time assertion that Provider implements domain.KeyAgreement.
var _ domain.KeyAgreement = (*Provider)(nil)
