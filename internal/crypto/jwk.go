package crypto

import (
	"crypto/ecdh"
	"encoding/base64"
	"fmt"

	"ecdhsim/internal/domain"
)

const ktyEC = "EC"

// ExportPublicKey encodes pub as a JWK. The output depends only on the key.
func (p *Provider) ExportPublicKey(pub *ecdh.PublicKey) (domain.JWK, error) {
	if pub == nil {
		return domain.JWK{}, fmt.Errorf("%w: export of nil public key", domain.ErrCryptoProvider)
	}
	name, ok := curveName(pub.Curve())
	if !ok {
		return domain.JWK{}, fmt.Errorf("%w: export: unsupported curve", domain.ErrCryptoProvider)
	}
	// Uncompressed SEC 1 point: 0x04 || X || Y.
	raw := pub.Bytes()
	size := (len(raw) - 1) / 2
	return domain.JWK{
		Kty:    ktyEC,
		Crv:    name,
		X:      base64.RawURLEncoding.EncodeToString(raw[1 : 1+size]),
		Y:      base64.RawURLEncoding.EncodeToString(raw[1+size:]),
		Ext:    true,
		KeyOps: []string{},
	}, nil
}

// ImportPublicKey parses a JWK produced by ExportPublicKey (or by WebCrypto)
// and validates that the point lies on the provider's curve.
func (p *Provider) ImportPublicKey(jwk domain.JWK) (*ecdh.PublicKey, error) {
	if jwk.Kty != ktyEC {
		return nil, fmt.Errorf("%w: kty %q, want %q", domain.ErrKeyImport, jwk.Kty, ktyEC)
	}
	if jwk.Crv != p.curveName {
		return nil, fmt.Errorf("%w: curve %q, want %q", domain.ErrKeyImport, jwk.Crv, p.curveName)
	}
	if jwk.D != "" {
		return nil, fmt.Errorf("%w: refusing key with private component", domain.ErrKeyImport)
	}
	size := coordinateSize(p.curveName)
	x, err := decodeCoordinate(jwk.X, size)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %v", domain.ErrKeyImport, err)
	}
	y, err := decodeCoordinate(jwk.Y, size)
	if err != nil {
		return nil, fmt.Errorf("%w: y: %v", domain.ErrKeyImport, err)
	}
	point := make([]byte, 0, 1+2*size)
	point = append(point, 0x04)
	point = append(point, x...)
	point = append(point, y...)
	pub, err := p.curve.NewPublicKey(point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyImport, err)
	}
	return pub, nil
}

func decodeCoordinate(s string, size int) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("want %d bytes, got %d", size, len(b))
	}
	return b, nil
}

func coordinateSize(name string) int {
	switch name {
	case "P-384":
		return 48
	case "P-521":
		return 66
	default:
		return 32
	}
}

func curveName(c ecdh.Curve) (string, bool) {
	for name, known := range curves {
		if known == c {
			return name, true
		}
	}
	return "", false
}
