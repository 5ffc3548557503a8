package crypto_test

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
)

func newProvider(t *testing.T, curve string, kdf crypto.KDFMode) *crypto.Provider {
	t.Helper()
	p, err := crypto.NewProvider(curve, kdf)
	require.NoError(t, err)
	return p
}

func derivePair(t *testing.T, p *crypto.Provider) (domain.SharedSecret, domain.SharedSecret) {
	t.Helper()
	ctx := context.Background()
	alice, err := p.GenerateKeyPair(ctx)
	require.NoError(t, err)
	bob, err := p.GenerateKeyPair(ctx)
	require.NoError(t, err)

	// Go through JWK export/import like the simulation does.
	aliceJWK, err := p.ExportPublicKey(alice.Public)
	require.NoError(t, err)
	bobJWK, err := p.ExportPublicKey(bob.Public)
	require.NoError(t, err)
	bobPub, err := p.ImportPublicKey(bobJWK)
	require.NoError(t, err)
	alicePub, err := p.ImportPublicKey(aliceJWK)
	require.NoError(t, err)

	sa, err := p.DeriveSharedSecret(ctx, alice.Private, bobPub)
	require.NoError(t, err)
	sb, err := p.DeriveSharedSecret(ctx, bob.Private, alicePub)
	require.NoError(t, err)
	return sa, sb
}

func TestDeriveSharedSecret_Agrees(t *testing.T) {
	for _, curve := range []string{"P-256", "P-384", "P-521"} {
		for _, kdf := range []crypto.KDFMode{crypto.KDFRaw, crypto.KDFHKDF} {
			t.Run(curve+"/"+string(kdf), func(t *testing.T) {
				sa, sb := derivePair(t, newProvider(t, curve, kdf))
				require.True(t, sa.Equal(sb), "secrets differ")
				require.Equal(t, sa.Hex(), sb.Hex())
				assert.Equal(t, 256, sa.Bits())
				assert.Equal(t, "AES-GCM", sa.Algorithm)
				assert.Equal(t, []string{"encrypt", "decrypt"}, sa.Usages)
			})
		}
	}
}

func TestDeriveSharedSecret_RawMatchesECDHPrefix(t *testing.T) {
	p := newProvider(t, "", "")
	ctx := context.Background()
	a, err := p.GenerateKeyPair(ctx)
	require.NoError(t, err)
	b, err := p.GenerateKeyPair(ctx)
	require.NoError(t, err)

	z, err := a.Private.ECDH(b.Public)
	require.NoError(t, err)
	s, err := p.DeriveSharedSecret(ctx, a.Private, b.Public)
	require.NoError(t, err)
	require.Equal(t, z[:crypto.SecretBytes], s.Key)
}

func TestDeriveSharedSecret_CurveMismatch(t *testing.T) {
	p := newProvider(t, "P-256", "")
	priv, err := p.GenerateKeyPair(context.Background())
	require.NoError(t, err)
	other, err := ecdh.P384().GenerateKey(rand.Reader)
	require.NoError(t, err)

	_, err = p.DeriveSharedSecret(context.Background(), priv.Private, other.PublicKey())
	require.ErrorIs(t, err, domain.ErrCryptoProvider)
}

func TestExportPublicKey_DeterministicAndPublicOnly(t *testing.T) {
	p := newProvider(t, "", "")
	kp, err := p.GenerateKeyPair(context.Background())
	require.NoError(t, err)

	first, err := p.ExportPublicKey(kp.Public)
	require.NoError(t, err)
	second, err := p.ExportPublicKey(kp.Public)
	require.NoError(t, err)
	require.Equal(t, first, second)

	assert.Equal(t, "EC", first.Kty)
	assert.Equal(t, "P-256", first.Crv)
	assert.True(t, first.Ext)
	assert.Empty(t, first.D)

	raw, err := json.Marshal(first)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"d"`)
}

func TestImportPublicKey_RoundTrip(t *testing.T) {
	p := newProvider(t, "", "")
	kp, err := p.GenerateKeyPair(context.Background())
	require.NoError(t, err)
	jwk, err := p.ExportPublicKey(kp.Public)
	require.NoError(t, err)

	pub, err := p.ImportPublicKey(jwk)
	require.NoError(t, err)
	require.True(t, pub.Equal(kp.Public))
}

func TestImportPublicKey_Rejects(t *testing.T) {
	p := newProvider(t, "", "")
	kp, err := p.GenerateKeyPair(context.Background())
	require.NoError(t, err)
	good, err := p.ExportPublicKey(kp.Public)
	require.NoError(t, err)

	other := newProvider(t, "P-384", "")
	kp384, err := other.GenerateKeyPair(context.Background())
	require.NoError(t, err)
	jwk384, err := other.ExportPublicKey(kp384.Public)
	require.NoError(t, err)

	cases := map[string]func(j domain.JWK) domain.JWK{
		"wrong kty":      func(j domain.JWK) domain.JWK { j.Kty = "OKP"; return j },
		"wrong curve":    func(j domain.JWK) domain.JWK { return jwk384 },
		"bad base64":     func(j domain.JWK) domain.JWK { j.X = "***"; return j },
		"short x":        func(j domain.JWK) domain.JWK { j.X = j.X[:10]; return j },
		"off curve":      func(j domain.JWK) domain.JWK { j.Y = j.X; return j },
		"private member": func(j domain.JWK) domain.JWK { j.D = "AAAA"; return j },
		"empty":          func(j domain.JWK) domain.JWK { return domain.JWK{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.ImportPublicKey(mutate(good))
			require.ErrorIs(t, err, domain.ErrKeyImport)
			require.ErrorIs(t, err, domain.ErrCryptoProvider)
		})
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	p := newProvider(t, "", "")
	sa, sb := derivePair(t, p)

	for _, msg := range []string{"", "hello", "This is a secret message.", "ünïcødé ✓"} {
		ct, iv, err := p.Encrypt(sa, []byte(msg))
		require.NoError(t, err)
		require.Len(t, iv, crypto.NonceBytes)
		require.NotEqual(t, []byte(msg), ct)

		pt, err := p.Decrypt(sb, ct, iv)
		require.NoError(t, err)
		require.Equal(t, msg, string(pt))
	}
}

func TestEncrypt_NoncesAreUnique(t *testing.T) {
	p := newProvider(t, "", "")
	sa, _ := derivePair(t, p)

	const n = 2000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		_, iv, err := p.Encrypt(sa, []byte("same plaintext"))
		require.NoError(t, err)
		_, dup := seen[string(iv)]
		require.False(t, dup, "nonce reused at call %d", i)
		seen[string(iv)] = struct{}{}
	}
}

func TestDecrypt_TamperFails(t *testing.T) {
	p := newProvider(t, "", "")
	sa, sb := derivePair(t, p)
	ct, iv, err := p.Encrypt(sa, []byte("hello"))
	require.NoError(t, err)

	flipped := append([]byte(nil), ct...)
	flipped[0] ^= 0x01
	_, err = p.Decrypt(sb, flipped, iv)
	require.ErrorIs(t, err, domain.ErrAuthentication)

	badIV := append([]byte(nil), iv...)
	badIV[len(badIV)-1] ^= 0x80
	_, err = p.Decrypt(sb, ct, badIV)
	require.ErrorIs(t, err, domain.ErrAuthentication)

	_, err = p.Decrypt(sb, ct, iv[:8])
	require.ErrorIs(t, err, domain.ErrAuthentication)

	_, err = p.Decrypt(sb, ct[:4], iv)
	require.ErrorIs(t, err, domain.ErrAuthentication)

	other, _ := derivePair(t, p)
	_, err = p.Decrypt(other, ct, iv)
	require.ErrorIs(t, err, domain.ErrAuthentication)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestEncrypt_RandomnessFailure(t *testing.T) {
	sa, _ := derivePair(t, newProvider(t, "", ""))
	p, err := crypto.NewProvider("", "", crypto.WithRandom(failingReader{}))
	require.NoError(t, err)

	_, _, err = p.Encrypt(sa, []byte("x"))
	require.ErrorIs(t, err, domain.ErrCryptoProvider)
}

func TestGenerateKeyPair_RandomnessFailure(t *testing.T) {
	for _, curve := range []string{"P-256", "P-384", "P-521"} {
		p, err := crypto.NewProvider(curve, crypto.KDFRaw, crypto.WithRandom(failingReader{}))
		require.NoError(t, err)

		_, err = p.GenerateKeyPair(context.Background())
		require.ErrorIs(t, err, domain.ErrCryptoProvider, curve)
	}
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := crypto.NewProvider("secp256k1", "")
	require.ErrorIs(t, err, domain.ErrCryptoProvider)

	_, err = crypto.NewProvider("", "pbkdf2")
	require.Error(t, err)

	p, err := crypto.NewProvider("p-384", "")
	require.NoError(t, err)
	assert.Equal(t, "P-384", p.Curve())
	assert.Equal(t, crypto.KDFRaw, p.KDF())
}

func TestGenerateKeyPair_Cancelled(t *testing.T) {
	p := newProvider(t, "", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.GenerateKeyPair(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	p := newProvider(t, "", "")
	kp, err := p.GenerateKeyPair(context.Background())
	require.NoError(t, err)
	jwk, err := p.ExportPublicKey(kp.Public)
	require.NoError(t, err)

	fp := crypto.Fingerprint(jwk)
	assert.Len(t, fp, 20)
	assert.Equal(t, fp, crypto.Fingerprint(jwk))
	assert.Empty(t, crypto.SecretFingerprint(domain.SharedSecret{}))
}

func TestCompactJWK(t *testing.T) {
	assert.Equal(t, `"short"`, crypto.CompactJWK("short"))
	long := crypto.CompactJWK(map[string]string{"x": "0123456789012345678901234567890123456789"})
	assert.Len(t, long, 33)
	assert.Contains(t, long, "...")
}
