package session_test

import (
	"context"
	"crypto/ecdh"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
	"ecdhsim/internal/services/identity"
	"ecdhsim/internal/services/session"
)

// skewed corrupts every second derived secret.
type skewed struct {
	domain.KeyAgreement
	calls atomic.Int32
}

func (s *skewed) DeriveSharedSecret(
	ctx context.Context,
	priv *ecdh.PrivateKey,
	pub *ecdh.PublicKey,
) (domain.SharedSecret, error) {
	secret, err := s.KeyAgreement.DeriveSharedSecret(ctx, priv, pub)
	if err == nil && s.calls.Add(1)%2 == 0 {
		secret.Key[0] ^= 0xff
	}
	return secret, err
}

func parties(t *testing.T, p domain.KeyAgreement) (domain.Party, domain.Party) {
	t.Helper()
	ids := identity.New(p)
	a, err := ids.GenerateIdentity(context.Background(), domain.PeerA)
	require.NoError(t, err)
	b, err := ids.GenerateIdentity(context.Background(), domain.PeerB)
	require.NoError(t, err)
	return domain.Party{Label: domain.PeerA, Keys: a.Keys, Received: b.PublicKey},
		domain.Party{Label: domain.PeerB, Keys: b.Keys, Received: a.PublicKey}
}

func TestAgree(t *testing.T) {
	p, err := crypto.NewProvider("", "")
	require.NoError(t, err)
	a, b := parties(t, p)

	sa, sb, err := session.New(p).Agree(context.Background(), a, b)
	require.NoError(t, err)
	require.True(t, sa.Equal(sb))
	assert.Equal(t, sa.Hex(), sb.Hex())
	assert.Len(t, sa.Key, crypto.SecretBytes)
}

func TestAgree_Mismatch(t *testing.T) {
	p, err := crypto.NewProvider("", "")
	require.NoError(t, err)
	a, b := parties(t, p)

	sa, sb, err := session.New(&skewed{KeyAgreement: p}).Agree(context.Background(), a, b)
	require.ErrorIs(t, err, domain.ErrSecretMismatch)
	assert.True(t, sa.IsZero())
	assert.True(t, sb.IsZero())
}

func TestAgree_BadReceivedKey(t *testing.T) {
	p, err := crypto.NewProvider("", "")
	require.NoError(t, err)
	a, b := parties(t, p)
	b.Received.X = "AAAA"

	_, _, err = session.New(p).Agree(context.Background(), a, b)
	require.ErrorIs(t, err, domain.ErrKeyImport)
}
