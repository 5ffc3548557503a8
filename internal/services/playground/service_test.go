package playground_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
	"ecdhsim/internal/journal"
	"ecdhsim/internal/relay"
	"ecdhsim/internal/services/exchange"
	"ecdhsim/internal/services/identity"
	"ecdhsim/internal/services/message"
	"ecdhsim/internal/services/playground"
	"ecdhsim/internal/services/session"
	"ecdhsim/internal/services/simulation"
)

func setup(t *testing.T, establish bool) (*simulation.Controller, *playground.Service) {
	t.Helper()
	p, err := crypto.NewProvider("", "")
	require.NoError(t, err)
	lb := relay.NewLoopback()
	ctrl := simulation.New(simulation.Deps{
		Identity: identity.New(p),
		Exchange: exchange.New(lb),
		Session:  session.New(p),
		Message:  message.New(p, lb),
		Relay:    lb,
		Journal:  journal.New(nil),
	})
	if establish {
		ctx := context.Background()
		require.NoError(t, ctrl.Initialize(ctx))
		require.NoError(t, ctrl.ShareKeys(ctx))
		require.NoError(t, ctrl.DeriveSecret(ctx))
	}
	return ctrl, playground.New(p, ctrl)
}

func TestPlayground_RequiresSecret(t *testing.T) {
	ctrl, pg := setup(t, false)

	st, err := pg.Encrypt("")
	require.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Equal(t, "Shared secret is not available. Please complete the key agreement in the simulation.", st.Error)
	assert.Nil(t, st.Ciphertext)
	assert.Empty(t, ctrl.Logs())
}

func TestPlayground_EncryptDecrypt(t *testing.T) {
	_, pg := setup(t, true)
	assert.Equal(t, playground.DefaultPlaintext, pg.State().Plaintext)

	st, err := pg.Encrypt("")
	require.NoError(t, err)
	assert.Len(t, st.IV, crypto.NonceBytes)
	assert.NotEmpty(t, st.Ciphertext)
	assert.Nil(t, st.DecryptedText)

	st, err = pg.Decrypt(nil, nil)
	require.NoError(t, err)
	require.NotNil(t, st.DecryptedText)
	assert.Equal(t, playground.DefaultPlaintext, *st.DecryptedText)
	assert.Empty(t, st.Error)

	st, err = pg.Encrypt("another one")
	require.NoError(t, err)
	assert.Nil(t, st.DecryptedText)
	assert.Equal(t, "another one", st.Plaintext)
}

func TestPlayground_TamperFailsAuthentication(t *testing.T) {
	ctrl, pg := setup(t, true)
	sent, err := ctrl.SendMessage(context.Background(), domain.PeerA, "do not touch")
	require.NoError(t, err)
	logsBefore := ctrl.Logs()

	st, err := pg.Select(sent.ID)
	require.NoError(t, err)
	require.NotNil(t, st.SelectedID)
	assert.Equal(t, sent.ID, *st.SelectedID)
	assert.Equal(t, sent.IV, st.IV)

	_, err = pg.Tamper(0)
	require.NoError(t, err)

	st, err = pg.Decrypt(nil, nil)
	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Nil(t, st.DecryptedText)
	assert.Contains(t, st.Error, "Decryption failed: ")
	assert.Contains(t, st.Error, "This can happen if the key or IV is incorrect.")

	stored, err := ctrl.Message(sent.ID)
	require.NoError(t, err)
	assert.Equal(t, sent.Ciphertext, stored.Ciphertext)
	assert.Equal(t, domain.StepSecretDerived, ctrl.Step())
	assert.Equal(t, logsBefore, ctrl.Logs())
}

func TestPlayground_WrongIV(t *testing.T) {
	_, pg := setup(t, true)
	_, err := pg.Encrypt("hi")
	require.NoError(t, err)

	_, err = pg.Decrypt(nil, make([]byte, crypto.NonceBytes))
	require.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestPlayground_TamperOutOfRange(t *testing.T) {
	_, pg := setup(t, true)
	_, err := pg.Tamper(0)
	require.Error(t, err)
}

func TestPlayground_SelectUnknown(t *testing.T) {
	_, pg := setup(t, true)
	_, err := pg.Select(42)
	require.ErrorIs(t, err, domain.ErrMessageNotFound)
}
