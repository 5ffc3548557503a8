package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/app"
	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := app.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, app.DefaultConfig(), cfg)

	cfg, err = app.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "P-256", cfg.Curve)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecdhsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
curve: P-384
kdf: hkdf-sha256
log:
  level: debug
  format: json
server:
  listen_addr: ":9090"
  shutdown_timeout: 2s
`), 0o600))

	cfg, err := app.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "P-384", cfg.Curve)
	assert.Equal(t, crypto.KDFHKDF, cfg.KDF)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("curve: X25519\n"), 0o600))
	_, err := app.LoadConfig(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))
	_, err = app.LoadConfig(path)
	require.Error(t, err)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := app.NewLogger(app.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	log.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewWire_RunsSimulation(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Curve = "P-521"
	cfg.KDF = crypto.KDFHKDF
	w, err := app.NewWire(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "P-521", w.Crypto.Curve())

	ctx := context.Background()
	require.NoError(t, w.Simulation.Initialize(ctx))
	require.NoError(t, w.Simulation.ShareKeys(ctx))
	require.NoError(t, w.Simulation.DeriveSecret(ctx))
	msg, err := w.Simulation.SendMessage(ctx, domain.PeerB, "wired")
	require.NoError(t, err)
	assert.Equal(t, "wired", msg.DecryptedContent)
	assert.Equal(t, 13, w.Journal.Len())
}
