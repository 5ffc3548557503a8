package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ecdhsim/internal/crypto"
)

// Config holds runtime options for building the app.
type Config struct {
	Curve string         `yaml:"curve"` // P-256, P-384 or P-521
	KDF   crypto.KDFMode `yaml:"kdf"`   // raw or hkdf-sha256

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Export ExportConfig `yaml:"export"`
}

// LogConfig selects the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ServerConfig configures cmd/simd.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ExportConfig is where transcripts are written.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Curve: "P-256",
		KDF:   crypto.KDFRaw,
		Log:   LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{
			ListenAddr:      "127.0.0.1:8080",
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// LoadConfig reads YAML at path over the defaults. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the provider or logger cannot use.
func (c Config) Validate() error {
	switch strings.ToUpper(c.Curve) {
	case "", "P-256", "P-384", "P-521":
	default:
		return fmt.Errorf("config: unsupported curve %q", c.Curve)
	}
	switch c.KDF {
	case "", crypto.KDFRaw, crypto.KDFHKDF:
	default:
		return fmt.Errorf("config: unsupported kdf %q", c.KDF)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
