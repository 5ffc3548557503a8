package commands

import (
	"os"

	"github.com/spf13/cobra"

	"ecdhsim/internal/app"
	"ecdhsim/internal/crypto"
)

var (
	configPath string
	curve      string
	kdf        string
	logLevel   string
	logFormat  string

	cfg    app.Config
	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:          "ecdhsim",
		Short:        "Educational ECDH key agreement and AES-GCM messaging simulation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = app.LoadConfig(configPath); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("curve") {
				cfg.Curve = curve
			}
			if flags.Changed("kdf") {
				cfg.KDF = crypto.KDFMode(kdf)
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("log-format") {
				cfg.Log.Format = logFormat
			}

			log, err := app.NewLogger(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg, log)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&curve, "curve", "P-256", "named curve: P-256, P-384 or P-521")
	root.PersistentFlags().StringVar(&kdf, "kdf", string(crypto.KDFRaw), "secret derivation: raw or hkdf-sha256")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(runCmd(), playgroundCmd(), inspectCmd(), keygenCmd())
	return root.Execute()
}
