package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ecdhsim/internal/app"
	"ecdhsim/internal/crypto"
	"ecdhsim/internal/server"
)

func main() {
	var (
		configPath string
		listenAddr string
		curve      string
		kdf        string
	)

	root := &cobra.Command{
		Use:          "simd",
		Short:        "Serve the ECDH simulation over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Server.ListenAddr = listenAddr
			}
			if cmd.Flags().Changed("curve") {
				cfg.Curve = curve
			}
			if cmd.Flags().Changed("kdf") {
				cfg.KDF = crypto.KDFMode(kdf)
			}

			log, err := app.NewLogger(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			w, err := app.NewWire(cfg, log)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				ListenAddr:               cfg.Server.ListenAddr,
				AllowedOrigins:           cfg.Server.AllowedOrigins,
				Log:                      log,
				GracefulShutdownDuration: cfg.Server.ShutdownTimeout,
			}, w.Simulation, w.Playground)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:8080", "listen address")
	root.Flags().StringVar(&curve, "curve", "P-256", "named curve: P-256, P-384 or P-521")
	root.Flags().StringVar(&kdf, "kdf", string(crypto.KDFRaw), "secret derivation: raw or hkdf-sha256")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
