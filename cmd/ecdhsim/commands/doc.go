// Package commands defines the ecdhsim CLI and wires dependencies for subcommands.
//
// Commands
//
//   - run         Run the four-step simulation and send messages
//   - playground  Encrypt, decrypt and tamper against a derived secret
//   - inspect     Print a previously exported transcript
//   - keygen      Generate a key pair and print its public JWK
//
// # Implementation
//
// The root command loads the YAML config, applies flag overrides, builds the
// slog logger and the dependency graph (provider, relay, services,
// simulation controller) before any subcommand runs.
package commands
