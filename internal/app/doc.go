// Package app wires application dependencies for the binaries.
//
// It loads Config from defaults, an optional YAML file and flag overrides,
// builds the process logger, and constructs the crypto provider, relay,
// journal, services and simulation controller, exposing them via Wire.
package app
