// Package identity creates a peer's pseudo-identity and key pair.
//
// A pseudo-identity is "Peer_<label>_" followed by six random lowercase
// characters. It is regenerated together with the key pair on every
// initialize and refresh.
package identity
