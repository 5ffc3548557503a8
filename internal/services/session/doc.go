// Package session runs key agreement for both peers.
//
// Each peer imports the public key it received and derives a shared secret
// with its own private key. The two derivations run concurrently; the
// results are then compared byte for byte and a mismatch is treated as
// fatal (domain.ErrSecretMismatch) rather than assumed away.
package session
