// Package message sends one encrypted message between the peers.
//
// The sender encrypts with its own shared secret, the ciphertext and IV
// travel over the relay as a ciphertext envelope, and the receiver decrypts
// with its own secret immediately. The decrypted text is kept on the
// record for display, which proves the round trip but is not how a
// confidential channel would behave.
package message
