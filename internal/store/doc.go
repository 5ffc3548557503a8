// Package store writes and reads exported session transcripts.
//
// A transcript is plain indented JSON, or, when a passphrase is given, a
// sealed envelope: the JSON is encrypted with ChaCha20-Poly1305 under a key
// stretched from the passphrase with scrypt. Files are replaced atomically
// through a temp file and rename. Private keys and shared secrets are never
// part of a transcript, sealed or not.
package store
