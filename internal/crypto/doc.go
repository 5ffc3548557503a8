// Package crypto is the cryptographic facade of the simulation.
//
// Contents
//
//   - EC key pair generation over a named curve (P-256 by default) for key
//     agreement only (GenerateKeyPair)
//   - JWK export and import of public keys (ExportPublicKey, ImportPublicKey)
//   - ECDH shared-secret derivation into a 256-bit AES-GCM key
//     (DeriveSharedSecret)
//   - AES-256-GCM encryption with a fresh 96-bit random nonce per call
//     (Encrypt, Decrypt)
//   - Short public-key fingerprints and hex helpers for display
//
// # Notes
//
// Every primitive comes from the Go standard crypto packages; this package
// only sequences calls and maps failures onto the domain error taxonomy.
// The default key-derivation mode ("raw") matches WebCrypto's deriveKey:
// the AES key is the leading 256 bits of the ECDH output. The "hkdf-sha256"
// mode runs the ECDH output through HKDF instead.
package crypto
