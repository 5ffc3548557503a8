// Package playground implements the ad hoc AES-GCM view.
//
// It encrypts and decrypts arbitrary text against the secret the
// simulation established, loads the IV and ciphertext of a sent message,
// and can flip a ciphertext byte to show that GCM rejects tampering.
// Results and errors live in the playground state only; the simulation
// and its log are never touched.
package playground
