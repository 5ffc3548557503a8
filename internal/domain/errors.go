package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCryptoProvider covers key generation, export, import and derivation
	// failures in the platform crypto provider.
	ErrCryptoProvider = errors.New("crypto provider error")

	// ErrKeyImport is returned for malformed or incompatible public keys. It
	// is a kind of ErrCryptoProvider.
	ErrKeyImport = fmt.Errorf("%w: key import failed", ErrCryptoProvider)

	// ErrSecretMismatch means the two independently derived secrets differ.
	// It is fatal to the current session.
	ErrSecretMismatch = errors.New("derived secrets do not match")

	// ErrAuthentication is returned when AES-GCM rejects a ciphertext or nonce.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrPrecondition is returned when an action is not allowed in the
	// current step.
	ErrPrecondition = errors.New("action not allowed in current step")

	ErrUnknownPeer     = errors.New("unknown peer")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrMessageNotFound = errors.New("message not found")
)

// PreconditionError names the rejected action and the step it was attempted in.
type PreconditionError struct {
	Action string
	Step   Step
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("cannot %s in step %q", e.Action, e.Step)
}

// Is makes errors.Is(err, ErrPrecondition) hold for every PreconditionError.
func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }
