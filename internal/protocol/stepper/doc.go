// Package stepper defines the simulation's four-step protocol and the
// guards around it.
//
// # Overview
//
// The simulation moves strictly forward through
//
//	initial -> initialized -> keys_exchanged -> secret_derived
//
// with no skipping. Two extra actions exist: refresh, which re-runs key
// generation, exchange and derivation and is only allowed in
// secret_derived, and reset, which is allowed from every step and returns to
// initial.
//
// # Actions
//
//  1. initialize     initial         -> initialized
//  2. share_keys     initialized     -> keys_exchanged
//  3. derive_secret  keys_exchanged  -> secret_derived
//  4. refresh        secret_derived  -> secret_derived
//  5. send_message   secret_derived  -> secret_derived
//  6. reset          any             -> initial
//
// # Errors
//
// Require returns a *domain.PreconditionError (matching domain.ErrPrecondition)
// when an action is attempted in the wrong step.
package stepper
