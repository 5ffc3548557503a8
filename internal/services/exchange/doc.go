// Package exchange swaps the peers' exported public keys over the relay.
//
// Each peer posts a key_offer envelope carrying its pseudo-id and JWK to
// the counterpart, then fetches and acknowledges the offer addressed to it.
// This is step 2 of the simulation ("mutual authentication").
package exchange
