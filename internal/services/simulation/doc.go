// Package simulation is the controller of the two-peer ECDH simulation.
//
// A Controller owns the whole session state: both peer records, the current
// step, the message list, the message counter and the log. Every action
// takes the controller lock, checks the step guard, does its work against
// local copies and only commits on success. A failed action leaves peers,
// messages and step untouched and appends exactly one error entry to the
// log.
//
// The per-step work is delegated to the identity, exchange, session and
// message services; the controller only sequences them and narrates.
package simulation
