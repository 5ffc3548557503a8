// Package relay carries envelopes between the two simulated peers.
//
// Loopback is the in-process stand-in for a network: each peer owns a FIFO
// queue, Post appends to the recipient's queue, Fetch returns queued
// envelopes without removing them, and Ack drops the first N once the
// recipient has handled them.
//
// Behaviour
//
//   - All state is held in memory and lost on Drain or process exit.
//   - There is no delay, loss or reordering; every call completes
//     synchronously.
//   - Fetch with limit <= 0 or larger than the queue returns the whole queue.
//   - Ack with a count larger than the queue clears it.
//
// The relay only ever sees public keys and ciphertext.
package relay
