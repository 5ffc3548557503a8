// Package main runs the simulation behind a JSON HTTP API.
//
// HTTP API
//
//	GET  /api/state                  Step, peers and log size
//	GET  /api/logs                   Log entries in order
//	POST /api/initialize             Step 1: pseudo-ids and key pairs
//	POST /api/share-keys             Step 2: public key exchange
//	POST /api/derive-secret          Step 3: ECDH on both sides, compared
//	POST /api/refresh                New identities and secrets, messages kept
//	POST /api/reset                  Back to the initial step, log cleared
//	POST /api/peers/{a|b}/messages   {"content": "..."}
//	GET  /api/messages[/{id}]        Sent messages with IV and ciphertext
//	GET  /api/playground             Playground state
//	POST /api/playground/encrypt     {"plaintext": "..."}
//	POST /api/playground/decrypt     {} or {"ciphertext": hex, "iv": hex}
//	POST /api/playground/select/{id} Load a sent message
//	POST /api/playground/tamper      {"index": n}
//	GET  /livez, /readyz
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - The default listen address is 127.0.0.1:8080.
//   - SIGINT or SIGTERM stops the server gracefully.
package main
