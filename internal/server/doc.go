// Package server exposes the simulation over a small JSON HTTP API.
//
// Routes mirror the controls of the interactive view: the four step
// buttons, reset, per-peer message composition, the log, the transcript
// and the AES playground. Failures map onto status codes by error kind:
// refused actions are 409, authentication failures 422, secret mismatch
// 500 and malformed requests 400.
package server
