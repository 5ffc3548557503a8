// Package journal keeps the append-only simulation log.
//
// Entries carry a timestamp, free text and a severity (info, success, error,
// system). They are never edited or pruned; only a full reset clears the
// journal. Each entry is mirrored to the process logger so that a headless
// run leaves the same narrative in structured logs.
package journal
