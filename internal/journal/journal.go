package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ecdhsim/internal/domain"
)

// Journal is a concurrency-safe, append-only list of log entries.
type Journal struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
	log     *slog.Logger
	now     func() time.Time
}

// New returns an empty journal mirroring entries to log. A nil logger
// disables mirroring.
func New(log *slog.Logger) *Journal {
	return &Journal{log: log, now: time.Now}
}

// Append records a new entry and returns it.
func (j *Journal) Append(severity domain.Severity, message string) domain.LogEntry {
	entry := domain.LogEntry{Timestamp: j.now(), Message: message, Severity: severity}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	if j.log != nil {
		j.log.Log(context.Background(), level(severity), message, "type", string(severity))
	}
	return entry
}

// Entries returns a copy of all entries in insertion order.
func (j *Journal) Entries() []domain.LogEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]domain.LogEntry(nil), j.entries...)
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Clear drops every entry.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}

func level(s domain.Severity) slog.Level {
	switch s {
	case domain.SeverityError:
		return slog.LevelError
	case domain.SeveritySystem:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Compile-time assertion that Journal implements domain.LogSink.
var _ domain.LogSink = (*Journal)(nil)
