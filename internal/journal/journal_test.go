package journal_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/domain"
	"ecdhsim/internal/journal"
)

func TestJournal_AppendOnly(t *testing.T) {
	j := journal.New(nil)
	j.Append(domain.SeveritySystem, "one")
	j.Append(domain.SeveritySuccess, "two")

	got := j.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Message)
	assert.Equal(t, domain.SeveritySuccess, got[1].Severity)

	// Mutating the returned copy leaves the journal untouched.
	got[0].Message = "changed"
	assert.Equal(t, "one", j.Entries()[0].Message)

	j.Clear()
	assert.Zero(t, j.Len())
	assert.Empty(t, j.Entries())
}

func TestJournal_MirrorsToSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	j := journal.New(log)

	j.Append(domain.SeverityError, "boom")
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "msg=boom")
	assert.Contains(t, out, "type=error")
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	line := journal.Format(domain.LogEntry{Timestamp: ts, Message: "hi", Severity: domain.SeveritySuccess})
	assert.Equal(t, "[13:04:05] + hi", line)

	var buf bytes.Buffer
	require.NoError(t, journal.Write(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "Log entries will appear here"))
}
