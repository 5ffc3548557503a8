package journal

import (
	"fmt"
	"io"
	"strings"

	"ecdhsim/internal/domain"
)

var markers = map[domain.Severity]string{
	domain.SeverityInfo:    "i",
	domain.SeveritySuccess: "+",
	domain.SeverityError:   "!",
	domain.SeveritySystem:  "*",
}

// Format renders an entry as "[15:04:05] * message".
func Format(e domain.LogEntry) string {
	m, ok := markers[e.Severity]
	if !ok {
		m = "i"
	}
	return fmt.Sprintf("[%s] %s %s", e.Timestamp.Format("15:04:05"), m, e.Message)
}

// Write prints every entry on its own line. An empty log prints a
// placeholder line.
func Write(w io.Writer, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		_, err := io.WriteString(w, "Log entries will appear here as the simulation progresses.\n")
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(Format(e))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
