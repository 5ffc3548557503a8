package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecdhsim/internal/domain"
)

var errNoRecipient = errors.New("relay: envelope has no valid recipient")

// Loopback is an in-memory relay between peer A and peer B.
type Loopback struct {
	mu     sync.Mutex
	queues map[domain.PeerLabel][]domain.Envelope
	now    func() time.Time
}

// NewLoopback returns an empty relay.
func NewLoopback() *Loopback {
	return &Loopback{
		queues: make(map[domain.PeerLabel][]domain.Envelope),
		now:    time.Now,
	}
}

// Post enqueues env for env.To. It fills in the ID and timestamp when unset.
func (l *Loopback) Post(ctx context.Context, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !env.To.Valid() {
		return fmt.Errorf("%w: %q", errNoRecipient, env.To)
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	if env.Timestamp.IsZero() {
		env.Timestamp = l.now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.queues[env.To] = append(l.queues[env.To], env)
	return nil
}

// Fetch returns up to limit queued envelopes for peer, oldest first.
func (l *Loopback) Fetch(
	ctx context.Context,
	peer domain.PeerLabel,
	limit int,
) ([]domain.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.queues[peer]
	if limit <= 0 || limit > len(q) {
		limit = len(q)
	}
	out := make([]domain.Envelope, limit)
	copy(out, q[:limit])
	return out, nil
}

// Ack drops the first count envelopes queued for peer.
func (l *Loopback) Ack(ctx context.Context, peer domain.PeerLabel, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.queues[peer]
	if count >= len(q) {
		delete(l.queues, peer)
		return nil
	}
	if count > 0 {
		l.queues[peer] = append([]domain.Envelope(nil), q[count:]...)
	}
	return nil
}

// Pending reports how many envelopes are queued for peer.
func (l *Loopback) Pending(peer domain.PeerLabel) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queues[peer])
}

// Drain discards every queued envelope.
func (l *Loopback) Drain() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.queues)
}

// Compile-time assertion that Loopback implements domain.Relay.
var _ domain.Relay = (*Loopback)(nil)
