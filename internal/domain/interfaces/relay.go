package interfaces

import (
	"context"

	domaintypes "ecdhsim/internal/domain/types"
)

// Relay moves envelopes between the two peers.
type Relay interface {
	Post(ctx context.Context, envelope domaintypes.Envelope) error
	Fetch(
		ctx context.Context,
		peer domaintypes.PeerLabel,
		limit int,
	) ([]domaintypes.Envelope, error)
	Ack(ctx context.Context, peer domaintypes.PeerLabel, count int) error
	Drain()
}
