package interfaces

import (
	"context"

	domaintypes "ecdhsim/internal/domain/types"
)

// LogSink records the human-readable simulation log.
type LogSink interface {
	Append(severity domaintypes.Severity, message string) domaintypes.LogEntry
	Entries() []domaintypes.LogEntry
	Clear()
}

// IdentityService produces a fresh pseudo-identity and key pair for a peer.
type IdentityService interface {
	GenerateIdentity(
		ctx context.Context,
		label domaintypes.PeerLabel,
	) (domaintypes.PeerIdentity, error)
}

// ExchangeService swaps exported public keys between the peers.
type ExchangeService interface {
	ExchangeKeys(
		ctx context.Context,
		a domaintypes.PeerIdentity,
		b domaintypes.PeerIdentity,
	) (receivedByA domaintypes.KeyOffer, receivedByB domaintypes.KeyOffer, err error)
}

// SessionService derives and cross-checks the shared secrets.
type SessionService interface {
	Agree(
		ctx context.Context,
		a domaintypes.Party,
		b domaintypes.Party,
	) (secretA domaintypes.SharedSecret, secretB domaintypes.SharedSecret, err error)
}

// MessageService encrypts, delivers and decrypts one message.
type MessageService interface {
	Deliver(ctx context.Context, req domaintypes.DeliveryRequest) (domaintypes.Message, error)
}

// SecretSource exposes the established channel to the playground.
type SecretSource interface {
	ChannelSecret() (domaintypes.SharedSecret, error)
	Message(id domaintypes.MessageID) (domaintypes.Message, error)
}
