package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ecdhsim/internal/domain"
)

// ErrNoOffer is returned when a peer has no key offer waiting on the relay.
var ErrNoOffer = errors.New("no key offer received")

// Service publishes and collects key offers.
type Service struct {
	relay domain.Relay
}

// New returns an exchange service using relay as the transport.
func New(relay domain.Relay) *Service { return &Service{relay: relay} }

// ExchangeKeys sends a's public key to b and b's to a, and returns what each
// side received.
func (s *Service) ExchangeKeys(
	ctx context.Context,
	a domain.PeerIdentity,
	b domain.PeerIdentity,
) (domain.KeyOffer, domain.KeyOffer, error) {
	if err := s.offer(ctx, a, b.Label); err != nil {
		return domain.KeyOffer{}, domain.KeyOffer{}, err
	}
	if err := s.offer(ctx, b, a.Label); err != nil {
		return domain.KeyOffer{}, domain.KeyOffer{}, err
	}

	forA, err := s.receive(ctx, a.Label)
	if err != nil {
		return domain.KeyOffer{}, domain.KeyOffer{}, err
	}
	forB, err := s.receive(ctx, b.Label)
	if err != nil {
		return domain.KeyOffer{}, domain.KeyOffer{}, err
	}
	return forA, forB, nil
}

func (s *Service) offer(ctx context.Context, from domain.PeerIdentity, to domain.PeerLabel) error {
	body, err := json.Marshal(domain.KeyOffer{PseudoID: from.PseudoID, PublicKey: from.PublicKey})
	if err != nil {
		return err
	}
	env := domain.Envelope{
		Kind: domain.EnvelopeKeyOffer,
		From: from.Label,
		To:   to,
		Body: body,
	}
	if err := s.relay.Post(ctx, env); err != nil {
		return fmt.Errorf("post key offer %s->%s: %w", from.Label, to, err)
	}
	return nil
}

// receive takes the key offer at the head of me's queue.
func (s *Service) receive(ctx context.Context, me domain.PeerLabel) (domain.KeyOffer, error) {
	envs, err := s.relay.Fetch(ctx, me, 1)
	if err != nil {
		return domain.KeyOffer{}, err
	}
	if len(envs) == 0 {
		return domain.KeyOffer{}, fmt.Errorf("%w for peer %s", ErrNoOffer, me)
	}
	env := envs[0]
	if env.Kind != domain.EnvelopeKeyOffer {
		return domain.KeyOffer{}, fmt.Errorf("%w for peer %s: head envelope is %q", ErrNoOffer, me, env.Kind)
	}
	var offer domain.KeyOffer
	if err := json.Unmarshal(env.Body, &offer); err != nil {
		return domain.KeyOffer{}, fmt.Errorf("%w: decode key offer: %v", domain.ErrKeyImport, err)
	}
	if err := s.relay.Ack(ctx, me, 1); err != nil {
		return domain.KeyOffer{}, err
	}
	return offer, nil
}

// Compile-time assertion that Service implements domain.ExchangeService.
var _ domain.ExchangeService = (*Service)(nil)
