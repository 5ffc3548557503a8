package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecdhsim/internal/domain"
)

// ErrNotDelivered is returned when the receiver finds no matching envelope.
var ErrNotDelivered = errors.New("ciphertext envelope not delivered")

// Service encrypts, relays and decrypts messages.
type Service struct {
	keys  domain.KeyAgreement
	relay domain.Relay
	now   func() time.Time
}

// New constructs a message service.
func New(keys domain.KeyAgreement, relay domain.Relay) *Service {
	return &Service{keys: keys, relay: relay, now: time.Now}
}

// Deliver runs one send end to end and returns the resulting record.
//
// Steps:
//  1. Encrypt req.Content with the sender's secret (fresh IV).
//  2. Post a ciphertext envelope to the receiver.
//  3. Fetch and acknowledge it as the receiver.
//  4. Decrypt with the receiver's secret.
func (s *Service) Deliver(ctx context.Context, req domain.DeliveryRequest) (domain.Message, error) {
	if !req.From.Valid() {
		return domain.Message{}, fmt.Errorf("%w: %q", domain.ErrUnknownPeer, req.From)
	}
	to := req.From.Other()

	ciphertext, iv, err := s.keys.Encrypt(req.SenderSecret, []byte(req.Content))
	if err != nil {
		return domain.Message{}, err
	}

	body, err := json.Marshal(domain.SealedPayload{MessageID: req.ID, Ciphertext: ciphertext, IV: iv})
	if err != nil {
		return domain.Message{}, err
	}
	env := domain.Envelope{Kind: domain.EnvelopeCiphertext, From: req.From, To: to, Body: body}
	if err := s.relay.Post(ctx, env); err != nil {
		return domain.Message{}, fmt.Errorf("post message %d: %w", req.ID, err)
	}

	payload, err := s.take(ctx, to, req.ID)
	if err != nil {
		return domain.Message{}, err
	}

	plain, err := s.keys.Decrypt(req.ReceiverSecret, payload.Ciphertext, payload.IV)
	if err != nil {
		return domain.Message{}, fmt.Errorf("peer %s decrypt message %d: %w", to, req.ID, err)
	}

	return domain.Message{
		ID:               req.ID,
		Sender:           req.Sender,
		SenderLabel:      req.From,
		Content:          req.Content,
		Ciphertext:       payload.Ciphertext,
		IV:               payload.IV,
		DecryptedContent: string(plain),
		Timestamp:        s.now(),
	}, nil
}

func (s *Service) take(ctx context.Context, me domain.PeerLabel, id domain.MessageID) (domain.SealedPayload, error) {
	envs, err := s.relay.Fetch(ctx, me, 1)
	if err != nil {
		return domain.SealedPayload{}, err
	}
	if len(envs) == 0 || envs[0].Kind != domain.EnvelopeCiphertext {
		return domain.SealedPayload{}, fmt.Errorf("%w: message %d to %s", ErrNotDelivered, id, me)
	}
	var payload domain.SealedPayload
	if err := json.Unmarshal(envs[0].Body, &payload); err != nil {
		return domain.SealedPayload{}, fmt.Errorf("decode message %d: %w", id, err)
	}
	if payload.MessageID != id {
		return domain.SealedPayload{}, fmt.Errorf("%w: expected message %d, got %d", ErrNotDelivered, id, payload.MessageID)
	}
	if err := s.relay.Ack(ctx, me, 1); err != nil {
		return domain.SealedPayload{}, err
	}
	return payload, nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
