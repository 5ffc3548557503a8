package session

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ecdhsim/internal/domain"
)

// Service derives and cross-checks shared secrets.
type Service struct {
	keys domain.KeyAgreement
}

// New constructs a session service over the crypto facade.
func New(keys domain.KeyAgreement) *Service { return &Service{keys: keys} }

// Derive imports party.Received and derives party's shared secret.
func (s *Service) Derive(ctx context.Context, party domain.Party) (domain.SharedSecret, error) {
	pub, err := s.keys.ImportPublicKey(party.Received)
	if err != nil {
		return domain.SharedSecret{}, fmt.Errorf("peer %s: %w", party.Label, err)
	}
	secret, err := s.keys.DeriveSharedSecret(ctx, party.Keys.Private, pub)
	if err != nil {
		return domain.SharedSecret{}, fmt.Errorf("peer %s: %w", party.Label, err)
	}
	return secret, nil
}

// Agree derives both secrets concurrently and verifies they are identical.
// On any failure no secret is returned and derived material is wiped.
func (s *Service) Agree(
	ctx context.Context,
	a domain.Party,
	b domain.Party,
) (domain.SharedSecret, domain.SharedSecret, error) {
	var secretA, secretB domain.SharedSecret

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		secretA, err = s.Derive(gctx, a)
		return err
	})
	g.Go(func() (err error) {
		secretB, err = s.Derive(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		secretA.Wipe()
		secretB.Wipe()
		return domain.SharedSecret{}, domain.SharedSecret{}, err
	}

	if secretA.Hex() != secretB.Hex() || !secretA.Equal(secretB) {
		secretA.Wipe()
		secretB.Wipe()
		return domain.SharedSecret{}, domain.SharedSecret{}, domain.ErrSecretMismatch
	}
	return secretA, secretB, nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
