package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ecdhsim/internal/domain"
)

const suffixLength = 6

// Service generates pseudo-identities and key-agreement key pairs.
type Service struct {
	keys domain.KeyAgreement
}

// New returns an identity service backed by the given crypto facade.
func New(keys domain.KeyAgreement) *Service { return &Service{keys: keys} }

// GenerateIdentity creates a fresh pseudo-id and key pair for label and
// exports the public key.
func (s *Service) GenerateIdentity(
	ctx context.Context,
	label domain.PeerLabel,
) (domain.PeerIdentity, error) {
	if !label.Valid() {
		return domain.PeerIdentity{}, fmt.Errorf("%w: %q", domain.ErrUnknownPeer, label)
	}

	keys, err := s.keys.GenerateKeyPair(ctx)
	if err != nil {
		return domain.PeerIdentity{}, err
	}
	jwk, err := s.keys.ExportPublicKey(keys.Public)
	if err != nil {
		return domain.PeerIdentity{}, err
	}

	return domain.PeerIdentity{
		Label:     label,
		PseudoID:  NewPseudoID(label),
		Keys:      keys,
		PublicKey: jwk,
	}, nil
}

// NewPseudoID returns a new random pseudo-id such as "Peer_A_3f9c1e".
func NewPseudoID(label domain.PeerLabel) domain.PseudoID {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
	return domain.PseudoID(fmt.Sprintf("Peer_%s_%s", label, suffix))
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
