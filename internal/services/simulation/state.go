package simulation

import (
	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
)

// peer is the private state of one side of the simulation.
type peer struct {
	label    domain.PeerLabel
	pseudoID domain.PseudoID
	keys     *domain.KeyPair
	public   *domain.JWK
	received *domain.JWK
	secret   domain.SharedSecret
}

func newPeer(label domain.PeerLabel) *peer { return &peer{label: label} }

// adopt replaces identity and key material and drops everything derived
// from the previous identity.
func (p *peer) adopt(id domain.PeerIdentity) {
	keys := id.Keys
	pub := id.PublicKey
	p.pseudoID = id.PseudoID
	p.keys = &keys
	p.public = &pub
	p.received = nil
	p.secret.Wipe()
}

func (p *peer) party() domain.Party {
	party := domain.Party{Label: p.label}
	if p.keys != nil {
		party.Keys = *p.keys
	}
	if p.received != nil {
		party.Received = *p.received
	}
	return party
}

// clear returns p to its zero state and wipes the secret.
func (p *peer) clear() {
	p.secret.Wipe()
	*p = peer{label: p.label}
}

func (p *peer) view(messages []domain.Message) domain.PeerView {
	v := domain.PeerView{
		Label:             p.label,
		PseudoID:          p.pseudoID,
		HasKeyPair:        p.keys != nil,
		HasSharedSecret:   !p.secret.IsZero(),
		SecretFingerprint: crypto.SecretFingerprint(p.secret),
		Messages:          messages,
	}
	if p.public != nil {
		jwk := *p.public
		v.PublicKey = &jwk
	}
	if p.received != nil {
		jwk := *p.received
		v.ReceivedPublicKey = &jwk
	}
	return v
}
