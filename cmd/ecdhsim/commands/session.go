package commands

import (
	"context"
	"fmt"
	"strings"

	"ecdhsim/internal/domain"
)

// establish runs initialize, share keys and derive secret in order.
func establish(ctx context.Context) error {
	sim := appCtx.Simulation
	for _, step := range []func(context.Context) error{sim.Initialize, sim.ShareKeys, sim.DeriveSecret} {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// parseScripted splits "A:text" into sender and content.
func parseScripted(s string) (domain.PeerLabel, string, error) {
	label, content, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("message %q: want <peer>:<text>", s)
	}
	peer := domain.PeerLabel(strings.ToUpper(strings.TrimSpace(label)))
	if !peer.Valid() {
		return "", "", fmt.Errorf("message %q: %w", s, domain.ErrUnknownPeer)
	}
	return peer, content, nil
}
