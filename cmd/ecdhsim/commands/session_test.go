package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecdhsim/internal/domain"
)

func TestParseScripted(t *testing.T) {
	peer, content, err := parseScripted("b:hello: there")
	require.NoError(t, err)
	assert.Equal(t, domain.PeerB, peer)
	assert.Equal(t, "hello: there", content)

	_, _, err = parseScripted("no separator")
	require.Error(t, err)

	_, _, err = parseScripted("C:hi")
	require.ErrorIs(t, err, domain.ErrUnknownPeer)
}
