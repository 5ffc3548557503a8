package types

// PeerIdentity is what one peer produces during initialize or refresh.
type PeerIdentity struct {
	Label     PeerLabel
	PseudoID  PseudoID
	Keys      KeyPair
	PublicKey JWK
}

// Party is one side of key agreement: its own key pair and the public key
// it received from the counterpart.
type Party struct {
	Label    PeerLabel
	Keys     KeyPair
	Received JWK
}
