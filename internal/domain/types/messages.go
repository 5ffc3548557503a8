package types

import (
	"encoding/json"
	"time"
)

// MessageID is the process-wide message counter value.
type MessageID uint64

// Message is a single encrypted exchange. Both peers reference the same
// record.
type Message struct {
	ID               MessageID `json:"id"`
	Sender           PseudoID  `json:"sender"`
	SenderLabel      PeerLabel `json:"sender_label"`
	Content          string    `json:"content"`
	Ciphertext       []byte    `json:"ciphertext"`
	IV               []byte    `json:"iv"`
	DecryptedContent string    `json:"decrypted_content"`
	Timestamp        time.Time `json:"timestamp"`
}

// EnvelopeKind distinguishes relay payloads.
type EnvelopeKind string

const (
	EnvelopeKeyOffer   EnvelopeKind = "key_offer"
	EnvelopeCiphertext EnvelopeKind = "ciphertext"
)

// Envelope is what the loopback relay carries between peers.
type Envelope struct {
	ID        string          `json:"id"`
	Kind      EnvelopeKind    `json:"kind"`
	From      PeerLabel       `json:"from"`
	To        PeerLabel       `json:"to"`
	Body      json.RawMessage `json:"body"`
	Timestamp time.Time       `json:"timestamp"`
}

// KeyOffer is the body of a key_offer envelope.
type KeyOffer struct {
	PseudoID  PseudoID `json:"pseudo_id"`
	PublicKey JWK      `json:"public_key"`
}

// SealedPayload is the body of a ciphertext envelope.
type SealedPayload struct {
	MessageID  MessageID `json:"message_id"`
	Ciphertext []byte    `json:"ciphertext"`
	IV         []byte    `json:"iv"`
}

// DeliveryRequest describes one send from a peer to its counterpart.
type DeliveryRequest struct {
	ID             MessageID
	From           PeerLabel
	Sender         PseudoID
	SenderSecret   SharedSecret
	ReceiverSecret SharedSecret
	Content        string
}
