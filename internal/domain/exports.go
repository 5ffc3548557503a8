package domain

import (
	interfaces "ecdhsim/internal/domain/interfaces"
	types "ecdhsim/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	PeerLabel       = types.PeerLabel
	PseudoID        = types.PseudoID
	SessionID       = types.SessionID
	Step            = types.Step
	Severity        = types.Severity
	JWK             = types.JWK
	KeyPair         = types.KeyPair
	SharedSecret    = types.SharedSecret
	MessageID       = types.MessageID
	Message         = types.Message
	EnvelopeKind    = types.EnvelopeKind
	Envelope        = types.Envelope
	KeyOffer        = types.KeyOffer
	SealedPayload   = types.SealedPayload
	PeerIdentity    = types.PeerIdentity
	Party           = types.Party
	DeliveryRequest = types.DeliveryRequest
	LogEntry        = types.LogEntry
	PeerView        = types.PeerView
	Snapshot        = types.Snapshot
	Transcript      = types.Transcript
	PlaygroundState = types.PlaygroundState
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyAgreement    = interfaces.KeyAgreement
	Relay           = interfaces.Relay
	LogSink         = interfaces.LogSink
	IdentityService = interfaces.IdentityService
	ExchangeService = interfaces.ExchangeService
	SessionService  = interfaces.SessionService
	MessageService  = interfaces.MessageService
	SecretSource    = interfaces.SecretSource
	TranscriptStore = interfaces.TranscriptStore
)

const (
	PeerA = types.PeerA
	PeerB = types.PeerB

	StepInitial       = types.StepInitial
	StepInitialized   = types.StepInitialized
	StepKeysExchanged = types.StepKeysExchanged
	StepSecretDerived = types.StepSecretDerived

	SeverityInfo    = types.SeverityInfo
	SeveritySuccess = types.SeveritySuccess
	SeverityError   = types.SeverityError
	SeveritySystem  = types.SeveritySystem

	EnvelopeKeyOffer   = types.EnvelopeKeyOffer
	EnvelopeCiphertext = types.EnvelopeCiphertext
)
