package types

// PeerLabel names one of the two simulated parties.
type PeerLabel string

const (
	PeerA PeerLabel = "A"
	PeerB PeerLabel = "B"
)

// String returns the string form of the label.
func (l PeerLabel) String() string { return string(l) }

// Other returns the counterpart label.
func (l PeerLabel) Other() PeerLabel {
	if l == PeerA {
		return PeerB
	}
	return PeerA
}

// Valid reports whether l is PeerA or PeerB.
func (l PeerLabel) Valid() bool { return l == PeerA || l == PeerB }

// PseudoID is a random label standing in for a real identity. It is
// regenerated on every initialize and refresh.
type PseudoID string

// String returns the string form of the pseudo-identifier.
func (id PseudoID) String() string { return string(id) }

// SessionID identifies one run of key generation and agreement.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Step is the simulation stage.
type Step string

const (
	StepInitial       Step = "initial"
	StepInitialized   Step = "initialized"
	StepKeysExchanged Step = "keys_exchanged"
	StepSecretDerived Step = "secret_derived"
)

// String returns the string form of the step.
func (s Step) String() string { return string(s) }

// Severity tags a log entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeveritySystem  Severity = "system"
)

// String returns the string form of the severity.
func (s Severity) String() string { return string(s) }
