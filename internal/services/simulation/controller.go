package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ecdhsim/internal/domain"
	"ecdhsim/internal/protocol/stepper"
)

// Deps are the collaborators a Controller sequences.
type Deps struct {
	Identity domain.IdentityService
	Exchange domain.ExchangeService
	Session  domain.SessionService
	Message  domain.MessageService
	Relay    domain.Relay
	Journal  domain.LogSink
	Logger   *slog.Logger
}

// Controller owns the session state and serialises every action on it.
type Controller struct {
	mu sync.Mutex

	identity domain.IdentityService
	exchange domain.ExchangeService
	session  domain.SessionService
	message  domain.MessageService
	relay    domain.Relay
	journal  domain.LogSink
	log      *slog.Logger
	now      func() time.Time

	id       domain.SessionID
	step     domain.Step
	a, b     *peer
	messages []domain.Message
	counter  domain.MessageID
}

// New constructs a controller in the initial step.
func New(d Deps) *Controller {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		identity: d.Identity,
		exchange: d.Exchange,
		session:  d.Session,
		message:  d.Message,
		relay:    d.Relay,
		journal:  d.Journal,
		log:      log,
		now:      time.Now,
		step:     domain.StepInitial,
		a:        newPeer(domain.PeerA),
		b:        newPeer(domain.PeerB),
	}
}

// Initialize generates a pseudo-id and key pair for both peers.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(stepper.Initialize); err != nil {
		return err
	}
	c.journal.Append(domain.SeveritySystem, "Simulation started. Initializing peers...")

	idA, idB, err := c.generatePair(ctx)
	if err != nil {
		c.journal.Append(domain.SeverityError, fmt.Sprintf("Error during initialization: %v", err))
		return err
	}

	c.a.adopt(idA)
	c.b.adopt(idB)
	c.id = domain.SessionID(uuid.NewString())
	c.journal.Append(domain.SeveritySuccess, "Peer A generated pseudo-ID and ECC key pair.")
	c.journal.Append(domain.SeveritySuccess, "Peer B generated pseudo-ID and ECC key pair.")
	c.advance(stepper.Initialize)
	return nil
}

// ShareKeys gives each peer the other's exported public key.
func (c *Controller) ShareKeys(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(stepper.ShareKeys); err != nil {
		return err
	}
	c.journal.Append(domain.SeveritySystem, "Starting mutual authentication: Peers are exchanging public keys.")

	forA, forB, err := c.exchange.ExchangeKeys(ctx, c.identityOf(c.a), c.identityOf(c.b))
	if err != nil {
		c.relay.Drain()
		c.journal.Append(domain.SeverityError, fmt.Sprintf("Error exchanging public keys: %v", err))
		return err
	}

	c.a.received = &forA.PublicKey
	c.b.received = &forB.PublicKey
	c.journal.Append(domain.SeverityInfo, "Peer A received public key from Peer B.")
	c.journal.Append(domain.SeverityInfo, "Peer B received public key from Peer A.")
	c.advance(stepper.ShareKeys)
	return nil
}

// DeriveSecret runs ECDH on both sides and requires the results to match.
func (c *Controller) DeriveSecret(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(stepper.DeriveSecret); err != nil {
		return err
	}
	c.journal.Append(domain.SeveritySystem, "Starting secure key agreement using ECDH.")

	secretA, secretB, err := c.session.Agree(ctx, c.a.party(), c.b.party())
	if err != nil {
		c.journal.Append(domain.SeverityError, fmt.Sprintf("Error deriving shared secret: %v", err))
		return err
	}

	c.a.secret = secretA
	c.b.secret = secretB
	c.journal.Append(domain.SeveritySuccess, "Peer A derived shared secret.")
	c.journal.Append(domain.SeveritySuccess, "Peer B derived shared secret.")
	c.journal.Append(domain.SeveritySuccess, "Shared secrets match! Secure channel established.")
	c.advance(stepper.DeriveSecret)
	return nil
}

// Refresh replaces both identities and re-runs exchange and agreement.
// Messages already sent are kept; the old secrets are wiped only once the
// new ones have been verified.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(stepper.Refresh); err != nil {
		return err
	}
	c.journal.Append(domain.SeveritySystem, "Starting periodic session key refresh...")

	fail := func(err error) error {
		c.relay.Drain()
		c.journal.Append(domain.SeverityError, fmt.Sprintf("Error during key refresh: %v", err))
		return err
	}

	idA, idB, err := c.generatePair(ctx)
	if err != nil {
		return fail(err)
	}
	c.journal.Append(domain.SeverityInfo, "Peer A generated a new anonymous identity and ECC key pair.")
	c.journal.Append(domain.SeverityInfo, "Peer B generated a new anonymous identity and ECC key pair.")

	c.journal.Append(domain.SeveritySystem, "Exchanging new public keys for mutual authentication.")
	forA, forB, err := c.exchange.ExchangeKeys(ctx, idA, idB)
	if err != nil {
		return fail(err)
	}

	c.journal.Append(domain.SeveritySystem, "Deriving new shared secrets using ECDH.")
	secretA, secretB, err := c.session.Agree(ctx,
		domain.Party{Label: domain.PeerA, Keys: idA.Keys, Received: forA.PublicKey},
		domain.Party{Label: domain.PeerB, Keys: idB.Keys, Received: forB.PublicKey},
	)
	if err != nil {
		return fail(err)
	}

	c.a.adopt(idA)
	c.b.adopt(idB)
	c.a.received = &forA.PublicKey
	c.b.received = &forB.PublicKey
	c.a.secret = secretA
	c.b.secret = secretB
	c.journal.Append(domain.SeveritySuccess, "New shared secrets match! Session key successfully refreshed.")
	c.advance(stepper.Refresh)
	return nil
}

// Reset discards all peer, message and log state. It is always allowed and
// idempotent.
func (c *Controller) Reset(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.a.clear()
	c.b.clear()
	c.messages = nil
	c.counter = 0
	c.id = ""
	c.relay.Drain()
	c.journal.Clear()
	c.advance(stepper.Reset)
	return nil
}

// SendMessage encrypts content as sender, delivers it and decrypts it as the
// receiver. The same record is attached to both peers' transcripts.
func (c *Controller) SendMessage(ctx context.Context, sender domain.PeerLabel, content string) (domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(stepper.SendMessage); err != nil {
		return domain.Message{}, err
	}
	if !sender.Valid() {
		return domain.Message{}, c.reject(fmt.Errorf("%w: %q", domain.ErrUnknownPeer, sender))
	}
	if content == "" {
		return domain.Message{}, c.reject(domain.ErrEmptyMessage)
	}

	from, to := c.peer(sender), c.peer(sender.Other())
	id := c.counter + 1
	msg, err := c.message.Deliver(ctx, domain.DeliveryRequest{
		ID:             id,
		From:           sender,
		Sender:         from.pseudoID,
		SenderSecret:   from.secret,
		ReceiverSecret: to.secret,
		Content:        content,
	})
	if err != nil {
		c.relay.Drain()
		c.journal.Append(domain.SeverityError, fmt.Sprintf("Error sending message: %v", err))
		return domain.Message{}, err
	}

	c.counter = id
	c.messages = append(c.messages, msg)
	c.journal.Append(domain.SeverityInfo, fmt.Sprintf("Peer %s is encrypting message: %q", sender, content))
	c.journal.Append(domain.SeveritySystem, fmt.Sprintf("Message encrypted. Transmitting to Peer %s.", to.label))
	c.journal.Append(domain.SeveritySuccess, fmt.Sprintf("Peer %s received and decrypted message.", to.label))
	return msg, nil
}

// Step returns the current step.
func (c *Controller) Step() domain.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Snapshot returns the public view of the session.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Snapshot{
		SessionID:      c.id,
		Step:           c.step,
		AllowedActions: allowed(c.step),
		PeerA:          c.a.view(c.messagesLocked()),
		PeerB:          c.b.view(c.messagesLocked()),
		LogCount:       len(c.journal.Entries()),
	}
}

// Transcript returns the exportable record of the session. Private keys and
// secrets are not part of it.
func (c *Controller) Transcript() domain.Transcript {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Transcript{
		SessionID:  c.id,
		Step:       c.step,
		ExportedAt: c.now().UTC(),
		Peers:      []domain.PeerView{c.a.view(nil), c.b.view(nil)},
		Messages:   c.messagesLocked(),
		Logs:       c.journal.Entries(),
	}
}

// Logs returns the log in insertion order.
func (c *Controller) Logs() []domain.LogEntry { return c.journal.Entries() }

// Messages returns every sent message in send order.
func (c *Controller) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messagesLocked()
}

// Message returns the message with the given id.
func (c *Controller) Message(id domain.MessageID) (domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m.ID == id {
			return cloneMessage(m), nil
		}
	}
	return domain.Message{}, fmt.Errorf("%w: %d", domain.ErrMessageNotFound, id)
}

// ChannelSecret returns a copy of the established secret (peer A's, equal to
// peer B's by construction).
func (c *Controller) ChannelSecret() (domain.SharedSecret, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != domain.StepSecretDerived || c.a.secret.IsZero() {
		return domain.SharedSecret{}, &domain.PreconditionError{
			Action: "use channel secret",
			Step:   c.step,
			Reason: "shared secret not established",
		}
	}
	return c.a.secret.Clone(), nil
}

// allowed lists the actions step permits, as they appear in snapshots.
func allowed(step domain.Step) []string {
	actions := stepper.Allowed(step)
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}

func (c *Controller) guard(action stepper.Action) error {
	if err := stepper.Require(c.step, action); err != nil {
		return c.reject(err)
	}
	return nil
}

// reject records err as the single error entry for a refused action.
func (c *Controller) reject(err error) error {
	c.journal.Append(domain.SeverityError, sentence(err.Error()))
	return err
}

func (c *Controller) advance(action stepper.Action) {
	next := stepper.Next(c.step, action)
	if next != c.step {
		c.log.Debug("simulation step changed", "from", c.step, "to", next, "action", action)
	}
	c.step = next
}

func (c *Controller) generatePair(ctx context.Context) (domain.PeerIdentity, domain.PeerIdentity, error) {
	var idA, idB domain.PeerIdentity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		idA, err = c.identity.GenerateIdentity(gctx, domain.PeerA)
		return err
	})
	g.Go(func() (err error) {
		idB, err = c.identity.GenerateIdentity(gctx, domain.PeerB)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.PeerIdentity{}, domain.PeerIdentity{}, err
	}
	return idA, idB, nil
}

func (c *Controller) identityOf(p *peer) domain.PeerIdentity {
	id := domain.PeerIdentity{Label: p.label, PseudoID: p.pseudoID}
	if p.keys != nil {
		id.Keys = *p.keys
	}
	if p.public != nil {
		id.PublicKey = *p.public
	}
	return id
}

func (c *Controller) peer(label domain.PeerLabel) *peer {
	if label == domain.PeerB {
		return c.b
	}
	return c.a
}

func (c *Controller) messagesLocked() []domain.Message {
	out := make([]domain.Message, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, cloneMessage(m))
	}
	return out
}

func cloneMessage(m domain.Message) domain.Message {
	m.Ciphertext = append([]byte(nil), m.Ciphertext...)
	m.IV = append([]byte(nil), m.IV...)
	return m
}

// sentence capitalises the first letter of an error message for the log.
func sentence(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Compile-time assertion that Controller can back the playground.
var _ domain.SecretSource = (*Controller)(nil)
