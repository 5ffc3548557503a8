package stepper

import (
	"ecdhsim/internal/domain"
)

// Action is a user-triggered operation on the simulation.
type Action string

const (
	Initialize   Action = "initialize"
	ShareKeys    Action = "share_keys"
	DeriveSecret Action = "derive_secret"
	Refresh      Action = "refresh"
	SendMessage  Action = "send_message"
	Reset        Action = "reset"
)

type transition struct {
	from domain.Step
	to   domain.Step
	// reason is the log text used when the guard fails.
	reason string
}

var table = map[Action]transition{
	Initialize: {
		from:   domain.StepInitial,
		to:     domain.StepInitialized,
		reason: "simulation already initialized; reset first",
	},
	ShareKeys: {
		from:   domain.StepInitialized,
		to:     domain.StepKeysExchanged,
		reason: "peers have not generated their key pairs",
	},
	DeriveSecret: {
		from:   domain.StepKeysExchanged,
		to:     domain.StepSecretDerived,
		reason: "public keys have not been exchanged",
	},
	Refresh: {
		from:   domain.StepSecretDerived,
		to:     domain.StepSecretDerived,
		reason: "no session to refresh",
	},
	SendMessage: {
		from:   domain.StepSecretDerived,
		to:     domain.StepSecretDerived,
		reason: "Shared secret not established.",
	},
}

// Require reports whether action may run in step.
func Require(step domain.Step, action Action) error {
	if action == Reset {
		return nil
	}
	t, ok := table[action]
	if !ok {
		return &domain.PreconditionError{Action: string(action), Step: step, Reason: "unknown action"}
	}
	if t.from != step {
		return &domain.PreconditionError{Action: label(action), Step: step, Reason: t.reason}
	}
	return nil
}

// Next returns the step reached after action succeeds in step. Callers must
// check Require first.
func Next(step domain.Step, action Action) domain.Step {
	if action == Reset {
		return domain.StepInitial
	}
	if t, ok := table[action]; ok && t.from == step {
		return t.to
	}
	return step
}

// Allowed lists the actions permitted in step, reset included.
func Allowed(step domain.Step) []Action {
	out := make([]Action, 0, 3)
	for _, a := range []Action{Initialize, ShareKeys, DeriveSecret, Refresh, SendMessage} {
		if table[a].from == step {
			out = append(out, a)
		}
	}
	return append(out, Reset)
}

func label(a Action) string {
	switch a {
	case ShareKeys:
		return "share keys"
	case DeriveSecret:
		return "derive secret"
	case SendMessage:
		return "send message"
	default:
		return string(a)
	}
}
