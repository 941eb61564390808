package db_models

import (
	"errors"
	"fmt"
)

// validTransitions is the exhaustive transition table. A (from, to) pair that
// is not listed here is illegal; terminal states have no row at all.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusInitiated: {
		PaymentStatusAuthorized,
		PaymentStatusFailed,
		PaymentStatusRefused,
		PaymentStatusCanceled,
		PaymentStatusPending,
		PaymentStatusError,
	},
	PaymentStatusAuthorized: {
		PaymentStatusCaptured,
		PaymentStatusFailed,
		PaymentStatusCanceled,
	},
	PaymentStatusPending: {
		PaymentStatusAuthorized,
		PaymentStatusCaptured,
		PaymentStatusFailed,
		PaymentStatusRefused,
		PaymentStatusCanceled,
		PaymentStatusError,
	},
}

var terminalStates = map[PaymentStatus]bool{
	PaymentStatusCaptured: true,
	PaymentStatusFailed:   true,
	PaymentStatusCanceled: true,
	PaymentStatusRefused:  true,
	PaymentStatusError:    true,
}

type InvalidTransitionError struct {
	From PaymentStatus
	To   PaymentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid payment state transition: %s -> %s", e.From, e.To)
}

func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

func IsTerminal(status PaymentStatus) bool {
	return terminalStates[status]
}

func CanTransition(from, to PaymentStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// AssertTransition returns an *InvalidTransitionError for any pair outside the
// table. The webhook pipeline downgrades exact-duplicate re-deliveries to a
// skip; every other caller must treat this as a rejected request.
func AssertTransition(from, to PaymentStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// AllowedTransitions returns the targets reachable from the given status,
// empty for terminal states.
func AllowedTransitions(from PaymentStatus) []PaymentStatus {
	allowed, ok := validTransitions[from]
	if !ok {
		return []PaymentStatus{}
	}
	out := make([]PaymentStatus, len(allowed))
	copy(out, allowed)
	return out
}
