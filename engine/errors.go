package engine

import (
	"errors"
	"fmt"
)

// Reducer failure categories. Every error returned by Apply wraps exactly
// one of these sentinels, so callers can classify failures with errors.Is
// without parsing messages.
var (
	// ErrStateMismatch: the action type is not valid in the current phase.
	ErrStateMismatch = errors.New("action not valid in current phase")
	// ErrTurnOrder: the acting player is not the one whose turn it is.
	ErrTurnOrder = errors.New("acting out of turn")
	// ErrOwnership: the action is reserved for another role (e.g. setting
	// the dog as a non-bidder).
	ErrOwnership = errors.New("action reserved for another role")
	// ErrContent: the payload is malformed or breaks a game rule (card not
	// held, illegal card, wrong dog size, duplicate declaration, ...).
	ErrContent = errors.New("invalid action content")
)

func errStatef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStateMismatch, fmt.Sprintf(format, args...))
}

func errTurnf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrTurnOrder, fmt.Sprintf(format, args...))
}

func errOwnerf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOwnership, fmt.Sprintf(format, args...))
}

func errContentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrContent, fmt.Sprintf(format, args...))
}
