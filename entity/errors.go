package entity

import "errors"

var (
	ErrInvalidAction     = errors.New("blackjack.action.invalid")
	ErrInvalidHandIndex  = errors.New("blackjack.action.invalid-hand-index")
	ErrEmptyShoe         = errors.New("shoe.deal.error-empty")
	ErrInsufficientFunds = errors.New("wallet.debit.insufficient-funds")
	ErrPlayerNotFound    = errors.New("wallet.player-not-found")
	ErrSessionBusy       = errors.New("session.busy")
	ErrSessionNotFound   = errors.New("session.not-found")
)

// ErrorKind is the wire name of an error surfaced in a Result.
type ErrorKind string

const (
	ErrorKindNone              ErrorKind = ""
	ErrorKindInvalidAction     ErrorKind = "invalid_action"
	ErrorKindInvalidHandIndex  ErrorKind = "invalid_hand_index"
	ErrorKindEmptyShoe         ErrorKind = "empty_shoe"
	ErrorKindInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorKindPlayerNotFound    ErrorKind = "player_not_found"
	ErrorKindSessionBusy       ErrorKind = "session_busy"
	ErrorKindSessionNotFound   ErrorKind = "session_not_found"
	ErrorKindInternal          ErrorKind = "internal"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidAction, ErrorKindInvalidAction},
	{ErrInvalidHandIndex, ErrorKindInvalidHandIndex},
	{ErrEmptyShoe, ErrorKindEmptyShoe},
	{ErrInsufficientFunds, ErrorKindInsufficientFunds},
	{ErrPlayerNotFound, ErrorKindPlayerNotFound},
	{ErrSessionBusy, ErrorKindSessionBusy},
	{ErrSessionNotFound, ErrorKindSessionNotFound},
}

// KindOf classifies err; unknown errors are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ErrorKindInternal
}
