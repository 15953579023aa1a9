package ledger

import (
	"context"
	"time"

	"github.com/nk-nigeria/blackjack-engine/entity"
)

// Reason tags every balance movement so the ledger can be reconciled per round.
type Reason string

const (
	ReasonBet        Reason = "blackjack.bet"
	ReasonDoubleDown Reason = "blackjack.double_down"
	ReasonSplit      Reason = "blackjack.split"
	ReasonInsurance  Reason = "blackjack.insurance"
	ReasonPayout     Reason = "blackjack.payout"
	ReasonRefund     Reason = "blackjack.refund"
)

// DebitReason maps a money-taking action to its ledger reason.
func DebitReason(t entity.ActionType) Reason {
	switch t {
	case entity.ActionDoubleDown:
		return ReasonDoubleDown
	case entity.ActionSplit:
		return ReasonSplit
	case entity.ActionInsurance:
		return ReasonInsurance
	}
	return ReasonBet
}

// PlayerStore owns balances. Debit must be atomic and fail with
// entity.ErrInsufficientFunds or entity.ErrPlayerNotFound without side effects.
type PlayerStore interface {
	GetBalance(ctx context.Context, playerID string) (int64, error)
	Debit(ctx context.Context, playerID string, amount int64, reason Reason) (int64, error)
	Credit(ctx context.Context, playerID string, amount int64, reason Reason) (int64, error)
}

type AuditRecord struct {
	PlayerID  string            `json:"player_id"`
	SessionID string            `json:"session_id"`
	RoundID   int64             `json:"round_id"`
	Action    entity.ActionType `json:"action"`
	Debit     int64             `json:"debit"`
	Credit    int64             `json:"credit"`
	State     entity.GameState  `json:"state"`
	Result    entity.Outcome    `json:"result,omitempty"`
	Error     entity.ErrorKind  `json:"error,omitempty"`
	Balance   int64             `json:"balance"`
	At        time.Time         `json:"at"`
}

type AuditLog interface {
	Record(ctx context.Context, rec AuditRecord) error
}

type EventType string

const (
	EventRoundStarted     EventType = "round_started"
	EventInsuranceOffered EventType = "insurance_offered"
	EventHandUpdated      EventType = "hand_updated"
	EventRoundFinished    EventType = "round_finished"
	EventRoundAborted     EventType = "round_aborted"
)

// Notifier pushes state changes to whatever transport the player is on.
type Notifier interface {
	Emit(ctx context.Context, playerID string, eventType EventType, payload entity.Result) error
}
