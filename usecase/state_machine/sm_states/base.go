package smstates

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/qmuntal/stateless"
)

// Player actions fire as triggers named after their entity.ActionType.
var (
	TriggerPlaceBet   stateless.Trigger = entity.ActionPlaceBet
	TriggerInsurance  stateless.Trigger = entity.ActionInsurance
	TriggerHit        stateless.Trigger = entity.ActionHit
	TriggerStand      stateless.Trigger = entity.ActionStand
	TriggerDoubleDown stateless.Trigger = entity.ActionDoubleDown
	TriggerSplit      stateless.Trigger = entity.ActionSplit
	TriggerSurrender  stateless.Trigger = entity.ActionSurrender
)

// Flow triggers are fired by the handlers themselves.
const (
	TriggerOfferInsurance = "TriggerOfferInsurance"
	TriggerPlay           = "TriggerPlay"
	TriggerDealerTurn     = "TriggerDealerTurn"
	TriggerFinish         = "TriggerFinish"
	TriggerAbort          = "TriggerAbort"
)

type StateHandler interface {
	Trigger(ctx context.Context, trigger stateless.Trigger, args ...interface{}) error
	Process(ctx context.Context, args ...interface{}) error

	Enter(ctx context.Context, _ ...interface{}) error
	Exit(_ context.Context, _ ...interface{}) error
}

type FireFn func(ctx context.Context, trigger stateless.Trigger, args ...interface{}) error

type StateBase struct {
	fireFn FireFn
}

func NewStateBase(fn FireFn) StateBase {
	return StateBase{
		fireFn: fn,
	}
}

func (s *StateBase) Trigger(ctx context.Context, trigger stateless.Trigger, args ...interface{}) error {
	return s.fireFn(ctx, trigger, args...)
}

func (s *StateBase) Enter(_ context.Context, _ ...interface{}) error {
	return nil
}

func (s *StateBase) Exit(_ context.Context, _ ...interface{}) error {
	return nil
}

func (s *StateBase) Process(_ context.Context, _ ...interface{}) error {
	return entity.ErrInvalidAction
}

// ActionFromArgs reads the entity.Action passed along with a player trigger.
func ActionFromArgs(args []interface{}) (entity.Action, bool) {
	if len(args) == 0 {
		return entity.Action{}, false
	}
	a, ok := args[0].(entity.Action)
	return a, ok
}
