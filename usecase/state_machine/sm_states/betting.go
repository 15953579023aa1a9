package smstates

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	"go.uber.org/zap"
)

type StateBetting struct {
	StateBase
}

func NewStateBetting(fn FireFn) StateHandler {
	return &StateBetting{
		StateBase: NewStateBase(fn),
	}
}

// Process deals a new round on a fresh shoe and routes it by what was dealt.
func (s *StateBetting) Process(ctx context.Context, args ...interface{}) error {
	action, ok := ActionFromArgs(args)
	if !ok || action.Type != entity.ActionPlaceBet {
		return entity.ErrInvalidAction
	}
	procPkg := packager.GetProcessorPackagerFromContext(ctx)
	session := procPkg.GetSession()
	shoe, err := procPkg.NewShoe()
	if err != nil {
		return err
	}
	if err := session.Deal(procPkg.NextRoundID(), action.Amount, shoe); err != nil {
		return err
	}
	procPkg.GetLogger().Info("[betting] dealt",
		zap.Int64("round", session.RoundID),
		zap.Int64("bet", action.Amount),
		zap.Int("shoe_remaining", shoe.Remaining()))

	switch {
	case session.NeedsInsuranceOffer():
		return s.Trigger(ctx, TriggerOfferInsurance)
	case session.ShortCircuit():
		return s.Trigger(ctx, TriggerFinish)
	default:
		return s.Trigger(ctx, TriggerPlay)
	}
}
