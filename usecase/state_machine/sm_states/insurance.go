package smstates

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	"go.uber.org/zap"
)

type StateInsurance struct {
	StateBase
}

func NewStateInsurance(fn FireFn) StateHandler {
	return &StateInsurance{
		StateBase: NewStateBase(fn),
	}
}

func (s *StateInsurance) Enter(ctx context.Context, _ ...interface{}) error {
	procPkg := packager.GetProcessorPackagerFromContext(ctx)
	procPkg.GetSession().Insurance.Offered = true
	return nil
}

// Process records the insurance choice, then peeks the hole card.
func (s *StateInsurance) Process(ctx context.Context, args ...interface{}) error {
	action, ok := ActionFromArgs(args)
	if !ok {
		return entity.ErrInvalidAction
	}
	procPkg := packager.GetProcessorPackagerFromContext(ctx)
	session := procPkg.GetSession()
	if err := session.DecideInsurance(action.BuyInsurance); err != nil {
		return err
	}
	session.Insurance.Resolved = true
	finished := session.ShortCircuit()
	procPkg.GetLogger().Info("[insurance] decided",
		zap.Bool("bought", action.BuyInsurance),
		zap.Int64("amount", session.Insurance.Amount),
		zap.Bool("round_over", finished))
	if finished {
		return s.Trigger(ctx, TriggerFinish)
	}
	return s.Trigger(ctx, TriggerPlay)
}

// CanInsure guards the insurance trigger.
func CanInsure(ctx context.Context, _ ...interface{}) bool {
	return packager.GetProcessorPackagerFromContext(ctx).GetSession().CanInsure()
}
