package smstates

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	"go.uber.org/zap"
)

type StatePlaying struct {
	StateBase
}

func NewStatePlaying(fn FireFn) *StatePlaying {
	return &StatePlaying{
		StateBase: NewStateBase(fn),
	}
}

// Process applies one hand action, then either stays on a hand, ends the round
// after a surrender, or hands over to the dealer.
func (s *StatePlaying) Process(ctx context.Context, args ...interface{}) error {
	action, ok := ActionFromArgs(args)
	if !ok {
		return entity.ErrInvalidAction
	}
	procPkg := packager.GetProcessorPackagerFromContext(ctx)
	session := procPkg.GetSession()
	var err error
	switch action.Type {
	case entity.ActionHit:
		err = session.Hit()
	case entity.ActionStand:
		err = session.Stand()
	case entity.ActionDoubleDown:
		err = session.DoubleDown()
	case entity.ActionSplit:
		err = session.Split()
	case entity.ActionSurrender:
		err = session.Surrender()
	default:
		err = entity.ErrInvalidAction
	}
	if err != nil {
		return err
	}
	procPkg.GetLogger().Debug("[playing] applied",
		zap.String("action", string(action.Type)),
		zap.Int("hand", session.ActiveHandIndex),
		zap.Int("total", session.ActiveHand().Total()))

	if session.AnySurrendered() {
		return s.Trigger(ctx, TriggerFinish)
	}
	if session.Advance() {
		return nil
	}
	return s.Trigger(ctx, TriggerDealerTurn)
}

func (s *StatePlaying) CanHit(ctx context.Context, _ ...interface{}) bool {
	return packager.GetProcessorPackagerFromContext(ctx).GetSession().CanHit()
}

func (s *StatePlaying) CanStand(ctx context.Context, _ ...interface{}) bool {
	return packager.GetProcessorPackagerFromContext(ctx).GetSession().CanStand()
}

func (s *StatePlaying) CanDoubleDown(ctx context.Context, _ ...interface{}) bool {
	return packager.GetProcessorPackagerFromContext(ctx).GetSession().CanDoubleDown()
}

func (s *StatePlaying) CanSplit(ctx context.Context, _ ...interface{}) bool {
	return packager.GetProcessorPackagerFromContext(ctx).GetSession().CanSplit()
}

func (s *StatePlaying) CanSurrender(ctx context.Context, _ ...interface{}) bool {
	return packager.GetProcessorPackagerFromContext(ctx).GetSession().CanSurrender()
}
