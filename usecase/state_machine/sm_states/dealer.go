package smstates

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	"go.uber.org/zap"
)

type StateDealerTurn struct {
	StateBase
}

func NewStateDealerTurn(fn FireFn) StateHandler {
	return &StateDealerTurn{
		StateBase: NewStateBase(fn),
	}
}

func (s *StateDealerTurn) Enter(ctx context.Context, _ ...interface{}) error {
	procPkg := packager.GetProcessorPackagerFromContext(ctx)
	session := procPkg.GetSession()
	if err := session.PlayDealer(); err != nil {
		return err
	}
	procPkg.GetLogger().Info("[dealer] played",
		zap.Int("total", session.DealerHand.Total()),
		zap.Int("cards", len(session.DealerHand.Cards)))
	return s.Trigger(ctx, TriggerFinish)
}
