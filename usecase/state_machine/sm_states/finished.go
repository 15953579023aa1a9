package smstates

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	"go.uber.org/zap"
)

type StateFinished struct {
	StateBase
}

func NewStateFinished(fn FireFn) StateHandler {
	return &StateFinished{
		StateBase: NewStateBase(fn),
	}
}

// Enter settles the round unless it was aborted, in which case every stake is
// refunded by the caller instead.
func (s *StateFinished) Enter(ctx context.Context, _ ...interface{}) error {
	procPkg := packager.GetProcessorPackagerFromContext(ctx)
	session := procPkg.GetSession()
	if session.Aborted {
		procPkg.GetLogger().Warn("[finished] round aborted", zap.Int64("round", session.RoundID))
		return nil
	}
	rs := session.Settle()
	procPkg.GetLogger().Info("[finished] settled",
		zap.Int64("round", session.RoundID),
		zap.String("result", string(rs.Outcome())),
		zap.Int64("payout", rs.Payout),
		zap.Int64("profit", rs.Profit))
	return nil
}
