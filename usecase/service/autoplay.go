package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/processor"
	"go.uber.org/zap"
)

// maxStepsPerRound bounds one round; a split round needs at most a handful.
const maxStepsPerRound = 32

// ActionError carries a Result the game refused.
type ActionError struct {
	Result entity.Result
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Result.Error, e.Result.Message)
}

// Kind is the refused Result's error kind, or internal for other errors.
func Kind(err error) entity.ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Result.Error
	}
	return entity.KindOf(err)
}

// Stats aggregates what an automated player did.
type Stats struct {
	Rounds   int                    `json:"rounds"`
	Wagered  int64                  `json:"wagered"`
	Returned int64                  `json:"returned"`
	Net      int64                  `json:"net"`
	Outcomes map[entity.Outcome]int `json:"outcomes"`
	Aborted  int                    `json:"aborted"`
	Balance  int64                  `json:"balance"`
}

func (s *Stats) add(res entity.Result) {
	var wagered int64
	for _, h := range res.Hands {
		wagered += h.Bet
	}
	wagered += res.Insurance.Amount
	s.Rounds++
	s.Wagered += wagered
	s.Returned += res.Payout
	s.Net += res.Payout - wagered
	s.Outcomes[res.Result]++
	s.Balance = res.Balance
}

// AutoPlayer plays rounds for one player by basic strategy.
type AutoPlayer struct {
	game   processor.Game
	sizer  entity.BetSizer
	logger *zap.Logger
}

func NewAutoPlayer(game processor.Game, level entity.RiskLevel, logger *zap.Logger) *AutoPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoPlayer{
		game:   game,
		sizer:  entity.NewBetSizer(level),
		logger: logger,
	}
}

// PlayRound bets and follows the advisor until the round finishes. Every
// Result along the way goes to observe when it is not nil.
func (a *AutoPlayer) PlayRound(
	ctx context.Context,
	playerID string,
	bet int64,
	observe func(entity.Action, entity.Result),
) (entity.Result, error) {
	action := entity.NewAction(entity.ActionPlaceBet).WithAmount(bet)
	res := a.game.ApplyAction(ctx, playerID, action)
	for step := 0; ; step++ {
		if observe != nil {
			observe(action, res)
		}
		if !res.OK {
			return res, &ActionError{Result: res}
		}
		if res.State == entity.GameStateFinished {
			return res, nil
		}
		if step >= maxStepsPerRound {
			return res, fmt.Errorf("round %s did not finish after %d steps", res.SessionID, step)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		action = a.next(res)
		res = a.game.ApplyAction(ctx, playerID, action)
	}
}

func (a *AutoPlayer) next(res entity.Result) entity.Action {
	var (
		hand *entity.Hand
		up   entity.Card
	)
	if res.ActiveHandIndex < len(res.Hands) {
		h := res.Hands[res.ActiveHandIndex]
		hand = &h
	}
	if len(res.DealerHand.Cards) > 0 {
		up = res.DealerHand.Cards[0]
	}
	return entity.Advise(hand, up, res.LegalActions)
}

// Play runs up to rounds rounds, sizing each bet from the current balance. It
// stops early when no affordable stake is left.
func (a *AutoPlayer) Play(ctx context.Context, playerID string, rounds int) (Stats, error) {
	stats := Stats{Outcomes: make(map[entity.Outcome]int)}
	stats.Balance = a.game.GetState(ctx, playerID).Balance

	var (
		lastBet     int64
		lastOutcome entity.Outcome
	)
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		bet := a.sizer.Next(stats.Balance, lastBet, lastOutcome)
		if bet == 0 {
			a.logger.Info("autoplay out of funds", zap.String("player_id", playerID), zap.Int64("balance", stats.Balance))
			break
		}
		res, err := a.PlayRound(ctx, playerID, bet, nil)
		if err != nil {
			switch Kind(err) {
			case entity.ErrorKindInsufficientFunds:
				stats.Balance = res.Balance
				return stats, nil
			case entity.ErrorKindEmptyShoe:
				// The round was refunded; carry on with a fresh shoe.
				stats.Aborted++
				stats.Balance = res.Balance
				continue
			}
			return stats, err
		}
		stats.add(res)
		lastBet, lastOutcome = bet, res.Result
	}
	return stats, nil
}
