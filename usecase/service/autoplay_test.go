package service

import (
	"context"
	"testing"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/engine"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/nk-nigeria/blackjack-engine/usecase/processor"
	"github.com/nk-nigeria/blackjack-engine/usecase/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newGame(t *testing.T, balance int64, shoes func() (*entity.Shoe, error)) (*processor.Processor, *ledger.MemoryStore) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := ledger.NewMemoryStore()
	store.Open("bot", balance)
	e := engine.NewGameEngine(engine.Config{MinBet: 100, Shoes: shoes, Logger: logger})
	return processor.NewProcessor(e, registry.New(), store, processor.WithLogger(logger)), store
}

func orderedShoes(cards ...string) func() (*entity.Shoe, error) {
	return func() (*entity.Shoe, error) {
		return entity.NewOrderedShoe(entity.MustParseCards(cards...), nil), nil
	}
}

func TestPlayStandsOnEighteen(t *testing.T) {
	game, store := newGame(t, 10000, orderedShoes("10s", "7h", "8d", "Kc"))
	bot := NewAutoPlayer(game, entity.RiskModerate, nil)

	stats, err := bot.Play(context.Background(), "bot", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rounds)
	assert.Equal(t, int64(1500), stats.Wagered)
	assert.Equal(t, int64(3000), stats.Returned)
	assert.Equal(t, int64(1500), stats.Net)
	assert.Equal(t, 3, stats.Outcomes[entity.OutcomeWin])

	balance, err := store.GetBalance(context.Background(), "bot")
	require.NoError(t, err)
	assert.Equal(t, int64(11500), balance)
	assert.Equal(t, balance, stats.Balance)
}

func TestPlayRoundObservesEveryStep(t *testing.T) {
	game, _ := newGame(t, 10000, orderedShoes("5s", "7h", "6d", "Kc", "10h"))
	bot := NewAutoPlayer(game, entity.RiskModerate, nil)

	var seen []entity.ActionType
	res, err := bot.PlayRound(context.Background(), "bot", 1000, func(a entity.Action, _ entity.Result) {
		seen = append(seen, a.Type)
	})
	require.NoError(t, err)
	// Hard 11 doubles; the dealer's 17 stands against 21.
	assert.Equal(t, []entity.ActionType{entity.ActionPlaceBet, entity.ActionDoubleDown}, seen)
	assert.Equal(t, entity.OutcomeWin, res.Result)
	assert.Equal(t, int64(4000), res.Payout)
}

func TestPlayStopsWhenBroke(t *testing.T) {
	game, _ := newGame(t, 50, orderedShoes("10s", "7h", "8d", "Kc"))
	bot := NewAutoPlayer(game, entity.RiskModerate, nil)

	stats, err := bot.Play(context.Background(), "bot", 10)
	require.NoError(t, err)
	assert.Zero(t, stats.Rounds)
	assert.Equal(t, int64(50), stats.Balance)
}

func TestPlayKeepsBooksBalanced(t *testing.T) {
	game, store := newGame(t, 100000, nil)
	bot := NewAutoPlayer(game, entity.RiskConservative, nil)

	stats, err := bot.Play(context.Background(), "bot", 200)
	require.NoError(t, err)
	balance, err := store.GetBalance(context.Background(), "bot")
	require.NoError(t, err)
	assert.Equal(t, stats.Returned-stats.Wagered, stats.Net)
	assert.Equal(t, int64(100000)+stats.Net, balance)
}

func TestKind(t *testing.T) {
	err := &ActionError{Result: entity.Result{Error: entity.ErrorKindSessionBusy, Message: "busy"}}
	assert.Equal(t, entity.ErrorKindSessionBusy, Kind(err))
	assert.Equal(t, entity.ErrorKindEmptyShoe, Kind(entity.ErrEmptyShoe))
	assert.EqualError(t, err, "session_busy: busy")
}
