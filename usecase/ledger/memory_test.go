package ledger

import (
	"context"
	"testing"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Debit(ctx, "ghost", 10, ReasonBet)
	assert.ErrorIs(t, err, entity.ErrPlayerNotFound)

	m.Open("p1", 1000)
	b, err := m.Debit(ctx, "p1", 400, ReasonBet)
	require.NoError(t, err)
	assert.Equal(t, int64(600), b)

	_, err = m.Debit(ctx, "p1", 601, ReasonDoubleDown)
	assert.ErrorIs(t, err, entity.ErrInsufficientFunds)
	b, _ = m.GetBalance(ctx, "p1")
	assert.Equal(t, int64(600), b, "failed debit leaves balance")

	b, err = m.Credit(ctx, "p1", 800, ReasonPayout)
	require.NoError(t, err)
	assert.Equal(t, int64(1400), b)

	_, err = m.Credit(ctx, "p1", -1, ReasonPayout)
	assert.Error(t, err)
}

func TestDebitReason(t *testing.T) {
	assert.Equal(t, ReasonBet, DebitReason(entity.ActionPlaceBet))
	assert.Equal(t, ReasonDoubleDown, DebitReason(entity.ActionDoubleDown))
	assert.Equal(t, ReasonSplit, DebitReason(entity.ActionSplit))
	assert.Equal(t, ReasonInsurance, DebitReason(entity.ActionInsurance))
}

func TestMemoryNotifierKeepsOrder(t *testing.T) {
	n := &MemoryNotifier{}
	ctx := context.Background()
	require.NoError(t, n.Emit(ctx, "p1", EventRoundStarted, entity.Result{}))
	require.NoError(t, n.Emit(ctx, "p1", EventRoundFinished, entity.Result{}))
	assert.Equal(t, []EventType{EventRoundStarted, EventRoundFinished}, n.Types())
}
