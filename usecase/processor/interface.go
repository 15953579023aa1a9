package processor

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/entity"
)

// Game is the capability every card-game variant exposes to transports.
type Game interface {
	PlaceBet(ctx context.Context, playerID string, amount int64) entity.Result
	ApplyAction(ctx context.Context, playerID string, action entity.Action) entity.Result
	GetState(ctx context.Context, playerID string) entity.Result
}
