package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/nk-nigeria/blackjack-engine/usecase/service"
	"golang.org/x/sync/errgroup"
)

type SimulateCmd struct {
	Players int    `short:"p" help:"Concurrent players" default:"8"`
	Rounds  int    `short:"n" help:"Rounds per player" default:"1000"`
	Balance int64  `help:"Starting balance per player" default:"100000"`
	Risk    string `help:"Bet sizing" enum:"conservative,moderate,aggressive" default:"moderate"`
	Seed    uint64 `help:"Shoe seed (0 for crypto/rand)" default:"0"`
}

// Totals is the sum over every simulated player.
type Totals struct {
	Players  int
	Rounds   int
	Aborted  int
	Wagered  int64
	Returned int64
	Net      int64
	Outcomes map[entity.Outcome]int
}

func (t *Totals) Add(s service.Stats) {
	t.Players++
	t.Rounds += s.Rounds
	t.Aborted += s.Aborted
	t.Wagered += s.Wagered
	t.Returned += s.Returned
	t.Net += s.Net
	for o, n := range s.Outcomes {
		t.Outcomes[o] += n
	}
}

// RTP is the share of wagered chips paid back.
func (t *Totals) RTP() float64 {
	if t.Wagered == 0 {
		return 0
	}
	return float64(t.Returned) / float64(t.Wagered)
}

func (c *SimulateCmd) Run(ctx context.Context, d deps) error {
	if c.Players < 1 || c.Rounds < 1 {
		return fmt.Errorf("players and rounds must be positive")
	}
	store := ledger.NewMemoryStore()
	game := newGame(d, store, c.Seed, nil)

	var (
		mu     sync.Mutex
		totals = Totals{Outcomes: make(map[entity.Outcome]int)}
	)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < c.Players; i++ {
		playerID := fmt.Sprintf("bot-%03d", i)
		store.Open(playerID, c.Balance)
		bot := service.NewAutoPlayer(game, entity.RiskLevel(c.Risk), d.logger)
		g.Go(func() error {
			stats, err := bot.Play(ctx, playerID, c.Rounds)
			if err != nil {
				return fmt.Errorf("%s: %w", playerID, err)
			}
			mu.Lock()
			totals.Add(stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println(renderTotals(totals))
	return nil
}
