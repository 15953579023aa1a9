package main

import (
	"context"
	"fmt"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/nk-nigeria/blackjack-engine/usecase/service"
)

const simPlayer = "sim"

type PlayCmd struct {
	Bet     int64  `help:"Stake for the round" default:"1000"`
	Balance int64  `help:"Starting balance" default:"10000"`
	Seed    uint64 `help:"Shoe seed (0 for crypto/rand)" default:"0"`
	Cards   string `help:"Deal exactly these cards, e.g. \"8s,7h,8d,9c,3h\""`
}

func (p *PlayCmd) Run(ctx context.Context, d deps) error {
	cards, err := parseCards(p.Cards)
	if err != nil {
		return err
	}
	store := ledger.NewMemoryStore()
	store.Open(simPlayer, p.Balance)
	bot := service.NewAutoPlayer(newGame(d, store, p.Seed, cards), entity.RiskModerate, d.logger)

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	res, err := bot.PlayRound(ctx, simPlayer, p.Bet, func(a entity.Action, res entity.Result) {
		fmt.Println(renderStep(a, res))
	})
	if err != nil {
		return err
	}
	fmt.Println(renderOutcome(res))
	return nil
}
