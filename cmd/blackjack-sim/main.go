package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/pkg/config"
	"github.com/nk-nigeria/blackjack-engine/usecase/engine"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/nk-nigeria/blackjack-engine/usecase/processor"
	"github.com/nk-nigeria/blackjack-engine/usecase/registry"
	"go.uber.org/zap"
)

var cli struct {
	Config string `short:"c" help:"Path to HCL configuration file" default:"blackjack.hcl"`
	Debug  bool   `help:"Enable debug logging"`

	Play     PlayCmd     `cmd:"" help:"Play one round by basic strategy and print every step"`
	Simulate SimulateCmd `cmd:"" help:"Run many automated players concurrently"`
	Graph    GraphCmd    `cmd:"" help:"Print the round state machine as DOT"`
}

// deps is what every command gets from main.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-sim"),
		kong.Description("Blackjack engine simulator"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Debug {
		cfg.Log.Level = "debug"
	} else {
		cfg.Log.Level = "error"
	}
	logger, err := cfg.NewLogger()
	ctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.BindTo(runCtx, (*context.Context)(nil))
	ctx.FatalIfErrorf(ctx.Run(deps{cfg: cfg, logger: logger}))
}

// seededReader turns a non-zero seed into a reproducible random stream; zero
// keeps the shoe on crypto/rand. Simulated players share it.
func seededReader(seed uint64) io.Reader {
	if seed == 0 {
		return nil
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &lockedReader{r: rand.NewChaCha8(key)}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

func newGame(d deps, store ledger.PlayerStore, seed uint64, cards []entity.Card) *processor.Processor {
	ec := engine.Config{
		DeckCount: d.cfg.Engine.DeckCount,
		MinBet:    d.cfg.Engine.MinBet,
		MaxBet:    d.cfg.Engine.MaxBet,
		Random:    seededReader(seed),
		Logger:    d.logger,
	}
	if len(cards) > 0 {
		ec.Shoes = func() (*entity.Shoe, error) {
			return entity.NewOrderedShoe(cards, nil), nil
		}
	}
	reg := registry.New(registry.WithLogger(d.logger))
	return processor.NewProcessor(engine.NewGameEngine(ec), reg, store, processor.WithLogger(d.logger))
}

func parseCards(list string) ([]entity.Card, error) {
	if list == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	cards := make([]entity.Card, 0, len(parts))
	for _, p := range parts {
		c, err := entity.ParseCard(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

type GraphCmd struct{}

func (g *GraphCmd) Run(d deps) error {
	_, err := fmt.Println(engine.NewGameEngine(engine.Config{Logger: d.logger}).Graph())
	return err
}
