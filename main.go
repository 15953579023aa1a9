package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/nk-nigeria/blackjack-engine/api"
	"github.com/nk-nigeria/blackjack-engine/cgbdb"
	"github.com/nk-nigeria/blackjack-engine/pkg/config"
	"github.com/nk-nigeria/blackjack-engine/usecase/engine"
	"github.com/nk-nigeria/blackjack-engine/usecase/processor"
	"github.com/nk-nigeria/blackjack-engine/usecase/registry"
	"go.uber.org/zap"
)

// configEnvKey names the runtime env entry holding the HCL config path.
const configEnvKey = "blackjack_config"

func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	initStart := time.Now()

	cfg := config.Default()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok && env[configEnvKey] != "" {
		loaded, err := config.Load(env[configEnvKey])
		if err != nil {
			logger.WithField("err", err).Error("load config")
			return err
		}
		cfg = loaded
	}
	zlog, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	audit := cgbdb.NewAuditLog(db)
	if err := audit.Migrate(ctx); err != nil {
		logger.WithField("err", err).Error("migrate audit table")
		return err
	}

	gameEngine := engine.NewGameEngine(engine.Config{
		DeckCount: cfg.Engine.DeckCount,
		MinBet:    cfg.Engine.MinBet,
		MaxBet:    cfg.Engine.MaxBet,
		Logger:    zlog,
	})
	reg := registry.New(registry.WithLogger(zlog))
	proc := processor.NewProcessor(gameEngine, reg, api.NewWalletStore(nk),
		processor.WithAuditLog(audit),
		processor.WithNotifier(api.NewNotifier(nk)),
		processor.WithLogger(zlog),
	)
	if err := api.Register(initializer, proc, audit); err != nil {
		return err
	}

	go func() {
		err := reg.Run(context.Background(), cfg.ReapInterval(), cfg.IdleTTL())
		if err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error("registry reaper stopped", zap.Error(err))
		}
	}()

	logger.Info("Plugin loaded in '%d' msec.", time.Since(initStart).Milliseconds())
	return nil
}

// main is never called: the module is loaded by Nakama with -buildmode=plugin.
// It only lets `go build ./...` link the package.
func main() {}
