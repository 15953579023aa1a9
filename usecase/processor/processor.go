package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/engine"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/nk-nigeria/blackjack-engine/usecase/registry"
	"go.uber.org/zap"
)

var _ Game = &Processor{}

// Processor runs player actions against the registry, the engine and the
// ledger. Every action holds the player's registry lease from validation to
// the last ledger call.
type Processor struct {
	engine   engine.UseCase
	registry *registry.Registry
	store    ledger.PlayerStore
	audit    ledger.AuditLog
	notifier ledger.Notifier
	logger   *zap.Logger
	clock    quartz.Clock
}

type Option func(*Processor)

func WithAuditLog(a ledger.AuditLog) Option {
	return func(p *Processor) { p.audit = a }
}

func WithNotifier(n ledger.Notifier) Option {
	return func(p *Processor) { p.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

func WithClock(c quartz.Clock) Option {
	return func(p *Processor) { p.clock = c }
}

// NewProcessor also installs itself as the registry's evict hook, so reaped
// rounds are played out and paid.
func NewProcessor(e engine.UseCase, reg *registry.Registry, store ledger.PlayerStore, opts ...Option) *Processor {
	p := &Processor{
		engine:   e,
		registry: reg,
		store:    store,
		audit:    ledger.NopAuditLog{},
		notifier: ledger.NopNotifier{},
		logger:   zap.NewNop(),
		clock:    quartz.NewReal(),
	}
	for _, o := range opts {
		o(p)
	}
	reg.SetEvictFn(p.Expire)
	return p
}

// movement is what one action moved on the ledger.
type movement struct {
	debit  int64
	credit int64
}

func (p *Processor) PlaceBet(ctx context.Context, playerID string, amount int64) entity.Result {
	return p.ApplyAction(ctx, playerID, entity.NewAction(entity.ActionPlaceBet).WithAmount(amount))
}

func (p *Processor) ApplyAction(ctx context.Context, playerID string, action entity.Action) entity.Result {
	logger := p.logger.With(zap.String("player_id", playerID), zap.String("action", string(action.Type)))

	var (
		lease *registry.Lease
		err   error
	)
	if action.Type == entity.ActionPlaceBet {
		lease, err = p.registry.GetOrCreate(ctx, playerID)
	} else {
		lease, err = p.registry.Get(ctx, playerID)
	}
	if err != nil {
		return p.reject(ctx, logger, playerID, nil, action, movement{}, err)
	}
	defer lease.Release()

	current := lease.Round()
	round := current
	if action.Type == entity.ActionPlaceBet {
		if current != nil && current.Busy() {
			return p.reject(ctx, logger, playerID, current, action, movement{}, entity.ErrSessionBusy)
		}
		if current != nil {
			// A payout that failed earlier is retried before any new money moves.
			if _, err := p.payOut(ctx, logger, current); err != nil {
				return p.reject(ctx, logger, playerID, current, action, movement{}, err)
			}
		}
		round = p.engine.NewRound(playerID)
	}

	mv, err := p.execute(ctx, logger, playerID, round, action)
	if round != current && (err == nil || round.Session.Aborted || round.Session.Refund > 0) {
		lease.Replace(round)
	}
	if err != nil {
		shown := current
		if round.Session.Aborted || round.Session.Refund > 0 {
			shown = round
		}
		return p.reject(ctx, logger, playerID, shown, action, mv, err)
	}
	return p.accept(ctx, logger, playerID, round, action, mv)
}

func (p *Processor) GetState(ctx context.Context, playerID string) entity.Result {
	lease, err := p.registry.Get(ctx, playerID)
	if err != nil {
		res := entity.ErrorResult(emptySnapshot(), err)
		res.Balance = p.balance(ctx, p.logger, playerID)
		return res
	}
	defer lease.Release()
	res := lease.Round().Session.Snapshot()
	res.Balance = p.balance(ctx, p.logger, playerID)
	return res
}

// Expire plays out a round whose player went away: insurance is declined and
// every open hand stands. It runs with the player's slot already held. An
// error means money is still owed and the slot must be kept.
func (p *Processor) Expire(ctx context.Context, playerID string, round *engine.Round) error {
	logger := p.logger.With(zap.String("player_id", playerID), zap.String("session_id", round.Session.ID))
	logger.Warn("expiring abandoned round", zap.String("state", string(round.State())))
play:
	for round.Busy() {
		var action entity.Action
		switch round.State() {
		case entity.GameStateInsuranceOffered:
			action = entity.NewAction(entity.ActionInsurance)
		case entity.GameStatePlaying:
			action = entity.NewAction(entity.ActionStand)
		default:
			p.abort(ctx, logger, round)
			break play
		}
		mv, err := p.execute(ctx, logger, playerID, round, action)
		if err != nil {
			p.reject(ctx, logger, playerID, round, action, mv, err)
			if round.Busy() {
				p.abort(ctx, logger, round)
			}
			break play
		}
		p.accept(ctx, logger, playerID, round, action, mv)
	}
	if round.Busy() {
		return fmt.Errorf("round %s stuck in %s", round.Session.ID, round.State())
	}
	if _, err := p.payOut(ctx, logger, round); err != nil {
		logger.Error("expired round still owes the player", zap.Error(err))
		return err
	}
	return nil
}

// execute validates, funds and applies one action. Money taken for an action
// that then fails is handed back, or parked on the session when the credit
// fails.
func (p *Processor) execute(
	ctx context.Context,
	logger *zap.Logger,
	playerID string,
	round *engine.Round,
	action entity.Action,
) (movement, error) {
	var mv movement
	debit, err := p.engine.Validate(ctx, round, action)
	if err != nil {
		return mv, err
	}
	if debit > 0 {
		if _, err := p.store.Debit(ctx, playerID, debit, ledger.DebitReason(action.Type)); err != nil {
			return mv, err
		}
		mv.debit = debit
	}

	before := round.Session.Debited
	if err := p.engine.Apply(ctx, round, action); err != nil {
		if unabsorbed := debit - (round.Session.Debited - before); unabsorbed > 0 {
			mv.credit += p.refund(ctx, logger, round, unabsorbed)
		}
		if errors.Is(err, entity.ErrEmptyShoe) {
			logger.Error("shoe exhausted mid-round", zap.Error(err))
			mv.credit += p.abort(ctx, logger, round)
		} else if credited, perr := p.payOut(ctx, logger, round); perr == nil {
			mv.credit += credited
		}
		return mv, err
	}

	credited, err := p.payOut(ctx, logger, round)
	if err != nil {
		logger.Error("payout deferred", zap.Error(err))
	}
	mv.credit += credited
	return mv, nil
}

// abort finishes the round unsettled and refunds everything it still holds.
func (p *Processor) abort(ctx context.Context, logger *zap.Logger, round *engine.Round) int64 {
	if err := p.engine.Abort(ctx, round); err != nil {
		logger.Error("abort round", zap.Error(err))
		return 0
	}
	credited, err := p.payOut(ctx, logger, round)
	if err != nil {
		logger.Error("refund deferred", zap.Error(err))
	}
	p.notify(ctx, logger, round.Session.PlayerID, ledger.EventRoundAborted, round.Session.Snapshot())
	return credited
}

// payOut credits a finished round exactly once, together with any refund
// still pending. On error nothing is marked paid and the call can be repeated.
func (p *Processor) payOut(ctx context.Context, logger *zap.Logger, round *engine.Round) (int64, error) {
	s := round.Session
	settle := !s.PaidOut && round.IsFinished()
	if !settle && s.Refund == 0 {
		return 0, nil
	}
	var owed int64
	reason := ledger.ReasonRefund
	if settle {
		switch {
		case s.Aborted:
			owed = s.Outstanding()
		case s.Settlement != nil:
			owed = s.Settlement.Payout
			if owed > 0 {
				reason = ledger.ReasonPayout
			}
		}
	}
	amount := owed + s.Refund
	if amount > 0 {
		if _, err := p.store.Credit(ctx, s.PlayerID, amount, reason); err != nil {
			return 0, err
		}
	}
	s.Refund = 0
	if settle {
		s.Credited += owed
		s.PaidOut = true
	}
	logger.Info("round paid",
		zap.String("session_id", s.ID),
		zap.Int64("round_id", s.RoundID),
		zap.String("reason", string(reason)),
		zap.Int64("amount", amount))
	return amount, nil
}

// refund hands back stake an action took but did not use. A failed credit is
// parked on the session for the next payOut.
func (p *Processor) refund(ctx context.Context, logger *zap.Logger, round *engine.Round, amount int64) int64 {
	s := round.Session
	if _, err := p.store.Credit(ctx, s.PlayerID, amount, ledger.ReasonRefund); err != nil {
		logger.Error("refund deferred", zap.Int64("amount", amount), zap.Error(err))
		s.Refund += amount
		return 0
	}
	return amount
}

func (p *Processor) accept(
	ctx context.Context,
	logger *zap.Logger,
	playerID string,
	round *engine.Round,
	action entity.Action,
	mv movement,
) entity.Result {
	res := round.Session.Snapshot()
	res.Balance = p.balance(ctx, logger, playerID)
	p.record(ctx, logger, playerID, action, mv, res)

	if action.Type == entity.ActionPlaceBet {
		p.notify(ctx, logger, playerID, ledger.EventRoundStarted, res)
		if res.State == entity.GameStateInsuranceOffered {
			p.notify(ctx, logger, playerID, ledger.EventInsuranceOffered, res)
		}
	} else {
		p.notify(ctx, logger, playerID, ledger.EventHandUpdated, res)
	}
	if res.State == entity.GameStateFinished {
		p.notify(ctx, logger, playerID, ledger.EventRoundFinished, res)
	}
	logger.Info("action applied",
		zap.String("session_id", res.SessionID),
		zap.String("state", string(res.State)),
		zap.Int64("debit", mv.debit),
		zap.Int64("credit", mv.credit))
	return res
}

func (p *Processor) reject(
	ctx context.Context,
	logger *zap.Logger,
	playerID string,
	round *engine.Round,
	action entity.Action,
	mv movement,
	err error,
) entity.Result {
	snap := emptySnapshot()
	if round != nil {
		snap = round.Session.Snapshot()
	}
	res := entity.ErrorResult(snap, err)
	res.Balance = p.balance(ctx, logger, playerID)
	if res.Error == entity.ErrorKindInternal || res.Error == entity.ErrorKindEmptyShoe {
		logger.Error("action failed", zap.Error(err))
	} else {
		logger.Info("action rejected", zap.String("error", string(res.Error)), zap.Error(err))
	}
	p.record(ctx, logger, playerID, action, mv, res)
	return res
}

func emptySnapshot() entity.Result {
	return entity.Result{
		State:        entity.GameStateBetting,
		LegalActions: []entity.ActionType{entity.ActionPlaceBet},
	}
}

func (p *Processor) balance(ctx context.Context, logger *zap.Logger, playerID string) int64 {
	b, err := p.store.GetBalance(ctx, playerID)
	if err != nil {
		logger.Debug("read balance", zap.Error(err))
		return 0
	}
	return b
}

func (p *Processor) record(
	ctx context.Context,
	logger *zap.Logger,
	playerID string,
	action entity.Action,
	mv movement,
	res entity.Result,
) {
	rec := ledger.AuditRecord{
		PlayerID:  playerID,
		SessionID: res.SessionID,
		RoundID:   res.RoundID,
		Action:    action.Type,
		Debit:     mv.debit,
		Credit:    mv.credit,
		State:     res.State,
		Result:    res.Result,
		Error:     res.Error,
		Balance:   res.Balance,
		At:        p.clock.Now(),
	}
	if err := p.audit.Record(ctx, rec); err != nil {
		logger.Error("audit record", zap.Error(err))
	}
}

func (p *Processor) notify(ctx context.Context, logger *zap.Logger, playerID string, t ledger.EventType, res entity.Result) {
	if err := p.notifier.Emit(ctx, playerID, t, res); err != nil {
		logger.Warn("notify", zap.String("event", string(t)), zap.Error(err))
	}
}
