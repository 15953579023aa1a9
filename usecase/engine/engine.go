package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	"github.com/nk-nigeria/blackjack-engine/usecase/state_machine"
	lib "github.com/nk-nigeria/blackjack-engine/usecase/state_machine/sm_states"
	"go.uber.org/zap"
)

type UseCase interface {
	NewRound(playerID string) *Round
	Validate(ctx context.Context, r *Round, action entity.Action) (int64, error)
	Apply(ctx context.Context, r *Round, action entity.Action) error
	Abort(ctx context.Context, r *Round) error
	Graph() string
}

type Config struct {
	DeckCount int
	MinBet    int64
	// MaxBet of zero means no upper bound.
	MaxBet int64

	// Random feeds every shoe the engine builds, possibly from several
	// goroutines at once, so it must be safe for concurrent use. nil means
	// crypto/rand.
	Random io.Reader
	IDs    entity.IDGenerator
	// Shoes overrides DeckCount and Random, e.g. with an ordered shoe in tests.
	Shoes  packager.ShoeFactory
	Clock  quartz.Clock
	Logger *zap.Logger
}

// Round is a session together with the state machine driving it.
type Round struct {
	Session *entity.GameSession
	machine *state_machine.Machine
}

func (r *Round) State() entity.GameState {
	return r.machine.MustState()
}

func (r *Round) IsFinished() bool {
	return r.machine.IsFinished()
}

// Busy is true while a round is under way and a new bet must be refused.
func (r *Round) Busy() bool {
	s := r.State()
	return s != entity.GameStateBetting && s != entity.GameStateFinished
}

// Owing is true while the round still holds money for the player: it is under
// way, its payout has not been credited, or a refund is pending.
func (r *Round) Owing() bool {
	if r.Busy() || r.Session.Refund > 0 {
		return true
	}
	return r.IsFinished() && !r.Session.PaidOut
}

var _ UseCase = &Engine{}

type Engine struct {
	cfg    Config
	states lib.StateMachineState
}

func NewGameEngine(cfg Config) *Engine {
	if cfg.DeckCount < 1 {
		cfg.DeckCount = entity.DefaultDeckCount
	}
	if cfg.IDs == nil {
		cfg.IDs = entity.SnowlakeNode
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Shoes == nil {
		deckCount, random, ids := cfg.DeckCount, cfg.Random, cfg.IDs
		cfg.Shoes = func() (*entity.Shoe, error) {
			return entity.NewShoe(deckCount, random, ids)
		}
	}
	return &Engine{
		cfg:    cfg,
		states: lib.NewStateMachineState(),
	}
}

func (e *Engine) NewRound(playerID string) *Round {
	session := entity.NewGameSession(uuid.NewString(), playerID, e.cfg.Clock.Now())
	return &Round{
		Session: session,
		machine: state_machine.NewGameStateMachine(session, e.states),
	}
}

func (e *Engine) withPackager(ctx context.Context, r *Round) context.Context {
	logger := e.cfg.Logger.With(
		zap.String("player", r.Session.PlayerID),
		zap.String("session", r.Session.ID))
	return packager.NewProcessorPackager(ctx, r.Session, logger, e.cfg.Shoes, e.cfg.IDs).GetContext()
}

// Validate checks an action against the round without touching it and returns
// the amount the ledger has to debit before Apply.
func (e *Engine) Validate(ctx context.Context, r *Round, action entity.Action) (int64, error) {
	if !action.Type.Valid() {
		return 0, fmt.Errorf("unknown action %q: %w", action.Type, entity.ErrInvalidAction)
	}
	s := r.Session
	switch action.Type {
	case entity.ActionPlaceBet:
		if action.Amount <= 0 || action.Amount < e.cfg.MinBet || (e.cfg.MaxBet > 0 && action.Amount > e.cfg.MaxBet) {
			return 0, fmt.Errorf("bet %d outside [%d, %d]: %w", action.Amount, e.cfg.MinBet, e.cfg.MaxBet, entity.ErrInvalidAction)
		}
	case entity.ActionInsurance:
	default:
		if action.HandIndex != nil {
			idx := *action.HandIndex
			if idx < 0 || idx >= len(s.Hands) {
				return 0, fmt.Errorf("hand %d of %d: %w", idx, len(s.Hands), entity.ErrInvalidHandIndex)
			}
			if idx != s.ActiveHandIndex {
				return 0, fmt.Errorf("hand %d is not active: %w", idx, entity.ErrInvalidAction)
			}
		}
	}

	ok, err := r.machine.CanFire(e.withPackager(ctx, r), action)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s in %s: %w", action.Type, r.State(), entity.ErrInvalidAction)
	}

	switch action.Type {
	case entity.ActionPlaceBet:
		return action.Amount, nil
	case entity.ActionDoubleDown, entity.ActionSplit:
		return s.ActiveHand().Bet, nil
	case entity.ActionInsurance:
		if action.BuyInsurance {
			return s.InsuranceCost(), nil
		}
	}
	return 0, nil
}

// Apply fires the action. On error the round is left as it was before the call,
// except for an empty shoe during the dealer turn, which the caller must abort.
func (e *Engine) Apply(ctx context.Context, r *Round, action entity.Action) error {
	if err := r.machine.Fire(e.withPackager(ctx, r), action); err != nil {
		return err
	}
	r.Session.Touch(e.cfg.Clock.Now())
	return nil
}

func (e *Engine) Abort(ctx context.Context, r *Round) error {
	if err := r.machine.Abort(e.withPackager(ctx, r)); err != nil {
		return err
	}
	r.Session.Touch(e.cfg.Clock.Now())
	return nil
}

// Graph renders the round state machine in DOT.
func (e *Engine) Graph() string {
	return e.NewRound("graph").machine.Graph()
}
