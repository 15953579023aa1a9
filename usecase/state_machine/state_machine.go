package state_machine

import (
	"context"
	"fmt"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/pkg/packager"
	lib "github.com/nk-nigeria/blackjack-engine/usecase/state_machine/sm_states"
	"github.com/qmuntal/stateless"
	"go.uber.org/zap"
)

const (
	StateBetting          = entity.GameStateBetting
	StateInsuranceOffered = entity.GameStateInsuranceOffered
	StatePlaying          = entity.GameStatePlaying
	StateDealerTurn       = entity.GameStateDealerTurn
	StateFinished         = entity.GameStateFinished
)

type UseCase interface {
	MustState() entity.GameState
	IsFinished() bool
	Fire(ctx context.Context, action entity.Action) error
	CanFire(ctx context.Context, action entity.Action) (bool, error)
	Abort(ctx context.Context) error
	Graph() string
}

var _ UseCase = &Machine{}

// Machine drives one GameSession. The session's State field is the machine's
// storage, so a session can be inspected or persisted without the machine.
type Machine struct {
	state   *stateless.StateMachine
	session *entity.GameSession
}

func NewGameStateMachine(session *entity.GameSession, stateMachineState lib.StateMachineState) *Machine {
	m := &Machine{session: session}
	m.state = stateless.NewStateMachineWithExternalStorage(
		func(_ context.Context) (stateless.State, error) {
			return session.State, nil
		},
		func(_ context.Context, s stateless.State) error {
			session.State = s.(entity.GameState)
			return nil
		},
		stateless.FiringQueued,
	)
	m.configure(stateMachineState)
	return m
}

func (m *Machine) MustState() entity.GameState {
	return m.state.MustState().(entity.GameState)
}

func (m *Machine) IsFinished() bool {
	return m.MustState() == StateFinished
}

// Fire applies a player action. ctx must carry a packager for the machine's session.
func (m *Machine) Fire(ctx context.Context, action entity.Action) error {
	return m.state.FireCtx(ctx, action.Type, action)
}

// CanFire reports whether the action's guards pass in the current state
// without applying it.
func (m *Machine) CanFire(ctx context.Context, action entity.Action) (bool, error) {
	return m.state.CanFireCtx(ctx, action.Type, action)
}

// Abort ends the round without settlement.
func (m *Machine) Abort(ctx context.Context) error {
	if m.IsFinished() {
		return nil
	}
	m.session.Aborted = true
	return m.state.FireCtx(ctx, lib.TriggerAbort)
}

func (m *Machine) Graph() string {
	return m.state.ToGraph()
}

func (m *Machine) configure(stateMachineState lib.StateMachineState) {
	fireCtx := m.state.FireCtx
	m.state.OnTransitioning(func(ctx context.Context, t stateless.Transition) {
		procPkg := packager.GetProcessorPackagerFromContext(ctx)
		procPkg.GetLogger().Info("OnTransitioning",
			zap.Any("source", t.Source),
			zap.Any("destination", t.Destination),
			zap.Any("transition", t.Trigger))
		stateMachineState.OnTransitioning(ctx, t)
	})
	m.state.OnUnhandledTrigger(func(_ context.Context, state stateless.State, trigger stateless.Trigger, unmetGuards []string) error {
		if len(unmetGuards) > 0 {
			return fmt.Errorf("%v in %v, unmet %v: %w", trigger, state, unmetGuards, entity.ErrInvalidAction)
		}
		return fmt.Errorf("%v in %v: %w", trigger, state, entity.ErrInvalidAction)
	})

	{
		betting := stateMachineState.NewStateBetting(fireCtx)
		m.state.Configure(StateBetting).
			OnEntry(betting.Enter).
			OnExit(betting.Exit).
			InternalTransition(lib.TriggerPlaceBet, betting.Process).
			Permit(lib.TriggerOfferInsurance, StateInsuranceOffered).
			Permit(lib.TriggerPlay, StatePlaying).
			Permit(lib.TriggerFinish, StateFinished).
			Permit(lib.TriggerAbort, StateFinished)
	}
	{
		insurance := stateMachineState.NewStateInsurance(fireCtx)
		m.state.Configure(StateInsuranceOffered).
			OnEntry(insurance.Enter).
			OnExit(insurance.Exit).
			InternalTransition(lib.TriggerInsurance, insurance.Process, lib.CanInsure).
			Permit(lib.TriggerPlay, StatePlaying).
			Permit(lib.TriggerFinish, StateFinished).
			Permit(lib.TriggerAbort, StateFinished)
	}
	{
		playing := stateMachineState.NewStatePlaying(fireCtx)
		m.state.Configure(StatePlaying).
			OnEntry(playing.Enter).
			OnExit(playing.Exit).
			InternalTransition(lib.TriggerHit, playing.Process, playing.CanHit).
			InternalTransition(lib.TriggerStand, playing.Process, playing.CanStand).
			InternalTransition(lib.TriggerDoubleDown, playing.Process, playing.CanDoubleDown).
			InternalTransition(lib.TriggerSplit, playing.Process, playing.CanSplit).
			InternalTransition(lib.TriggerSurrender, playing.Process, playing.CanSurrender).
			Permit(lib.TriggerDealerTurn, StateDealerTurn).
			Permit(lib.TriggerFinish, StateFinished).
			Permit(lib.TriggerAbort, StateFinished)
	}
	{
		dealer := stateMachineState.NewStateDealerTurn(fireCtx)
		m.state.Configure(StateDealerTurn).
			OnEntry(dealer.Enter).
			OnExit(dealer.Exit).
			Permit(lib.TriggerFinish, StateFinished).
			Permit(lib.TriggerAbort, StateFinished)
	}
	{
		finished := stateMachineState.NewStateFinished(fireCtx)
		m.state.Configure(StateFinished).
			OnEntry(finished.Enter).
			OnExit(finished.Exit)
	}
}
