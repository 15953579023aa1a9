package smstates

import (
	"context"

	"github.com/qmuntal/stateless"
)

// StateMachineState builds one handler per game state.
type StateMachineState interface {
	NewStateBetting(fn FireFn) StateHandler
	NewStateInsurance(fn FireFn) StateHandler
	NewStatePlaying(fn FireFn) *StatePlaying
	NewStateDealerTurn(fn FireFn) StateHandler
	NewStateFinished(fn FireFn) StateHandler
	OnTransitioning(ctx context.Context, t stateless.Transition)
}

type stateMachine struct{}

func NewStateMachineState() StateMachineState {
	s := stateMachine{}
	return &s
}

func (sm *stateMachine) NewStateBetting(fn FireFn) StateHandler {
	return NewStateBetting(fn)
}

func (sm *stateMachine) NewStateInsurance(fn FireFn) StateHandler {
	return NewStateInsurance(fn)
}

func (sm *stateMachine) NewStatePlaying(fn FireFn) *StatePlaying {
	return NewStatePlaying(fn)
}

func (sm *stateMachine) NewStateDealerTurn(fn FireFn) StateHandler {
	return NewStateDealerTurn(fn)
}

func (sm *stateMachine) NewStateFinished(fn FireFn) StateHandler {
	return NewStateFinished(fn)
}

func (sm *stateMachine) OnTransitioning(ctx context.Context, t stateless.Transition) {}
