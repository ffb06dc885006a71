package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/sevens/internal/game/events"
)

// maxTransitions bounds the per-game transition log. A capped scoring game
// records about three transitions per round.
const maxTransitions = 4 * 1024

// ErrInvalidTransition is returned when the phase graph forbids a move.
var ErrInvalidTransition = errors.New("invalid transition")

// State is one phase of the game lifecycle.
type State interface {
	Phase() GamePhase

	// Validate is checked before leaving the current phase.
	Validate(ctx *GameContext) error
	Enter(ctx *GameContext) error
	// Exit errors are logged but do not block the transition.
	Exit(ctx *GameContext) error
}

// Transition is one entry of the transition log.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Round     int
	Reason    string
	Timestamp time.Time
}

// StateMachine walks a game through its phases and announces every move on
// the event bus.
type StateMachine struct {
	mu          sync.RWMutex
	phase       GamePhase
	states      map[GamePhase]State
	ctx         *GameContext
	transitions []Transition
	eventBus    *events.EventBus
}

// NewStateMachine returns a machine in PhaseIdle with the default states. A
// nil eventBus disables transition events.
func NewStateMachine(ctx *GameContext, eventBus *events.EventBus) *StateMachine {
	sm := &StateMachine{
		phase:    PhaseIdle,
		states:   make(map[GamePhase]State),
		ctx:      ctx,
		eventBus: eventBus,
	}
	for _, s := range defaultStates() {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation of a phase.
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	sm.states[state.Phase()] = state
	sm.mu.Unlock()
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// Context returns the shared game context. Callers mutate it only while no
// transition is in flight.
func (sm *StateMachine) Context() *GameContext {
	return sm.ctx
}

// CanTransitionTo reports whether the phase graph allows moving to target.
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	return sm.CurrentPhase().CanTransitionTo(target)
}

// TransitionTo moves the machine to target. On a validation or enter error
// the machine stays in its current phase.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	from := sm.phase
	if !from.CanTransitionTo(target) {
		sm.mu.Unlock()
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, target)
	}
	next, ok := sm.states[target]
	if !ok {
		sm.mu.Unlock()
		return fmt.Errorf("no state registered for phase %s", target)
	}
	if err := next.Validate(sm.ctx); err != nil {
		sm.mu.Unlock()
		return fmt.Errorf("entering %s: %w", target, err)
	}

	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.ctx); err != nil {
			sm.ctx.Logger.Warn().Err(err).Stringer("phase", from).Msg("Exit hook failed")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.ctx); err != nil {
		sm.phase = from
		sm.mu.Unlock()
		return fmt.Errorf("failed to enter state %s: %w", target, err)
	}
	sm.record(Transition{
		From:      from,
		To:        target,
		Round:     sm.ctx.Round,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	sm.mu.Unlock()

	// Published outside the lock so subscribers may query the machine.
	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(sm.ctx.GameID, from.String(), target.String(), reason))
	}
	sm.ctx.Logger.Debug().
		Stringer("from_phase", from).
		Stringer("to_phase", target).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

func (sm *StateMachine) record(t Transition) {
	if len(sm.transitions) == maxTransitions {
		copy(sm.transitions, sm.transitions[1:])
		sm.transitions = sm.transitions[:maxTransitions-1]
	}
	sm.transitions = append(sm.transitions, t)
}

// Transitions returns a copy of the transition log since the last Reset.
func (sm *StateMachine) Transitions() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]Transition, len(sm.transitions))
	copy(out, sm.transitions)
	return out
}

// Reset clears the transition log and returns a terminal machine to PhaseIdle.
// Resetting an idle machine does nothing.
func (sm *StateMachine) Reset() error {
	sm.mu.Lock()
	sm.transitions = sm.transitions[:0]
	phase := sm.phase
	sm.mu.Unlock()

	if phase == PhaseIdle {
		return nil
	}
	return sm.TransitionTo(PhaseIdle, "Reset requested")
}
