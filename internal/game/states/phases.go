package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseIdle - No game in progress, strategies may be registered
	PhaseIdle GamePhase = iota

	// PhaseDealing - Shuffle, deal and seed the table
	PhaseDealing

	// PhaseTurnLoop - Seats take turns until the round ends
	PhaseTurnLoop

	// PhaseRoundEnd - Penalties applied, next round or game end decided
	PhaseRoundEnd

	// PhaseFinished - Final placements computed
	PhaseFinished

	// PhaseError - Error recovery state
	PhaseError
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseDealing:
		return "Dealing"
	case PhaseTurnLoop:
		return "TurnLoop"
	case PhaseRoundEnd:
		return "RoundEnd"
	case PhaseFinished:
		return "Finished"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseFinished || p == PhaseError
}

// CanReceivePlays returns true if strategies are asked for cards in this phase
func (p GamePhase) CanReceivePlays() bool {
	return p == PhaseTurnLoop
}

// CanRegisterStrategies returns true if the strategy registry may change
func (p GamePhase) CanRegisterStrategies() bool {
	return p == PhaseIdle || p.IsTerminal()
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseIdle:
		return []GamePhase{PhaseDealing, PhaseError}
	case PhaseDealing:
		return []GamePhase{PhaseTurnLoop, PhaseError}
	case PhaseTurnLoop:
		return []GamePhase{PhaseRoundEnd, PhaseError}
	case PhaseRoundEnd:
		return []GamePhase{PhaseDealing, PhaseFinished, PhaseError}
	case PhaseFinished:
		return []GamePhase{PhaseIdle}
	case PhaseError:
		return []GamePhase{PhaseIdle}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Idle":
		return PhaseIdle
	case "Dealing":
		return PhaseDealing
	case "TurnLoop":
		return PhaseTurnLoop
	case "RoundEnd":
		return PhaseRoundEnd
	case "Finished":
		return PhaseFinished
	case "Error":
		return PhaseError
	default:
		return PhaseIdle
	}
}
