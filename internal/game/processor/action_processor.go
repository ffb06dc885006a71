package processor

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// Outcome classifies what a strategy's answer amounts to.
type Outcome int

const (
	// OutcomePass - the index did not name a card in the hand
	OutcomePass Outcome = iota
	// OutcomePlay - the card is legal and will be exposed
	OutcomePlay
	// OutcomeRejected - the card exists but breaks the placement rule; counts as a pass
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomePlay:
		return "play"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Decision is the validated form of one strategy response.
type Decision struct {
	Outcome Outcome
	Index   int
	Card    core.Card
	Err     error
}

// IsPlay reports whether the decision exposes a card.
func (d Decision) IsPlay() bool { return d.Outcome == OutcomePlay }

// ActionProcessor turns raw strategy responses into plays or passes.
type ActionProcessor struct {
	logger zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// Resolve validates the index a strategy returned for hand. Any index outside
// [0, len(hand)) is a pass. An index naming an unplayable card is rejected
// with an error wrapping core.ErrIllegalMove or core.ErrInvalidCard.
func (ap *ActionProcessor) Resolve(playerID int, hand core.Hand, index int, table core.TableView) Decision {
	if index < 0 || index >= len(hand) {
		if index >= len(hand) || index < -1 {
			ap.logger.Debug().
				Int("player_id", playerID).
				Int("index", index).
				Int("hand_size", len(hand)).
				Err(core.ErrInvalidStrategyResponse).
				Msg("Index outside hand treated as pass")
		}
		return Decision{Outcome: OutcomePass, Index: index}
	}

	action := &core.PlayAction{PlayerID: playerID, Card: hand[index]}
	if err := action.Validate(table); err != nil {
		wrappedErr := core.WrapActionError(action, err)
		ap.logger.Warn().Err(wrappedErr).
			Int("player_id", playerID).
			Str("card", action.Card.String()).
			Msg("Rejected illegal play, counting it as a pass")
		return Decision{Outcome: OutcomeRejected, Index: index, Card: action.Card, Err: wrappedErr}
	}

	return Decision{Outcome: OutcomePlay, Index: index, Card: action.Card}
}

// Apply exposes the decided card and returns the hand without it. Decisions
// other than plays leave table and hand untouched.
func (ap *ActionProcessor) Apply(playerID int, table *core.TableLayout, hand core.Hand, d Decision) (core.Hand, error) {
	if !d.IsPlay() {
		return hand, nil
	}
	action := &core.PlayAction{PlayerID: playerID, Card: d.Card}
	if err := core.ApplyPlayAction(table, action); err != nil {
		return hand, core.WrapActionError(action, err)
	}
	ap.logger.Debug().
		Int("player_id", playerID).
		Str("card", d.Card.String()).
		Int("cards_left", len(hand)-1).
		Msg("Card played")
	return hand.Remove(d.Index), nil
}
