package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/deck"
	"github.com/mitchelldurbincs/sevens/internal/game/events"
	"github.com/mitchelldurbincs/sevens/internal/game/processor"
	"github.com/mitchelldurbincs/sevens/internal/game/rules"
	"github.com/mitchelldurbincs/sevens/internal/game/states"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

// TurnProcessor handles the orchestration of a single round
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// readOnlyTable hides the mutable layout from strategies
type readOnlyTable struct {
	t *core.TableLayout
}

func (r readOnlyTable) IsExposed(suit core.Suit, rank core.Rank) bool {
	return r.t.IsExposed(suit, rank)
}

func (r readOnlyTable) ExposedRanks(suit core.Suit) []core.Rank {
	return r.t.ExposedRanks(suit)
}

// PlayRound deals a new round and runs turns until it ends
func (tp *TurnProcessor) PlayRound(ctx context.Context) error {
	e := tp.engine
	if err := tp.checkContext(ctx, "before dealing"); err != nil {
		return core.WrapGameStateError(e.gs.Round, states.PhaseDealing.String(), err)
	}

	if err := e.stateMachine.TransitionTo(states.PhaseDealing, "Dealing new round"); err != nil {
		return core.WrapGameStateError(e.gs.Round, e.Phase().String(), err)
	}
	tp.deal()

	roundLogger := tp.logger.With().Int("round", e.gs.Round).Logger()
	roundLogger.Debug().Int("cards", len(e.cards)).Int("seeded", e.gs.Table.Len()).Msg("Round dealt")

	if err := e.stateMachine.TransitionTo(states.PhaseTurnLoop, "Cards dealt"); err != nil {
		return core.WrapGameStateError(e.gs.Round, e.Phase().String(), err)
	}

	stalemate, err := tp.turnLoop(ctx, roundLogger)
	if err != nil {
		return core.WrapGameStateError(e.gs.Round, states.PhaseTurnLoop.String(), err)
	}

	reason := "Round complete"
	if stalemate {
		reason = "Stalemate"
	}
	e.stateMachine.Context().Stalemate = stalemate
	if err := e.stateMachine.TransitionTo(states.PhaseRoundEnd, reason); err != nil {
		return core.WrapGameStateError(e.gs.Round, e.Phase().String(), err)
	}

	e.scoreRound(stalemate, roundLogger)
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("round", tp.engine.gs.Round).
			Int("turn", tp.engine.gs.Turn).
			Str("phase", phase).
			Msg("Game cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// deal shuffles the card set, deals it round-robin and seeds the table
func (tp *TurnProcessor) deal() {
	e := tp.engine
	gs := e.gs

	gs.Round = e.stateMachine.Context().Round
	gs.Turn = 0
	gs.SincePlay = 0
	gs.FinishOrder = gs.FinishOrder[:0]

	cards := append([]core.Card(nil), e.cards...)
	deck.Shuffle(cards, e.rng)
	hands := deck.Deal(cards, len(gs.Players))

	sizes := make([]int, len(gs.Players))
	for id := range gs.Players {
		p := &gs.Players[id]
		p.Hand = hands[id]
		p.Finished = false
		p.Rank = 0
		sizes[id] = len(p.Hand)
	}

	gs.Table = tp.seedTable()

	e.eventBus.Publish(events.NewRoundStartedEvent(e.gameID, gs.Round, gs.Table.Clone()))
	e.eventBus.Publish(events.NewCardsDealtEvent(e.gameID, gs.Round, sizes))
}

// seedTable returns the layout a round starts from: the loaded layout, or
// the pivot of every suit that has one in the card set.
func (tp *TurnProcessor) seedTable() *core.TableLayout {
	if tp.engine.layout != nil {
		return tp.engine.layout.Clone()
	}
	table := core.NewTableLayout()
	for _, c := range tp.engine.cards {
		if c.Valid() && c.IsPivot() {
			table.Expose(c.Suit, c.Rank)
		}
	}
	return table
}

// turnLoop visits seats in increasing order until the round ends. It reports
// whether the round ended because a full cycle passed without a play.
func (tp *TurnProcessor) turnLoop(ctx context.Context, logger zerolog.Logger) (bool, error) {
	gs := tp.engine.gs
	if tp.roundOver() {
		return false, nil
	}

	for {
		for seat := range gs.Players {
			if err := tp.checkContext(ctx, "turn loop"); err != nil {
				return false, err
			}

			p := &gs.Players[seat]
			if p.Finished {
				continue
			}

			if len(p.Hand) == 0 {
				tp.finishPlayer(seat, logger)
			} else {
				tp.takeTurn(seat, logger)
			}

			if tp.roundOver() {
				return false, nil
			}
			if active := gs.ActiveCount(); active > 0 && gs.SincePlay >= active {
				logger.Info().
					Int("turns", gs.Turn).
					Int("active_players", active).
					Msg("No play for a full cycle, ending round")
				return true, nil
			}
		}
	}
}

// roundOver applies the mode's end-of-round rule
func (tp *TurnProcessor) roundOver() bool {
	gs := tp.engine.gs
	if tp.engine.mode == ModeScoring {
		return len(gs.FinishOrder) > 0
	}
	return rules.IsRoundOver(gs.Hands())
}

// takeTurn asks one seat for a card and applies the validated answer
func (tp *TurnProcessor) takeTurn(seat int, logger zerolog.Logger) {
	e := tp.engine
	gs := e.gs
	p := &gs.Players[seat]
	view := readOnlyTable{t: gs.Table}

	gs.Turn++
	index := tp.selectCard(seat, p.Hand.Clone(), view, logger)
	decision := e.actionProcessor.Resolve(seat, p.Hand, index, view)

	switch decision.Outcome {
	case processor.OutcomePlay:
		hand, err := e.actionProcessor.Apply(seat, gs.Table, p.Hand, decision)
		if err != nil {
			logger.Error().Err(err).Int("player_id", seat).Msg("Failed to apply validated play, counting it as a pass")
			tp.recordPass(seat, ActionTypePass, logger)
			return
		}
		p.Hand = hand
		gs.SincePlay = 0
		e.history = append(e.history, Action{Round: gs.Round, Turn: gs.Turn, PlayerID: seat, Type: ActionTypePlay, Card: decision.Card})
		e.eventBus.Publish(events.NewCardPlayedEvent(e.gameID, gs.Round, gs.Turn, seat, decision.Card, len(p.Hand)))

		for other := range gs.Players {
			if other == seat {
				continue
			}
			tp.notify(other, "ObserveMove", logger, func(s strategy.Strategy) { s.ObserveMove(seat, decision.Card) })
		}

		if len(p.Hand) == 0 {
			tp.finishPlayer(seat, logger)
		}

	case processor.OutcomeRejected:
		e.eventBus.Publish(events.NewMoveRejectedEvent(e.gameID, gs.Round, gs.Turn, seat, decision.Card, decision.Err))
		tp.recordPassWithCard(seat, ActionTypeRejected, decision.Card, logger)

	default:
		tp.recordPass(seat, ActionTypePass, logger)
	}
}

func (tp *TurnProcessor) recordPass(seat int, kind ActionType, logger zerolog.Logger) {
	tp.recordPassWithCard(seat, kind, core.Card{}, logger)
}

// recordPassWithCard books a turn without a play and tells every seat
func (tp *TurnProcessor) recordPassWithCard(seat int, kind ActionType, card core.Card, logger zerolog.Logger) {
	e := tp.engine
	gs := e.gs
	p := &gs.Players[seat]

	gs.SincePlay++
	e.history = append(e.history, Action{Round: gs.Round, Turn: gs.Turn, PlayerID: seat, Type: kind, Card: card})

	if e.legalMoves.HasLegalMove(p.Hand, gs.Table) {
		logger.Debug().Int("player_id", seat).Msg("Player passed while holding a playable card")
	}

	e.eventBus.Publish(events.NewPlayerPassedEvent(e.gameID, gs.Round, gs.Turn, seat, len(p.Hand)))
	for other := range gs.Players {
		tp.notify(other, "ObservePass", logger, func(s strategy.Strategy) { s.ObservePass(seat) })
	}
}

// finishPlayer marks a seat as out of cards for this round
func (tp *TurnProcessor) finishPlayer(seat int, logger zerolog.Logger) {
	e := tp.engine
	gs := e.gs
	p := &gs.Players[seat]

	gs.FinishOrder = append(gs.FinishOrder, seat)
	p.Finished = true
	p.Rank = len(gs.FinishOrder)

	logger.Info().Int("player_id", seat).Str("name", p.Name).Int("rank", p.Rank).Msg("Player finished")
	e.eventBus.Publish(events.NewPlayerFinishedEvent(e.gameID, gs.Round, seat, p.Rank))
}

// selectCard asks the seat's strategy for an index. A panic counts as a pass.
func (tp *TurnProcessor) selectCard(seat int, hand core.Hand, table core.TableView, logger zerolog.Logger) (index int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Err(tp.recordFault(seat, "SelectCardToPlay", r)).
				Int("player_id", seat).
				Str("name", tp.engine.gs.Players[seat].Name).
				Msg("Strategy panicked while selecting a card, counting it as a pass")
			index = strategy.Pass
		}
	}()
	return tp.engine.strategies[seat].SelectCardToPlay(hand, table)
}

// notify delivers an observation to one seat, recovering strategy panics
func (tp *TurnProcessor) notify(seat int, method string, logger zerolog.Logger, fn func(strategy.Strategy)) {
	s, ok := tp.engine.strategies[seat]
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Err(tp.recordFault(seat, method, r)).
				Int("player_id", seat).
				Str("method", method).
				Msg("Strategy panicked while observing")
		}
	}()
	fn(s)
}

// recordFault keeps a recovered strategy panic for Engine.Faults
func (tp *TurnProcessor) recordFault(seat int, method string, r any) *core.GameError {
	e := tp.engine
	round := 0
	if e.gs != nil {
		round = e.gs.Round
	}
	gerr := core.NewGameError(round, seat, method, fmt.Errorf("%w: %v", core.ErrStrategyPanic, r))
	e.faults = append(e.faults, gerr)
	return gerr
}

// initializeSeat binds a strategy to its seat for a new game
func (tp *TurnProcessor) initializeSeat(seat int) {
	tp.notify(seat, "Initialize", tp.logger, func(s strategy.Strategy) { s.Initialize(seat) })
}

// strategyName returns the strategy's display name, or a seat label if it panics
func (tp *TurnProcessor) strategyName(seat int) (name string) {
	defer func() {
		if r := recover(); r != nil {
			name = fmt.Sprintf("player-%d", seat)
		}
	}()
	return tp.engine.strategies[seat].Name()
}
