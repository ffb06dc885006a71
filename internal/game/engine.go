package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/deck"
	"github.com/mitchelldurbincs/sevens/internal/game/events"
	"github.com/mitchelldurbincs/sevens/internal/game/processor"
	"github.com/mitchelldurbincs/sevens/internal/game/rules"
	"github.com/mitchelldurbincs/sevens/internal/game/states"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

// GameConfig holds configuration for creating a new game engine
type GameConfig struct {
	GameID         string
	Mode           Mode
	ScoreThreshold int // zero means rules.DefaultScoreThreshold
	MaxRounds      int // zero or negative means DefaultMaxRounds
	Rng            *rand.Rand
	Logger         zerolog.Logger
	EventBus       *events.EventBus // nil creates a private bus
}

// Engine runs Sevens games between registered strategies. It is driven from
// one goroutine at a time; strategies and event subscribers must not call
// back into the engine while a game is running.
type Engine struct {
	mu sync.Mutex

	gameID string
	mode   Mode
	rng    *rand.Rand
	logger zerolog.Logger

	eventBus        *events.EventBus
	stateMachine    *states.StateMachine
	actionProcessor *processor.ActionProcessor
	winCondition    *rules.WinConditionChecker
	legalMoves      *rules.LegalMoveCalculator
	turnProcessor   *TurnProcessor

	cards      []core.Card
	layout     *core.TableLayout // loaded by ReadGame, nil seeds every pivot
	strategies map[int]strategy.Strategy

	gs      *GameState
	history []Action
	faults  []*core.GameError
}

// NewEngine creates a new engine. It returns nil only when ctx is already done.
func NewEngine(ctx context.Context, cfg GameConfig) *Engine {
	e, err := NewEngineInitializer(cfg).Initialize(ctx)
	if err != nil {
		return nil
	}
	return e
}

// GameID returns the engine's game identifier
func (e *Engine) GameID() string { return e.gameID }

// Mode returns the variant the engine plays
func (e *Engine) Mode() Mode { return e.mode }

// EventBus returns the bus every game event is published on
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// LoadCards replaces the card set with the values of cards, ordered by key.
func (e *Engine) LoadCards(cards map[uint64]core.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cards = deck.FromMap(cards)
	e.logger.Debug().Int("cards", len(e.cards)).Msg("Card set loaded")
}

// SetCards replaces the card set with a copy of cards.
func (e *Engine) SetCards(cards []core.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cards = append([]core.Card(nil), cards...)
}

// Cards returns a copy of the card set dealt at the start of each round.
func (e *Engine) Cards() []core.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.Card(nil), e.cards...)
}

// ReadCards loads the card set from a "suit rank" file. A missing file
// yields the standard deck. Any other failure leaves the card set empty.
func (e *Engine) ReadCards(locator string) error {
	cards, err := deck.LoadCards(locator, e.logger)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.cards = nil
		e.logger.Error().Err(err).Str("locator", locator).Msg("Failed to read cards, card set cleared")
		return err
	}
	e.cards = deck.FromMap(cards)
	return nil
}

// ReadGame loads the starting table layout used at every deal. A missing
// file seeds every suit's pivot.
func (e *Engine) ReadGame(locator string) error {
	layout, err := deck.LoadInitialLayout(locator, e.logger)
	if err != nil {
		e.logger.Error().Err(err).Str("locator", locator).Msg("Failed to read table layout")
		return err
	}
	e.mu.Lock()
	e.layout = layout
	e.mu.Unlock()
	return nil
}

// RegisterStrategy binds a strategy to a seat, replacing any earlier one.
func (e *Engine) RegisterStrategy(playerID int, s strategy.Strategy) error {
	if playerID < 0 {
		return core.WrapPlayerError(playerID, "register", fmt.Errorf("%w: %w", core.ErrInvalidConfiguration, core.ErrInvalidPlayer))
	}
	if s == nil {
		return core.WrapPlayerError(playerID, "register", fmt.Errorf("%w: nil strategy", core.ErrInvalidConfiguration))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies[playerID] = s
	e.logger.Debug().Int("player_id", playerID).Str("strategy", s.Name()).Msg("Strategy registered")
	return nil
}

// HasRegisteredStrategies reports whether any seat has a strategy.
func (e *Engine) HasRegisteredStrategies() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.strategies) > 0
}

// RegisteredPlayerCount returns how many seats have a strategy.
func (e *Engine) RegisteredPlayerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.strategies)
}

// PlayerStrategies returns a copy of the seat to strategy registry.
func (e *Engine) PlayerStrategies() map[int]strategy.Strategy {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[int]strategy.Strategy, len(e.strategies))
	for id, s := range e.strategies {
		out[id] = s
	}
	return out
}

// ComputeGameProgress plays one complete game between seats 0..numPlayers-1
// and returns the placements ordered by rank.
func (e *Engine) ComputeGameProgress(numPlayers int) ([]core.Placement, error) {
	return e.ComputeGameProgressContext(context.Background(), numPlayers)
}

// ComputeGameProgressContext is ComputeGameProgress with cancellation. A
// cancelled game moves the engine to the error phase and returns ctx.Err().
func (e *Engine) ComputeGameProgressContext(ctx context.Context, numPlayers int) ([]core.Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.run(ctx, numPlayers, nil)
}

// ComputeGameProgressNamed plays one game with a seat per name.
func (e *Engine) ComputeGameProgressNamed(names []string) ([]core.NamedPlacement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	placements, err := e.run(context.Background(), len(names), names)
	if err != nil {
		return nil, err
	}
	return namePlacements(placements, names), nil
}

// ComputeAndDisplayGame plays one game while rendering its trace to w. The
// outcome is identical to ComputeGameProgress for the same seed.
func (e *Engine) ComputeAndDisplayGame(numPlayers int, w io.Writer) ([]core.Placement, error) {
	return e.ComputeAndDisplayGameContext(context.Background(), numPlayers, w)
}

// ComputeAndDisplayGameContext is ComputeAndDisplayGame with cancellation.
func (e *Engine) ComputeAndDisplayGameContext(ctx context.Context, numPlayers int, w io.Writer) ([]core.Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var placements []core.Placement
	err := e.withRenderer(w, func() (err error) {
		placements, err = e.run(ctx, numPlayers, nil)
		return err
	})
	return placements, err
}

// ComputeAndDisplayGameNamed renders a named game to w.
func (e *Engine) ComputeAndDisplayGameNamed(names []string, w io.Writer) ([]core.NamedPlacement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var placements []core.Placement
	err := e.withRenderer(w, func() (err error) {
		placements, err = e.run(context.Background(), len(names), names)
		return err
	})
	if err != nil {
		return nil, err
	}
	return namePlacements(placements, names), nil
}

// Phase returns the current state machine phase
func (e *Engine) Phase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

// Table returns a copy of the table as left by the last round
func (e *Engine) Table() *core.TableLayout {
	if e.gs == nil || e.gs.Table == nil {
		return core.NewTableLayout()
	}
	return e.gs.Table.Clone()
}

// Hands returns copies of every seat's hand
func (e *Engine) Hands() []core.Hand {
	if e.gs == nil {
		return nil
	}
	hands := e.gs.Hands()
	for i := range hands {
		hands[i] = hands[i].Clone()
	}
	return hands
}

// Scores returns the cumulative penalty points of the last game
func (e *Engine) Scores() []int {
	if e.gs == nil {
		return nil
	}
	return e.gs.Scores()
}

// Round returns the number of rounds dealt in the last game
func (e *Engine) Round() int {
	if e.gs == nil {
		return 0
	}
	return e.gs.Round
}

// Faults returns the strategy panics recovered during the last game, in
// the order they happened.
func (e *Engine) Faults() []*core.GameError {
	return append([]*core.GameError(nil), e.faults...)
}

// History returns every turn of the last game in order
func (e *Engine) History() []Action {
	return append([]Action(nil), e.history...)
}

// GameState returns a deep copy of the current game state
func (e *Engine) GameState() *GameState {
	if e.gs == nil {
		return nil
	}
	return e.gs.Clone()
}

// run plays one full game. Setup errors are returned before any state is
// touched; failures inside the loop move the engine to the error phase.
func (e *Engine) run(ctx context.Context, numPlayers int, names []string) ([]core.Placement, error) {
	if err := e.validateSeats(numPlayers); err != nil {
		e.logger.Error().Err(err).Int("num_players", numPlayers).Msg("Rejected game request")
		return nil, err
	}
	if err := e.stateMachine.Reset(); err != nil {
		return nil, core.WrapGameStateError(e.Round(), e.Phase().String(), err)
	}

	e.startGame(numPlayers, names)
	smCtx := e.stateMachine.Context()

	for {
		if err := e.turnProcessor.PlayRound(ctx); err != nil {
			return nil, e.fail(err)
		}
		done, reason := e.gameFinished()
		if done {
			placements := e.placements()
			duration := smCtx.Elapsed()
			if err := e.stateMachine.TransitionTo(states.PhaseFinished, reason); err != nil {
				return nil, e.fail(core.WrapGameStateError(e.gs.Round, e.Phase().String(), err))
			}

			var scores []int
			if e.mode == ModeScoring {
				scores = e.gs.Scores()
			}
			e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.gs.Round, placements, scores, duration))
			e.logger.Info().
				Int("rounds", e.gs.Round).
				Int("winner", placements[0].PlayerID).
				Str("reason", reason).
				Dur("duration", duration).
				Msg("Game over")
			return placements, nil
		}
	}
}

// startGame seats the players and initializes their strategies
func (e *Engine) startGame(numPlayers int, names []string) {
	e.stateMachine.Context().PlayerCount = numPlayers
	e.history = nil
	e.faults = nil

	players := make([]Player, numPlayers)
	seatNames := make([]string, numPlayers)
	for id := range players {
		var name string
		if names != nil {
			name = names[id]
		} else {
			name = e.turnProcessor.strategyName(id)
		}
		players[id] = Player{ID: id, Name: name}
		seatNames[id] = name
	}
	e.gs = &GameState{Table: core.NewTableLayout(), Players: players}

	for id := range players {
		e.turnProcessor.initializeSeat(id)
	}

	e.logger.Info().
		Int("num_players", numPlayers).
		Str("mode", e.mode.String()).
		Int("cards", len(e.cards)).
		Strs("players", seatNames).
		Msg("Game starting")
	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, numPlayers, e.mode.String(), e.winCondition.Threshold(), seatNames))
}

// fail records err on the state machine and moves it to the error phase
func (e *Engine) fail(err error) error {
	e.stateMachine.Context().Error = err
	if terr := e.stateMachine.TransitionTo(states.PhaseError, err.Error()); terr != nil {
		e.logger.Error().Err(terr).Msg("Failed to enter error phase")
	}
	e.logger.Error().Err(err).Msg("Game aborted")
	return err
}

// validateSeats checks the seat count and registry without touching state.
func (e *Engine) validateSeats(numPlayers int) error {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return fmt.Errorf("%w: %d players, need %d to %d", core.ErrInvalidConfiguration, numPlayers, MinPlayers, MaxPlayers)
	}
	var missing []int
	for id := 0; id < numPlayers; id++ {
		if _, ok := e.strategies[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return fmt.Errorf("%w for players %v", core.ErrMissingStrategy, missing)
	}
	return nil
}

func namePlacements(placements []core.Placement, names []string) []core.NamedPlacement {
	named := make([]core.NamedPlacement, len(placements))
	for i, p := range placements {
		named[i] = core.NamedPlacement{Name: names[p.PlayerID], Rank: p.Rank}
	}
	return named
}
