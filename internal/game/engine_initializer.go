package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/config"
	"github.com/mitchelldurbincs/sevens/internal/game/deck"
	"github.com/mitchelldurbincs/sevens/internal/game/events"
	"github.com/mitchelldurbincs/sevens/internal/game/processor"
	"github.com/mitchelldurbincs/sevens/internal/game/rules"
	"github.com/mitchelldurbincs/sevens/internal/game/states"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

// EngineInitializer handles the construction of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates a new game engine in the idle phase
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()
	engine := ei.createEngine()

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Str("mode", engine.mode.String()).
		Int("score_threshold", ei.config.ScoreThreshold).
		Int("max_rounds", ei.config.MaxRounds).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	ei.logger = ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	if ei.config.ScoreThreshold <= 0 {
		ei.config.ScoreThreshold = rules.DefaultScoreThreshold
	}
	if ei.config.MaxRounds <= 0 {
		ei.config.MaxRounds = DefaultMaxRounds
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.logger)
	}
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	smLogger := ei.config.Logger.With().
		Str("component", "StateMachine").
		Str("game_id", ei.config.GameID).
		Logger()
	gameContext := states.NewGameContext(ei.config.GameID, MinPlayers, MaxPlayers, smLogger)
	stateMachine := states.NewStateMachine(gameContext, ei.config.EventBus)

	engine := &Engine{
		gameID:          ei.config.GameID,
		mode:            ei.config.Mode,
		rng:             ei.config.Rng,
		logger:          ei.logger,
		eventBus:        ei.config.EventBus,
		stateMachine:    stateMachine,
		actionProcessor: processor.NewActionProcessor(ei.logger),
		winCondition:    rules.NewWinConditionChecker(ei.logger, ei.config.ScoreThreshold, ei.config.MaxRounds),
		legalMoves:      rules.NewLegalMoveCalculator(),
		cards:           deck.Standard(),
		strategies:      make(map[int]strategy.Strategy),
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// GameConfigFromSettings builds an engine configuration from loaded settings.
// A zero seed draws one from the clock.
func GameConfigFromSettings(c *config.Config, logger zerolog.Logger) (GameConfig, error) {
	mode, err := ParseMode(c.Game.Mode)
	if err != nil {
		return GameConfig{}, err
	}

	seed := c.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug().Int64("seed", seed).Msg("Seeding game RNG")

	return GameConfig{
		Mode:           mode,
		ScoreThreshold: c.Game.ScoreThreshold,
		MaxRounds:      c.Game.MaxRounds,
		Rng:            rand.New(rand.NewSource(seed)),
		Logger:         logger,
	}, nil
}
