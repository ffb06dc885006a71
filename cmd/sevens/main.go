package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/sevens/internal/config"
	"github.com/mitchelldurbincs/sevens/internal/display"
	"github.com/mitchelldurbincs/sevens/internal/game"
	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/sevens/internal/strategy/provider"
	"github.com/mitchelldurbincs/sevens/pkg/sevens"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sevens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: sevens [flags] <internal|demo|competition> [strategy refs...]\n\n")
		fmt.Fprintf(stderr, "Strategy refs: builtin:<random|greedy|smart>, path/to/player.lua, path/to/player.so\n")
		fmt.Fprintf(stderr, "Go plugins export %s and import only %s\n\n", sevens.PluginSymbol, "github.com/mitchelldurbincs/sevens/pkg/sevens")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Path to config file")
	env := fs.String("env", "", "Environment overlay, merges config.<env>.yaml")
	mode := fs.String("mode", "", "Game mode: single or scoring (empty to use config default)")
	seed := fs.Int64("seed", 0, "RNG seed (0 to use config default)")
	cardsFile := fs.String("cards", "", "Card set file with one \"suit rank\" pair per line")
	layoutFile := fs.String("layout", "", "Initial table layout file")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	quiet := fs.Bool("quiet", false, "Print only the final ranking")
	games := fs.Int("games", 1, "Number of games to play with the same players")
	watch := fs.Bool("watch", false, "Reload the config file between games when it changes")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() < 1 || *games < 1 {
		fs.Usage()
		return exitUsage
	}

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(stderr, "Failed to initialize config: %v\n", err)
		return exitFailure
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		fmt.Fprintf(stderr, "Failed to load environment config: %v\n", err)
		return exitFailure
	}

	// Flags override the config file and environment
	if *mode != "" {
		config.Set("game.mode", *mode)
	}
	if *seed != 0 {
		config.Set("game.seed", *seed)
	}
	if *cardsFile != "" {
		config.Set("game.cards_file", *cardsFile)
	}
	if *layoutFile != "" {
		config.Set("game.layout_file", *layoutFile)
	}
	if *logLevel != "" {
		config.Set("logging.level", *logLevel)
	}
	if *quiet {
		config.Set("display.verbose", false)
	}
	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitFailure
	}

	setupLogging(cfg.Logging.Level, cfg.Logging.Format, stderr)
	if !cfg.Display.Color {
		pterm.DisableColor()
	}

	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			log.Info().Str("path", config.ConfigFilePath()).Msg("Configuration reloaded")
		})
	}

	refs, err := strategyRefs(fs.Arg(0), fs.Args()[1:], cfg)
	if err != nil {
		log.Error().Err(err).Msg("Cannot set up players")
		if errors.Is(err, core.ErrUnsupported) {
			fs.Usage()
			return exitUsage
		}
		return exitFailure
	}

	gameCfg, err := game.GameConfigFromSettings(cfg, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("Invalid game settings")
		return exitFailure
	}

	chain := provider.NewChainProvider(
		provider.NewBuiltinProvider(rand.New(rand.NewSource(gameCfg.Rng.Int63())), log.Logger),
		provider.NewLuaProvider(cfg.Plugins.LuaEntry, log.Logger),
		provider.NewPluginProvider(log.Logger),
	)
	handles, err := provider.ResolveAll(chain, refs)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve strategies")
		return exitFailure
	}
	defer func() {
		if err := provider.CloseAll(handles); err != nil {
			log.Warn().Err(err).Msg("Failed to release strategies")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := game.NewEngine(ctx, gameCfg)
	if engine == nil {
		return exitInterrupted
	}

	eventLogger := subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.DebugLevel)
	engine.EventBus().Subscribe(eventLogger)

	if cfg.Game.CardsFile != "" {
		if err := engine.ReadCards(cfg.Game.CardsFile); err != nil {
			log.Error().Err(err).Msg("Failed to read cards")
			return exitFailure
		}
	}
	if cfg.Game.LayoutFile != "" {
		if err := engine.ReadGame(cfg.Game.LayoutFile); err != nil {
			log.Error().Err(err).Msg("Failed to read table layout")
			return exitFailure
		}
	}

	names := make([]string, len(handles))
	for id, h := range handles {
		if err := engine.RegisterStrategy(id, h.Strategy); err != nil {
			log.Error().Err(err).Msg("Failed to register strategy")
			return exitFailure
		}
		names[id] = h.Strategy.Name()
	}

	log.Info().
		Str("mode", fs.Arg(0)).
		Str("variant", engine.Mode().String()).
		Strs("players", names).
		Int("games", *games).
		Msg("Starting Sevens")

	for g := 1; g <= *games; g++ {
		// Display and event logging settings may change between games with -watch
		snap := config.Get()
		eventLogger.SetEventFilter(snap.Logging.Events)
		eventLogger.SetDevMode(snap.Logging.EventsPayload)

		var placements []core.Placement
		if snap.Display.Verbose {
			placements, err = engine.ComputeAndDisplayGameContext(ctx, len(handles), stdout)
		} else {
			placements, err = engine.ComputeGameProgressContext(ctx, len(handles))
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Warn().Msg("Interrupted")
				return exitInterrupted
			}
			log.Error().Err(err).Int("game", g).Msg("Game failed")
			return exitFailure
		}

		if *games > 1 {
			fmt.Fprintf(stdout, "Game %d\n", g)
		}
		for _, line := range display.FinalRankLines(placements, names) {
			fmt.Fprintln(stdout, line)
		}
	}

	return exitOK
}

// strategyRefs returns the strategy references for a run mode.
func strategyRefs(mode string, args []string, cfg *config.Config) ([]string, error) {
	var refs []string
	switch mode {
	case "internal":
		refs = cfg.Strategies.Internal
	case "demo":
		refs = cfg.Strategies.Demo
	case "competition":
		refs = args
	default:
		return nil, fmt.Errorf("run mode %q: %w", mode, core.ErrUnsupported)
	}
	if len(refs) < game.MinPlayers || len(refs) > game.MaxPlayers {
		return nil, fmt.Errorf("%w: %s mode needs %d to %d strategies, got %d",
			core.ErrInvalidConfiguration, mode, game.MinPlayers, game.MaxPlayers, len(refs))
	}
	return refs, nil
}

func setupLogging(level, format string, w io.Writer) {
	var logLevel zerolog.Level
	switch strings.ToLower(level) {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "disabled":
		logLevel = zerolog.Disabled
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		})
	}
}
