package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Display    DisplayConfig    `mapstructure:"display"`
	Strategies StrategiesConfig `mapstructure:"strategies"`
	Plugins    PluginsConfig    `mapstructure:"plugins"`
}

// GameConfig holds game rule settings
type GameConfig struct {
	Mode           string `mapstructure:"mode"`
	NumPlayers     int    `mapstructure:"num_players"`
	ScoreThreshold int    `mapstructure:"score_threshold"`
	MaxRounds      int    `mapstructure:"max_rounds"`
	Seed           int64  `mapstructure:"seed"`
	CardsFile      string `mapstructure:"cards_file"`
	LayoutFile     string `mapstructure:"layout_file"`
}

// LoggingConfig holds zerolog settings. Events restricts the game event
// log to the listed event types; EventsPayload attaches the full event JSON.
type LoggingConfig struct {
	Level         string   `mapstructure:"level"`
	Format        string   `mapstructure:"format"`
	Events        []string `mapstructure:"events"`
	EventsPayload bool     `mapstructure:"events_payload"`
}

// DisplayConfig holds terminal output settings
type DisplayConfig struct {
	Verbose bool `mapstructure:"verbose"`
	Color   bool `mapstructure:"color"`
}

// StrategiesConfig holds the strategy references used by the built-in modes
type StrategiesConfig struct {
	Internal []string `mapstructure:"internal"`
	Demo     []string `mapstructure:"demo"`
}

// PluginsConfig holds external strategy loader settings
type PluginsConfig struct {
	LuaEntry string `mapstructure:"lua_entry"`
}

// cfg is replaced, never mutated, once published: a *Config returned by Get
// is a stable snapshot. mu guards both cfg and the viper instance.
var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// EnvPrefix is the prefix of environment variable overrides, e.g. SEVENS_GAME_MODE.
const EnvPrefix = "SEVENS"

// setViperDefaults sets all default values in viper
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.mode", "single")
	v.SetDefault("game.num_players", 4)
	v.SetDefault("game.score_threshold", 50)
	v.SetDefault("game.max_rounds", 1000)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.cards_file", "")
	v.SetDefault("game.layout_file", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", []string{})
	v.SetDefault("logging.events_payload", false)

	// Display defaults
	v.SetDefault("display.verbose", true)
	v.SetDefault("display.color", true)

	// Strategy references
	v.SetDefault("strategies.internal", []string{"builtin:random", "builtin:random", "builtin:random", "builtin:random"})
	v.SetDefault("strategies.demo", []string{"builtin:random", "builtin:greedy", "builtin:smart"})

	v.SetDefault("plugins.lua_entry", "create_strategy")
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Variables that are already set win. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading env file %s: %w", f, err)
		}
	}
	return nil
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/sevens")
	}

	if err := LoadDotEnv(); err != nil {
		return err
	}

	nv.SetEnvPrefix(EnvPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		// An explicit path that does not exist falls back to defaults
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		if configPath != "" && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := nv.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	v, cfg = nv, next
	mu.Unlock()
	return nil
}

// Get returns the current config snapshot
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	mu.Lock()
	defer mu.Unlock()

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

// Set overrides one key and publishes a fresh snapshot. Values that fail to
// decode leave the previous snapshot in place.
func Set(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()

	v.Set(key, value)
	next := &Config{}
	if err := v.Unmarshal(next); err == nil {
		cfg = next
	}
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return v.ConfigFileUsed()
}

// WatchConfig reloads the config file when it changes. Reloads that fail
// validation are reported through onChange and leave the previous snapshot.
//
// Only keys read per game pick up a reload: display.verbose, logging.events
// and logging.events_payload. Game rules, seeds and strategy rosters are
// read once when the engine is built.
func WatchConfig(onChange func(error)) {
	mu.RLock()
	w := v
	mu.RUnlock()

	w.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		next := &Config{}
		err := w.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil && w == v {
			cfg = next
		}
		mu.Unlock()

		if onChange != nil {
			onChange(err)
		}
	})
	w.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch strings.ToLower(c.Game.Mode) {
	case "single", "scoring":
	default:
		return fmt.Errorf("game.mode must be single or scoring, got %q", c.Game.Mode)
	}
	if c.Game.NumPlayers < 3 || c.Game.NumPlayers > 7 {
		return fmt.Errorf("game.num_players must be between 3 and 7")
	}
	if c.Game.ScoreThreshold <= 0 {
		return fmt.Errorf("game.score_threshold must be positive")
	}
	if c.Game.MaxRounds < 0 {
		return fmt.Errorf("game.max_rounds must be non-negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a zerolog level", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	if n := len(c.Strategies.Internal); n != 0 && (n < 3 || n > 7) {
		return fmt.Errorf("strategies.internal must name between 3 and 7 strategies")
	}
	if n := len(c.Strategies.Demo); n != 0 && (n < 3 || n > 7) {
		return fmt.Errorf("strategies.demo must name between 3 and 7 strategies")
	}

	if c.Plugins.LuaEntry == "" {
		return fmt.Errorf("plugins.lua_entry must not be empty")
	}

	return nil
}
