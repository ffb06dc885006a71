package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  mode: scoring
  num_players: 5
  score_threshold: 40
  seed: 99
logging:
  level: debug
strategies:
  demo: ["builtin:smart", "builtin:smart", "builtin:greedy"]
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	err = Init(configFile)
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, "scoring", c.Game.Mode)
	assert.Equal(t, 5, c.Game.NumPlayers)
	assert.Equal(t, 40, c.Game.ScoreThreshold)
	assert.Equal(t, int64(99), c.Game.Seed)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, []string{"builtin:smart", "builtin:smart", "builtin:greedy"}, c.Strategies.Demo)
	// Untouched keys keep their defaults
	assert.Equal(t, 1000, c.Game.MaxRounds)
	assert.Equal(t, "console", c.Logging.Format)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	require.NotNil(t, c)
	assert.Equal(t, "single", c.Game.Mode)
	assert.Equal(t, 4, c.Game.NumPlayers)
	assert.Equal(t, 50, c.Game.ScoreThreshold)
	assert.Equal(t, "create_strategy", c.Plugins.LuaEntry)
	assert.Len(t, c.Strategies.Internal, 4)
	assert.Equal(t, []string{"builtin:random", "builtin:greedy", "builtin:smart"}, c.Strategies.Demo)
	assert.True(t, c.Display.Verbose)
}

func TestInitRejectsInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("game:\n  num_players: 9\n"), 0644))

	cfg = nil
	v = nil

	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.num_players")
}

func TestEnvironmentVariables(t *testing.T) {
	cfg = nil
	v = nil

	t.Setenv("SEVENS_GAME_NUM_PLAYERS", "6")
	t.Setenv("SEVENS_GAME_MODE", "scoring")

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 6, c.Game.NumPlayers)
	assert.Equal(t, "scoring", c.Game.Mode)
}

func TestDotEnvOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("SEVENS_GAME_SEED=1234\nSEVENS_LOGGING_LEVEL=warn\n"), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	// The process environment wins over the file
	t.Setenv("SEVENS_LOGGING_LEVEL", "error")
	t.Cleanup(func() { _ = os.Unsetenv("SEVENS_GAME_SEED") })

	cfg = nil
	v = nil

	err := Init("")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, int64(1234), c.Game.Seed)
	assert.Equal(t, "error", c.Logging.Level)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestSet(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	Set("game.num_players", 7)
	Set("display.verbose", false)

	c := Get()
	assert.Equal(t, 7, c.Game.NumPlayers)
	assert.False(t, c.Display.Verbose)
}

func TestSetPublishesNewSnapshot(t *testing.T) {
	cfg = nil
	v = nil

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	before := Get()
	Set("display.verbose", false)
	Set("logging.events", []string{"card.played", "round.ended"})
	after := Get()

	assert.True(t, before.Display.Verbose, "earlier snapshots are never mutated")
	assert.Empty(t, before.Logging.Events)
	assert.False(t, after.Display.Verbose)
	assert.Equal(t, []string{"card.played", "round.ended"}, after.Logging.Events)
	assert.False(t, after.Logging.EventsPayload)
}

func TestWatchConfigReload(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("display:\n  verbose: true\n"), 0644))

	cfg = nil
	v = nil
	require.NoError(t, Init(configFile))

	reloads := make(chan error, 8)
	WatchConfig(func(err error) { reloads <- err })

	before := Get()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = Get().Display.Verbose
		}
	}()

	content := "display:\n  verbose: false\nlogging:\n  events: [\"game.ended\"]\n  events_payload: true\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	<-done

	select {
	case err := <-reloads:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not picked up")
	}

	assert.Eventually(t, func() bool { return !Get().Display.Verbose }, time.Second, 10*time.Millisecond)
	assert.True(t, before.Display.Verbose)
	assert.Equal(t, []string{"game.ended"}, Get().Logging.Events)
	assert.True(t, Get().Logging.EventsPayload)
}

func TestWatchConfigKeepsSnapshotOnInvalidReload(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("game:\n  num_players: 4\n"), 0644))

	cfg = nil
	v = nil
	require.NoError(t, Init(configFile))

	reloads := make(chan error, 8)
	WatchConfig(func(err error) { reloads <- err })

	require.NoError(t, os.WriteFile(configFile, []byte("game:\n  num_players: 12\n"), 0644))

	// A truncated intermediate write may reload cleanly first.
	timeout := time.After(5 * time.Second)
	for rejected := false; !rejected; {
		select {
		case err := <-reloads:
			if err != nil {
				assert.Contains(t, err.Error(), "game.num_players")
				rejected = true
			}
		case <-timeout:
			t.Fatal("invalid config change was not reported")
		}
	}
	assert.Equal(t, 4, Get().Game.NumPlayers)
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
game:
  num_players: 3
logging:
  level: info
`
	err := os.WriteFile(baseConfig, []byte(baseContent), 0644)
	require.NoError(t, err)

	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
game:
  num_players: 7
logging:
  level: error
  format: json
`
	err = os.WriteFile(envConfig, []byte(envContent), 0644)
	require.NoError(t, err)

	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	cfg = nil
	v = nil

	err = Init(baseConfig)
	require.NoError(t, err)

	err = LoadEnvironmentConfig("prod")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 7, c.Game.NumPlayers)     // Overridden
	assert.Equal(t, "error", c.Logging.Level) // Overridden
	assert.Equal(t, "json", c.Logging.Format) // New value
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Game:    GameConfig{Mode: "single", NumPlayers: 4, ScoreThreshold: 50, MaxRounds: 1000},
			Logging: LoggingConfig{Level: "info", Format: "console"},
			Plugins: PluginsConfig{LuaEntry: "create_strategy"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"mode is case-insensitive", func(c *Config) { c.Game.Mode = "Scoring" }, ""},
		{"unknown mode", func(c *Config) { c.Game.Mode = "tournament" }, "game.mode"},
		{"too few players", func(c *Config) { c.Game.NumPlayers = 2 }, "game.num_players"},
		{"too many players", func(c *Config) { c.Game.NumPlayers = 8 }, "game.num_players"},
		{"zero threshold", func(c *Config) { c.Game.ScoreThreshold = 0 }, "game.score_threshold"},
		{"negative max rounds", func(c *Config) { c.Game.MaxRounds = -1 }, "game.max_rounds"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"short demo roster", func(c *Config) { c.Strategies.Demo = []string{"builtin:random"} }, "strategies.demo"},
		{"long internal roster", func(c *Config) { c.Strategies.Internal = make([]string, 8) }, "strategies.internal"},
		{"empty lua entry", func(c *Config) { c.Plugins.LuaEntry = "" }, "plugins.lua_entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
