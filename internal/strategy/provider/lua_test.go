package provider

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
	"github.com/mitchelldurbincs/sevens/internal/testutil"
)

const firstLegalScript = `
function create_strategy()
  local s = { name = "FirstLegal", seat = -1, moves = 0, passes = 0 }
  function s:initialize(id) self.seat = id end
  function s:select_card(hand, table)
    for i, c in ipairs(hand) do
      if is_playable(c.suit, c.rank) then return i end
    end
    return 0
  end
  function s:observe_move(id, suit, rank) self.moves = self.moves + 1 end
  function s:observe_pass(id) self.passes = self.passes + 1 end
  return s
end
`

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLuaProviderResolvesScript(t *testing.T) {
	path := writeScript(t, "first.lua", firstLegalScript)
	p := NewLuaProvider("", zerolog.Nop())

	h, err := p.Resolve(path)
	require.NoError(t, err)
	defer h.Close()

	s := h.Strategy
	assert.Equal(t, "FirstLegal", s.Name())
	s.Initialize(2)

	table := core.NewPivotLayout()
	hand := []core.Card{
		testutil.Card(core.Hearts, 2),
		testutil.Card(core.Spades, core.SevenRank+1),
	}
	assert.Equal(t, 1, s.SelectCardToPlay(hand, table))
	assert.Equal(t, strategy.Pass, s.SelectCardToPlay(hand[:1], table))

	s.ObserveMove(0, testutil.Card(core.Clubs, core.SevenRank+1))
	s.ObservePass(1)

	ls := s.(*luaStrategy)
	assert.Equal(t, "2", ls.obj.RawGetString("seat").String())
	assert.Equal(t, "1", ls.obj.RawGetString("moves").String())
	assert.Equal(t, "1", ls.obj.RawGetString("passes").String())
}

func TestLuaProviderTableArgument(t *testing.T) {
	path := writeScript(t, "table.lua", `
function create_strategy()
  local s = {}
  function s:select_card(hand, table)
    if table[2][6] and table[2][7] and not table[0][6] then return #hand end
    return nil
  end
  return s
end
`)
	h, err := NewLuaProvider("", zerolog.Nop()).Resolve(path)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, "table", h.Strategy.Name(), "defaults to the script name")

	table := testutil.CreateTestTable(
		testutil.Card(core.Hearts, core.SevenRank),
		testutil.Card(core.Hearts, core.SevenRank+1),
	)
	hand := []core.Card{testutil.Card(core.Clubs, 0), testutil.Card(core.Clubs, 1)}
	assert.Equal(t, 1, h.Strategy.SelectCardToPlay(hand, table))
	assert.Equal(t, strategy.Pass, h.Strategy.SelectCardToPlay(hand, core.NewPivotLayout()))
}

func TestLuaProviderInstancesAreIndependent(t *testing.T) {
	path := writeScript(t, "counter.lua", `
count = 0
function create_strategy()
  local s = {}
  function s:select_card(hand, table)
    count = count + 1
    return count
  end
  return s
end
`)
	p := NewLuaProvider("", zerolog.Nop())
	a, err := p.Resolve(path)
	require.NoError(t, err)
	b, err := p.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 1, p.modules.loaded())

	hand := make([]core.Card, 5)
	table := core.NewTableLayout()
	assert.Equal(t, 0, a.Strategy.SelectCardToPlay(hand, table))
	assert.Equal(t, 1, a.Strategy.SelectCardToPlay(hand, table))
	assert.Equal(t, 0, b.Strategy.SelectCardToPlay(hand, table), "globals are per handle")

	require.NoError(t, a.Close())
	assert.Equal(t, 1, p.modules.loaded())
	require.NoError(t, b.Close())
	assert.Equal(t, 0, p.modules.loaded())
}

func TestLuaProviderCustomEntry(t *testing.T) {
	path := writeScript(t, "entry.lua", `
function make_bot()
  return { name = "Custom", select_card = function(self, hand, table) return 0 end }
end
`)
	_, err := NewLuaProvider("", zerolog.Nop()).Resolve(path)
	assert.ErrorIs(t, err, core.ErrResolution)

	h, err := NewLuaProvider("make_bot", zerolog.Nop()).Resolve(path)
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, "Custom", h.Strategy.Name())
}

func TestLuaProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"syntax error", "function create_strategy(", "cannot load script"},
		{"runtime error at load", "error('nope')", "script did not produce a strategy"},
		{"missing entry", "x = 1", "entry point create_strategy is not defined"},
		{"entry returns nil", "function create_strategy() return nil end", "want table"},
		{"no select_card", "function create_strategy() return {} end", "no select_card"},
		{"entry raises", "function create_strategy() error('bad') end", "script did not produce a strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLuaProvider("", zerolog.Nop())
			_, err := p.Resolve(writeScript(t, "bad.lua", tt.script))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrResolution)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 0, p.modules.loaded())
		})
	}

	_, err := NewLuaProvider("", zerolog.Nop()).Resolve(filepath.Join(t.TempDir(), "absent.lua"))
	assert.ErrorIs(t, err, core.ErrResolution)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLuaStrategyRuntimeErrorPanics(t *testing.T) {
	path := writeScript(t, "boom.lua", `
function create_strategy()
  local s = {}
  function s:select_card(hand, table) error("kaboom") end
  function s:observe_pass(id) return end
  return s
end
`)
	h, err := NewLuaProvider("", zerolog.Nop()).Resolve(path)
	require.NoError(t, err)
	defer h.Close()

	assert.Panics(t, func() { h.Strategy.SelectCardToPlay(nil, core.NewTableLayout()) })
	assert.NotPanics(t, func() { h.Strategy.ObservePass(1) })
	assert.NotPanics(t, func() { h.Strategy.ObserveMove(1, testutil.Card(core.Clubs, 6)) }, "missing optional methods are skipped")
}

func TestLuaStrategyNonNumberPasses(t *testing.T) {
	path := writeScript(t, "str.lua", `
function create_strategy()
  return { select_card = function(self, hand, table) return "first" end }
end
`)
	h, err := NewLuaProvider("", zerolog.Nop()).Resolve(path)
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, strategy.Pass, h.Strategy.SelectCardToPlay(make([]core.Card, 3), core.NewTableLayout()))
}

func TestLuaStrategyNonIntegralIndexPasses(t *testing.T) {
	path := writeScript(t, "frac.lua", `
function create_strategy()
  local s = { answer = 1.5 }
  function s:select_card(hand, table) return self.answer end
  return s
end
`)
	var buf bytes.Buffer
	h, err := NewLuaProvider("", zerolog.New(&buf)).Resolve(path)
	require.NoError(t, err)
	defer h.Close()

	hand := []core.Card{testutil.Card(core.Hearts, core.SevenRank-1), testutil.Card(core.Hearts, core.SevenRank+1)}
	table := core.NewPivotLayout()
	assert.Equal(t, strategy.Pass, h.Strategy.SelectCardToPlay(hand, table), "1.5 must not truncate to the first card")
	assert.Contains(t, buf.String(), core.ErrInvalidStrategyResponse.Error())

	ls := h.Strategy.(*luaStrategy)
	for _, tc := range []struct {
		answer lua.LNumber
		want   int
	}{
		{2, 1},
		{2.0000001, strategy.Pass},
		{-0.5, strategy.Pass},
		{1e300, strategy.Pass},
		{0, strategy.Pass},
	} {
		ls.obj.RawSetString("answer", tc.answer)
		assert.Equal(t, tc.want, ls.SelectCardToPlay(hand, table), "answer %v", tc.answer)
	}
}
