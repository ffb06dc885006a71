package provider

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

// DefaultLuaEntry is the global function a strategy script must define.
const DefaultLuaEntry = "create_strategy"

// LuaProvider loads strategies written in Lua. A script defines the entry
// function, which returns a table with a select_card method and optional
// initialize, observe_move, observe_pass methods and a name field. Methods
// are called with the table as self:
//
//	function create_strategy()
//	  local s = { name = "FirstLegal" }
//	  function s:select_card(hand, table)
//	    for i, c in ipairs(hand) do
//	      if is_playable(c.suit, c.rank) then return i end
//	    end
//	    return 0
//	  end
//	  return s
//	end
//
// select_card returns a 1-based hand position; 0 or nil passes. table[suit]
// is a set of exposed ranks; suits and ranks use the engine's 0-based numbers.
type LuaProvider struct {
	entry   string
	logger  zerolog.Logger
	modules *moduleTable[*lua.FunctionProto]
}

// NewLuaProvider creates a provider calling entry in each script. An empty
// entry means DefaultLuaEntry.
func NewLuaProvider(entry string, logger zerolog.Logger) *LuaProvider {
	if entry == "" {
		entry = DefaultLuaEntry
	}
	return &LuaProvider{
		entry:   entry,
		logger:  logger.With().Str("component", "LuaProvider").Logger(),
		modules: newModuleTable[*lua.FunctionProto](nil),
	}
}

func (p *LuaProvider) Resolve(ref string) (*Handle, error) {
	path := filepath.Clean(ref)
	proto, release, err := p.modules.acquire(path, func() (*lua.FunctionProto, error) {
		return compileLua(path)
	})
	if err != nil {
		return nil, newResolutionError(ref, "cannot load script", err)
	}

	s, err := p.instantiate(path, proto)
	if err != nil {
		_ = release()
		return nil, newResolutionError(ref, "script did not produce a strategy", err)
	}

	p.logger.Debug().Str("ref", ref).Str("strategy", s.name).Msg("Resolved Lua strategy")
	return newHandle(ref, s, func() error {
		s.L.Close()
		return release()
	}), nil
}

func compileLua(path string) (*lua.FunctionProto, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chunk, err := parse.Parse(f, path)
	if err != nil {
		return nil, err
	}
	return lua.Compile(chunk, path)
}

func (p *LuaProvider) instantiate(path string, proto *lua.FunctionProto) (*luaStrategy, error) {
	L := lua.NewState()
	s := &luaStrategy{L: L, logger: p.logger}
	L.SetGlobal("is_playable", L.NewFunction(s.isPlayable))

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, err
	}

	entry := L.GetGlobal(p.entry)
	if entry.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("entry point %s is not defined", p.entry)
	}
	if err := L.CallByParam(lua.P{Fn: entry, NRet: 1, Protect: true}); err != nil {
		L.Close()
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)

	obj, ok := ret.(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("entry point %s returned %s, want table", p.entry, ret.Type())
	}
	if obj.RawGetString("select_card").Type() != lua.LTFunction {
		L.Close()
		return nil, errors.New("strategy table has no select_card function")
	}

	s.obj = obj
	s.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name, ok := obj.RawGetString("name").(lua.LString); ok && name != "" {
		s.name = string(name)
	}
	return s, nil
}

// luaStrategy adapts a Lua table to strategy.Strategy. Script errors during a
// call panic with an error; the engine recovers them as a pass.
type luaStrategy struct {
	L       *lua.LState
	obj     *lua.LTable
	name    string
	current core.TableView
	logger  zerolog.Logger
}

func (s *luaStrategy) Initialize(playerID int) {
	s.callOptional("initialize", lua.LNumber(playerID))
}

func (s *luaStrategy) SelectCardToPlay(hand []core.Card, table core.TableView) int {
	s.current = table
	defer func() { s.current = nil }()

	ret := s.call("select_card", 1, s.handValue(hand), s.tableValue(table))
	switch v := ret.(type) {
	case lua.LNumber:
		f := float64(v)
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			s.logger.Warn().
				Str("strategy", s.name).
				Float64("result", f).
				Err(core.ErrInvalidStrategyResponse).
				Msg("select_card returned a non-integral index, passing")
			return strategy.Pass
		}
		return int(f) - 1
	case *lua.LNilType:
		return strategy.Pass
	default:
		s.logger.Warn().
			Str("strategy", s.name).
			Str("type", ret.Type().String()).
			Err(core.ErrInvalidStrategyResponse).
			Msg("select_card returned a non-number, passing")
		return strategy.Pass
	}
}

func (s *luaStrategy) ObserveMove(playerID int, card core.Card) {
	s.callOptional("observe_move", lua.LNumber(playerID), lua.LNumber(card.Suit), lua.LNumber(card.Rank))
}

func (s *luaStrategy) ObservePass(playerID int) {
	s.callOptional("observe_pass", lua.LNumber(playerID))
}

func (s *luaStrategy) Name() string { return s.name }

func (s *luaStrategy) callOptional(method string, args ...lua.LValue) {
	if s.obj.RawGetString(method).Type() != lua.LTFunction {
		return
	}
	s.call(method, 0, args...)
}

func (s *luaStrategy) call(method string, nret int, args ...lua.LValue) lua.LValue {
	fn := s.obj.RawGetString(method)
	params := append([]lua.LValue{s.obj}, args...)
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, params...); err != nil {
		panic(fmt.Errorf("lua strategy %s: %s: %w", s.name, method, err))
	}
	if nret == 0 {
		return lua.LNil
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return ret
}

func (s *luaStrategy) handValue(hand []core.Card) *lua.LTable {
	t := s.L.CreateTable(len(hand), 0)
	for i, c := range hand {
		card := s.L.CreateTable(0, 2)
		card.RawSetString("suit", lua.LNumber(c.Suit))
		card.RawSetString("rank", lua.LNumber(c.Rank))
		t.RawSetInt(i+1, card)
	}
	return t
}

func (s *luaStrategy) tableValue(table core.TableView) *lua.LTable {
	t := s.L.NewTable()
	for suit := core.Clubs; suit <= core.Spades; suit++ {
		ranks := s.L.NewTable()
		for _, r := range table.ExposedRanks(suit) {
			ranks.RawSet(lua.LNumber(r), lua.LTrue)
		}
		t.RawSet(lua.LNumber(suit), ranks)
	}
	return t
}

func (s *luaStrategy) isPlayable(L *lua.LState) int {
	suit := L.CheckInt(1)
	rank := L.CheckInt(2)
	if s.current == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(core.IsPlayable(core.NewCard(core.Suit(suit), core.Rank(rank)), s.current)))
	return 1
}
