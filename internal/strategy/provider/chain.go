package provider

import (
	"path/filepath"
	"strings"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
)

// ChainProvider picks a provider by the shape of the reference.
type ChainProvider struct {
	Builtin Provider
	Lua     Provider
	Plugin  Provider
}

// NewChainProvider wires the three providers together.
func NewChainProvider(builtin, luaProvider, pluginProvider Provider) *ChainProvider {
	return &ChainProvider{Builtin: builtin, Lua: luaProvider, Plugin: pluginProvider}
}

func (c *ChainProvider) Resolve(ref string) (*Handle, error) {
	var next Provider
	switch {
	case strings.HasPrefix(ref, BuiltinScheme):
		next = c.Builtin
	case strings.EqualFold(filepath.Ext(ref), ".lua"):
		next = c.Lua
	case strings.EqualFold(filepath.Ext(ref), ".so"):
		next = c.Plugin
	default:
		return nil, newResolutionError(ref, "unrecognised reference, want builtin:<kind>, *.lua or *.so", core.ErrUnsupported)
	}
	if next == nil {
		return nil, newResolutionError(ref, "no provider configured for reference", core.ErrUnsupported)
	}
	return next.Resolve(ref)
}

// ResolveAll resolves every reference in order. On failure the handles
// already opened are closed and the first error is returned.
func ResolveAll(p Provider, refs []string) ([]*Handle, error) {
	handles := make([]*Handle, 0, len(refs))
	for _, ref := range refs {
		h, err := p.Resolve(ref)
		if err != nil {
			_ = CloseAll(handles)
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}
