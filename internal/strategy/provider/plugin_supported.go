//go:build (linux || darwin || freebsd) && cgo

package provider

import (
	"fmt"
	"plugin"

	"github.com/mitchelldurbincs/sevens/internal/strategy"
	"github.com/mitchelldurbincs/sevens/pkg/sevens"
)

func openPlugin(path string) (func() strategy.Strategy, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup(PluginSymbol)
	if err != nil {
		return nil, err
	}
	switch f := sym.(type) {
	case func() strategy.Strategy:
		return f, nil
	case *func() strategy.Strategy:
		return *f, nil
	case *sevens.Factory:
		return *f, nil
	default:
		return nil, fmt.Errorf("symbol %s has type %T, want func() sevens.Strategy", PluginSymbol, sym)
	}
}
