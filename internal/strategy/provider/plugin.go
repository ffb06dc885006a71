package provider

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/strategy"
	"github.com/mitchelldurbincs/sevens/pkg/sevens"
)

// PluginSymbol is the factory a Go strategy plugin must export:
//
//	func CreateStrategy() sevens.Strategy
//
// or a package variable of that function type or of sevens.Factory.
const PluginSymbol = sevens.PluginSymbol

// PluginProvider loads strategies from Go plugins (*.so). Go cannot unload a
// plugin, so releasing the last handle only forgets the module.
type PluginProvider struct {
	logger  zerolog.Logger
	modules *moduleTable[func() strategy.Strategy]
	open    func(path string) (func() strategy.Strategy, error)
}

// NewPluginProvider creates a provider using the platform's plugin loader.
func NewPluginProvider(logger zerolog.Logger) *PluginProvider {
	return &PluginProvider{
		logger:  logger.With().Str("component", "PluginProvider").Logger(),
		modules: newModuleTable[func() strategy.Strategy](nil),
		open:    openPlugin,
	}
}

func (p *PluginProvider) Resolve(ref string) (*Handle, error) {
	path, err := filepath.Abs(ref)
	if err != nil {
		return nil, newResolutionError(ref, "bad plugin path", err)
	}

	factory, release, err := p.modules.acquire(path, func() (func() strategy.Strategy, error) {
		return p.open(path)
	})
	if err != nil {
		return nil, newResolutionError(ref, "cannot load plugin", err)
	}

	s, err := callFactory(factory)
	if err != nil {
		_ = release()
		return nil, newResolutionError(ref, "factory failed", err)
	}

	p.logger.Debug().Str("ref", ref).Str("strategy", s.Name()).Msg("Resolved plugin strategy")
	return newHandle(ref, s, release), nil
}

func callFactory(factory func() strategy.Strategy) (s strategy.Strategy, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", PluginSymbol, r)
		}
	}()
	s = factory()
	if s == nil {
		return nil, fmt.Errorf("%s returned nil", PluginSymbol)
	}
	return s, nil
}
