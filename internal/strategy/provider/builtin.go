package provider

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

// BuiltinScheme prefixes references to the strategies shipped with the binary.
const BuiltinScheme = "builtin:"

// BuiltinProvider resolves "builtin:<kind>" references.
type BuiltinProvider struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewBuiltinProvider creates a provider. Random strategies draw their seeds
// from rng, so a seeded rng gives reproducible players; nil seeds from the clock.
func NewBuiltinProvider(rng *rand.Rand, logger zerolog.Logger) *BuiltinProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BuiltinProvider{
		rng:    rng,
		logger: logger.With().Str("component", "BuiltinProvider").Logger(),
	}
}

// BuiltinRef returns the reference naming a built-in kind.
func BuiltinRef(kind strategy.Kind) string {
	return BuiltinScheme + string(kind)
}

func (p *BuiltinProvider) Resolve(ref string) (*Handle, error) {
	name, ok := strings.CutPrefix(ref, BuiltinScheme)
	if !ok {
		return nil, newResolutionError(ref, "not a builtin reference", nil)
	}
	kind, err := strategy.ParseKind(name)
	if err != nil {
		return nil, newResolutionError(ref, "unknown builtin strategy", err)
	}

	p.mu.Lock()
	child := rand.New(rand.NewSource(p.rng.Int63()))
	p.mu.Unlock()

	s, err := strategy.New(kind, child)
	if err != nil {
		return nil, newResolutionError(ref, "factory failed", err)
	}
	p.logger.Debug().Str("ref", ref).Str("strategy", s.Name()).Msg("Resolved builtin strategy")
	return newHandle(ref, s, nil), nil
}
