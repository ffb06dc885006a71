//go:build !((linux || darwin || freebsd) && cgo)

package provider

import (
	"fmt"
	"runtime"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

func openPlugin(string) (func() strategy.Strategy, error) {
	return nil, fmt.Errorf("go plugins on %s/%s: %w", runtime.GOOS, runtime.GOARCH, core.ErrUnsupported)
}
