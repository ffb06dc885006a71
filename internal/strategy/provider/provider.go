// Package provider turns strategy references into live strategy instances.
// References are "builtin:<kind>", a path to a Lua script (*.lua) or a path
// to a Go plugin (*.so).
package provider

import (
	"fmt"
	"sync"

	"github.com/mitchelldurbincs/sevens/internal/game/core"
	"github.com/mitchelldurbincs/sevens/internal/strategy"
)

// Provider resolves a reference to a fresh strategy instance. Every call
// returns an independent instance; nothing is cached across calls.
type Provider interface {
	Resolve(ref string) (*Handle, error)
}

// Handle owns a resolved strategy and the module resources behind it. The
// strategy must not be used after Close.
type Handle struct {
	Ref      string
	Strategy strategy.Strategy

	once    sync.Once
	release func() error
	err     error
}

func newHandle(ref string, s strategy.Strategy, release func() error) *Handle {
	return &Handle{Ref: ref, Strategy: s, release: release}
}

// Close releases the handle. Calling it more than once is safe and returns
// the first result.
func (h *Handle) Close() error {
	h.once.Do(func() {
		if h.release != nil {
			h.err = h.release()
		}
	})
	return h.err
}

// ResolutionError reports why a reference could not be turned into a
// strategy. It matches core.ErrResolution with errors.Is.
type ResolutionError struct {
	Ref    string
	Reason string
	Err    error
}

func newResolutionError(ref, reason string, err error) *ResolutionError {
	return &ResolutionError{Ref: ref, Reason: reason, Err: err}
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolve strategy %q: %s", e.Ref, e.Reason)
	}
	return fmt.Sprintf("resolve strategy %q: %s: %v", e.Ref, e.Reason, e.Err)
}

func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{core.ErrResolution}
	}
	return []error{core.ErrResolution, e.Err}
}

// CloseAll closes every handle and returns the first error.
func CloseAll(handles []*Handle) error {
	var first error
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := h.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
