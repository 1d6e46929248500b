// internal/config/bootstrap.go
//
// One-shot resolution: mode → documents → environment overlay.
//
// Context
// -------
// The merged documents and the secrets overlay must agree on the mode,
// otherwise a run could declare production DNS while building with
// development secrets.  `Bootstrap()` resolves the mode once and drives
// both steps with it.  It mutates the process environment, so it refuses
// to run twice; the result is cached for lock-free reads via `Get()`.
package config

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrBootstrapped is returned by a second Bootstrap call.
var ErrBootstrapped = errors.New("configuration already bootstrapped")

// Resolution is the outcome of Bootstrap.
type Resolution struct {
	Mode     Mode
	Dir      string
	Document *Document
	Overlay  *Overlay
}

var (
	current atomic.Pointer[Resolution]
	started atomic.Bool
)

// Bootstrap loads the documents and applies the secrets overlay for the
// mode and directory named by sel.
func Bootstrap(sel Selection) (*Resolution, error) {
	if !started.CompareAndSwap(false, true) {
		return nil, ErrBootstrapped
	}

	mode := sel.ResolvedMode()
	dir := sel.ResolvedDir()

	doc, err := LoadConfiguration(mode, dir)
	if err != nil {
		return nil, err
	}
	ov, err := ApplyEnvironmentOverlay(mode, dir)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Mode: mode, Dir: dir, Document: doc, Overlay: ov}
	current.Store(res)
	zap.S().Debugw("config bootstrapped", "mode", mode.String(), "dir", dir)
	return res, nil
}

// Get returns the Bootstrap result, or nil before a successful Bootstrap.
func Get() *Resolution { return current.Load() }

// resetForTest clears the one-shot guard.
func resetForTest() {
	started.Store(false)
	current.Store(nil)
}
