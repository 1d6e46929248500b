// internal/config/envfile.go
//
// Mode secrets file → process environment.
//
/*
Context
--------
Build tooling and the CDK app read secrets through the process
environment, so `ApplyEnvironmentOverlay()` injects `.<mode>.env` into
it.  This is a process-wide side effect with no teardown; `Bootstrap()`
runs it exactly once, after the documents are loaded.

Rules
-----
  • A variable already present in the environment wins, even when it is
    set to the empty string.
  • A missing file is logged and ignored.
  • A malformed line is a ParseError naming the file.
  • Values are never logged, only key names.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Overlay reports what ApplyEnvironmentOverlay did.
type Overlay struct {
	Path      string
	Found     bool
	Applied   []string // keys written to the environment
	Preserved []string // keys left alone because the caller had set them
}

// ApplyEnvironmentOverlay loads the mode secrets file from dir into the
// process environment without overriding existing variables.  An empty
// dir selects DefaultDir().
func ApplyEnvironmentOverlay(mode Mode, dir string) (*Overlay, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	path := filepath.Join(dir, mode.SecretsFile())
	ov := &Overlay{Path: path}

	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.S().Warnw("env overlay file missing, continuing", "file", path)
			return ov, nil
		}
		var pe *fs.PathError
		if errors.As(err, &pe) {
			zap.S().Errorw("env overlay read failed", "file", path, "err", err)
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		zap.S().Errorw("env overlay parse failed", "file", path, "err", err)
		return nil, &ParseError{Path: path, Err: err}
	}
	ov.Found = true

	keys := lo.Keys(vars)
	sort.Strings(keys)
	for _, key := range keys {
		if _, set := os.LookupEnv(key); set {
			ov.Preserved = append(ov.Preserved, key)
			continue
		}
		if err := os.Setenv(key, vars[key]); err != nil {
			return nil, fmt.Errorf("set %s from %s: %w", key, path, err)
		}
		ov.Applied = append(ov.Applied, key)
	}

	zap.S().Infow("env overlay applied",
		"file", path,
		"applied", len(ov.Applied),
		"preserved", len(ov.Preserved),
	)
	return ov, nil
}
