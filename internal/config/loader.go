// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`LoadConfiguration()` builds one read-only `Document` from two YAML files
in the configuration directory (highest precedence last):

  1. `.base.yaml`                  defaults shared by every mode.
  2. `.dev.yaml` or `.prod.yaml`   overrides for the selected mode.

Each file is read and parsed on its own so a failure names the exact
path.  The two maps are folded into a koanf tree with a shallow merge
function; koanf's default deep merge is never used.

Instrumentation
---------------
  • DEBUG spans: directory discovery, each document read.
  • ERROR spans: missing file, YAML parse failure.
  • INFO  span:  final “config loaded” with mode, directory, and key count.
  • Logs use the global sugared logger (`zap.S()`).

Notes
-----
  • `DefaultDir()` climbs the cwd tree until it finds `env/.base.yaml`, so
    the tools work from any sub-directory of the project.  The first
    candidate is always `<cwd>/env`.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	// DirName is the conventional configuration directory below the project root.
	DirName = "env"
	// BaseFile is the base document shared by every mode.
	BaseFile = ".base.yaml"
)

/*──────────────────────────── dir discovery ────────────────────────────────*/

// DefaultDir climbs from the working directory until it finds
// env/.base.yaml.  It falls back to <cwd>/env so error messages name the
// conventional location.
func DefaultDir() string {
	wd, _ := os.Getwd()
	dir := wd
	for {
		cand := filepath.Join(dir, DirName)
		if _, err := os.Stat(filepath.Join(cand, BaseFile)); err == nil {
			return cand
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return filepath.Join(wd, DirName)
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Document is the merged configuration of one run.  It is read-only after
// LoadConfiguration returns.
type Document struct {
	mode Mode
	dir  string
	k    *koanf.Koanf
}

// LoadConfiguration reads the base and mode documents from dir and merges
// them.  An empty dir selects DefaultDir().
func LoadConfiguration(mode Mode, dir string) (*Document, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	zap.S().Debugw("config dir resolved", "dir", dir, "mode", mode.String())

	base, err := readDocument(filepath.Join(dir, BaseFile))
	if err != nil {
		return nil, err
	}
	overlay, err := readDocument(filepath.Join(dir, mode.DocumentFile()))
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	for _, m := range []map[string]any{base, overlay} {
		if err := k.Load(confmap.Provider(m, ""), nil, koanf.WithMergeFunc(shallowOverlay)); err != nil {
			zap.S().Errorw("config merge failed", "dir", dir, "err", err)
			return nil, err
		}
	}

	doc := &Document{mode: mode, dir: dir, k: k}
	zap.S().Infow("config loaded",
		"mode", mode.String(),
		"dir", dir,
		"keys", len(doc.TopLevelKeys()),
	)
	return doc, nil
}

// readDocument reads and parses one YAML file.  A missing file yields a
// FileNotFoundError, invalid YAML a ParseError.  An empty file is an empty
// document.
func readDocument(path string) (map[string]any, error) {
	b, err := file.Provider(path).ReadBytes()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.S().Errorw("config file missing", "file", path)
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		zap.S().Errorw("config file read failed", "file", path, "err", err)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	m, err := yaml.Parser().Unmarshal(b)
	if err != nil {
		zap.S().Errorw("config yaml parse failed", "file", path, "err", err)
		return nil, &ParseError{Path: path, Err: err}
	}
	if m == nil {
		m = map[string]any{}
	}
	zap.S().Debugw("config yaml loaded", "file", path, "keys", len(m))
	return m, nil
}

/*──────────────────────────── accessors ───────────────────────────────────*/

// Mode returns the mode the document was resolved for.
func (d *Document) Mode() Mode { return d.mode }

// Dir returns the configuration directory the document was read from.
func (d *Document) Dir() string { return d.dir }

// Raw returns a deep copy of the merged tree.
func (d *Document) Raw() map[string]any { return d.k.Raw() }

// TopLevelKeys returns the sorted top-level keys.
func (d *Document) TopLevelKeys() []string {
	keys := lo.Keys(d.k.Raw())
	sort.Strings(keys)
	return keys
}

// Get returns the value at a dotted path such as `githubInfo.owner`.
func (d *Document) Get(path string) (any, error) {
	if !d.k.Exists(path) {
		return nil, &MissingKeyError{Key: path}
	}
	return d.k.Get(path), nil
}

// String returns the value at path formatted as a string.
func (d *Document) String(path string) (string, error) {
	if !d.k.Exists(path) {
		return "", &MissingKeyError{Key: path}
	}
	return d.k.String(path), nil
}

// YAML renders the merged tree.
func (d *Document) YAML() ([]byte, error) {
	return d.k.Marshal(yaml.Parser())
}
