// internal/config/settings.go
//
// Settings extraction and secret-reference resolution.
//
// A string leaf of the form `vault:<mount>/<path>#<key>` is a reference
// to a KV-v2 secret.  References are replaced before unmarshal, so the
// typed Settings only ever hold plain values.
package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// SecretRefPrefix marks a string value as a secret reference.
const SecretRefPrefix = "vault:"

// SecretResolver turns a reference (without the prefix) into its value.
type SecretResolver interface {
	ResolveSecret(ctx context.Context, ref string) (string, error)
}

// SecretRefs returns the sorted dotted keys whose value is a secret reference.
func (d *Document) SecretRefs() []string {
	var keys []string
	for key, val := range d.k.All() {
		if s, ok := val.(string); ok && strings.HasPrefix(s, SecretRefPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Settings unmarshals, resolves, and validates the typed view.  r may be
// nil when the document holds no secret references.
func (d *Document) Settings(ctx context.Context, r SecretResolver) (*Settings, error) {
	k := d.k
	if refs := d.SecretRefs(); len(refs) > 0 {
		if r == nil {
			return nil, fmt.Errorf("key %s holds a secret reference but no resolver is configured", refs[0])
		}
		flat := d.k.All()
		for _, key := range refs {
			ref := strings.TrimPrefix(flat[key].(string), SecretRefPrefix)
			val, err := r.ResolveSecret(ctx, ref)
			if err != nil {
				zap.S().Errorw("config secret resolve failed", "key", key, "err", err)
				return nil, fmt.Errorf("resolve %s: %w", key, err)
			}
			flat[key] = val
		}
		k = koanf.New(".")
		if err := k.Load(confmap.Provider(flat, "."), nil); err != nil {
			return nil, err
		}
		zap.S().Debugw("config secrets resolved", "count", len(refs))
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}
	s.applyDefaults()

	if err := validateStruct(&s); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}
	return &s, nil
}
