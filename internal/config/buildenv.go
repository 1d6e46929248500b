// internal/config/buildenv.go
//
// Collects the process variables that are forwarded to the build project,
// e.g. `VUE_APP_BASE_URL`.  Call it after the environment overlay so
// values from `.<mode>.env` are included.
package config

import (
	"github.com/knadh/koanf/providers/env"
	koanf "github.com/knadh/koanf/v2"
)

// BuildVariables returns every process variable whose name starts with
// prefix, keyed by its full name.  An empty prefix returns an empty map.
func BuildVariables(prefix string) (map[string]string, error) {
	out := map[string]string{}
	if prefix == "" {
		return out, nil
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(prefix, ".", func(s string) string { return s }), nil); err != nil {
		return nil, err
	}
	for _, key := range k.Keys() {
		out[key] = k.String(key)
	}
	return out, nil
}
