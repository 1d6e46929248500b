// internal/secrets/vault.go
//
// Vault-backed resolver for `vault:` references in configuration values.
//
// Context
// -------
//   - Wraps the HashiCorp Vault Go SDK with KV-v2 lookups and per-reference
//     caching.  Concurrent lookups of the same reference share one request.
//   - Satisfies config.SecretResolver, so `Document.Settings()` can replace
//     `vault:secret/webstack#connection` with the stored value.
//   - Created only when the merged configuration holds at least one
//     reference; a run without references never contacts Vault.
//
// Public workflow
// ---------------
//  1. cli, err := secrets.New()                          // during boot.
//  2. s,   err := doc.Settings(ctx, cli)                  // resolves refs.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – token used for every lookup.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//
// SECTION 1.  Public façade
//

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client
	sfg singleflight.Group

	cacheMu sync.RWMutex
	cache   map[string]string // canonical mount/path#key → value.
}

// New constructs a Vault client from the standard VAULT_* variables.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{api: apiCli, cache: make(map[string]string)}, nil
}

// ResolveSecret resolves a reference of the form `<mount>/<path>#<key>`.
func (c *Client) ResolveSecret(ctx context.Context, ref string) (string, error) {
	secretPath, key, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, secretPath, key)
}

// GetKV fetches a single key from a KV-v2 secret.  Values are cached for
// the lifetime of the client.
func (c *Client) GetKV(ctx context.Context, secretPath, key string) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	c.cacheMu.RLock()
	if v, ok := c.cache[canonical]; ok {
		c.cacheMu.RUnlock()
		return v, nil
	}
	c.cacheMu.RUnlock()

	v, err, _ := c.sfg.Do(canonical, func() (interface{}, error) {
		mount, rel := splitMount(secretPath)
		sec, err := c.api.KVv2(mount).Get(ctx, rel)
		if err != nil {
			return nil, fmt.Errorf("vault get %s: %w", secretPath, err)
		}

		raw, ok := sec.Data[key]
		if !ok {
			return nil, fmt.Errorf("key %q not found in secret %q", key, secretPath)
		}
		sval, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("value at %s#%s is not a string", secretPath, key)
		}

		c.cacheMu.Lock()
		c.cache[canonical] = sval
		c.cacheMu.Unlock()
		zap.S().Debugw("vault secret fetched", "path", secretPath, "key", key)
		return sval, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

//
// SECTION 2.  Helpers
//

// ParseRef splits `<mount>/<path>#<key>` into the secret path and key.
func ParseRef(ref string) (secretPath, key string, err error) {
	secretPath, key, ok := strings.Cut(ref, "#")
	if !ok || key == "" || !strings.Contains(secretPath, "/") {
		return "", "", fmt.Errorf("malformed secret reference %q, want <mount>/<path>#<key>", ref)
	}
	return secretPath, key, nil
}

func splitMount(p string) (mount, rel string) {
	if p == "" {
		return "", ""
	}
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}
