// internal/vault/vault.go
//
// Thin HashiCorp Vault client used to resolve database credentials.
//
// Context
// -------
// Config values may carry a `vault:mount/path#key` indirection instead of a
// literal secret, keeping credentials out of YAML files and git history.
// The config loader calls GetKV once per such value during boot; results
// are cached per path#key with a short TTL so repeated Reload() calls do
// not hammer the server.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR  – scheme and host of the Vault server.
// • VAULT_TOKEN – access token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Client is safe for concurrent use.  Create once at startup.  The zero
// value is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // "path#key" → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client from the standard environment variables.
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

	return &Client{api: apiCli, cache: make(map[string]cached)}, nil
}

// GetKV reads one key from a KV-v2 secret mounted at mount/path, consulting
// the cache first.  ttl bounds how long the value may be served from cache.
func (c *Client) GetKV(ctx context.Context, mount, path, key string, ttl time.Duration) (string, error) {
	ck := mount + "/" + path + "#" + key

	c.cacheMu.RLock()
	if hit, ok := c.cache[ck]; ok && time.Now().Before(hit.exp) {
		c.cacheMu.RUnlock()
		return hit.val, nil
	}
	c.cacheMu.RUnlock()

	sec, err := c.api.KVv2(mount).Get(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault read %s/%s: %w", mount, path, err)
	}
	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("vault read %s/%s: key %q absent", mount, path, key)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault read %s/%s: key %q is not a string", mount, path, key)
	}

	c.cacheMu.Lock()
	c.cache[ck] = cached{val: val, exp: time.Now().Add(ttl)}
	c.cacheMu.Unlock()
	return val, nil
}
