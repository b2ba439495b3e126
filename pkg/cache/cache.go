// Package cache stores rendered output keyed by render parameters, so the
// preview server and repeated CLI runs skip identical layout work.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Fetch when the key is absent or expired.
// The Cache interface itself reports misses through its bool return.
var ErrCacheMiss = errors.New("cache miss")

// Fetch retrieves a value, turning a miss into ErrCacheMiss so callers
// have a single error path.
func Fetch(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any underlying resources.
	Close() error
}

// Keyer derives cache keys from render parameters.
type Keyer interface {
	Key(parts ...any) string
}

// DefaultKeyer hashes the parameters into a fixed-width key under the
// "render" namespace.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard render keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// Key implements Keyer.
func (DefaultKeyer) Key(parts ...any) string {
	return hashKey("render", parts...)
}

// ScopedKeyer prepends a prefix to every key from an inner keyer, giving
// concurrent server sessions separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with a key prefix. A nil inner falls back to
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Key implements Keyer.
func (k *ScopedKeyer) Key(parts ...any) string {
	return k.prefix + k.inner.Key(parts...)
}
