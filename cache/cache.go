// Package cache provides pluggable read-through stores for the client's
// handle and profile lookups.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is the minimal cache surface the client consumes. Implementations
// must be safe for concurrent use. A miss is (nil, false); backend failures
// are treated as misses so caching never breaks a call.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Memory is an in-process Store.
type Memory struct {
	inner *gocache.Cache
}

// NewMemory builds an in-process store whose entries expire after ttl and are
// swept on the given interval.
func NewMemory(ttl, sweep time.Duration) *Memory {
	return &Memory{inner: gocache.New(ttl, sweep)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, found := m.inner.Get(key)
	if !found {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.inner.Set(key, value, ttl)
}
