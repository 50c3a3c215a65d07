package cache

import (
	"context"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memcached is a Store backed by memcached.
type Memcached struct {
	client *memcache.Client
}

func NewMemcached(server string) *Memcached {
	return &Memcached{client: memcache.New(server)}
}

func (m *Memcached) Get(_ context.Context, key string) ([]byte, bool) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (m *Memcached) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(ttl / time.Second),
	})
}
