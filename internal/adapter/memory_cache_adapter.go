package adapter

import (
	"context"
	"sync"
	"time"

	"slidequiz/internal/domain"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired entries are evicted.
const DefaultCleanupInterval = time.Minute

// MemoryCacheAdapter implements domain.Cache in process memory. It is used
// when no Redis address is configured. Entries without an expiration live for
// the process lifetime; expired ones are evicted in the background.
type MemoryCacheAdapter struct {
	mu    sync.Mutex // serializes writers so Take is atomic
	items *gocache.Cache
}

// NewMemoryCacheAdapter creates an empty in-memory cache.
func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return NewMemoryCacheAdapterWithCleanup(DefaultCleanupInterval)
}

// NewMemoryCacheAdapterWithCleanup creates an empty cache that evicts expired
// entries every interval.
func NewMemoryCacheAdapterWithCleanup(interval time.Duration) *MemoryCacheAdapter {
	return &MemoryCacheAdapter{items: gocache.New(gocache.NoExpiration, interval)}
}

func (m *MemoryCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v.(string), nil
}

func (m *MemoryCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	m.mu.Lock()
	m.items.Set(key, value, expiration)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheAdapter) Take(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items.Get(key)
	if !ok {
		return "", domain.ErrCacheMiss
	}
	m.items.Delete(key)
	return v.(string), nil
}

func (m *MemoryCacheAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	m.items.Delete(key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (m *MemoryCacheAdapter) Len() int {
	return m.items.ItemCount()
}

func (m *MemoryCacheAdapter) Ping(ctx context.Context) error {
	return nil
}

var _ domain.Cache = (*MemoryCacheAdapter)(nil)
