package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Kind names an entity collection on the backend.
type Kind string

const (
	KindItems   Kind = "items"
	KindRentals Kind = "rentals"
)

// Key identifies a cached query: an entity kind plus an optional filter
// discriminator such as a rental status.
type Key struct {
	Kind   Kind
	Filter string
}

func (k Key) String() string {
	if k.Filter == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + k.Filter
}

// staleAfter is how long a successful fetch stays fresh.
const staleAfter = 5 * time.Minute

// Cache deduplicates list fetches against the backend. Entries expire after
// the staleness window or when a mutation invalidates their kind; failures
// are never stored, so the next fetch retries against the network.
type Cache struct {
	entries *gocache.Cache
	group   singleflight.Group
}

// New returns an empty cache with the default staleness window.
func New() *Cache {
	return &Cache{
		entries: gocache.New(staleAfter, 10*time.Minute),
	}
}

// Invalidate marks every entry of the given kind stale, regardless of
// filter, forcing the next Fetch to reload.
func (c *Cache) Invalidate(kind Kind) {
	prefix := string(kind)
	for key := range c.entries.Items() {
		if key == prefix || strings.HasPrefix(key, prefix+":") {
			c.entries.Delete(key)
		}
	}
}

// Fetch returns the cached value for key when present and fresh; otherwise
// it runs loader, stores a successful result and returns it. Concurrent
// calls for the same key while a load is in flight share one underlying
// request.
func Fetch[T any](ctx context.Context, c *Cache, key Key, loader func(context.Context) (T, error)) (T, error) {
	ks := key.String()
	if cached, found := c.entries.Get(ks); found {
		return cached.(T), nil
	}

	result, err, _ := c.group.Do(ks, func() (any, error) {
		// Re-check under the flight: a concurrent call may have
		// populated the entry between the miss and the Do.
		if cached, found := c.entries.Get(ks); found {
			return cached, nil
		}
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.entries.SetDefault(ks, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
