package stemcache

import (
	"context"

	"github.com/llehouerou/stems/internal/provider"
)

// Verify Cached implements provider.Provider at compile time.
var _ provider.Provider = (*Cached)(nil)

// Cached serves provider results from a Cache and fills it on misses.
type Cached struct {
	next  provider.Provider
	cache *Cache

	// OnError, when set, receives cache read/write failures. They never fail
	// the request: the backend answer is still returned.
	OnError func(err error)
}

// Wrap returns a provider that consults cache before next.
func Wrap(next provider.Provider, cache *Cache) *Cached {
	return &Cached{next: next, cache: cache}
}

// Stems implements provider.Provider.
func (c *Cached) Stems(ctx context.Context, source string) (provider.Result, error) {
	res, ok, err := c.cache.Get(ctx, source)
	if err != nil {
		c.report(err)
	}
	if ok {
		return res, nil
	}

	res, err = c.next.Stems(ctx, source)
	if err != nil {
		return provider.Result{}, err
	}

	if err := c.cache.Put(ctx, source, res); err != nil {
		c.report(err)
	}
	return res, nil
}

func (c *Cached) report(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}
