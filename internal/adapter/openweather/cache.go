package openweather

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/observability"
)

// CachedProvider wraps a WeatherProvider with an expiring in-memory LRU cache.
// Keys are case-insensitive city names.
type CachedProvider struct {
	inner   domain.WeatherProvider
	cache   *expirable.LRU[string, domain.Observation]
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a provider. Entries are
// evicted after ttl or when more than maxEntries are held.
func NewCachedProvider(inner domain.WeatherProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   expirable.NewLRU[string, domain.Observation](maxEntries, nil, ttl),
		metrics: metrics,
	}
}

func (c *CachedProvider) Current(ctx context.Context, city string) (domain.Observation, error) {
	key := cacheKey(city)
	if obs, ok := c.cache.Get(key); ok {
		c.metrics.WeatherCache.WithLabelValues("hit").Inc()
		return obs, nil
	}
	c.metrics.WeatherCache.WithLabelValues("miss").Inc()

	obs, err := c.inner.Current(ctx, city)
	if err != nil {
		// Errors are not cached so a transient failure can be retried.
		return obs, err
	}
	c.cache.Add(key, obs)
	return obs, nil
}

// Len reports the number of live cache entries.
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
