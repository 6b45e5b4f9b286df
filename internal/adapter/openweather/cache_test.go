package openweather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/observability"
)

// --- mock for cache tests ---

type countingProvider struct {
	calls int
	obs   domain.Observation
	err   error
}

func (m *countingProvider) Current(_ context.Context, city string) (domain.Observation, error) {
	m.calls++
	if m.err != nil {
		return domain.Observation{}, m.err
	}
	obs := m.obs
	obs.City = city
	return obs, nil
}

// --- CachedProvider tests ---

func TestCachedProvider_CacheHit(t *testing.T) {
	inner := &countingProvider{obs: domain.Observation{Temp: 18}}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedProvider(inner, 10, time.Minute, metrics)

	o1, err := cached.Current(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", o1.City)

	o2, err := cached.Current(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, o1, o2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WeatherCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WeatherCache.WithLabelValues("miss")), 0)
}

func TestCachedProvider_KeyIsCaseInsensitive(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, _ = cached.Current(context.Background(), "Paris")
	_, _ = cached.Current(context.Background(), " paris ")

	assert.Equal(t, 1, inner.calls)
}

func TestCachedProvider_DifferentCitiesMiss(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, _ = cached.Current(context.Background(), "Paris")
	_, _ = cached.Current(context.Background(), "Lyon")

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, err := cached.Current(context.Background(), "Paris")
	require.Error(t, err)
	_, err = cached.Current(context.Background(), "Paris")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.Len())
}

func TestCachedProvider_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 2, time.Minute, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, _ = cached.Current(ctx, "a")
	_, _ = cached.Current(ctx, "b")
	_, _ = cached.Current(ctx, "a") // promote "a"
	_, _ = cached.Current(ctx, "c") // evicts "b"
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.Current(ctx, "a")
	assert.Equal(t, 3, inner.calls, "a was used recently, should still be cached")

	_, _ = cached.Current(ctx, "b")
	assert.Equal(t, 4, inner.calls, "b should have been evicted")
}

func TestCachedProvider_EntriesExpire(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, 20*time.Millisecond, observability.NewMetricsForTesting())

	_, _ = cached.Current(context.Background(), "Paris")
	time.Sleep(60 * time.Millisecond)
	_, _ = cached.Current(context.Background(), "Paris")

	assert.Equal(t, 2, inner.calls)
}
