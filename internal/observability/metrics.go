package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the weather command.
type Metrics struct {
	// Weather lookups.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,not_found,error}
	WeatherAPIDuration prometheus.Histogram
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss}

	FavouritesCount       prometheus.Gauge
	ObservationsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxtools",
			Name:      "weather_requests_total",
			Help:      "OpenWeather API requests by outcome.",
		}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wxtools",
			Name:      "weather_api_duration_seconds",
			Help:      "OpenWeather API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxtools",
			Name:      "weather_cache_total",
			Help:      "Observation cache lookups by result.",
		}, []string{"result"}),
		FavouritesCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wxtools",
			Name:      "favourites_count",
			Help:      "Number of favourite cities currently stored.",
		}),
		ObservationsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxtools",
			Name:      "observations_published_total",
			Help:      "Observations written to Kafka by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.WeatherCache,
		m.FavouritesCount,
		m.ObservationsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		WeatherRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxtools", Name: "weather_requests_total"}, []string{"outcome"}),
		WeatherAPIDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wxtools", Name: "weather_api_duration_seconds"}),
		WeatherCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxtools", Name: "weather_cache_total"}, []string{"result"}),
		FavouritesCount:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wxtools", Name: "favourites_count"}),
		ObservationsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxtools", Name: "observations_published_total"}, []string{"outcome"}),
	}
}
