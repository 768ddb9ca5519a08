package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation pipeline.
type Metrics struct {
	SimulationsTotal  *prometheus.CounterVec // labels: outcome={ok,invalid,error}
	SimulationSeconds prometheus.Histogram

	// Cache metrics.
	CacheLookups *prometheus.CounterVec // labels: kind={weather,production}, result={memory,disk,store,miss}

	// Weather metrics.
	WeatherSource *prometheus.CounterVec // labels: source={live,synthetic,flat}

	// Production model metrics.
	ModelOutcomes *prometheus.CounterVec // labels: tier, outcome={ok,failed,rejected}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.SimulationsTotal,
		m.SimulationSeconds,
		m.CacheLookups,
		m.WeatherSource,
		m.ModelOutcomes,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simu_solaire",
			Name:      "simulations_total",
			Help:      "Completed simulation runs by outcome.",
		}, []string{"outcome"}),
		SimulationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "simu_solaire",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of a full simulation run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simu_solaire",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by entry kind and serving tier, or miss.",
		}, []string{"kind", "result"}),
		WeatherSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simu_solaire",
			Name:      "weather_source_total",
			Help:      "Weather resolutions by the source that produced the series.",
		}, []string{"source"}),
		ModelOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simu_solaire",
			Name:      "model_outcomes_total",
			Help:      "Production model attempts by tier and outcome.",
		}, []string{"tier", "outcome"}),
	}
}
