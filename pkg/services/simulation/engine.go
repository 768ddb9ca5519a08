// Package simulation orchestrates the full estimation pipeline: weather
// resolution, production estimation, consumption synthesis and economic
// analysis, with the tiered cache consulted in front of the two expensive
// stages.
package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/adapters"
	"github.com/Blastoche/simu-solaire/pkg/cache"
	"github.com/Blastoche/simu-solaire/pkg/models/domain"
	"github.com/Blastoche/simu-solaire/pkg/observability"
	"github.com/Blastoche/simu-solaire/pkg/services/consumption"
	"github.com/Blastoche/simu-solaire/pkg/services/economics"
	"github.com/Blastoche/simu-solaire/pkg/services/fingerprint"
	"github.com/Blastoche/simu-solaire/pkg/services/production"
	"github.com/Blastoche/simu-solaire/pkg/services/weather"
)

// DefaultYear is used when a request leaves the weather year unset.
const DefaultYear = 2020

// Engine runs simulations. All stage dependencies are injected; the cache
// stack may be nil, which disables caching entirely.
type Engine struct {
	resolver    *weather.Resolver
	estimator   *production.Estimator
	synthesizer *consumption.Synthesizer
	analyzer    *economics.Analyzer
	cache       *cache.Stack
	metrics     *observability.Metrics
}

type Deps struct {
	Resolver    *weather.Resolver
	Estimator   *production.Estimator
	Synthesizer *consumption.Synthesizer
	Analyzer    *economics.Analyzer
	Cache       *cache.Stack
	Metrics     *observability.Metrics
}

func NewEngine(deps Deps) (*Engine, error) {
	if deps.Resolver == nil || deps.Estimator == nil || deps.Synthesizer == nil || deps.Analyzer == nil {
		return nil, fmt.Errorf("simulation engine requires resolver, estimator, synthesizer and analyzer")
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetricsForTesting()
	}
	return &Engine{
		resolver:    deps.Resolver,
		estimator:   deps.Estimator,
		synthesizer: deps.Synthesizer,
		analyzer:    deps.Analyzer,
		cache:       deps.Cache,
		metrics:     deps.Metrics,
	}, nil
}

// Run executes the pipeline. The only errors it returns are validation
// failures and production model exhaustion; every other fault degrades to a
// lower fidelity result carrying an advisory.
func (e *Engine) Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	if err := req.Validate(); err != nil {
		e.metrics.SimulationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if req.Year == 0 {
		req.Year = DefaultYear
	}

	w, weatherTier := e.resolveWeather(ctx, req)
	e.metrics.WeatherSource.WithLabelValues(weatherSourceLabel(w)).Inc()

	// Consumption depends only on the household, so it runs alongside the
	// production estimate.
	var (
		wg   sync.WaitGroup
		cons *domain.ConsumptionResult
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		cons = e.synthesizer.Simulate(ctx, req.Household)
	}()

	prod, prodTier, err := e.estimateProduction(ctx, req, w)
	wg.Wait()
	if err != nil {
		e.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	econ := e.analyzer.Analyze(ctx, prod, cons, req.InvestmentEUR, req.System.PowerKW)

	res := &domain.SimulationResult{
		Production:          *prod,
		Consumption:         *cons,
		Economics:           *econ,
		WeatherProvenance:   w.Provenance,
		Advisory:            joinAdvisories(w.Advisory, econ.Advisory),
		WeatherCacheTier:    weatherTier,
		ProductionCacheTier: prodTier,
	}

	e.metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	e.metrics.SimulationSeconds.Observe(time.Since(started).Seconds())
	logger.Info().
		Str("weather", string(w.Provenance)).
		Str("model", string(prod.Tier)).
		Float64("annual_yield_kwh", prod.AnnualYieldKWh).
		Dur("elapsed", time.Since(started)).
		Msg("simulation complete")
	return res, nil
}

// resolveWeather consults the cache before the resolver. The returned tier
// names the cache layer that served the series, empty when resolved fresh.
func (e *Engine) resolveWeather(ctx context.Context, req domain.SimulationRequest) (*domain.WeatherSeries, string) {
	logger := zerolog.Ctx(ctx)
	fp := fingerprint.Weather(req.Location, req.Year)

	if e.cache != nil {
		if entry, err := e.cache.Get(ctx, fp); err == nil {
			w, mapErr := adapters.MapCacheEntryToWeatherSeries(entry)
			if mapErr == nil {
				e.metrics.CacheLookups.WithLabelValues(cache.KindWeather, entry.Origin).Inc()
				return w, entry.Origin
			}
			logger.Warn().Err(mapErr).Str("fingerprint", fp).Msg("discarding malformed cached weather entry")
		}
		e.metrics.CacheLookups.WithLabelValues(cache.KindWeather, "miss").Inc()
	}

	w := e.resolver.Resolve(ctx, req.Location, req.Year, req.ForceSyntheticWeather)

	if e.cache != nil {
		e.cache.Put(ctx, adapters.MapWeatherSeriesToCacheEntry(fp, w, weatherRequestPayload(req)))
	}
	return w, ""
}

func (e *Engine) estimateProduction(ctx context.Context, req domain.SimulationRequest, w *domain.WeatherSeries) (*domain.ProductionResult, string, error) {
	logger := zerolog.Ctx(ctx)
	digest := fingerprint.WeatherDigest(w)
	fp := fingerprint.Production(req.Location, req.System, digest, req.ModelTier)

	if e.cache != nil {
		if entry, err := e.cache.Get(ctx, fp); err == nil {
			p, mapErr := adapters.MapCacheEntryToProductionResult(entry, req.System.PowerKW)
			if mapErr == nil {
				e.metrics.CacheLookups.WithLabelValues(cache.KindProduction, entry.Origin).Inc()
				return p, entry.Origin, nil
			}
			logger.Warn().Err(mapErr).Str("fingerprint", fp).Msg("discarding malformed cached production entry")
		}
		e.metrics.CacheLookups.WithLabelValues(cache.KindProduction, "miss").Inc()
	}

	p, err := e.estimator.Estimate(ctx, req.Location, req.System, w, req.ModelTier)
	if err != nil {
		if errors.Is(err, production.ErrModelExhausted) {
			e.metrics.ModelOutcomes.WithLabelValues("all", "failed").Inc()
		}
		return nil, "", err
	}
	e.metrics.ModelOutcomes.WithLabelValues(string(p.Tier), "ok").Inc()

	if e.cache != nil {
		e.cache.Put(ctx, adapters.MapProductionResultToCacheEntry(fp, p, productionRequestPayload(req)))
	}
	return p, "", nil
}

func weatherRequestPayload(req domain.SimulationRequest) []byte {
	b, _ := json.Marshal(map[string]any{
		"location": req.Location,
		"year":     req.Year,
	})
	return b
}

func productionRequestPayload(req domain.SimulationRequest) []byte {
	b, _ := json.Marshal(map[string]any{
		"location": req.Location,
		"system":   req.System,
	})
	return b
}

func weatherSourceLabel(w *domain.WeatherSeries) string {
	if w.Provenance == domain.ProvenanceLive {
		return "live"
	}
	if strings.HasPrefix(w.Advisory, "flat climatology") {
		return "flat"
	}
	return "synthetic"
}

func joinAdvisories(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += p
	}
	return out
}
