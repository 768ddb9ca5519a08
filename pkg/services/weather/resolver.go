// Package weather resolves an hourly weather year for a location, preferring
// the live PVGIS service and degrading to synthetic generation on any fault.
package weather

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
	"github.com/Blastoche/simu-solaire/pkg/services/fingerprint"
	"github.com/Blastoche/simu-solaire/pkg/services/weather/synthetic"
)

// Source is the live-service dependency of the resolver. *pvgis.Client
// satisfies it.
type Source interface {
	FetchHourly(ctx context.Context, loc domain.Location, year int) (*domain.WeatherSeries, error)
}

// Resolver obtains weather series. Resolve never returns an error: transport
// faults, malformed responses and generator faults all degrade to a lower
// fidelity series, visible only through the provenance label and advisory.
type Resolver struct {
	source Source
	gen    synthetic.Generator
}

// NewResolver builds a resolver around a live source. A nil source means
// synthetic-only operation.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns exactly domain.HoursPerYear samples regardless of how the
// live service behaves.
func (r *Resolver) Resolve(ctx context.Context, loc domain.Location, year int, forceSynthetic bool) *domain.WeatherSeries {
	logger := zerolog.Ctx(ctx)

	if !forceSynthetic && r.source != nil {
		s, err := r.source.FetchHourly(ctx, loc, year)
		if err == nil {
			logger.Debug().
				Float64("lat", loc.Latitude).
				Float64("lon", loc.Longitude).
				Int("year", year).
				Msg("weather resolved from live service")
			return s
		}
		logger.Warn().Err(err).Msg("live weather unavailable, falling back to synthetic generation")
	}

	seed := syntheticSeed(loc, year)
	s, err := r.gen.Generate(loc, seed)
	if err != nil {
		logger.Error().Err(err).Msg("synthetic generation failed, degrading to flat climatology")
		return r.gen.Flat(loc)
	}
	if !forceSynthetic && r.source != nil {
		s.Advisory = fmt.Sprintf("live weather service unavailable; %s", s.Advisory)
	}
	return s
}

// syntheticSeed derives the generator seed from the weather fingerprint, so
// regenerating for the same request yields an identical series.
func syntheticSeed(loc domain.Location, year int) int64 {
	fp := fingerprint.Weather(loc, year)
	return int64(binary.BigEndian.Uint64([]byte(fp)[:8]))
}
