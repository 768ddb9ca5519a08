package adapters

import (
	"fmt"

	"github.com/Blastoche/simu-solaire/pkg/cache"
	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// Metadata keys persisted alongside cached series.
const (
	metaProvenance = "provenance"
	metaAdvisory   = "advisory"
	metaTier       = "tier"
)

func MapWeatherSeriesToCacheEntry(fingerprint string, w *domain.WeatherSeries, request []byte) *cache.Entry {
	meta := map[string]string{metaProvenance: string(w.Provenance)}
	if w.Advisory != "" {
		meta[metaAdvisory] = w.Advisory
	}

	return &cache.Entry{
		Fingerprint: fingerprint,
		Kind:        cache.KindWeather,
		Columns: []cache.Column{
			{Name: "ghi", Values: w.GHI},
			{Name: "dni", Values: w.DNI},
			{Name: "dhi", Values: w.DHI},
			{Name: "temp_air", Values: w.TempAir},
			{Name: "wind", Values: w.Wind},
			{Name: "humidity", Values: w.Humidity},
		},
		Meta:    meta,
		Request: request,
	}
}

func MapCacheEntryToWeatherSeries(e *cache.Entry) (*domain.WeatherSeries, error) {
	w := &domain.WeatherSeries{
		GHI:        e.Column("ghi"),
		DNI:        e.Column("dni"),
		DHI:        e.Column("dhi"),
		TempAir:    e.Column("temp_air"),
		Wind:       e.Column("wind"),
		Humidity:   e.Column("humidity"),
		Provenance: domain.Provenance(e.Meta[metaProvenance]),
		Advisory:   e.Meta[metaAdvisory],
	}
	if len(w.GHI) != domain.HoursPerYear {
		return nil, fmt.Errorf("cached weather entry %s holds %d hours, want %d",
			e.Fingerprint, len(w.GHI), domain.HoursPerYear)
	}
	return w, nil
}

func MapProductionResultToCacheEntry(fingerprint string, p *domain.ProductionResult, request []byte) *cache.Entry {
	return &cache.Entry{
		Fingerprint: fingerprint,
		Kind:        cache.KindProduction,
		Columns: []cache.Column{
			{Name: "power_kw", Values: p.HourlyKW},
		},
		Meta:        map[string]string{metaTier: string(p.Tier)},
		Request:     request,
		AnnualYield: p.AnnualYieldKWh,
	}
}

func MapCacheEntryToProductionResult(e *cache.Entry, ratedPowerKW float64) (*domain.ProductionResult, error) {
	hourly := e.Column("power_kw")
	if len(hourly) != domain.HoursPerYear {
		return nil, fmt.Errorf("cached production entry %s holds %d hours, want %d",
			e.Fingerprint, len(hourly), domain.HoursPerYear)
	}

	peak := 0.0
	for _, v := range hourly {
		if v > peak {
			peak = v
		}
	}

	p := &domain.ProductionResult{
		HourlyKW:       hourly,
		AnnualYieldKWh: e.AnnualYield,
		PeakKW:         peak,
		Tier:           domain.ModelTier(e.Meta[metaTier]),
	}
	if ratedPowerKW > 0 {
		p.CapacityFactor = e.AnnualYield / (ratedPowerKW * float64(len(hourly)))
	}
	return p, nil
}
