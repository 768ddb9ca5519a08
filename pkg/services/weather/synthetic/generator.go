// Package synthetic generates a plausible hourly weather year from climate
// zone parameters when no live irradiance service is reachable.
package synthetic

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
	"github.com/Blastoche/simu-solaire/pkg/services/solar"
)

const clearSkyFactor = 0.7 // typical clear-sky atmospheric transmission

// Generator builds synthetic weather series. The zero value is ready to use.
type Generator struct{}

// Generate produces a full synthetic year for the location. The seed makes
// the output deterministic for a given fingerprint, so cache tiers and
// recomputation agree. An error means the output failed its own sanity
// checks; callers should degrade to Flat.
func (g Generator) Generate(loc domain.Location, seed int64) (*domain.WeatherSeries, error) {
	zone := ClassifyZone(loc.Latitude, loc.Longitude)
	rng := rand.New(rand.NewSource(seed))

	s := domain.NewWeatherSeries(domain.ProvenanceSynthetic)
	s.Advisory = fmt.Sprintf("synthetic weather from climate zone %q", zone.Name)

	elevation := make([]float64, domain.HoursPerYear)
	for i := range elevation {
		elevation[i] = solar.Elevation(loc.Latitude, dayOfYear(i), hourOfDay(i))
	}

	g.generateGHI(s, loc, zone, elevation, rng)
	g.splitIrradiance(s, elevation)
	g.generateTemperature(s, zone, rng)
	g.generateWind(s, zone, rng)
	g.generateHumidity(s, zone, rng)
	g.applyCrossCorrelations(s)

	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Flat is the last-resort climatology: a clear-sky day shape scaled to the
// zone's annual target, constant temperature and wind. It cannot fail.
func (g Generator) Flat(loc domain.Location) *domain.WeatherSeries {
	zone := ClassifyZone(loc.Latitude, loc.Longitude)

	s := domain.NewWeatherSeries(domain.ProvenanceSynthetic)
	s.Advisory = fmt.Sprintf("flat climatology for zone %q", zone.Name)

	var annual float64
	for i := range s.GHI {
		ghi := solar.ExtraterrestrialGHI(loc.Latitude, dayOfYear(i), hourOfDay(i)) * clearSkyFactor
		s.GHI[i] = ghi
		annual += ghi / 1000
	}
	if annual > 0 {
		scale := zone.AnnualGHI / annual
		for i := range s.GHI {
			s.GHI[i] *= scale
		}
	}
	for i := range s.GHI {
		elev := solar.Elevation(loc.Latitude, dayOfYear(i), hourOfDay(i))
		dni, dhi := erbsSplit(s.GHI[i], elev)
		s.DNI[i], s.DHI[i] = dni, dhi
		s.TempAir[i] = zone.TempAvg
		s.Wind[i] = 1
		s.Humidity[i] = 60
	}
	return s
}

func (g Generator) generateGHI(s *domain.WeatherSeries, loc domain.Location, zone Zone, elevation []float64, rng *rand.Rand) {
	cloud := cloudPattern(rng, zone.CloudFactor)

	var annual float64
	for i := range s.GHI {
		doy := dayOfYear(i)
		theoretical := solar.ExtraterrestrialGHI(loc.Latitude, doy, hourOfDay(i))

		seasonal := (1 + 0.2*math.Cos(2*math.Pi*float64(doy-172)/365)) * zone.SeasonalVariation
		ghi := theoretical * clearSkyFactor * seasonal * (1 - zone.CloudFactor)
		ghi *= cloud[i]
		ghi *= 1 + rng.NormFloat64()*0.1

		if ghi < 0 {
			ghi = 0
		}
		s.GHI[i] = ghi
		annual += ghi / 1000
	}

	// Normalize so the annual sum matches the zone target.
	if annual > 0 {
		scale := zone.AnnualGHI / annual
		for i := range s.GHI {
			s.GHI[i] *= scale
		}
	}
}

// cloudPattern layers multi-day cloud fronts over small-scale passing
// clouds, renormalized to the zone's mean cloudiness.
func cloudPattern(rng *rand.Rand, cloudFactor float64) []float64 {
	pattern := make([]float64, domain.HoursPerYear)
	for i := range pattern {
		pattern[i] = 1
	}

	fronts := domain.HoursPerYear / (24 * 3) // roughly one front every three days
	for f := 0; f < fronts; f++ {
		start := rng.Intn(domain.HoursPerYear - 72)
		duration := 24 + rng.Intn(96) // one to five days
		end := start + duration
		if end > domain.HoursPerYear {
			end = domain.HoursPerYear
		}
		intensity := 0.2 + rng.Float64()*0.6
		for i := start; i < end; i++ {
			pattern[i] *= intensity
		}
	}

	var sum float64
	for i := range pattern {
		pattern[i] *= 1 + rng.NormFloat64()*0.15
		sum += pattern[i]
	}

	mean := sum / float64(len(pattern))
	target := 1 - cloudFactor
	if mean > 0 {
		for i := range pattern {
			pattern[i] = clamp(pattern[i]*target/mean, 0.1, 1.0)
		}
	}
	return pattern
}

func (g Generator) splitIrradiance(s *domain.WeatherSeries, elevation []float64) {
	for i := range s.GHI {
		s.DNI[i], s.DHI[i] = erbsSplit(s.GHI[i], elevation[i])
	}
}

// erbsSplit derives the direct/diffuse decomposition from the Erbs
// clearness-index correlation.
func erbsSplit(ghi, elevation float64) (dni, dhi float64) {
	if ghi <= 0 {
		return 0, 0
	}
	sinElev := math.Sin(rad(math.Max(elevation, 1)))
	kt := clamp(ghi/(solar.Constant*sinElev), 0, 1)

	var diffuseFraction float64
	switch {
	case kt <= 0.22:
		diffuseFraction = 1.0 - 0.09*kt
	case kt <= 0.8:
		diffuseFraction = 0.9511 - 0.1604*kt + 4.388*kt*kt -
			16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	default:
		diffuseFraction = 0.165
	}

	dhi = ghi * diffuseFraction
	if elevation > 0 {
		dni = (ghi - dhi) / math.Sin(rad(elevation))
	}
	return dni, dhi
}

func (g Generator) generateTemperature(s *domain.WeatherSeries, zone Zone, rng *rand.Rand) {
	for i := range s.TempAir {
		doy := dayOfYear(i)
		seasonal := zone.TempRange / 2 * math.Cos(2*math.Pi*float64(doy-200)/365)
		diurnal := 8 * math.Cos(2*math.Pi*float64(hourOfDay(i)-14)/24)
		s.TempAir[i] = zone.TempAvg + seasonal + diurnal + rng.NormFloat64()*2
	}
}

func (g Generator) generateWind(s *domain.WeatherSeries, zone Zone, rng *rand.Rand) {
	for i := range s.Wind {
		doy := dayOfYear(i)
		seasonal := 1 + 0.3*math.Cos(2*math.Pi*float64(doy-50)/365)
		diurnal := 1 + 0.2*math.Cos(2*math.Pi*float64(hourOfDay(i)-15)/24)
		noise := math.Exp(rng.NormFloat64() * 0.3) // log-normal
		s.Wind[i] = clamp(zone.BaseWind*seasonal*diurnal*noise, 0.5, 15)
	}
}

func (g Generator) generateHumidity(s *domain.WeatherSeries, zone Zone, rng *rand.Rand) {
	base := 60.0
	if zone.CloudFactor > 0.5 {
		base = 70
	}
	for i := range s.Humidity {
		doy := dayOfYear(i)
		seasonal := 10 * math.Cos(2*math.Pi*float64(doy-20)/365)
		diurnal := -15 * math.Cos(2*math.Pi*float64(hourOfDay(i)-6)/24)
		s.Humidity[i] = clamp(base+seasonal+diurnal+rng.NormFloat64()*5, 20, 95)
	}
}

// applyCrossCorrelations nudges the independent channels toward each other:
// sunnier hours run warmer and drier, the dimmest hours emulate rain with a
// humidity bump and a wind penalty.
func (g Generator) applyCrossCorrelations(s *domain.WeatherSeries) {
	meanGHI, maxGHI := meanMax(s.GHI)
	meanTemp, _ := meanMax(s.TempAir)
	stdTemp := stddev(s.TempAir, meanTemp)

	if maxGHI > 0 {
		for i := range s.TempAir {
			s.TempAir[i] += (s.GHI[i] - meanGHI) / maxGHI * 3
		}
	}
	if stdTemp > 0 {
		for i := range s.Humidity {
			s.Humidity[i] -= (s.TempAir[i] - meanTemp) / stdTemp * 5
		}
	}

	rainThreshold := quantile(s.GHI, 0.15)
	for i := range s.GHI {
		if s.GHI[i] < rainThreshold {
			s.Humidity[i] += 15
			s.Wind[i] *= 0.7
		}
		s.Humidity[i] = clamp(s.Humidity[i], 20, 95)
		s.Wind[i] = clamp(s.Wind[i], 0.5, 15)
	}
}

func validate(s *domain.WeatherSeries) error {
	if s.Len() != domain.HoursPerYear {
		return fmt.Errorf("synthetic series has %d samples, want %d", s.Len(), domain.HoursPerYear)
	}
	for i, v := range s.GHI {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("synthetic GHI sample %d is implausible: %f", i, v)
		}
	}
	for i, v := range s.TempAir {
		if v < -60 || v > 60 {
			return fmt.Errorf("synthetic temperature sample %d is implausible: %f", i, v)
		}
	}
	return nil
}

// dayOfYear is 1-based over the fixed non-leap year.
func dayOfYear(hour int) int { return hour/24 + 1 }

func hourOfDay(hour int) int { return hour % 24 }

func rad(d float64) float64 { return d * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func meanMax(vs []float64) (mean, max float64) {
	var sum float64
	for _, v := range vs {
		sum += v
		if v > max {
			max = v
		}
	}
	if len(vs) > 0 {
		mean = sum / float64(len(vs))
	}
	return mean, max
}

func stddev(vs []float64, mean float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vs)))
}

func quantile(vs []float64, q float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
