// Package consumption builds an hourly household load profile from the
// dwelling's energy-efficiency rating and its selected appliances.
package consumption

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// Baseline kWh/m²/year by energy-efficiency class, covering heating,
// lighting and ventilation.
var classCoefficients = map[string]float64{
	"A": 20, "B": 25, "C": 35, "D": 50, "E": 70, "F": 90, "G": 120,
}

// Hours with a fixed multiplicative demand penalty.
var peakHours = map[int]struct{}{7: {}, 8: {}, 12: {}, 18: {}, 19: {}, 20: {}}

const peakFactor = 1.2

// Synthesizer generates consumption profiles against an immutable catalog.
type Synthesizer struct {
	catalog *Catalog
}

// NewSynthesizer builds a synthesizer; a nil catalog uses the built-in one.
func NewSynthesizer(catalog *Catalog) *Synthesizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Synthesizer{catalog: catalog}
}

// Simulate produces the household's hourly consumption for one year. It
// never fails: unknown appliances contribute zero and are logged.
func (s *Synthesizer) Simulate(ctx context.Context, h domain.Household) *domain.ConsumptionResult {
	logger := zerolog.Ctx(ctx)

	baseline := s.baselineProfile(h)
	appliances := s.applianceProfile(ctx, h, logger)

	total := make([]float64, domain.HoursPerYear)
	var baselineKWh, applianceKWh float64
	for i := range total {
		total[i] = baseline[i] + appliances[i]
		baselineKWh += baseline[i]
		applianceKWh += appliances[i]
	}

	s.applyPatterns(total, h.Occupants, householdSeed(h))

	var annual, peak float64
	for _, v := range total {
		annual += v
		if v > peak {
			peak = v
		}
	}

	return &domain.ConsumptionResult{
		HourlyKW:     total,
		AnnualKWh:    annual,
		BaselineKWh:  baselineKWh,
		ApplianceKWh: applianceKWh,
		PeakKW:       peak,
	}
}

// baselineProfile spreads the class-derived annual total over the year with
// a winter-heavy seasonal cosine and a day/night shape, then normalizes so
// the sum matches the annual figure exactly.
func (s *Synthesizer) baselineProfile(h domain.Household) []float64 {
	coeff, ok := classCoefficients[h.EfficiencyClass]
	if !ok {
		coeff = classCoefficients["D"]
	}

	annualKWh := coeff * h.FloorAreaM2
	annualKWh *= 0.8 + 0.1*float64(h.Occupants-1) // occupancy factor

	profile := make([]float64, domain.HoursPerYear)
	var sum float64
	for i := range profile {
		doy := i/24 + 1
		hour := i % 24

		seasonal := 1.5 + 0.8*cos2pi(float64(doy-15)/365)

		var daily float64
		switch {
		case hour < 6 || hour > 22:
			daily = 0.4
		case isWeekend(i):
			daily = 1.2
		case hour >= 9 && hour <= 17:
			daily = 0.8 // workday absence
		default:
			daily = 1.1
		}

		profile[i] = seasonal * daily
		sum += profile[i]
	}

	if sum > 0 {
		scale := annualKWh / sum
		for i := range profile {
			profile[i] *= scale
		}
	}
	return profile
}

func (s *Synthesizer) applianceProfile(ctx context.Context, h domain.Household, logger *zerolog.Logger) []float64 {
	profile := make([]float64, domain.HoursPerYear)

	occupancyScale := float64(h.Occupants) / 2
	if occupancyScale > 1.5 {
		occupancyScale = 1.5
	}

	for _, sel := range h.Appliances {
		app, ok := s.catalog.Find(sel.Name, sel.Model)
		if !ok {
			logger.Warn().
				Str("appliance", sel.Name).
				Str("model", sel.Model).
				Msg("appliance not found in catalog, contributing zero load")
			continue
		}

		usageScale := sel.WeeklyUses / 7
		for i := range profile {
			intensity := app.Profile.Intensity(i%24, isWeekend(i))
			if intensity == 0 {
				continue
			}
			profile[i] += app.PowerKW * intensity * usageScale * occupancyScale
		}
	}
	return profile
}

// applyPatterns adds bounded noise, the declared peak-hour penalty and the
// final clip to the household's plausible power ceiling.
func (s *Synthesizer) applyPatterns(profile []float64, occupants int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	ceiling := 6 + 3*float64(occupants)

	for i := range profile {
		v := profile[i] * (1 + rng.NormFloat64()*0.1)
		if _, peak := peakHours[i%24]; peak {
			v *= peakFactor
		}
		if v < 0 {
			v = 0
		}
		if v > ceiling {
			v = ceiling
		}
		profile[i] = v
	}
}

// householdSeed keeps the noise deterministic per household, so repeated
// runs of the same request agree.
func householdSeed(h domain.Household) int64 {
	hash := fnv.New64a()
	hash.Write([]byte(h.EfficiencyClass))
	hash.Write([]byte{byte(h.Occupants)})
	hash.Write([]byte{byte(int(h.FloorAreaM2) % 256)})
	for _, a := range h.Appliances {
		hash.Write([]byte(a.Name))
	}
	return int64(hash.Sum64())
}

// isWeekend maps an hour index to a day-of-week with the fixed convention
// that the simulated year starts on a Monday.
func isWeekend(hourIdx int) bool {
	dow := (hourIdx / 24) % 7
	return dow == 5 || dow == 6
}

func cos2pi(x float64) float64 {
	return math.Cos(2 * math.Pi * x)
}
