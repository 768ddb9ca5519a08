package production

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
	"github.com/Blastoche/simu-solaire/pkg/services/weather/synthetic"
)

var (
	paris  = domain.Location{Latitude: 48.85, Longitude: 2.35, Tilt: 30, Azimuth: 180}
	system = domain.PVSystem{PowerKW: 3}
)

func parisWeather(t *testing.T) *domain.WeatherSeries {
	t.Helper()
	var g synthetic.Generator
	s, err := g.Generate(paris, 42)
	require.NoError(t, err)
	return s
}

// fixedModel returns a flat series tuned to a target annual yield per kW.
type fixedModel struct {
	tier       domain.ModelTier
	yieldPerKW float64
	err        error
}

func (m fixedModel) Tier() domain.ModelTier { return m.tier }

func (m fixedModel) Estimate(_ context.Context, _ domain.Location, sys domain.PVSystem, _ *domain.WeatherSeries) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	hourly := make([]float64, domain.HoursPerYear)
	perHour := m.yieldPerKW * sys.PowerKW / float64(domain.HoursPerYear)
	for i := range hourly {
		hourly[i] = perHour
	}
	return hourly, nil
}

func TestEstimateUsesPhysicalModelFirst(t *testing.T) {
	e := DefaultChain()

	res, err := e.Estimate(context.Background(), paris, system, parisWeather(t), "")
	require.NoError(t, err)

	assert.Equal(t, domain.TierPhysical, res.Tier)
	require.Len(t, res.HourlyKW, domain.HoursPerYear)
	assert.LessOrEqual(t, res.PeakKW, system.PowerKW*(1+domain.RatedPowerTolerance))
	// A 3 kW rooftop system near Paris lands between 2500 and 5500 kWh a year.
	assert.GreaterOrEqual(t, res.AnnualYieldKWh, 2500.0)
	assert.LessOrEqual(t, res.AnnualYieldKWh, 5500.0)
	assert.GreaterOrEqual(t, res.CapacityFactor, 0.0)
	assert.LessOrEqual(t, res.CapacityFactor, 1.0)
}

func TestEstimateFallsThroughFailedTiers(t *testing.T) {
	e := NewEstimator(
		fixedModel{tier: domain.TierPhysical, err: errors.New("missing channel")},
		fixedModel{tier: domain.TierEmpirical, yieldPerKW: 1000},
	)

	res, err := e.Estimate(context.Background(), paris, system, parisWeather(t), "")
	require.NoError(t, err)
	assert.Equal(t, domain.TierEmpirical, res.Tier)
}

func TestEstimateSanityGateRejectsImplausibleYield(t *testing.T) {
	e := NewEstimator(
		fixedModel{tier: domain.TierEmpirical, yieldPerKW: 100}, // far below plausible
		EmergencyModel{},
	)

	res, err := e.Estimate(context.Background(), paris, system, parisWeather(t), "")
	require.NoError(t, err)
	assert.Equal(t, domain.TierEmergency, res.Tier)
}

func TestEstimateSanityGateSkipsPhysicalTier(t *testing.T) {
	e := NewEstimator(
		fixedModel{tier: domain.TierPhysical, yieldPerKW: 100},
	)

	res, err := e.Estimate(context.Background(), paris, system, parisWeather(t), "")
	require.NoError(t, err)
	assert.Equal(t, domain.TierPhysical, res.Tier)
}

func TestEstimatePinnedTier(t *testing.T) {
	e := DefaultChain()

	res, err := e.Estimate(context.Background(), paris, system, parisWeather(t), domain.TierMathematical)
	require.NoError(t, err)
	assert.Equal(t, domain.TierMathematical, res.Tier)
}

func TestEstimatePinnedTierStillDegradesToEmergency(t *testing.T) {
	e := NewEstimator(
		fixedModel{tier: domain.TierEmpirical, err: errors.New("boom")},
		EmergencyModel{},
	)

	res, err := e.Estimate(context.Background(), paris, system, parisWeather(t), domain.TierEmpirical)
	require.NoError(t, err)
	assert.Equal(t, domain.TierEmergency, res.Tier)
}

func TestEstimateExhaustion(t *testing.T) {
	e := NewEstimator(
		fixedModel{tier: domain.TierPhysical, err: errors.New("a")},
		fixedModel{tier: domain.TierEmpirical, err: errors.New("b")},
	)

	_, err := e.Estimate(context.Background(), paris, system, parisWeather(t), "")
	require.ErrorIs(t, err, ErrModelExhausted)
}

func TestEmergencyModelLatitudeBands(t *testing.T) {
	m := EmergencyModel{}

	w := &domain.WeatherSeries{}
	equator, err := m.Estimate(context.Background(), domain.Location{Latitude: 10}, system, w)
	require.NoError(t, err)
	arctic, err := m.Estimate(context.Background(), domain.Location{Latitude: 68}, system, w)
	require.NoError(t, err)

	assert.Greater(t, sum(equator), sum(arctic))
	assert.InDelta(t, 1600*system.PowerKW, sum(equator), 1)
	assert.InDelta(t, 700*system.PowerKW, sum(arctic), 1)
}

func TestPhysicalModelRequiresAllChannels(t *testing.T) {
	w := domain.NewWeatherSeries(domain.ProvenanceSynthetic)
	w.DNI = nil

	_, err := PhysicalModel{}.Estimate(context.Background(), paris, system, w)
	require.Error(t, err)
}
