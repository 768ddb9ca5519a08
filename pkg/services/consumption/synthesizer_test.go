package consumption

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

func household() domain.Household {
	return domain.Household{
		EfficiencyClass: "D",
		Occupants:       3,
		FloorAreaM2:     90,
		Appliances: []domain.ApplianceUsage{
			{Name: "washing machine", WeeklyUses: 4},
			{Name: "dishwasher", WeeklyUses: 5},
		},
	}
}

func TestSimulateProducesFullYear(t *testing.T) {
	s := NewSynthesizer(nil)

	res := s.Simulate(context.Background(), household())

	require.Len(t, res.HourlyKW, domain.HoursPerYear)
	assert.Greater(t, res.AnnualKWh, 0.0)
	assert.Greater(t, res.BaselineKWh, 0.0)
	assert.Greater(t, res.ApplianceKWh, 0.0)

	ceiling := 6.0 + 3.0*float64(household().Occupants)
	for i, v := range res.HourlyKW {
		require.GreaterOrEqual(t, v, 0.0, "hour %d", i)
		require.LessOrEqual(t, v, ceiling, "hour %d", i)
	}
}

func TestSimulateBaselineScalesWithClassAndArea(t *testing.T) {
	s := NewSynthesizer(nil)
	ctx := context.Background()

	h := household()
	h.Appliances = nil

	classD := s.Simulate(ctx, h)
	h.EfficiencyClass = "G"
	classG := s.Simulate(ctx, h)

	// G-rated dwellings carry the heavier baseline (120 vs 50 kWh/m²).
	assert.Greater(t, classG.BaselineKWh, classD.BaselineKWh)
	// Occupancy factor: 0.8 + 0.1 per extra occupant.
	assert.InDelta(t, 50*90*1.0, classD.BaselineKWh, 1e-3)
}

func TestSimulateWithoutAppliances(t *testing.T) {
	s := NewSynthesizer(nil)

	h := household()
	h.Appliances = nil

	res := s.Simulate(context.Background(), h)
	assert.Zero(t, res.ApplianceKWh)
	assert.Greater(t, res.AnnualKWh, 0.0)
}

func TestSimulateUnknownApplianceContributesZero(t *testing.T) {
	s := NewSynthesizer(nil)

	h := household()
	h.Appliances = []domain.ApplianceUsage{{Name: "flux capacitor", WeeklyUses: 7}}

	res := s.Simulate(context.Background(), h)
	assert.Zero(t, res.ApplianceKWh)
}

func TestSimulateIsDeterministicPerHousehold(t *testing.T) {
	s := NewSynthesizer(nil)
	ctx := context.Background()

	a := s.Simulate(ctx, household())
	b := s.Simulate(ctx, household())
	assert.Equal(t, a.HourlyKW, b.HourlyKW)

	other := household()
	other.Occupants = 4
	c := s.Simulate(ctx, other)
	assert.NotEqual(t, a.HourlyKW, c.HourlyKW)
}

func TestCatalogFuzzyLookup(t *testing.T) {
	c := DefaultCatalog()

	_, ok := c.Find("Washing Machine", "")
	assert.True(t, ok)

	_, ok = c.Find("washing", "")
	assert.True(t, ok)

	eco, ok := c.Find("washing machine", "eco")
	require.True(t, ok)
	assert.Contains(t, eco.Model, "eco")

	_, ok = c.Find("particle accelerator", "")
	assert.False(t, ok)
}
