package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() SimulationRequest {
	return SimulationRequest{
		Location:  Location{Latitude: 48.85, Longitude: 2.35, Tilt: 30, Azimuth: 180},
		System:    PVSystem{PowerKW: 3, InverterEfficiency: 0.96},
		Household: Household{EfficiencyClass: "D", Occupants: 2, FloorAreaM2: 80},
		Year:      2020,
	}
}

func TestValidateAcceptsPlausibleRequest(t *testing.T) {
	require.NoError(t, validRequest().Validate())

	// An unset year means the default weather year.
	req := validRequest()
	req.Year = 0
	require.NoError(t, req.Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SimulationRequest)
	}{
		{"latitude out of range", func(r *SimulationRequest) { r.Location.Latitude = 91 }},
		{"longitude out of range", func(r *SimulationRequest) { r.Location.Longitude = -181 }},
		{"tilt out of range", func(r *SimulationRequest) { r.Location.Tilt = 95 }},
		{"azimuth out of range", func(r *SimulationRequest) { r.Location.Azimuth = 360 }},
		{"non-positive power", func(r *SimulationRequest) { r.System.PowerKW = 0 }},
		{"inverter efficiency above one", func(r *SimulationRequest) { r.System.InverterEfficiency = 1.2 }},
		{"unknown efficiency class", func(r *SimulationRequest) { r.Household.EfficiencyClass = "H" }},
		{"no occupants", func(r *SimulationRequest) { r.Household.Occupants = 0 }},
		{"non-positive area", func(r *SimulationRequest) { r.Household.FloorAreaM2 = 0 }},
		{"year before data", func(r *SimulationRequest) { r.Year = 1990 }},
		{"bogus model tier", func(r *SimulationRequest) { r.ModelTier = "quantum" }},
		{"negative investment", func(r *SimulationRequest) {
			v := -100.0
			r.InvestmentEUR = &v
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := req.Validate()
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestMonthlyMeanGHI(t *testing.T) {
	s := NewWeatherSeries(ProvenanceSynthetic)
	for i := range s.GHI {
		s.GHI[i] = 100
	}

	means := s.MonthlyMeanGHI()
	for m, v := range means {
		assert.InDelta(t, 100, v, 1e-9, "month %d", m+1)
	}
}

func TestModelTierValidity(t *testing.T) {
	assert.True(t, TierPhysical.Valid())
	assert.True(t, TierEmergency.Valid())
	assert.False(t, ModelTier("quantum").Valid())
	assert.False(t, ModelTier("").Valid())
}
