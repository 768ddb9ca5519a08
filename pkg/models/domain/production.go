package domain

// ModelTier identifies one level of the production-model fallback chain.
type ModelTier string

const (
	TierPhysical     ModelTier = "physical"
	TierEmpirical    ModelTier = "empirical"
	TierMathematical ModelTier = "mathematical"
	TierEmergency    ModelTier = "emergency"
)

// Valid reports whether the tier names a defined model.
func (t ModelTier) Valid() bool {
	switch t {
	case TierPhysical, TierEmpirical, TierMathematical, TierEmergency:
		return true
	}
	return false
}

// RatedPowerTolerance is the fraction by which an hourly production value may
// exceed the rated system power before it is clipped.
const RatedPowerTolerance = 0.05

// ProductionResult is the output of the production estimator. HourlyKW has
// the same length as the weather series it was computed from.
type ProductionResult struct {
	HourlyKW       []float64
	AnnualYieldKWh float64
	PeakKW         float64
	CapacityFactor float64 // in [0, 1]

	// Tier names the model that actually produced the series, which is not
	// necessarily the first one attempted.
	Tier ModelTier
}

// ConsumptionResult is the output of the consumption synthesizer.
type ConsumptionResult struct {
	HourlyKW  []float64
	AnnualKWh float64

	// Breakdown of the annual total.
	BaselineKWh  float64 // heating, lighting, ventilation
	ApplianceKWh float64

	PeakKW float64
}
