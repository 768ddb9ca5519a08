package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks request validation failures. These are the only
// user-visible errors besides critical-stage exhaustion.
var ErrInvalidRequest = errors.New("invalid simulation request")

// Location describes the installation site and panel orientation.
type Location struct {
	Latitude  float64
	Longitude float64
	Tilt      float64 // degrees from horizontal
	Azimuth   float64 // degrees, 180 = south
}

// PVSystem describes the installed photovoltaic hardware.
type PVSystem struct {
	PowerKW            float64
	ModuleFamily       string // mono-si, poly-si
	InverterEfficiency float64
}

// ApplianceUsage is one appliance selected by the user, matched by name
// against the reference catalog.
type ApplianceUsage struct {
	Name       string
	Model      string
	WeeklyUses float64
}

// Household describes the dwelling whose consumption is synthesized.
type Household struct {
	EfficiencyClass string // A through G
	Occupants       int
	FloorAreaM2     float64
	Appliances      []ApplianceUsage
}

// SimulationRequest is the validated input of one pipeline run. It is treated
// as immutable once Validate has succeeded.
type SimulationRequest struct {
	Location  Location
	System    PVSystem
	Household Household
	Year      int

	// Execution flags. These never participate in cache fingerprints.
	ForceSyntheticWeather bool
	ModelTier             ModelTier // empty means the self-degrading chain picks

	// Optional override; estimated from system power when nil.
	InvestmentEUR *float64
}

var efficiencyClasses = map[string]struct{}{
	"A": {}, "B": {}, "C": {}, "D": {}, "E": {}, "F": {}, "G": {},
}

// Validate checks the request against physical and catalog bounds. All
// returned errors wrap ErrInvalidRequest.
func (r SimulationRequest) Validate() error {
	if r.Location.Latitude < -90 || r.Location.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.4f out of [-90, 90]", ErrInvalidRequest, r.Location.Latitude)
	}
	if r.Location.Longitude < -180 || r.Location.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.4f out of [-180, 180]", ErrInvalidRequest, r.Location.Longitude)
	}
	if r.Location.Tilt < 0 || r.Location.Tilt > 90 {
		return fmt.Errorf("%w: tilt %.1f out of [0, 90]", ErrInvalidRequest, r.Location.Tilt)
	}
	if r.Location.Azimuth < 0 || r.Location.Azimuth >= 360 {
		return fmt.Errorf("%w: azimuth %.1f out of [0, 360)", ErrInvalidRequest, r.Location.Azimuth)
	}
	if r.System.PowerKW <= 0 {
		return fmt.Errorf("%w: rated power must be positive, got %.2f kW", ErrInvalidRequest, r.System.PowerKW)
	}
	if r.System.InverterEfficiency < 0 || r.System.InverterEfficiency > 1 {
		return fmt.Errorf("%w: inverter efficiency %.2f out of [0, 1]", ErrInvalidRequest, r.System.InverterEfficiency)
	}
	if _, ok := efficiencyClasses[r.Household.EfficiencyClass]; !ok {
		return fmt.Errorf("%w: unknown efficiency class %q", ErrInvalidRequest, r.Household.EfficiencyClass)
	}
	if r.Household.Occupants < 1 {
		return fmt.Errorf("%w: occupants must be at least 1, got %d", ErrInvalidRequest, r.Household.Occupants)
	}
	if r.Household.FloorAreaM2 <= 0 {
		return fmt.Errorf("%w: floor area must be positive, got %.1f m2", ErrInvalidRequest, r.Household.FloorAreaM2)
	}
	if r.Year != 0 && (r.Year < 2005 || r.Year > 2100) {
		return fmt.Errorf("%w: year %d out of [2005, 2100]", ErrInvalidRequest, r.Year)
	}
	if r.ModelTier != "" && !r.ModelTier.Valid() {
		return fmt.Errorf("%w: unknown model tier %q", ErrInvalidRequest, r.ModelTier)
	}
	if r.InvestmentEUR != nil && *r.InvestmentEUR < 0 {
		return fmt.Errorf("%w: investment cost must not be negative", ErrInvalidRequest)
	}
	return nil
}

// SimulationResult is what the pipeline hands back to the UI layer.
type SimulationResult struct {
	Production  ProductionResult
	Consumption ConsumptionResult
	Economics   EconomicResult

	WeatherProvenance Provenance
	Advisory          string

	// Cache tiers the weather and production stages were served from,
	// empty when computed directly.
	WeatherCacheTier    string
	ProductionCacheTier string
}
