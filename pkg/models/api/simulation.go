package api

// SimulationRequest is the JSON body accepted by POST /api/v1/simulations.
type SimulationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Tilt      float64 `json:"tilt"`
	Azimuth   float64 `json:"azimuth"`

	PowerKW            float64 `json:"power_kw"`
	ModuleFamily       string  `json:"module_family,omitempty"`
	InverterEfficiency float64 `json:"inverter_efficiency,omitempty"`

	EfficiencyClass string      `json:"efficiency_class"`
	Occupants       int         `json:"occupants"`
	FloorAreaM2     float64     `json:"floor_area_m2"`
	Appliances      []Appliance `json:"appliances,omitempty"`

	Year                  int      `json:"year,omitempty"`
	ForceSyntheticWeather bool     `json:"force_synthetic_weather,omitempty"`
	ModelTier             string   `json:"model_tier,omitempty"`
	InvestmentEUR         *float64 `json:"investment_eur,omitempty"`
}

// Appliance selects one catalog appliance with its declared usage.
type Appliance struct {
	Name       string  `json:"name"`
	Model      string  `json:"model,omitempty"`
	WeeklyUses float64 `json:"weekly_uses"`
}

// SimulationResponse summarises one pipeline run. Hourly series are omitted
// from the wire format; the report endpoint renders them on demand.
type SimulationResponse struct {
	Production  ProductionSummary  `json:"production"`
	Consumption ConsumptionSummary `json:"consumption"`
	Economics   EconomicSummary    `json:"economics"`

	WeatherProvenance   string `json:"weather_provenance"`
	Advisory            string `json:"advisory,omitempty"`
	WeatherCacheTier    string `json:"weather_cache_tier,omitempty"`
	ProductionCacheTier string `json:"production_cache_tier,omitempty"`
}

type ProductionSummary struct {
	AnnualYieldKWh float64 `json:"annual_yield_kwh"`
	PeakKW         float64 `json:"peak_kw"`
	CapacityFactor float64 `json:"capacity_factor"`
	ModelTier      string  `json:"model_tier"`
}

type ConsumptionSummary struct {
	AnnualKWh    float64 `json:"annual_kwh"`
	BaselineKWh  float64 `json:"baseline_kwh"`
	ApplianceKWh float64 `json:"appliance_kwh"`
	PeakKW       float64 `json:"peak_kw"`
}

type EconomicSummary struct {
	SelfConsumptionKWh  float64 `json:"self_consumption_kwh"`
	SurplusKWh          float64 `json:"surplus_kwh"`
	DeficitKWh          float64 `json:"deficit_kwh"`
	SelfConsumptionRate float64 `json:"self_consumption_rate"`
	AutonomyRate        float64 `json:"autonomy_rate"`
	AnnualSavingsEUR    float64 `json:"annual_savings_eur"`
	InvestmentEUR       float64 `json:"investment_eur"`
	IncentivesEUR       float64 `json:"incentives_eur"`
	SimplePaybackYears  float64 `json:"simple_payback_years"`
	PaybackYears        float64 `json:"payback_years"`
	NetPresentValueEUR  float64 `json:"net_present_value_eur"`
}
