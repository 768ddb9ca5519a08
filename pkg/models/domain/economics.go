package domain

// EconomicResult holds the energy-flow decomposition and the financial
// indicators derived from it. Payback fields use math.Inf(1) when annual
// savings are non-positive; the degradation-aware payback otherwise
// saturates at its 50-year cap.
type EconomicResult struct {
	// Annual energy flows, kWh.
	SelfConsumptionKWh  float64
	SurplusKWh          float64
	DeficitKWh          float64
	TotalProductionKWh  float64
	TotalConsumptionKWh float64

	// Share of production consumed on site, and share of consumption
	// covered by production.
	SelfConsumptionRate float64
	AutonomyRate        float64

	// Annual money flows, EUR.
	AnnualSavingsEUR          float64
	SelfConsumptionSavingsEUR float64
	ExportRevenueEUR          float64
	AvoidedCostEUR            float64

	InvestmentEUR      float64
	SimplePaybackYears float64
	PaybackYears       float64 // accounts for panel degradation, capped at 50

	// 25-year horizon under fixed degradation and discount assumptions.
	NetPresentValueEUR float64
	TotalSavingsEUR    float64

	// One-time incentives.
	IncentivesEUR             float64
	SelfConsumptionBonusEUR   float64
	ReducedVATEUR             float64

	PurchasePriceKWh float64
	SellPriceKWh     float64

	// Advisory is set when the analysis degraded to the default result.
	Advisory string
}
