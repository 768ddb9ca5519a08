// Package economics computes the energy-flow decomposition, incentives and
// multi-year return of a production/consumption pair. The analysis is
// explicitly non-critical: any internal fault degrades to a documented
// default result instead of failing the run.
package economics

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// Long-horizon assumptions.
const (
	horizonYears    = 25
	degradationRate = 0.005 // annual production loss
	discountRate    = 0.03
	maxPaybackYears = 50
	standardVATRate = 0.20
	preTaxCostPerKW = 2083.0 // €2500 incl. tax ≈ €2083 before tax
)

// Analyzer computes economic results against an immutable tariff schedule.
type Analyzer struct {
	tariffs *Tariffs
}

// NewAnalyzer builds an analyzer; a nil schedule uses the built-in one.
func NewAnalyzer(tariffs *Tariffs) *Analyzer {
	if tariffs == nil {
		tariffs = DefaultTariffs()
	}
	return &Analyzer{tariffs: tariffs}
}

// Analyze derives the full economic result. investment may be nil, in which
// case it is estimated from the banded €/kW installation cost.
func (a *Analyzer) Analyze(ctx context.Context, prod *domain.ProductionResult, cons *domain.ConsumptionResult, investment *float64, systemPowerKW float64) *domain.EconomicResult {
	logger := zerolog.Ctx(ctx)

	if prod == nil || cons == nil || len(prod.HourlyKW) == 0 || len(cons.HourlyKW) == 0 {
		logger.Error().Msg("economic analysis missing production or consumption series, returning default result")
		return DefaultResult()
	}

	r := &domain.EconomicResult{}

	// Energy flows over the aligned (shorter) length.
	n := len(prod.HourlyKW)
	if len(cons.HourlyKW) < n {
		n = len(cons.HourlyKW)
	}
	for i := 0; i < n; i++ {
		p := math.Max(prod.HourlyKW[i], 0)
		c := math.Max(cons.HourlyKW[i], 0)

		self := math.Min(p, c)
		r.SelfConsumptionKWh += self
		r.SurplusKWh += p - self
		r.DeficitKWh += c - self
		r.TotalProductionKWh += p
		r.TotalConsumptionKWh += c
	}
	if r.TotalProductionKWh > 0 {
		r.SelfConsumptionRate = r.SelfConsumptionKWh / r.TotalProductionKWh
	}
	if r.TotalConsumptionKWh > 0 {
		r.AutonomyRate = r.SelfConsumptionKWh / r.TotalConsumptionKWh
	}

	// Money flows. Without a contracted feed-in price the surplus is
	// valued at the lowest sell band, whatever the system size.
	r.PurchasePriceKWh = a.tariffs.PurchasePriceKWh
	r.SellPriceKWh = lowestRate(a.tariffs.SellBands)

	r.SelfConsumptionSavingsEUR = r.SelfConsumptionKWh * r.PurchasePriceKWh
	r.ExportRevenueEUR = r.SurplusKWh * r.SellPriceKWh
	r.AnnualSavingsEUR = r.SelfConsumptionSavingsEUR + r.ExportRevenueEUR
	r.AvoidedCostEUR = r.SelfConsumptionSavingsEUR

	if investment != nil {
		r.InvestmentEUR = *investment
	} else {
		r.InvestmentEUR = systemPowerKW * bandRate(a.tariffs.InstallCostBands, systemPowerKW)
	}

	r.SimplePaybackYears = simplePayback(r.InvestmentEUR, r.AnnualSavingsEUR)
	r.PaybackYears = degradedPayback(r.InvestmentEUR, r.AnnualSavingsEUR)
	r.NetPresentValueEUR, r.TotalSavingsEUR = longHorizon(r.AnnualSavingsEUR, r.InvestmentEUR)

	a.applyIncentives(r, systemPowerKW)

	if !finite(r) {
		logger.Error().Msg("economic analysis produced non-finite figures, returning default result")
		return DefaultResult()
	}
	return r
}

// simplePayback is investment over savings; zero investment with positive
// savings pays back immediately, non-positive savings never pay back.
func simplePayback(investment, savings float64) float64 {
	if savings <= 0 {
		return math.Inf(1)
	}
	if investment <= 0 {
		return 0
	}
	return investment / savings
}

// degradedPayback simulates year by year with production degradation until
// cumulative savings meet the investment. An investment the savings never
// recover saturates at maxPaybackYears; only non-positive savings report an
// infinite payback.
func degradedPayback(investment, savings float64) float64 {
	if savings <= 0 {
		return math.Inf(1)
	}
	if investment <= 0 {
		return 0
	}

	var cumulative float64
	for year := 1; year <= maxPaybackYears; year++ {
		cumulative += savings * math.Pow(1-degradationRate, float64(year-1))
		if cumulative >= investment {
			return float64(year)
		}
	}
	return maxPaybackYears
}

// longHorizon returns the discounted net present value and the undiscounted
// total savings over the 25-year horizon.
func longHorizon(savings, investment float64) (npv, total float64) {
	var discounted float64
	for year := 0; year < horizonYears; year++ {
		yearly := savings * math.Pow(1-degradationRate, float64(year))
		discounted += yearly / math.Pow(1+discountRate, float64(year))
		total += yearly
	}
	return discounted - investment, total
}

func (a *Analyzer) applyIncentives(r *domain.EconomicResult, powerKW float64) {
	if powerKW <= 0 {
		return
	}

	cappedPower := math.Min(powerKW, 36)
	r.SelfConsumptionBonusEUR = bandRate(a.tariffs.BonusBands, powerKW) * cappedPower

	if powerKW <= a.tariffs.VATMaxPowerKW {
		// The schedule's reduced rate applied to the standard 20% VAT:
		// at the default 10% this lands at 2% of the pre-tax cost.
		r.ReducedVATEUR = powerKW * preTaxCostPerKW * standardVATRate * a.tariffs.ReducedVATRate
	}

	r.IncentivesEUR = r.SelfConsumptionBonusEUR + r.ReducedVATEUR
}

// DefaultResult is the documented degraded output: all zero flows and an
// infinite payback.
func DefaultResult() *domain.EconomicResult {
	return &domain.EconomicResult{
		SimplePaybackYears: math.Inf(1),
		PaybackYears:       math.Inf(1),
		Advisory:           "economic analysis failed; default result substituted",
	}
}

func finite(r *domain.EconomicResult) bool {
	for _, v := range []float64{
		r.SelfConsumptionKWh, r.SurplusKWh, r.DeficitKWh,
		r.AnnualSavingsEUR, r.InvestmentEUR, r.NetPresentValueEUR, r.IncentivesEUR,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
