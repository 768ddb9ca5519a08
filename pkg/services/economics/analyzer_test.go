package economics

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

func flatSeries(kw float64) []float64 {
	out := make([]float64, domain.HoursPerYear)
	for i := range out {
		out[i] = kw
	}
	return out
}

func result(hourly []float64) *domain.ProductionResult {
	return &domain.ProductionResult{HourlyKW: hourly}
}

func load(hourly []float64) *domain.ConsumptionResult {
	return &domain.ConsumptionResult{HourlyKW: hourly}
}

func TestAnalyzeEnergyBalance(t *testing.T) {
	a := NewAnalyzer(nil)

	prod := flatSeries(0)
	cons := flatSeries(0.5)
	// Production above consumption half the time, below the other half.
	for i := range prod {
		if i%2 == 0 {
			prod[i] = 1
		}
	}

	r := a.Analyze(context.Background(), result(prod), load(cons), nil, 3)

	assert.InDelta(t, r.TotalProductionKWh, r.SelfConsumptionKWh+r.SurplusKWh, 1e-6)
	assert.InDelta(t, r.TotalConsumptionKWh, r.SelfConsumptionKWh+r.DeficitKWh, 1e-6)
	assert.InDelta(t, 0.5, r.SelfConsumptionRate, 1e-6)
	assert.InDelta(t, 0.5, r.AutonomyRate, 1e-6)
}

func TestAnalyzeKnownFigures(t *testing.T) {
	a := NewAnalyzer(nil)

	// 1 kW produced, 0.5 kW consumed, every hour of the year.
	r := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), nil, 3)

	hours := float64(domain.HoursPerYear)
	assert.InDelta(t, 0.5*hours, r.SelfConsumptionKWh, 1e-6)
	assert.InDelta(t, 0.5*hours, r.SurplusKWh, 1e-6)
	assert.Zero(t, r.DeficitKWh)

	// Savings: self-consumption at the purchase price, surplus at the
	// lowest sell band.
	wantSavings := 0.5*hours*0.20 + 0.5*hours*0.04
	assert.InDelta(t, wantSavings, r.AnnualSavingsEUR, 1e-6)

	// Estimated investment at the 3 kW install band.
	assert.InDelta(t, 3*2500, r.InvestmentEUR, 1e-6)

	// Incentives: 80 €/kW bonus plus the reduced-VAT estimate.
	assert.InDelta(t, 80*3, r.SelfConsumptionBonusEUR, 1e-6)
	assert.InDelta(t, 3*2083*0.02, r.ReducedVATEUR, 1e-6)
}

func TestAnalyzeInvestmentOverride(t *testing.T) {
	a := NewAnalyzer(nil)

	investment := 4000.0
	r := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), &investment, 3)

	assert.InDelta(t, 4000, r.InvestmentEUR, 1e-9)
	assert.InDelta(t, 4000/r.AnnualSavingsEUR, r.SimplePaybackYears, 1e-6)
	// The degraded payback can only be later than the simple one.
	assert.GreaterOrEqual(t, r.PaybackYears, math.Floor(r.SimplePaybackYears))
}

func TestAnalyzeZeroInvestmentPaysBackImmediately(t *testing.T) {
	a := NewAnalyzer(nil)

	investment := 0.0
	r := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), &investment, 3)

	assert.Zero(t, r.SimplePaybackYears)
	assert.Zero(t, r.PaybackYears)
}

func TestAnalyzeNoSavingsNeverPaysBack(t *testing.T) {
	a := NewAnalyzer(nil)

	r := a.Analyze(context.Background(), result(flatSeries(0)), load(flatSeries(0.5)), nil, 3)

	assert.True(t, math.IsInf(r.SimplePaybackYears, 1))
	assert.True(t, math.IsInf(r.PaybackYears, 1))
	assert.Less(t, r.NetPresentValueEUR, 0.0)
}

func TestAnalyzePaybackSaturatesAtCap(t *testing.T) {
	a := NewAnalyzer(nil)

	// Savings too small to ever recover the investment within the cap.
	investment := 1e9
	r := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), &investment, 3)

	assert.InDelta(t, 50, r.PaybackYears, 1e-9)
	assert.Greater(t, r.SimplePaybackYears, 50.0)
	assert.False(t, math.IsInf(r.PaybackYears, 1))
}

func TestAnalyzePaybackIncreasesWithInvestment(t *testing.T) {
	a := NewAnalyzer(nil)

	low := 4000.0
	high := 8000.0
	cheap := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), &low, 3)
	dear := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), &high, 3)

	// Same savings, bigger investment: both paybacks strictly later.
	assert.InDelta(t, cheap.AnnualSavingsEUR, dear.AnnualSavingsEUR, 1e-9)
	assert.Greater(t, dear.SimplePaybackYears, cheap.SimplePaybackYears)
	assert.Greater(t, dear.PaybackYears, cheap.PaybackYears)
}

func TestAnalyzeSellPriceUsesLowestBand(t *testing.T) {
	a := NewAnalyzer(nil)

	small := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), nil, 3)
	large := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), nil, 12)

	// No contracted feed-in price: the lowest band applies to every size.
	assert.InDelta(t, 0.04, small.SellPriceKWh, 1e-9)
	assert.InDelta(t, 0.04, large.SellPriceKWh, 1e-9)
	// The reduced-VAT estimate only applies up to 3 kW.
	assert.Zero(t, large.ReducedVATEUR)
}

func TestAnalyzeReducedVATFollowsSchedule(t *testing.T) {
	tariffs := DefaultTariffs()
	tariffs.ReducedVATRate = 0.05
	a := NewAnalyzer(tariffs)

	r := a.Analyze(context.Background(), result(flatSeries(1)), load(flatSeries(0.5)), nil, 3)

	assert.InDelta(t, 3*2083*0.20*0.05, r.ReducedVATEUR, 1e-6)
}

func TestAnalyzeMissingSeriesReturnsDefault(t *testing.T) {
	a := NewAnalyzer(nil)

	r := a.Analyze(context.Background(), nil, load(flatSeries(0.5)), nil, 3)

	assert.True(t, math.IsInf(r.PaybackYears, 1))
	assert.NotEmpty(t, r.Advisory)
	assert.Zero(t, r.AnnualSavingsEUR)
}

func TestAnalyzeNonFiniteInputReturnsDefault(t *testing.T) {
	a := NewAnalyzer(nil)

	prod := flatSeries(1)
	prod[0] = math.NaN()

	r := a.Analyze(context.Background(), result(prod), load(flatSeries(0.5)), nil, 3)
	assert.NotEmpty(t, r.Advisory)
}

func TestLoadTariffsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.yaml")
	content := `
purchase_price_kwh: 0.25
sell_bands:
  - max_power_kw: 9
    rate: 0.10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tariffs, err := LoadTariffs(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, tariffs.PurchasePriceKWh, 1e-9)
	require.Len(t, tariffs.SellBands, 1)
	assert.InDelta(t, 0.10, tariffs.SellBands[0].Rate, 1e-9)
}

func TestLoadTariffsEmptyPathUsesDefaults(t *testing.T) {
	tariffs, err := LoadTariffs("")
	require.NoError(t, err)
	assert.InDelta(t, 0.20, tariffs.PurchasePriceKWh, 1e-9)
}
