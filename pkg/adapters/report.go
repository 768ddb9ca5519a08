package adapters

import (
	"fmt"
	"math"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// MapSimulationResultToReport flattens a result into the renderable form
// consumed by the terminal exporter.
func MapSimulationResultToReport(res domain.SimulationResult, year int) domain.Report {
	report := domain.Report{
		Title:    "Solar installation estimate",
		Year:     year,
		Currency: "EUR",
	}

	production := domain.ReportSection{
		Title: "Production",
		Summary: map[string]string{
			"weather": string(res.WeatherProvenance),
			"model":   string(res.Production.Tier),
		},
		Details: []domain.ReportDetail{
			{Name: "Annual yield", Value: res.Production.AnnualYieldKWh, Unit: "kWh", Description: "Estimated output over one year"},
			{Name: "Peak output", Value: res.Production.PeakKW, Unit: "kW"},
			{Name: "Capacity factor", Value: res.Production.CapacityFactor * 100, Unit: "%"},
		},
	}

	consumption := domain.ReportSection{
		Title: "Consumption",
		Details: []domain.ReportDetail{
			{Name: "Annual consumption", Value: res.Consumption.AnnualKWh, Unit: "kWh"},
			{Name: "Baseline", Value: res.Consumption.BaselineKWh, Unit: "kWh", Description: "Heating, lighting and ventilation"},
			{Name: "Appliances", Value: res.Consumption.ApplianceKWh, Unit: "kWh"},
			{Name: "Peak load", Value: res.Consumption.PeakKW, Unit: "kW"},
		},
	}

	economics := domain.ReportSection{
		Title: "Economics",
		Summary: map[string]string{
			"self consumption rate": fmt.Sprintf("%.1f%%", res.Economics.SelfConsumptionRate*100),
			"autonomy rate":         fmt.Sprintf("%.1f%%", res.Economics.AutonomyRate*100),
		},
		Details: []domain.ReportDetail{
			{Name: "Annual savings", Value: res.Economics.AnnualSavingsEUR, Unit: "EUR"},
			{Name: "Investment", Value: res.Economics.InvestmentEUR, Unit: "EUR"},
			{Name: "Incentives", Value: res.Economics.IncentivesEUR, Unit: "EUR"},
			{Name: "Payback", Value: formatPayback(res.Economics.PaybackYears), Unit: "years", Description: "Accounts for panel degradation"},
			{Name: "Net present value", Value: res.Economics.NetPresentValueEUR, Unit: "EUR", Description: "25-year horizon"},
		},
	}

	report.Sections = []domain.ReportSection{production, consumption, economics}
	return report
}

func formatPayback(years float64) string {
	if math.IsInf(years, 1) || math.IsNaN(years) {
		return "never"
	}
	return fmt.Sprintf("%.1f", years)
}
