package adapters

import (
	"math"

	"github.com/Blastoche/simu-solaire/pkg/models/api"
	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

func MapSimulationRequestApiToDomain(req api.SimulationRequest) domain.SimulationRequest {
	appliances := make([]domain.ApplianceUsage, 0, len(req.Appliances))
	for _, a := range req.Appliances {
		appliances = append(appliances, domain.ApplianceUsage{
			Name:       a.Name,
			Model:      a.Model,
			WeeklyUses: a.WeeklyUses,
		})
	}

	return domain.SimulationRequest{
		Location: domain.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Tilt:      req.Tilt,
			Azimuth:   req.Azimuth,
		},
		System: domain.PVSystem{
			PowerKW:            req.PowerKW,
			ModuleFamily:       req.ModuleFamily,
			InverterEfficiency: req.InverterEfficiency,
		},
		Household: domain.Household{
			EfficiencyClass: req.EfficiencyClass,
			Occupants:       req.Occupants,
			FloorAreaM2:     req.FloorAreaM2,
			Appliances:      appliances,
		},
		Year:                  req.Year,
		ForceSyntheticWeather: req.ForceSyntheticWeather,
		ModelTier:             domain.ModelTier(req.ModelTier),
		InvestmentEUR:         req.InvestmentEUR,
	}
}

func MapSimulationResultDomainToApi(res domain.SimulationResult) api.SimulationResponse {
	return api.SimulationResponse{
		Production: api.ProductionSummary{
			AnnualYieldKWh: res.Production.AnnualYieldKWh,
			PeakKW:         res.Production.PeakKW,
			CapacityFactor: res.Production.CapacityFactor,
			ModelTier:      string(res.Production.Tier),
		},
		Consumption: api.ConsumptionSummary{
			AnnualKWh:    res.Consumption.AnnualKWh,
			BaselineKWh:  res.Consumption.BaselineKWh,
			ApplianceKWh: res.Consumption.ApplianceKWh,
			PeakKW:       res.Consumption.PeakKW,
		},
		Economics: api.EconomicSummary{
			SelfConsumptionKWh:  res.Economics.SelfConsumptionKWh,
			SurplusKWh:          res.Economics.SurplusKWh,
			DeficitKWh:          res.Economics.DeficitKWh,
			SelfConsumptionRate: res.Economics.SelfConsumptionRate,
			AutonomyRate:        res.Economics.AutonomyRate,
			AnnualSavingsEUR:    res.Economics.AnnualSavingsEUR,
			InvestmentEUR:       res.Economics.InvestmentEUR,
			IncentivesEUR:       res.Economics.IncentivesEUR,
			SimplePaybackYears:  sanitizePayback(res.Economics.SimplePaybackYears),
			PaybackYears:        sanitizePayback(res.Economics.PaybackYears),
			NetPresentValueEUR:  res.Economics.NetPresentValueEUR,
		},
		WeatherProvenance:   string(res.WeatherProvenance),
		Advisory:            res.Advisory,
		WeatherCacheTier:    res.WeatherCacheTier,
		ProductionCacheTier: res.ProductionCacheTier,
	}
}

// sanitizePayback maps a never-recovered investment to -1, since JSON has
// no encoding for +Inf.
func sanitizePayback(years float64) float64 {
	if math.IsInf(years, 1) || math.IsNaN(years) {
		return -1
	}
	return years
}
