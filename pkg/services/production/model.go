// Package production estimates hourly solar output through an ordered chain
// of models of decreasing fidelity. The chain as a whole only fails when the
// emergency tier itself fails, which is treated as a fatal pipeline error.
package production

import (
	"context"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// Model is one production-estimation strategy. Estimate returns the hourly
// AC output in kW, matching the weather series length.
type Model interface {
	Tier() domain.ModelTier
	Estimate(ctx context.Context, loc domain.Location, sys domain.PVSystem, w *domain.WeatherSeries) ([]float64, error)
}

// Attempt records one tier's outcome, kept for logging and diagnostics.
type Attempt struct {
	Tier domain.ModelTier
	Err  error
}

// Module temperature coefficients per family, 1/°C.
var temperatureCoefficients = map[string]float64{
	"mono-si": -0.0040,
	"poly-si": -0.0038,
}

const defaultTemperatureCoefficient = -0.0040

func temperatureCoefficient(family string) float64 {
	if g, ok := temperatureCoefficients[family]; ok {
		return g
	}
	return defaultTemperatureCoefficient
}

// inverterEfficiency falls back to the standard 96% when the request does
// not specify the hardware figure.
func inverterEfficiency(sys domain.PVSystem) float64 {
	if sys.InverterEfficiency > 0 {
		return sys.InverterEfficiency
	}
	return 0.96
}
