package production

import (
	"context"
	"fmt"
	"math"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// EmpiricalModel trades the physical chain for a single temperature
// coefficient, a flat inverter efficiency and a geometric tilt gain.
type EmpiricalModel struct{}

func (EmpiricalModel) Tier() domain.ModelTier { return domain.TierEmpirical }

func (EmpiricalModel) Estimate(_ context.Context, loc domain.Location, sys domain.PVSystem, w *domain.WeatherSeries) ([]float64, error) {
	if len(w.GHI) == 0 {
		return nil, fmt.Errorf("empirical model needs the global irradiance channel")
	}

	gamma := temperatureCoefficient(sys.ModuleFamily)
	eta := inverterEfficiency(sys)
	gain := orientationGain(loc.Tilt, loc.Azimuth)

	out := make([]float64, len(w.GHI))
	for i, ghi := range w.GHI {
		if ghi <= 0 {
			continue
		}
		temp := 20.0
		if i < len(w.TempAir) {
			temp = w.TempAir[i]
		}
		// Rough cell heating, 30 °C above ambient at full sun.
		cellTemp := temp + ghi*0.03
		p := sys.PowerKW * ghi / 1000 * (1 + gamma*(cellTemp-25)) * eta * gain
		out[i] = clampPower(p, sys.PowerKW)
	}
	return out, nil
}

// orientationGain approximates the transposition benefit of a tilted,
// roughly south-facing plane over the horizontal.
func orientationGain(tilt, azimuth float64) float64 {
	tiltGain := 1 + 0.12*math.Sin(tilt*math.Pi/90) // peaks near 45°
	offSouth := math.Abs(azimuth-180) / 180
	return tiltGain * (1 - 0.25*offSouth)
}

func clampPower(p, rated float64) float64 {
	if p <= 0 {
		return 0
	}
	if p > rated*(1+domain.RatedPowerTolerance) {
		return rated
	}
	return p
}
