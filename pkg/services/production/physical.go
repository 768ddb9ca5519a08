package production

import (
	"context"
	"fmt"
	"math"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
	"github.com/Blastoche/simu-solaire/pkg/services/solar"
)

// PhysicalModel is the full irradiance-to-DC-to-AC chain: plane-of-array
// transposition, cell-temperature derating and a load-dependent inverter
// efficiency curve.
type PhysicalModel struct{}

const (
	groundAlbedo = 0.2
	noct         = 45.0 // nominal operating cell temperature, °C
)

func (PhysicalModel) Tier() domain.ModelTier { return domain.TierPhysical }

func (PhysicalModel) Estimate(_ context.Context, loc domain.Location, sys domain.PVSystem, w *domain.WeatherSeries) ([]float64, error) {
	if len(w.DNI) != len(w.GHI) || len(w.DHI) != len(w.GHI) {
		return nil, fmt.Errorf("physical model needs direct and diffuse channels")
	}
	if len(w.TempAir) != len(w.GHI) {
		return nil, fmt.Errorf("physical model needs the air temperature channel")
	}

	gamma := temperatureCoefficient(sys.ModuleFamily)
	etaNom := inverterEfficiency(sys)
	tiltRad := loc.Tilt * math.Pi / 180

	out := make([]float64, len(w.GHI))
	for i := range out {
		doy := i/24 + 1
		hour := i % 24

		cosAOI := solar.IncidenceCosine(loc.Latitude, loc.Tilt, loc.Azimuth, doy, hour)

		// Plane-of-array irradiance: beam + isotropic sky diffuse +
		// ground-reflected.
		poa := w.DNI[i]*cosAOI +
			w.DHI[i]*(1+math.Cos(tiltRad))/2 +
			w.GHI[i]*groundAlbedo*(1-math.Cos(tiltRad))/2
		if poa <= 0 {
			continue
		}
		if math.IsNaN(poa) || math.IsInf(poa, 0) {
			return nil, fmt.Errorf("plane-of-array irradiance diverged at hour %d", i)
		}

		cellTemp := w.TempAir[i] + (noct-20)/800*poa
		dc := sys.PowerKW * poa / 1000 * (1 + gamma*(cellTemp-25))
		if dc <= 0 {
			continue
		}

		ac := dc * inverterCurve(etaNom, dc/sys.PowerKW)
		limit := sys.PowerKW * (1 + domain.RatedPowerTolerance)
		if ac > limit {
			ac = sys.PowerKW
		}
		out[i] = ac
	}
	return out, nil
}

// inverterCurve penalizes low partial load; efficiency approaches the
// nameplate figure as the load ratio rises.
func inverterCurve(etaNom, loadRatio float64) float64 {
	if loadRatio <= 0 {
		return 0
	}
	if loadRatio > 1 {
		loadRatio = 1
	}
	return etaNom * (1 - 0.04*math.Exp(-8*loadRatio))
}
