package production

import (
	"context"
	"fmt"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// MathematicalModel is the pure multiplication: irradiance times effective
// panel area times one aggregate efficiency, clipped to rated power.
type MathematicalModel struct{}

// aggregateEfficiency folds module, inverter and system losses into one
// constant performance ratio.
const aggregateEfficiency = 0.80

func (MathematicalModel) Tier() domain.ModelTier { return domain.TierMathematical }

func (MathematicalModel) Estimate(_ context.Context, _ domain.Location, sys domain.PVSystem, w *domain.WeatherSeries) ([]float64, error) {
	if len(w.GHI) == 0 {
		return nil, fmt.Errorf("mathematical model needs the global irradiance channel")
	}

	out := make([]float64, len(w.GHI))
	for i, ghi := range w.GHI {
		if ghi <= 0 {
			continue
		}
		out[i] = clampPower(sys.PowerKW*ghi/1000*aggregateEfficiency, sys.PowerKW)
	}
	return out, nil
}
