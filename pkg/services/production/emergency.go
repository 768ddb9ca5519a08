package production

import (
	"context"
	"math"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// EmergencyModel is the terminal fallback: a latitude-banded annual yield
// per installed kW spread flat over the year. It cannot fail.
type EmergencyModel struct{}

// Annual kWh per installed kW by absolute latitude band.
var yieldBands = []struct {
	maxAbsLat float64
	yieldPerKW float64
}{
	{25, 1600},
	{40, 1400},
	{50, 1100},
	{60, 900},
	{91, 700},
}

func (EmergencyModel) Tier() domain.ModelTier { return domain.TierEmergency }

func (EmergencyModel) Estimate(_ context.Context, loc domain.Location, sys domain.PVSystem, w *domain.WeatherSeries) ([]float64, error) {
	n := len(w.GHI)
	if n == 0 {
		n = domain.HoursPerYear
	}

	absLat := math.Abs(loc.Latitude)
	yieldPerKW := yieldBands[len(yieldBands)-1].yieldPerKW
	for _, band := range yieldBands {
		if absLat < band.maxAbsLat {
			yieldPerKW = band.yieldPerKW
			break
		}
	}

	hourly := sys.PowerKW * yieldPerKW / float64(domain.HoursPerYear)
	out := make([]float64, n)
	for i := range out {
		out[i] = hourly
	}
	return out, nil
}
