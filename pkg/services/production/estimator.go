package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// ErrModelExhausted is returned only when every tier, including the
// emergency default, failed.
var ErrModelExhausted = errors.New("production: all model tiers exhausted")

// Sanity bounds on annual yield per installed kW, applied after the
// empirical and mathematical tiers. Results outside them are discarded in
// favor of the emergency default.
const (
	minYieldPerKW = 500.0
	maxYieldPerKW = 2000.0
)

// Estimator iterates an ordered list of models, falling through on any
// tier failure.
type Estimator struct {
	models []Model
}

// NewEstimator builds an estimator over an explicit model order.
func NewEstimator(models ...Model) *Estimator {
	return &Estimator{models: models}
}

// DefaultChain is the standard four-tier degradation order.
func DefaultChain() *Estimator {
	return NewEstimator(
		PhysicalModel{},
		EmpiricalModel{},
		MathematicalModel{},
		EmergencyModel{},
	)
}

// Estimate runs the chain. When pinned names a tier, only that tier runs
// (plus the emergency substitution if its output fails the sanity gate).
// The result always carries the tier that actually produced it.
func (e *Estimator) Estimate(ctx context.Context, loc domain.Location, sys domain.PVSystem, w *domain.WeatherSeries, pinned domain.ModelTier) (*domain.ProductionResult, error) {
	logger := zerolog.Ctx(ctx)

	var attempts []Attempt
	for _, m := range e.models {
		if pinned != "" && m.Tier() != pinned && m.Tier() != domain.TierEmergency {
			continue
		}

		hourly, err := m.Estimate(ctx, loc, sys, w)
		if err != nil {
			attempts = append(attempts, Attempt{Tier: m.Tier(), Err: err})
			logger.Warn().
				Str("tier", string(m.Tier())).
				Err(err).
				Msg("production model failed, falling back")
			continue
		}

		if gated(m.Tier()) {
			yieldPerKW := sum(hourly) / sys.PowerKW
			if yieldPerKW < minYieldPerKW || yieldPerKW > maxYieldPerKW {
				attempts = append(attempts, Attempt{
					Tier: m.Tier(),
					Err:  fmt.Errorf("annual yield %.0f kWh/kW outside [%.0f, %.0f]", yieldPerKW, minYieldPerKW, maxYieldPerKW),
				})
				logger.Warn().
					Str("tier", string(m.Tier())).
					Float64("yield_per_kw", yieldPerKW).
					Msg("sanity gate rejected result, substituting emergency default")
				continue
			}
		}

		return buildResult(hourly, sys, m.Tier()), nil
	}

	return nil, fmt.Errorf("%w: %d attempts failed", ErrModelExhausted, len(attempts))
}

// gated reports whether the sanity gate applies to a tier. The physical
// model is trusted, and the emergency default is the substitute itself.
func gated(t domain.ModelTier) bool {
	return t == domain.TierEmpirical || t == domain.TierMathematical
}

func buildResult(hourly []float64, sys domain.PVSystem, tier domain.ModelTier) *domain.ProductionResult {
	limit := sys.PowerKW * (1 + domain.RatedPowerTolerance)

	var annual, peak float64
	for i, v := range hourly {
		if v > limit {
			v = sys.PowerKW
			hourly[i] = v
		}
		annual += v // one-hour steps: kW ≡ kWh
		if v > peak {
			peak = v
		}
	}

	cf := 0.0
	if sys.PowerKW > 0 && len(hourly) > 0 {
		cf = annual / (sys.PowerKW * float64(len(hourly)))
		if cf < 0 {
			cf = 0
		}
		if cf > 1 {
			cf = 1
		}
	}

	return &domain.ProductionResult{
		HourlyKW:       hourly,
		AnnualYieldKWh: annual,
		PeakKW:         peak,
		CapacityFactor: cf,
		Tier:           tier,
	}
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}
