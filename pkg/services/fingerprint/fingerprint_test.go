package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

var (
	paris  = domain.Location{Latitude: 48.85, Longitude: 2.35, Tilt: 30, Azimuth: 180}
	system = domain.PVSystem{PowerKW: 3, ModuleFamily: "mono-si", InverterEfficiency: 0.96}
)

func TestWeatherFingerprintIsDeterministic(t *testing.T) {
	a := Weather(paris, 2020)
	b := Weather(paris, 2020)
	require.Equal(t, a, b)
	require.Len(t, a, 64)
}

func TestWeatherFingerprintSensitivity(t *testing.T) {
	base := Weather(paris, 2020)

	moved := paris
	moved.Latitude += 0.001
	assert.NotEqual(t, base, Weather(moved, 2020))
	assert.NotEqual(t, base, Weather(paris, 2021))

	tilted := paris
	tilted.Tilt = 35
	assert.NotEqual(t, base, Weather(tilted, 2020))
}

func TestWeatherFingerprintNormalizesNegativeZero(t *testing.T) {
	a := domain.Location{Latitude: 0, Longitude: 0}
	b := domain.Location{Latitude: math.Copysign(0, -1), Longitude: 0}
	assert.Equal(t, Weather(a, 2020), Weather(b, 2020))
}

func TestProductionFingerprintSeparatesPinnedRuns(t *testing.T) {
	auto := Production(paris, system, "digest", "")
	pinned := Production(paris, system, "digest", domain.TierMathematical)
	assert.NotEqual(t, auto, pinned)

	// The unpinned request is stable.
	assert.Equal(t, auto, Production(paris, system, "digest", ""))
}

func TestProductionFingerprintTracksWeatherDigest(t *testing.T) {
	a := Production(paris, system, "digest-a", "")
	b := Production(paris, system, "digest-b", "")
	assert.NotEqual(t, a, b)
}

func TestWeatherDigest(t *testing.T) {
	s := domain.NewWeatherSeries(domain.ProvenanceSynthetic)
	for i := range s.GHI {
		s.GHI[i] = float64(i % 500)
	}

	d := WeatherDigest(s)
	require.Len(t, d, 16)
	require.Equal(t, d, WeatherDigest(s))

	s.GHI[0] += 100
	assert.NotEqual(t, d, WeatherDigest(s))
}
