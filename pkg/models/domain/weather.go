package domain

// HoursPerYear is the fixed series length, one non-leap year of hours.
// Every weather and production series in the pipeline has exactly this length.
const HoursPerYear = 8760

// Provenance labels the source a weather series was resolved from.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceSynthetic Provenance = "synthetic"
)

// WeatherSeries is one year of hourly weather samples. All channels have
// length HoursPerYear; irradiance is W/m², temperature °C, wind m/s,
// humidity percent.
type WeatherSeries struct {
	GHI      []float64 // global horizontal irradiance
	DNI      []float64 // direct normal irradiance
	DHI      []float64 // diffuse horizontal irradiance
	TempAir  []float64
	Wind     []float64
	Humidity []float64

	Provenance Provenance
	Advisory   string
}

// NewWeatherSeries allocates all channels at HoursPerYear.
func NewWeatherSeries(p Provenance) *WeatherSeries {
	return &WeatherSeries{
		GHI:        make([]float64, HoursPerYear),
		DNI:        make([]float64, HoursPerYear),
		DHI:        make([]float64, HoursPerYear),
		TempAir:    make([]float64, HoursPerYear),
		Wind:       make([]float64, HoursPerYear),
		Humidity:   make([]float64, HoursPerYear),
		Provenance: p,
	}
}

// Len returns the sample count of the shortest channel.
func (s *WeatherSeries) Len() int {
	n := len(s.GHI)
	for _, ch := range [][]float64{s.DNI, s.DHI, s.TempAir, s.Wind, s.Humidity} {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// MonthlyMeanGHI reduces the irradiance channel to twelve monthly means.
// The production fingerprint digests this vector instead of the full series.
func (s *WeatherSeries) MonthlyMeanGHI() [12]float64 {
	var sums [12]float64
	var counts [12]int
	for i, v := range s.GHI {
		m := monthOfHour(i)
		sums[m] += v
		counts[m]++
	}
	for m := range sums {
		if counts[m] > 0 {
			sums[m] /= float64(counts[m])
		}
	}
	return sums
}

// daysBeforeMonth is cumulative day counts for a non-leap year.
var daysBeforeMonth = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

func monthOfHour(hour int) int {
	day := hour / 24
	for m := 1; m <= 12; m++ {
		if day < daysBeforeMonth[m] {
			return m - 1
		}
	}
	return 11
}
