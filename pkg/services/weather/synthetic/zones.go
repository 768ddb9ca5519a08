package synthetic

// Zone is one climate-zone parameter set. Zones are a static lookup table
// matched by bounding box, with DefaultZone for unmatched coordinates.
type Zone struct {
	Name string

	LatMin, LatMax float64
	LonMin, LonMax float64

	AnnualGHI         float64 // kWh/m²/year target
	TempAvg           float64 // °C annual mean
	TempRange         float64 // °C seasonal swing
	CloudFactor       float64 // 0 = clear, 1 = overcast
	SeasonalVariation float64
	BaseWind          float64 // m/s
}

var zones = []Zone{
	{
		Name:   "france-north",
		LatMin: 47, LatMax: 51, LonMin: -5, LonMax: 8,
		AnnualGHI: 1100, TempAvg: 11, TempRange: 25,
		CloudFactor: 0.6, SeasonalVariation: 0.8, BaseWind: 3.5,
	},
	{
		Name:   "france-south",
		LatMin: 43, LatMax: 47, LonMin: -1, LonMax: 8,
		AnnualGHI: 1400, TempAvg: 14, TempRange: 28,
		CloudFactor: 0.4, SeasonalVariation: 0.9, BaseWind: 3.5,
	},
	{
		Name:   "mediterranean",
		LatMin: 35, LatMax: 45, LonMin: -10, LonMax: 40,
		AnnualGHI: 1600, TempAvg: 16, TempRange: 30,
		CloudFactor: 0.3, SeasonalVariation: 1.0, BaseWind: 4.0,
	},
	{
		Name:   "northern-europe",
		LatMin: 50, LatMax: 70, LonMin: -10, LonMax: 30,
		AnnualGHI: 900, TempAvg: 8, TempRange: 20,
		CloudFactor: 0.7, SeasonalVariation: 0.6, BaseWind: 4.0,
	},
}

// DefaultZone covers every coordinate no bounding box matches.
var DefaultZone = Zone{
	Name:   "default",
	LatMin: -90, LatMax: 90, LonMin: -180, LonMax: 180,
	AnnualGHI: 1200, TempAvg: 12, TempRange: 25,
	CloudFactor: 0.5, SeasonalVariation: 0.7, BaseWind: 4.0,
}

// ClassifyZone returns the first zone whose bounding box contains the
// coordinates, in declaration order, or DefaultZone.
func ClassifyZone(lat, lon float64) Zone {
	for _, z := range zones {
		if lat >= z.LatMin && lat <= z.LatMax && lon >= z.LonMin && lon <= z.LonMax {
			return z
		}
	}
	return DefaultZone
}
