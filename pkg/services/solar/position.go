// Package solar provides the hour-by-hour sun geometry shared by the
// synthetic weather generator and the physical production model.
package solar

import "math"

// Constant is the solar constant in W/m².
const Constant = 1367.0

// Declination returns the solar declination in degrees for a day of year
// (1-based), using the Cooper approximation.
func Declination(dayOfYear int) float64 {
	return 23.45 * math.Sin(rad(360.0*float64(284+dayOfYear)/365.0))
}

// Elevation returns the solar elevation angle in degrees for a latitude,
// day of year and local hour (0..23). Negative values are clamped to zero;
// the sun below the horizon contributes nothing.
func Elevation(latitude float64, dayOfYear, hour int) float64 {
	latRad := rad(latitude)
	declRad := rad(Declination(dayOfYear))
	hourAngle := rad(15.0 * float64(hour-12))

	sinElev := math.Sin(latRad)*math.Sin(declRad) +
		math.Cos(latRad)*math.Cos(declRad)*math.Cos(hourAngle)
	elev := deg(math.Asin(clamp(sinElev, -1, 1)))
	if elev < 0 {
		return 0
	}
	return elev
}

// Azimuth returns the solar azimuth in degrees (180 = south-ish at noon),
// using the simplified arctangent form.
func Azimuth(latitude float64, dayOfYear, hour int) float64 {
	latRad := rad(latitude)
	declRad := rad(Declination(dayOfYear))
	hourAngle := rad(15.0 * float64(hour-12))

	return 180 + deg(math.Atan2(
		math.Sin(hourAngle),
		math.Cos(hourAngle)*math.Sin(latRad)-math.Tan(declRad)*math.Cos(latRad),
	))
}

// ExtraterrestrialGHI returns the horizontal irradiance ceiling outside the
// atmosphere for the given geometry, in W/m².
func ExtraterrestrialGHI(latitude float64, dayOfYear, hour int) float64 {
	elev := Elevation(latitude, dayOfYear, hour)
	if elev <= 0 {
		return 0
	}
	distance := 1 + 0.033*math.Cos(2*math.Pi*float64(dayOfYear)/365.0)
	return Constant * distance * math.Sin(rad(elev))
}

// IncidenceCosine returns cos(angle of incidence) between the sun and a
// tilted panel plane, clamped to zero for back-side illumination.
func IncidenceCosine(latitude, tilt, panelAzimuth float64, dayOfYear, hour int) float64 {
	elev := Elevation(latitude, dayOfYear, hour)
	if elev <= 0 {
		return 0
	}
	sunAz := Azimuth(latitude, dayOfYear, hour)

	elevRad := rad(elev)
	tiltRad := rad(tilt)
	azDiff := rad(sunAz - panelAzimuth)

	cosAOI := math.Sin(elevRad)*math.Cos(tiltRad) +
		math.Cos(elevRad)*math.Sin(tiltRad)*math.Cos(azDiff)
	if cosAOI < 0 {
		return 0
	}
	return cosAOI
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
