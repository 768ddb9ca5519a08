// Package fingerprint computes the deterministic cache keys shared by every
// cache tier. Only fields that affect the numeric output participate;
// transient execution flags never do.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// Weather keys a resolved weather series by everything the resolver reads:
// site coordinates, panel plane and target year.
func Weather(loc domain.Location, year int) string {
	return digest(
		field("lat", loc.Latitude),
		field("lon", loc.Longitude),
		field("tilt", loc.Tilt),
		field("azimuth", loc.Azimuth),
		fmt.Sprintf("year=%d", year),
	)
}

// Production keys an estimation result by the site, the system, a digest of
// the weather it consumed and the requested model tier. An unpinned request
// hashes as "auto" so pinned and chain-selected runs never collide.
func Production(loc domain.Location, sys domain.PVSystem, weatherDigest string, tier domain.ModelTier) string {
	t := string(tier)
	if t == "" {
		t = "auto"
	}
	return digest(
		field("lat", loc.Latitude),
		field("lon", loc.Longitude),
		field("tilt", loc.Tilt),
		field("azimuth", loc.Azimuth),
		field("power", sys.PowerKW),
		"module="+sys.ModuleFamily,
		field("inverter", sys.InverterEfficiency),
		"weather="+weatherDigest,
		"tier="+t,
	)
}

// WeatherDigest reduces a resolved series to a short digest over its monthly
// mean irradiance vector, so production keys stay stable across re-resolves
// that produce numerically identical weather.
func WeatherDigest(s *domain.WeatherSeries) string {
	means := s.MonthlyMeanGHI()
	parts := make([]string, 0, len(means)+1)
	parts = append(parts, "prov="+string(s.Provenance))
	for i, m := range means {
		parts = append(parts, fmt.Sprintf("m%02d=%.4f", i+1, m))
	}
	return digest(parts...)[:16]
}

// field renders a float with fixed precision so that -0.0 and trailing digit
// noise cannot split cache keys.
func field(name string, v float64) string {
	if v == 0 {
		v = 0 // normalize negative zero
	}
	return fmt.Sprintf("%s=%.6f", name, v)
}

func digest(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
