// Package pvgis queries the public PVGIS historical irradiance service
// (seriescalc endpoint, no API key, hourly data 2005-2020).
package pvgis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

const defaultBaseURL = "https://re.jrc.ec.europa.eu/api/v5_2/seriescalc"

// DefaultTimeout suits the service's typical multi-second response times.
const DefaultTimeout = 30 * time.Second

// Bounds every imported channel is clipped to.
const (
	maxIrradiance = 1500.0
	minTemp       = -40.0
	maxTemp       = 55.0
	maxWind       = 40.0
)

// Defaults for channels the response may omit.
const (
	defaultTemp     = 20.0
	defaultWind     = 1.0
	defaultHumidity = 60.0
)

// Client fetches hourly weather series from PVGIS.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a PVGIS client. The timeout bounds the only genuinely
// blocking call in the pipeline.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	c := NewClient(timeout)
	c.baseURL = baseURL
	return c
}

// FetchHourly retrieves one year of hourly samples for the location. The
// returned series always has exactly domain.HoursPerYear samples; leap-year
// responses are truncated, shorter responses are an error.
func (c *Client) FetchHourly(ctx context.Context, loc domain.Location, year int) (*domain.WeatherSeries, error) {
	params := url.Values{
		"lat":          {fmt.Sprintf("%.6f", loc.Latitude)},
		"lon":          {fmt.Sprintf("%.6f", loc.Longitude)},
		"angle":        {fmt.Sprintf("%.2f", loc.Tilt)},
		"aspect":       {fmt.Sprintf("%.2f", loc.Azimuth)},
		"startyear":    {fmt.Sprintf("%d", year)},
		"endyear":      {fmt.Sprintf("%d", year)},
		"outputformat": {"json"},
		"pvcalculation": {"0"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pvgis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pvgis API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return buildSeries(payload.Outputs.Hourly)
}

func buildSeries(hours []hourlySample) (*domain.WeatherSeries, error) {
	if len(hours) < domain.HoursPerYear {
		return nil, fmt.Errorf("pvgis returned %d hourly samples, want at least %d", len(hours), domain.HoursPerYear)
	}

	s := domain.NewWeatherSeries(domain.ProvenanceLive)
	for i := 0; i < domain.HoursPerYear; i++ {
		h := hours[i]
		s.GHI[i] = clamp(h.GlobalIrradiance, 0, maxIrradiance)
		s.DNI[i] = clamp(h.BeamIrradiance, 0, maxIrradiance)
		s.DHI[i] = clamp(h.DiffuseIrradiance, 0, maxIrradiance)
		s.TempAir[i] = clampOrDefault(h.Temperature, minTemp, maxTemp, defaultTemp)
		s.Wind[i] = clampOrDefault(h.WindSpeed, 0, maxWind, defaultWind)
		s.Humidity[i] = clampOrDefault(h.Humidity, 0, 100, defaultHumidity)
	}
	return s, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampOrDefault substitutes the documented default when the field was
// absent (nil), otherwise clips it to the plausible range.
func clampOrDefault(v *float64, lo, hi, def float64) float64 {
	if v == nil {
		return def
	}
	return clamp(*v, lo, hi)
}

// PVGIS API response types. Field names follow the v5.2 JSON output.

type response struct {
	Outputs struct {
		Hourly []hourlySample `json:"hourly"`
	} `json:"outputs"`
}

type hourlySample struct {
	Time              string   `json:"time"`
	GlobalIrradiance  float64  `json:"G(i)"`
	BeamIrradiance    float64  `json:"Gb(i)"`
	DiffuseIrradiance float64  `json:"Gd(i)"`
	Temperature       *float64 `json:"T2m"`
	WindSpeed         *float64 `json:"WS10m"`
	Humidity          *float64 `json:"RH"`
}
