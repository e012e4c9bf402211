package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"fieldwatch/internal/engine"
	"fieldwatch/internal/external"
	"fieldwatch/internal/types"
)

// nwsAPIBase is the default api.weather.gov base URL. Overridable in tests
// via ClientConfig.BaseURL.
const nwsAPIBase = "https://api.weather.gov"

// ClientConfig holds the configuration for creating a Client. api.weather.gov
// rejects requests without an identifying User-Agent, so one is required.
type ClientConfig struct {
	UserAgent string
	BaseURL   string // override for testing; defaults to nwsAPIBase
	Logger    *slog.Logger
}

// Client fetches weather documents from api.weather.gov through the shared
// resilience layer. Responses are requested gzip-compressed; the forecast
// documents are large and mostly prose.
type Client struct {
	base      *external.BaseClient
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

// NewClient creates an api.weather.gov client.
func NewClient(httpClient *http.Client, cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = nwsAPIBase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "fieldwatch/1.0"
	}

	base := external.NewBaseClient(
		httpClient,
		"nws",
		external.DefaultRetryPolicy(),
		userAgent,
	)

	return &Client{
		base:      base,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		logger:    logger,
	}
}

// ForecastURLs are the per-gridpoint forecast endpoints resolved from the
// points lookup.
type ForecastURLs struct {
	Forecast       string
	ForecastHourly string
}

// Points resolves the forecast endpoint URLs for a coordinate pair.
func (c *Client) Points(ctx context.Context, lat, lon float64) (ForecastURLs, error) {
	var decoded pointsResponse
	url := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
	if err := c.getJSON(ctx, url, &decoded); err != nil {
		return ForecastURLs{}, err
	}
	if decoded.Properties.Forecast == "" || decoded.Properties.ForecastHourly == "" {
		return ForecastURLs{}, types.NewAppError(
			types.ErrCodeUpstreamMalformed,
			"points response is missing forecast endpoints",
			nil,
		)
	}
	return ForecastURLs{
		Forecast:       decoded.Properties.Forecast,
		ForecastHourly: decoded.Properties.ForecastHourly,
	}, nil
}

// Forecast fetches the twice-daily forecast periods from the given endpoint.
func (c *Client) Forecast(ctx context.Context, url string) ([]types.ForecastPeriod, error) {
	var decoded forecastResponse
	if err := c.getJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}

	periods := make([]types.ForecastPeriod, 0, len(decoded.Properties.Periods))
	for _, p := range decoded.Properties.Periods {
		periods = append(periods, types.ForecastPeriod{
			Name:             p.Name,
			StartTime:        p.StartTime,
			EndTime:          p.EndTime,
			IsDaytime:        p.IsDaytime,
			Temperature:      p.Temperature,
			TemperatureUnit:  p.TemperatureUnit,
			ShortForecast:    p.ShortForecast,
			DetailedForecast: p.DetailedForecast,
			Icon:             p.Icon,
			WindSpeed:        p.WindSpeed,
			WindDirection:    p.WindDirection,
		})
	}
	return periods, nil
}

// HourlyForecast fetches the hourly forecast periods from the given endpoint.
func (c *Client) HourlyForecast(ctx context.Context, url string) ([]types.HourlyPeriod, error) {
	var decoded forecastResponse
	if err := c.getJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}

	periods := make([]types.HourlyPeriod, 0, len(decoded.Properties.Periods))
	for _, p := range decoded.Properties.Periods {
		var prob *int
		if p.ProbabilityOfPrecipitation.Value != nil {
			v := int(*p.ProbabilityOfPrecipitation.Value)
			prob = &v
		}
		periods = append(periods, types.HourlyPeriod{
			StartTime:         p.StartTime,
			EndTime:           p.EndTime,
			PrecipProbability: prob,
		})
	}
	return periods, nil
}

// ActiveAlerts fetches the alert event types currently in effect for the
// coordinate pair.
func (c *Client) ActiveAlerts(ctx context.Context, lat, lon float64) (types.AlertSet, error) {
	var decoded alertsResponse
	url := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", c.baseURL, lat, lon)
	if err := c.getJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}

	events := make([]string, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		events = append(events, f.Properties.Event)
	}
	return types.NewAlertSet(events), nil
}

// LatestObservations fetches the most recent observation for a station and
// derives the current-conditions snapshot, converting units at the boundary.
// Missing sensor readings stay nil; absence is not an error.
func (c *Client) LatestObservations(ctx context.Context, stationID string) (types.WeatherSnapshot, error) {
	var decoded observationResponse
	url := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, stationID)
	if err := c.getJSON(ctx, url, &decoded); err != nil {
		return types.WeatherSnapshot{}, err
	}

	props := decoded.Properties
	return types.WeatherSnapshot{
		TemperatureF: engine.CelsiusToFahrenheit(props.Temperature.Value),
		WindMph:      engine.MetersPerSecToMph(props.WindSpeed.Value),
		HumidityPct:  props.RelativeHumidity.Value,
		Description:  props.TextDescription,
		ObservedAt:   props.Timestamp,
		StationID:    stationID,
	}, nil
}

// getJSON performs a GET with gzip negotiation and decodes the 200 response
// into out. Non-200 responses and decode failures map to upstream errors.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.NewAppError(
			types.ErrCodeInternalUnexpected,
			fmt.Sprintf("failed to create request for %s", url),
			err,
		)
	}
	req.Header.Set("Accept", "application/geo+json")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.base.Do(req)
	if err != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather fetch failed for %s", url),
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather fetch for %s returned %d", url, resp.StatusCode),
			nil,
		)
	}

	body := io.Reader(resp.Body)
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			return types.NewAppError(
				types.ErrCodeUpstreamMalformed,
				"failed to open gzip response body",
				gzErr,
			)
		}
		defer gz.Close()
		body = gz
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamMalformed,
			fmt.Sprintf("failed to decode response from %s", url),
			err,
		)
	}

	c.logger.DebugContext(ctx, "weather document fetched",
		"url", url,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
