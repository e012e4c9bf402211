package nws

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"fieldwatch/internal/types"
)

// Bundle is one coherent acquisition of everything an evaluation pass needs.
// A bundle is all-or-nothing: if any document fails to fetch, the whole
// bundle is abandoned rather than evaluated against partial data.
type Bundle struct {
	Snapshot types.WeatherSnapshot
	Periods  []types.ForecastPeriod
	Hourly   []types.HourlyPeriod
	Alerts   types.AlertSet
}

// Location identifies the monitored point and its observation station.
type Location struct {
	Latitude  float64
	Longitude float64
	StationID string
}

// Fetcher acquires weather bundles for a fixed location. The gridpoint
// forecast URLs are resolved from the points endpoint on first use and cached
// for the life of the process; a failed resolution is retried on the next
// fetch.
type Fetcher struct {
	client   *Client
	location Location
	logger   *slog.Logger

	mu   sync.Mutex
	urls *ForecastURLs
}

// NewFetcher creates a Fetcher for the given location.
func NewFetcher(client *Client, location Location, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   client,
		location: location,
		logger:   logger,
	}
}

// forecastURLs returns the cached gridpoint endpoints, resolving them on
// first use.
func (f *Fetcher) forecastURLs(ctx context.Context) (ForecastURLs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.urls != nil {
		return *f.urls, nil
	}

	urls, err := f.client.Points(ctx, f.location.Latitude, f.location.Longitude)
	if err != nil {
		return ForecastURLs{}, err
	}
	f.urls = &urls
	f.logger.InfoContext(ctx, "resolved gridpoint endpoints",
		"forecast_url", urls.Forecast,
		"hourly_url", urls.ForecastHourly,
	)
	return urls, nil
}

// FetchBundle acquires the forecast, hourly forecast, active alerts, and
// latest observations in parallel. The first failure cancels the remaining
// fetches and fails the bundle.
func (f *Fetcher) FetchBundle(ctx context.Context) (Bundle, error) {
	urls, err := f.forecastURLs(ctx)
	if err != nil {
		return Bundle{}, err
	}

	var bundle Bundle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		periods, err := f.client.Forecast(gctx, urls.Forecast)
		if err != nil {
			return err
		}
		bundle.Periods = periods
		return nil
	})
	g.Go(func() error {
		hourly, err := f.client.HourlyForecast(gctx, urls.ForecastHourly)
		if err != nil {
			return err
		}
		bundle.Hourly = hourly
		return nil
	})
	g.Go(func() error {
		alerts, err := f.client.ActiveAlerts(gctx, f.location.Latitude, f.location.Longitude)
		if err != nil {
			return err
		}
		bundle.Alerts = alerts
		return nil
	})
	g.Go(func() error {
		snapshot, err := f.client.LatestObservations(gctx, f.location.StationID)
		if err != nil {
			return err
		}
		bundle.Snapshot = snapshot
		return nil
	})

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

// Conditions fetches only the latest observation snapshot.
func (f *Fetcher) Conditions(ctx context.Context) (types.WeatherSnapshot, error) {
	return f.client.LatestObservations(ctx, f.location.StationID)
}

// Forecast fetches only the forecast periods and hourly periods.
func (f *Fetcher) Forecast(ctx context.Context) ([]types.ForecastPeriod, []types.HourlyPeriod, error) {
	urls, err := f.forecastURLs(ctx)
	if err != nil {
		return nil, nil, err
	}

	var (
		periods []types.ForecastPeriod
		hourly  []types.HourlyPeriod
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		periods, err = f.client.Forecast(gctx, urls.Forecast)
		return err
	})
	g.Go(func() error {
		var err error
		hourly, err = f.client.HourlyForecast(gctx, urls.ForecastHourly)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return periods, hourly, nil
}

// Alerts fetches only the active alert set.
func (f *Fetcher) Alerts(ctx context.Context) (types.AlertSet, error) {
	return f.client.ActiveAlerts(ctx, f.location.Latitude, f.location.Longitude)
}
