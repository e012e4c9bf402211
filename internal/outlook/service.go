// Package outlook is the application service tying acquisition, evaluation,
// and scheduling together: it fetches a weather bundle, runs the policy
// against it, joins the daytime forecast with precipitation probabilities,
// and decorates the result with the next practice time.
package outlook

import (
	"context"
	"log/slog"
	"time"

	"fieldwatch/internal/engine"
	"fieldwatch/internal/nws"
	"fieldwatch/internal/observability"
	"fieldwatch/internal/policy"
	"fieldwatch/internal/schedule"
	"fieldwatch/internal/types"
)

// WeatherSource is what the service needs from the acquisition layer.
// *nws.Fetcher satisfies it.
type WeatherSource interface {
	FetchBundle(ctx context.Context) (nws.Bundle, error)
	Conditions(ctx context.Context) (types.WeatherSnapshot, error)
	Forecast(ctx context.Context) ([]types.ForecastPeriod, []types.HourlyPeriod, error)
	Alerts(ctx context.Context) (types.AlertSet, error)
}

// ServiceConfig holds the dependencies for creating a Service.
type ServiceConfig struct {
	Source        WeatherSource
	Rules         []policy.Rule
	FuturePeriods int
	Clock         types.Clock
	Metrics       *observability.Metrics
	Logger        *slog.Logger
}

// Service runs evaluation passes and serves the partial weather views.
type Service struct {
	source        WeatherSource
	rules         []policy.Rule
	futurePeriods int
	clock         types.Clock
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewService creates a Service. A nil clock defaults to the real clock and a
// nil logger to slog.Default; Source, Rules, and Metrics are required.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = types.RealClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	futurePeriods := cfg.FuturePeriods
	if futurePeriods <= 0 {
		futurePeriods = engine.DefaultFuturePeriods
	}
	return &Service{
		source:        cfg.Source,
		rules:         cfg.Rules,
		futurePeriods: futurePeriods,
		clock:         clock,
		metrics:       cfg.Metrics,
		logger:        logger,
	}
}

// GetOutlook runs one full pass: acquire a bundle, evaluate the policy, and
// assemble the complete outlook. Acquisition failure fails the whole call;
// there is no partial outlook.
func (s *Service) GetOutlook(ctx context.Context) (types.Outlook, error) {
	start := time.Now()
	bundle, err := s.source.FetchBundle(ctx)
	s.metrics.UpstreamSeconds.WithLabelValues("nws").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.EvaluationPasses.WithLabelValues(observability.StatusError).Inc()
		s.logger.ErrorContext(ctx, "weather bundle acquisition failed", "error", err)
		return types.Outlook{}, err
	}

	assessment := engine.Evaluate(engine.Inputs{
		Snapshot:      bundle.Snapshot,
		Periods:       bundle.Periods,
		Hourly:        bundle.Hourly,
		Alerts:        bundle.Alerts,
		Rules:         s.rules,
		FuturePeriods: s.futurePeriods,
	})
	s.metrics.EvaluationPasses.WithLabelValues(observability.StatusOK).Inc()
	s.recordMatches(assessment)

	now := s.clock.Now()
	s.logger.InfoContext(ctx, "evaluation pass complete",
		"now_matches", len(assessment.NowMatches),
		"future_matches", len(assessment.FutureMatches),
		"driving_risk", assessment.DrivingRisk,
		"venue_risk", assessment.VenueRisk,
	)

	return types.Outlook{
		GeneratedAt:  now,
		Conditions:   bundle.Snapshot,
		Forecast:     buildCards(bundle.Periods, bundle.Hourly),
		ActiveAlerts: bundle.Alerts.Events(),
		Assessment:   assessment,
		NextPractice: schedule.NextPractice(now),
	}, nil
}

// GetConditions serves the current snapshot alone, so conditions stay
// available when a forecast endpoint is down.
func (s *Service) GetConditions(ctx context.Context) (types.WeatherSnapshot, error) {
	return s.source.Conditions(ctx)
}

// GetForecast serves the daytime forecast cards alone.
func (s *Service) GetForecast(ctx context.Context) ([]types.ForecastCard, error) {
	periods, hourly, err := s.source.Forecast(ctx)
	if err != nil {
		return nil, err
	}
	return buildCards(periods, hourly), nil
}

// GetAlerts serves the active alert event types alone.
func (s *Service) GetAlerts(ctx context.Context) ([]string, error) {
	alerts, err := s.source.Alerts(ctx)
	if err != nil {
		return nil, err
	}
	return alerts.Events(), nil
}

// NextPractice returns the next scheduled practice from the service clock.
func (s *Service) NextPractice() time.Time {
	return schedule.NextPractice(s.clock.Now())
}

// recordMatches increments the per-condition match counters.
func (s *Service) recordMatches(a types.Assessment) {
	for _, m := range a.NowMatches {
		s.metrics.RuleMatches.WithLabelValues(m.Condition, observability.HorizonNow).Inc()
	}
	for _, m := range a.FutureMatches {
		s.metrics.RuleMatches.WithLabelValues(m.Condition, observability.HorizonFuture).Inc()
	}
}

// buildCards joins the daytime periods with their maximum precipitation
// probability.
func buildCards(periods []types.ForecastPeriod, hourly []types.HourlyPeriod) []types.ForecastCard {
	daytime := engine.DaytimePeriods(periods)
	precip := engine.MaxPrecipByPeriod(daytime, hourly)

	cards := make([]types.ForecastCard, 0, len(daytime))
	for i, p := range daytime {
		cards = append(cards, types.ForecastCard{
			ForecastPeriod: p,
			PrecipPct:      precip[i],
		})
	}
	return cards
}
