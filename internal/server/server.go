// Package server is the HTTP surface of fieldwatch: a chi router exposing the
// outlook views, a manual notification trigger, health, and metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fieldwatch/internal/observability"
	"fieldwatch/internal/types"
)

// OutlookService is what the handlers need from the application layer.
// *outlook.Service satisfies it.
type OutlookService interface {
	GetOutlook(ctx context.Context) (types.Outlook, error)
	GetConditions(ctx context.Context) (types.WeatherSnapshot, error)
	GetForecast(ctx context.Context) ([]types.ForecastCard, error)
	GetAlerts(ctx context.Context) ([]string, error)
}

// Notifier delivers a plain-text message to the configured sink.
// *external.SlackClient satisfies it.
type Notifier interface {
	PostMessage(ctx context.Context, text string) (string, error)
}

// Server holds the handler dependencies and assembles the router.
type Server struct {
	service  OutlookService
	notifier Notifier // nil when Slack credentials are not configured
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// Config holds the dependencies for creating a Server. Notifier may be nil;
// the notification endpoint then reports missing credentials.
type Config struct {
	Service  OutlookService
	Notifier Notifier
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		service:  cfg.Service,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}

// Routes assembles the middleware chain and the route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/outlook", s.handleOutlook)
		r.Get("/conditions", s.handleConditions)
		r.Get("/forecast", s.handleForecast)
		r.Get("/alerts", s.handleAlerts)
		r.Post("/notifications", s.handleNotify)
	})

	return r
}
